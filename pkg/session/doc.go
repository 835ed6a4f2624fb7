/*
Package session keeps one editor per session id in memory.

It serializes operations on a session with a reference-counted local lock and,
when several replicas serve the same sessions, an optional distributed lock.
Sessions are not persisted; they live as long as the process.
*/
package session
