/*
Package ports defines the driven ports (interfaces) of the editor.

These interfaces decouple the editing core from infrastructure, so the same
editor runs in a single CLI process or behind several HTTP replicas.

# Key Interfaces

  - CommitPublisher: receives the export form of every applied commit (e.g. Redis Pub/Sub).
  - DistributedLocker: serializes access to one session across replicas.

Reusable contract suites for both live in the tests subpackage.
*/
package ports
