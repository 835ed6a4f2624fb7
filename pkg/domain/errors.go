package domain

import (
	"errors"
	"fmt"
)

// ErrPathMiss is returned when a mutation path does not resolve to an existing element.
var ErrPathMiss = errors.New("path does not resolve to an element")

// ErrMalformedInput is returned when an import payload cannot be parsed as an object.
var ErrMalformedInput = errors.New("invalid input")

// ErrIncompleteForm is returned when an element or record is built without a required field.
var ErrIncompleteForm = errors.New("incomplete form")

// ErrSchemaViolation is returned when a candidate document fails schema validation.
var ErrSchemaViolation = errors.New("schema violation")

// ErrUnsupportedKind is returned for modelType values outside the supported element catalog.
var ErrUnsupportedKind = errors.New("unsupported element kind")

// ErrNodeNotFound is returned when a tree node id is not present in the current projection.
var ErrNodeNotFound = errors.New("node not found")

// ErrInvalidTarget is returned when the selected node cannot receive the requested operation.
var ErrInvalidTarget = errors.New("invalid target for operation")

// ErrSessionNotFound is returned when a session ID cannot be found in the manager.
var ErrSessionNotFound = errors.New("session not found")

// PathMissError describes where a path walk stopped.
type PathMissError struct {
	Step         int    // Index of the step that failed
	ContainerKey string // Container named by that step
	Index        int    // Requested position in the container
	Reason       string
}

func (e *PathMissError) Error() string {
	if e.ContainerKey == "" {
		return fmt.Sprintf("%s: %s", ErrPathMiss, e.Reason)
	}
	return fmt.Sprintf("%s: step %d (%s-%d): %s", ErrPathMiss, e.Step, e.ContainerKey, e.Index, e.Reason)
}

func (e *PathMissError) Unwrap() error { return ErrPathMiss }
