package search

import (
	"errors"
	"fmt"
)

// Common search errors. Compilation returns them wrapped; use errors.Is or the
// Is* helpers to classify.
var (
	// ErrUnresolvedPath is returned when a field path does not resolve against a schema
	ErrUnresolvedPath = errors.New("unresolved field path")

	// ErrUnknownSchema is returned when a schema name is not registered
	ErrUnknownSchema = errors.New("unknown schema")

	// ErrInvalidSchema is returned when a schema fails registration checks
	ErrInvalidSchema = errors.New("invalid schema")

	// ErrUnsupported is returned by a dialect that cannot express a node
	ErrUnsupported = errors.New("unsupported by dialect")
)

// UnresolvedPathError describes which segment of a path failed to resolve.
type UnresolvedPathError struct {
	// Schema is the root schema the path was resolved against
	Schema string
	// Path is the full dotted path as requested
	Path string
	// Segment is the segment that failed
	Segment string
	// Reason is a short human-readable cause
	Reason string
}

func (e *UnresolvedPathError) Error() string {
	return fmt.Sprintf("search: cannot resolve %q on %s: segment %q %s", e.Path, e.Schema, e.Segment, e.Reason)
}

// Unwrap lets errors.Is match ErrUnresolvedPath.
func (e *UnresolvedPathError) Unwrap() error {
	return ErrUnresolvedPath
}

// IsUnresolvedPath checks if the error is caused by an unknown field path.
func IsUnresolvedPath(err error) bool {
	return errors.Is(err, ErrUnresolvedPath)
}

// IsUnknownSchema checks if the error is caused by an unregistered schema.
func IsUnknownSchema(err error) bool {
	return errors.Is(err, ErrUnknownSchema)
}

// IsUnsupported checks if the error is caused by a dialect limitation.
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupported)
}
