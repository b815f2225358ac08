package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownModule indicates a module id outside the catalog.
	ErrUnknownModule = errors.New("unknown module")

	// ErrValidation indicates a rejected create or an invalid field configuration.
	// State is unchanged when it is returned.
	ErrValidation = errors.New("validation failed")

	// ErrUnsupportedFormat indicates an import file with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrParse indicates a malformed import file body.
	ErrParse = errors.New("parse failed")

	// ErrPersistence indicates a snapshot read or write failure.
	// It is logged, never returned from a mutating operation.
	ErrPersistence = errors.New("persistence failed")
)

// ValidationError describes why a field definition or record was rejected.
type ValidationError struct {
	// Field is the offending attribute or id, empty when the error is general.
	Field string

	// Message is the human-readable reason.
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
	}
	return "validation: " + e.Message
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// UnsupportedFormatError is returned before parsing when the file extension
// has no registered parser.
type UnsupportedFormatError struct {
	FileName  string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	ext := e.Extension
	if ext == "" {
		ext = "(none)"
	}
	return fmt.Sprintf("unsupported format %s for %q", ext, e.FileName)
}

// Is reports whether target is ErrUnsupportedFormat.
func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// ParseError wraps a malformed import body.
type ParseError struct {
	FileName string

	// Line is the 1-based line or row of the failure, 0 when unknown.
	Line int

	Err error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("parse ")
	b.WriteString(e.FileName)
	if e.Line > 0 {
		fmt.Fprintf(&b, " (line %d)", e.Line)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Is reports whether target is ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// PersistenceError wraps a failed snapshot read, write or encode.
type PersistenceError struct {
	// Op is one of "read", "write", "encode" or "decode".
	Op  string
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s %q: %v", e.Op, e.Key, e.Err)
}

// Is reports whether target is ErrPersistence.
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
