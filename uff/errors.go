package uff

import "github.com/pkg/errors"

// Sentinel errors. Errors returned by this package wrap one of these and can
// be matched with errors.Is.
var (
	ErrNotFound             = errors.New("location not found")
	ErrAttributeNotFound    = errors.New("attribute not found")
	ErrAlreadyExists        = errors.New("location already exists")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrUnsupportedType      = errors.New("unsupported type")
	ErrNotSupported         = errors.New("not supported")
	ErrScalarShape          = errors.New("value is not a scalar")
	ErrMissingPrerequisite  = errors.New("missing prerequisite field")
	ErrUnknownClass         = errors.New("unknown class")
	ErrUnknownField         = errors.New("unknown field")
	ErrIndex                = errors.New("index out of range")
)

// errUnset marks a field with no member in its node. Get reads it as nil.
var errUnset = errors.New("field not stored")
