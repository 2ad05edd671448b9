// Package errors defines the coded errors shared by the library, the CLI and
// the HTTP server.
//
// Every failure a caller can act on carries a [Code]. Codes fall into
// classes: input the caller must fix, generation runs that could not
// produce a tiling, unsupported operations, and internal faults. The server
// maps classes to HTTP status codes; the CLI prints [UserMessage].
//
//	if errors.Is(err, errors.ErrCodeInvalidConfiguration) {
//		// reject the request
//	}
//
// Errors from other packages are wrapped so the chain stays intact:
//
//	return errors.Wrap(errors.ErrCodeFileNotFound, err, "read seeds %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error identifier.
type Code string

const (
	ErrCodeInvalidInput         Code = "INVALID_INPUT"
	ErrCodeInvalidConfiguration Code = "INVALID_CONFIGURATION"
	ErrCodeInvalidSeed          Code = "INVALID_SEED"
	ErrCodeInvalidPreset        Code = "INVALID_PRESET"
	ErrCodeInvalidFormat        Code = "INVALID_FORMAT"
	ErrCodeInvalidPath          Code = "INVALID_PATH"
	ErrCodeFileNotFound         Code = "FILE_NOT_FOUND"

	ErrCodeSeedOutOfBounds         Code = "SEED_OUT_OF_BOUNDS"
	ErrCodeMissingCenterDimensions Code = "MISSING_CENTER_DIMENSIONS"
	ErrCodeEmptyResult             Code = "EMPTY_RESULT"
	ErrCodeInconsistentSeeds       Code = "INCONSISTENT_SEEDS"

	ErrCodeUnsupported Code = "UNSUPPORTED"
	ErrCodeInternal    Code = "INTERNAL_ERROR"
)

// Class groups codes by who can resolve them.
type Class int

const (
	ClassInternal Class = iota
	ClassInput
	ClassGeneration
	ClassUnsupported
)

var classes = map[Code]Class{
	ErrCodeInvalidInput:         ClassInput,
	ErrCodeInvalidConfiguration: ClassInput,
	ErrCodeInvalidSeed:          ClassInput,
	ErrCodeInvalidPreset:        ClassInput,
	ErrCodeInvalidFormat:        ClassInput,
	ErrCodeInvalidPath:          ClassInput,

	ErrCodeSeedOutOfBounds:         ClassGeneration,
	ErrCodeMissingCenterDimensions: ClassGeneration,
	ErrCodeEmptyResult:             ClassGeneration,
	ErrCodeInconsistentSeeds:       ClassGeneration,

	ErrCodeUnsupported: ClassUnsupported,
}

// Class reports the code's class. Unknown codes, FILE_NOT_FOUND and the
// empty code are internal.
func (c Code) Class() Class { return classes[c] }

// IsInputError reports whether code rejects input before any generation.
func IsInputError(code Code) bool { return code.Class() == ClassInput }

// IsGenerationError reports whether code describes a run on valid input
// that could not produce a tiling.
func IsGenerationError(code Code) bool { return code.Class() == ClassGeneration }

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an error with code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is New with a cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// outermost finds the first *Error in err's chain.
func outermost(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost coded error in err's chain has code.
func Is(err error, code Code) bool {
	e, ok := outermost(err)
	return ok && e.Code == code
}

// GetCode returns the outermost code in err's chain, or "" if there is none.
func GetCode(err error) Code {
	if e, ok := outermost(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage returns the outermost coded message without its code prefix,
// or err.Error() for uncoded errors.
func UserMessage(err error) string {
	if e, ok := outermost(err); ok {
		return e.Message
	}
	return err.Error()
}
