// Package domainerrors provides coded domain errors for the certification
// registry. Services construct these at the point of failure; transports map
// codes to their own status vocabulary without string matching.
//
// Usage:
//
//	return dErrors.New(dErrors.CodeUnauthorized, "caller is not an admin")
//	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist record")
//
//	if dErrors.HasCode(err, dErrors.CodeNotFound) { ... }
package domainerrors

import "errors"

// Code identifies a failure condition. The lifecycle codes form a flat
// taxonomy: exactly one code per condition, no hierarchy.
type Code string

const (
	// Lifecycle failure codes.
	CodeUnauthorized       Code = "unauthorized"
	CodePaused             Code = "paused"
	CodeInvalidTeacher     Code = "invalid_teacher"
	CodeInvalidType        Code = "invalid_type"
	CodeRequirementsNotMet Code = "requirements_not_met"
	CodeAlreadyCertified   Code = "already_certified"
	CodeMetadataTooLong    Code = "metadata_too_long"
	CodeNotExpired         Code = "not_expired"
	CodeNotFound           Code = "not_found"
	CodeInvalidPeriod      Code = "invalid_period"
	CodeInvalidStatus      Code = "invalid_status"

	// Ambient codes for structural and transport failures.
	CodeValidation Code = "validation_error"
	CodeBadRequest Code = "bad_request"
	CodeConflict   Code = "conflict"
	CodeInternal   Code = "internal_error"
)

// Error carries a code, a human-readable message, and an optional cause.
type Error struct {
	code  Code
	msg   string
	cause error
}

// New constructs a coded error with no underlying cause.
func New(code Code, msg string) *Error {
	return &Error{code: code, msg: msg}
}

// Wrap attaches a code and message to an underlying error. The cause stays
// reachable through errors.Is / errors.Unwrap.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{code: code, msg: msg, cause: err}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Code returns the failure code.
func (e *Error) Code() Code {
	return e.code
}

// Message returns the message without the cause chain. Transports use this
// for client-facing descriptions so internal detail does not leak.
func (e *Error) Message() string {
	return e.msg
}

// HasCode reports whether err or any error in its chain carries the code.
func HasCode(err error, code Code) bool {
	var coded *Error
	for errors.As(err, &coded) {
		if coded.code == code {
			return true
		}
		err = coded.cause
		if err == nil {
			return false
		}
		coded = nil
	}
	return false
}

// CodeOf returns the outermost code in err's chain, or CodeInternal when the
// error is not coded. Uncoded errors are infrastructure failures by
// definition.
func CodeOf(err error) Code {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.code
	}
	return CodeInternal
}

// Is matches another coded error by code and message, so errors.Is can
// compare two independently constructed domain errors.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.code == t.code && e.msg == t.msg
}

// Is delegates to errors.Is; kept so callers need a single import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
