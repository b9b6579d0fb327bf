package apperr

import "errors"

var (
	// ErrInvalid is returned when the input fails domain validation.
	ErrInvalid = errors.New("invalid input")
	// ErrConflict indicates a uniqueness or state conflict (HTTP 409).
	ErrConflict = errors.New("conflict")
	// ErrNotFound indicates that the requested resource does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized means there is no authenticated operator session.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUpstream wraps failures of the external social-services API.
	ErrUpstream = errors.New("upstream error")
)

// ValidationError carries a message meant to be shown to the operator as is.
// It matches ErrInvalid with errors.Is.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Is reports ErrInvalid as the sentinel behind every validation error.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalid }

// Validation creates a ValidationError with the given message.
func Validation(msg string) error {
	return &ValidationError{Msg: msg}
}

// Message returns the operator-facing message of a validation error, or "" when err is not one.
func Message(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Msg
	}
	return ""
}
