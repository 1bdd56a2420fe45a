package core

import "errors"

// Error codes for domain errors.
const (
	ErrCodeValidation     = "validation"
	ErrCodeUsernameTaken  = "username_taken"
	ErrCodeProfanity      = "profanity"
	ErrCodeNotFound       = "not_found"
	ErrCodeAlreadyJoined  = "already_joined"
	ErrCodeBadRequest     = "bad_request"
	ErrCodeInvalidMessage = "invalid_message"
)

var (
	ErrValidation        = coreError(ErrCodeValidation, "Username and room are required!")
	ErrDuplicateUsername = coreError(ErrCodeUsernameTaken, "Username is in use!")
	ErrProfanity         = coreError(ErrCodeProfanity, "Profanity is not allowed")
	ErrNotJoined         = coreError(ErrCodeNotFound, "Join a room first")
	ErrAlreadyJoined     = coreError(ErrCodeAlreadyJoined, "Already joined a room")
	ErrBadRequest        = coreError(ErrCodeBadRequest, "Bad request")
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

// Is matches any CoreError carrying the same code.
func (e *CoreError) Is(target error) bool {
	var other *CoreError
	if !errors.As(target, &other) {
		return false
	}
	return other.Code == e.Code
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}

// AsCoreError extracts the CoreError from err, falling back to a bad_request
// error that carries err's text.
func AsCoreError(err error) *CoreError {
	if err == nil {
		return nil
	}
	var ce *CoreError
	if errors.As(err, &ce) {
		return ce
	}
	return coreError(ErrCodeBadRequest, err.Error())
}
