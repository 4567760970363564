package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidRole        = errors.New("invalid role specified")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingToken       = errors.New("no token provided")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrAlreadyEnrolled    = errors.New("already enrolled in this course")
	ErrMalformedID        = errors.New("malformed stored identifier")
	ErrStorage            = errors.New("storage failure")
	ErrInvalidInput       = errors.New("invalid input")
	ErrRateLimitExceeded  = errors.New("rate limit exceeded")
)

// AppError is a custom error type that can hold an HTTP status code
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Status maps common errors to HTTP status codes
func Status(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrMissingToken) || errors.Is(err, ErrInvalidToken) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrInvalidRole) || errors.Is(err, ErrDuplicateEmail) || errors.Is(err, ErrInvalidInput) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrAlreadyEnrolled) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrRateLimitExceeded) {
		return http.StatusTooManyRequests
	}
	// ErrMalformedID and ErrStorage land here: neither is the caller's fault.
	return http.StatusInternalServerError
}
