package errors

import "fmt"

// ErrorCode identifies an application-level failure category.
type ErrorCode string

const (
	ErrInternalServer             ErrorCode = "INTERNAL_SERVER_ERROR"
	ErrInvalidInput               ErrorCode = "INVALID_INPUT"
	ErrInvalidRequestData         ErrorCode = "INVALID_REQUEST_DATA"
	ErrUnauthorized               ErrorCode = "UNAUTHORIZED"
	ErrForbidden                  ErrorCode = "FORBIDDEN"
	ErrNotFound                   ErrorCode = "NOT_FOUND"
	ErrAlreadyExists              ErrorCode = "ALREADY_EXISTS"
	ErrTokenExpired               ErrorCode = "TOKEN_EXPIRED"
	ErrInvalidTokenFormat         ErrorCode = "INVALID_TOKEN_FORMAT"
	ErrMissingAuthorizationHeader ErrorCode = "MISSING_AUTHORIZATION_HEADER"

	// Timetable feed failures. The three content-level outcomes must stay
	// distinguishable for callers (private profile vs empty vs malformed).
	ErrTimetableNotPublic ErrorCode = "TIMETABLE_NOT_PUBLIC"
	ErrTimetableEmpty     ErrorCode = "TIMETABLE_EMPTY"
	ErrTimetableParse     ErrorCode = "TIMETABLE_PARSE_FAILED"

	// Fixed schedule write path: weekday has no configured reference slots.
	ErrReferenceSlotMissing ErrorCode = "REFERENCE_SLOT_MISSING"
)

// AppError is the error type crossing service boundaries.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}
