package errors

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	apperrors "meetingmind/internal/app/errors"
)

// ErrorKind represents different types of API errors
type ErrorKind string

const (
	KindValidation         ErrorKind = "validation"
	KindBadRequest         ErrorKind = "bad_request"
	KindNotFound           ErrorKind = "not_found"
	KindUnauthorized       ErrorKind = "unauthorized"
	KindForbidden          ErrorKind = "forbidden"
	KindConflict           ErrorKind = "conflict"
	KindRateLimited        ErrorKind = "rate_limited"
	KindInternal           ErrorKind = "internal"
	KindServiceUnavailable ErrorKind = "service_unavailable"
)

// Machine-readable error codes carried in every error body
const (
	CodeAuthRequired        = "AUTH_REQUIRED"
	CodeForbidden           = "FORBIDDEN"
	CodeNotFound            = "NOT_FOUND"
	CodeValidation          = "VALIDATION_ERROR"
	CodeRateLimit           = "RATE_LIMIT"
	CodeServiceUnavailable  = "SERVICE_UNAVAILABLE"
	CodeAlreadyTranscribing = "ALREADY_TRANSCRIBING"
	CodeNoAudio             = "NO_AUDIO"
	CodeNoTranscript        = "NO_TRANSCRIPT"
	CodeNoSummary           = "NO_SUMMARY"
	CodeShareExpired        = "SHARE_EXPIRED"
	CodeTranscriptionError  = "TRANSCRIPTION_ERROR"
	CodeSummarizationError  = "SUMMARIZATION_ERROR"
	CodeTranslationError    = "TRANSLATION_ERROR"
	CodeUploadError         = "UPLOAD_ERROR"
	CodeExportError         = "EXPORT_ERROR"
	CodeDatabaseError       = "DATABASE_ERROR"
	CodeInternal            = "INTERNAL_ERROR"
)

// APIError is the error body returned by every endpoint:
// {"error": message, "status": http status, "code": CODE, "details": {...}}
type APIError struct {
	Kind      ErrorKind         `json:"-"`
	Message   string            `json:"error"`
	Status    int               `json:"status"`
	Code      string            `json:"code"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for the error kind
func (e *APIError) HTTPStatus() int {
	if e.Status != 0 {
		return e.Status
	}
	return statusForKind(e.Kind)
}

func statusForKind(kind ErrorKind) int {
	switch kind {
	case KindValidation, KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func newError(kind ErrorKind, code, message string) *APIError {
	return &APIError{
		Kind:    kind,
		Message: message,
		Status:  statusForKind(kind),
		Code:    code,
	}
}

// NewValidationError creates a validation error with field details
func NewValidationError(message string, fields map[string]string) *APIError {
	err := newError(KindValidation, CodeValidation, message)
	err.Details = fields
	return err
}

// NewBadRequestError creates a 400 error with a specific code such as NO_AUDIO
func NewBadRequestError(code, message string) *APIError {
	return newError(KindBadRequest, code, message)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *APIError {
	return newError(KindNotFound, CodeNotFound, fmt.Sprintf("%s not found", resource))
}

// NewAuthRequiredError creates an unauthorized error
func NewAuthRequiredError(message string) *APIError {
	return newError(KindUnauthorized, CodeAuthRequired, message)
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError(message string) *APIError {
	return newError(KindForbidden, CodeForbidden, message)
}

// NewShareExpiredError is returned for any operation on an expired share token
func NewShareExpiredError() *APIError {
	return newError(KindForbidden, CodeShareExpired, "Share link has expired")
}

// NewConflictError creates a conflict error with a specific code
func NewConflictError(code, message string) *APIError {
	return newError(KindConflict, code, message)
}

// NewRateLimitError creates a 429 error; retryAfter is reported in details
func NewRateLimitError(retryAfter time.Duration) *APIError {
	err := newError(KindRateLimited, CodeRateLimit, "Too many requests, please try again later")
	seconds := int(retryAfter.Round(time.Second).Seconds())
	if seconds < 1 {
		seconds = 1
	}
	err.Details = map[string]string{"retry_after": strconv.Itoa(seconds)}
	return err
}

// NewServiceUnavailableError creates a service unavailable error
func NewServiceUnavailableError(message string) *APIError {
	return newError(KindServiceUnavailable, CodeServiceUnavailable, message)
}

// NewProcessingError creates a 500 error for a failed provider or processing step
func NewProcessingError(code, message string) *APIError {
	return newError(KindInternal, code, message)
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *APIError {
	return newError(KindInternal, CodeInternal, message)
}

// WrapError wraps an existing error with API error context
func WrapError(err error, kind ErrorKind, code, message string) *APIError {
	if err == nil {
		return nil
	}

	apiErr := newError(kind, code, message)

	// If the original error is already an APIError, preserve details
	if origAPIErr, ok := err.(*APIError); ok {
		if origAPIErr.Details != nil {
			apiErr.Details = origAPIErr.Details
		}
	}

	return apiErr
}

// FromStore converts a repository error into an API error for the given resource
func FromStore(err error, resource string) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*APIError); ok {
		return err
	}
	if apperrors.IsNotFound(err) {
		return NewNotFoundError(resource)
	}
	if apperrors.IsConflict(err) {
		return NewConflictError(CodeValidation, fmt.Sprintf("%s already exists", resource))
	}
	return NewProcessingError(CodeDatabaseError, fmt.Sprintf("Failed to access %s", resource))
}
