package apperrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is the application-level error carried between layers.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Domain   string      `json:"domain"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s:%s] %s (%v)", e.Domain, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Domain, e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError without an underlying cause.
func New(code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Domain:   domain,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// Wrap attaches an underlying error to a new AppError.
func Wrap(err error, code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Domain:   domain,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

// MarshalJSON keeps the underlying error out of client responses while
// surfacing its text in Details when nothing more specific was set.
func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Domain  string      `json:"domain"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	details := e.Details
	if details == nil && e.Err != nil {
		details = e.Err.Error()
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Domain:  e.Domain,
		Message: e.Message,
		Details: details,
	})
}

// Is delegates to the standard errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As delegates to the standard errors.As.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// --- common constructors ---

// InternalError wraps an unexpected system error.
func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "system", "Internal server error", http.StatusInternalServerError)
}

// StorageError wraps a record persistence failure. Fatal for the request.
func StorageError(err error) *AppError {
	return Wrap(err, CodeDatabaseError, "storage", "Failed to save application", http.StatusInternalServerError)
}

// NotificationError wraps an email provider failure. Non-fatal once the
// record has been persisted; callers report it as metadata.
func NotificationError(err error) *AppError {
	return Wrap(err, CodeExternalServiceError, "notification", "Failed to send notification email", http.StatusInternalServerError)
}

// ValidationError creates a 400 with field-level details.
func ValidationError(details interface{}) *AppError {
	return New(CodeValidationFailed, "validation", "Validation failed", http.StatusBadRequest).WithDetails(details)
}

// NewBadRequestError creates a generic 400.
func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, "request", message, http.StatusBadRequest)
}

// NewFileTypeError rejects a disallowed upload content type.
func NewFileTypeError(contentType string) *AppError {
	return New(CodeFileTypeNotAllowed, "upload", "File type not allowed", http.StatusBadRequest).
		WithDetails(fmt.Sprintf("content type %q is not accepted", contentType))
}

// NewFileTooLargeError rejects an upload exceeding the configured cap.
func NewFileTooLargeError(name string, size, limit int64) *AppError {
	return New(CodeFileTooLarge, "upload", "File too large", http.StatusBadRequest).
		WithDetails(fmt.Sprintf("file %q is %d bytes, limit is %d", name, size, limit))
}
