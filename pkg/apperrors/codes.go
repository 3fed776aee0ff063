package apperrors

// ErrorCode is a machine-readable error kind exposed to clients.
type ErrorCode string

const (
	// System failures
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"
	CodeConfigurationError   ErrorCode = "CONFIGURATION_ERROR"

	// Request failures
	CodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	CodeFileTypeNotAllowed ErrorCode = "FILE_TYPE_NOT_ALLOWED"
	CodeFileTooLarge       ErrorCode = "FILE_TOO_LARGE"
	CodeNotFound           ErrorCode = "NOT_FOUND"
)
