package dto

// APIError is the body of every error response. RunID is set when the
// error concerns a stored feature run.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
}

// Common error codes
const (
	ErrCodeNotFound      = "not_found"
	ErrCodeBadRequest    = "bad_request"
	ErrCodeInternalError = "internal_error"
	ErrCodeValidation    = "validation_error"
	ErrCodeRunFailed     = "run_failed"
)

// NewAPIError creates a new APIError with the given code and message.
func NewAPIError(code, message string) APIError {
	return APIError{
		Code:    code,
		Message: message,
	}
}

// NotFoundError creates a not found error response.
func NotFoundError(resource string) APIError {
	return NewAPIError(ErrCodeNotFound, resource+" not found")
}

// BadRequestError creates a bad request error response.
func BadRequestError(message string) APIError {
	return NewAPIError(ErrCodeBadRequest, message)
}

// InternalError creates an internal server error response.
func InternalError() APIError {
	return NewAPIError(ErrCodeInternalError, "an internal error occurred")
}

// ValidationError creates a validation error response.
func ValidationError(message string) APIError {
	return NewAPIError(ErrCodeValidation, message)
}

// RunFailedError reports a run that was started and then marked failed.
// The run itself can still be fetched by ID.
func RunFailedError(runID string) APIError {
	return APIError{
		Code:    ErrCodeRunFailed,
		Message: "feature run " + runID + " failed",
		RunID:   runID,
	}
}
