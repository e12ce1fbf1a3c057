package errors

import (
	stderrors "errors"
)

// ErrorResponse is the JSON structure returned to clients following RFC 7807.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody contains the error details sent to clients.
type ErrorBody struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Retryable bool                   `json:"retryable"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// ToResponse converts an AppError to an ErrorResponse for JSON serialization.
// Publishers put this envelope on the wire when a stream terminates with an
// error; consumers decode it and rebuild the error with ToAppError.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{
		Error: ErrorBody{
			Code:      e.Code,
			Message:   e.Message,
			Retryable: e.Retryable,
			Details:   e.Details,
		},
	}
}

// ToAppError rebuilds an AppError from a decoded wire envelope, preserving
// the publisher's code, message, retryable flag, and details. The envelope
// carries no HTTP status, so the caller supplies one appropriate for the hop
// the envelope crossed.
func (r ErrorResponse) ToAppError(httpStatus int) *AppError {
	return &AppError{
		Code:       r.Error.Code,
		Message:    r.Error.Message,
		Retryable:  r.Error.Retryable,
		HTTPStatus: httpStatus,
		Details:    r.Error.Details,
	}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
