package dto

import "time"

// ErrorResponse is the JSON error body returned by every non-2xx response.
//
// Fields:
//   - Message: human-readable description of what failed. Serialized under
//     the "detail" key, the field name error bodies of this API are keyed
//     by across all failure classes.
//   - ErrorDetails: underlying error text, when one exists.
//   - Timestamp: moment the error response was built.
//
// The same shape is used for 400, 404, 500 and 501 so clients can always
// read a "detail" field regardless of the failure class.
//
// swagger:model ErrorResponse
type ErrorResponse struct {
	Message      string    `json:"detail" example:"symbol not found"`
	ErrorDetails string    `json:"error,omitempty" example:"no data available for symbol 'ZZZZ'"`
	Timestamp    time.Time `json:"timestamp"`
}

// Error implements the error interface so an ErrorResponse can travel as a
// plain error value when needed.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails != "" {
		return e.Message + ": " + e.ErrorDetails
	}
	return e.Message
}

// NewErrorResponse builds an ErrorResponse from a message and an optional
// causing error.
func NewErrorResponse(message string, err error) ErrorResponse {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return ErrorResponse{
		Message:      message,
		ErrorDetails: details,
		Timestamp:    time.Now(),
	}
}
