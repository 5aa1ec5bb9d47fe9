package errors

import "net/http"

var (
	ErrTitleRequired    = Validation("title is required")
	ErrPromptRequired   = Validation("prompt is required")
	ErrPromptIDRequired = Validation("id is required")
)

// Validation reports a missing or malformed field.
func Validation(message string) *Exception {
	return &Exception{
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}
