package errors

import "net/http"

var ErrPromptNotFound = &Exception{
	Message:    "prompt not found",
	StatusCode: http.StatusNotFound,
}
