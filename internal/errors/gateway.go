package errors

import "net/http"

// Gateway wraps a failed call to the generation endpoint.
func Gateway(err error) *Exception {
	return &Exception{
		Message:    "generation failed: " + err.Error(),
		StatusCode: http.StatusInternalServerError,
		Err:        err,
	}
}
