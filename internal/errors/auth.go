package errors

import "net/http"

var ErrUnauthorized = &Exception{
	Message:    "authentication required",
	StatusCode: http.StatusUnauthorized,
}

var ErrInvalidCredentials = &Exception{
	Message:    "invalid username or password",
	StatusCode: http.StatusUnauthorized,
}

var ErrUsernameTaken = &Exception{
	Message:    "username already taken",
	StatusCode: http.StatusConflict,
}
