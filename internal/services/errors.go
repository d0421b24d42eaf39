package services

import "net/http"

// Error is a service-level failure carrying the HTTP status the
// handlers should respond with. Anything else maps to a 500.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string { return e.Message }

func ErrInvalid(msg string) error {
	return &Error{Code: http.StatusBadRequest, Message: msg}
}

func ErrNotFound(msg string) error {
	return &Error{Code: http.StatusNotFound, Message: msg}
}
