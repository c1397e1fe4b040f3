package utils

import (
	"errors"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrDuplicateEmail     = errors.New("a user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token expired")
	ErrNotFound           = errors.New("not found")
	ErrPastDate           = errors.New("cannot book a reservation in the past")
)

// StatusFor maps a service error onto an HTTP status code. Unknown errors
// are internal.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrDuplicateEmail),
		errors.Is(err, ErrPastDate):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrExpiredToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is the client-facing text for err: the sentinel prefix of a
// wrapped validation or not-found error is dropped and the first letter
// capitalised, so "validation error: guests must be between 1 and 20"
// reads "Guests must be between 1 and 20".
func PublicMessage(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{ErrValidation, ErrNotFound} {
		prefix := sentinel.Error() + ": "
		if errors.Is(err, sentinel) && strings.HasPrefix(msg, prefix) {
			msg = strings.TrimPrefix(msg, prefix)
			break
		}
	}
	r, size := utf8.DecodeRuneInString(msg)
	if r == utf8.RuneError {
		return msg
	}
	return string(unicode.ToUpper(r)) + msg[size:]
}
