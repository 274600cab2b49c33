package drive

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound indicates the requested file does not exist.
	ErrNotFound = errors.New("file not found")
	// ErrEmptyID indicates an empty file ID was provided.
	ErrEmptyID = errors.New("file id must not be empty")
	// ErrTokenMissing indicates the OAuth token file could not be read.
	ErrTokenMissing = errors.New("google oauth token not found")
)

// MapHTTPStatus maps drive errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrEmptyID) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
