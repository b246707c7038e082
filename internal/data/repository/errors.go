package repository

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("movie not found")

// APIError is a non-2xx answer from the remote API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("movie api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("movie api returned status %d: %s", e.StatusCode, e.Body)
}

// Status lets apiclient decide whether the answer is worth retrying.
func (e *APIError) Status() int {
	return e.StatusCode
}
