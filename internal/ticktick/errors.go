package ticktick

import (
	"errors"
	"fmt"
)

// ErrAuth indicates the access token was rejected. Callers treat this as
// fatal for the whole pass since every subsequent call would fail the same
// way.
var ErrAuth = errors.New("ticktick: authentication failed")

// APIError is a non-2xx response other than an auth rejection.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("ticktick: api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("ticktick: api error: status %d: %s", e.StatusCode, e.Body)
}
