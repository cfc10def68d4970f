package upstream

import (
	"errors"
	"fmt"
)

// ErrSessionExpired is returned when a call cannot proceed because the
// session's token is missing, locally expired, or rejected by the
// recruitment API with 401. Local detection and the remote 401 deliberately
// share this one value so callers have a single failure path for both.
var ErrSessionExpired = errors.New("session expired")

// StatusError is a non-2xx answer from the recruitment API other than 401:
// the request was processed and rejected for a business reason. Message
// carries the upstream response body verbatim.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream rejected request (%d): %s", e.Status, e.Message)
}

// NetworkError means no response arrived at all.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("upstream unreachable: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
