package session

import (
	"errors"
	"fmt"
)

// ErrNotFound signals an empty lookup result. It is an expected, routine
// outcome: callers map it to a failure exit, nothing logs or retries it.
var ErrNotFound = errors.New("no matching variable")

// InvalidKeyError reports a key that cannot be used where a valid
// environment variable identifier (or a non-empty set key) is required.
type InvalidKeyError struct {
	Key string
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("invalid variable name %q", e.Key)
}
