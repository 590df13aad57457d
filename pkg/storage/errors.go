package storage

import "errors"

// ErrNotReady is returned when the backend did not answer within the allowed
// number of connection attempts.
var ErrNotReady = errors.New("storage not ready")
