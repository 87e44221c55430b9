package storage

import "errors"

// ErrUnavailable is returned by stores whose medium cannot be used.
var ErrUnavailable = errors.New("storage: backend unavailable")
