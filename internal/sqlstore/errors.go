package sqlstore

import "errors"

var (
	// ErrClosed is returned by mutations after Close.
	ErrClosed = errors.New("store is closed")

	// ErrCorrupt is returned by Open when the stored rows do not form a
	// valid store. The validation error is carried as text only.
	ErrCorrupt = errors.New("stored data is corrupt")
)
