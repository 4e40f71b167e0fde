package activity

import "errors"

var (
	// ErrRateLimitExceeded indicates the identity's recent activity is a burst.
	ErrRateLimitExceeded = errors.New("too many requests in a short time frame")
	// ErrStorageRead indicates the store could not be read.
	ErrStorageRead = errors.New("activity storage read failed")
	// ErrStorageParse indicates the store content is malformed.
	ErrStorageParse = errors.New("activity storage is malformed")
	// ErrStorageWrite indicates the store could not be written.
	ErrStorageWrite = errors.New("activity storage write failed")
)

// IsStorageError reports whether err came from the store rather than the detector.
func IsStorageError(err error) bool {
	return errors.Is(err, ErrStorageRead) || errors.Is(err, ErrStorageParse) || errors.Is(err, ErrStorageWrite)
}
