package repositories

import "errors"

var (
	// ErrNotFound is returned when a record addressed by id does not exist
	ErrNotFound = errors.New("record not found")
	// ErrStorage wraps every failure reported by the underlying store
	ErrStorage = errors.New("storage failure")
)

// IsNotFoundError reports whether err means the record does not exist
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
