package repositories

import "errors"

// ErrNotFound is returned when a record does not exist or belongs to another
// user. The two cases are deliberately indistinguishable so lookups never
// leak the existence of other users' records.
var ErrNotFound = errors.New("record not found")

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
