package dynamo

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateKey is recorded when an entry is added under a name that is already present.
	ErrDuplicateKey = errors.New("dynamo: duplicate key")
	// ErrNilHashKey is recorded when a primary key is built without its hash (partition) key.
	ErrNilHashKey = errors.New("dynamo: hash key is nil")
	// ErrInvalidEnum is returned when a string is not one of an enumeration's literals.
	ErrInvalidEnum = errors.New("dynamo: invalid enumeration value")
	// ErrNotFound is returned by the Decode helpers when a result carries no item.
	ErrNotFound = errors.New("dynamo: no item found")
	// ErrStopPaging can be returned from a page callback to end a scan early without error.
	ErrStopPaging = errors.New("dynamo: stop paging")
)

func duplicateKeyErr(field, key string) error {
	return fmt.Errorf("%w: %s already contains %q", ErrDuplicateKey, field, key)
}

// stickyErr holds the first error recorded while building a request.
type stickyErr struct {
	err error
}

func (s *stickyErr) setError(err error) {
	if s.err == nil {
		s.err = err
	}
}

// Err returns the first error recorded while building, if any.
// Requests carrying an error are never sent or encoded.
func (s *stickyErr) Err() error {
	return s.err
}
