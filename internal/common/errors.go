package common

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrMalformedID    = errors.New("malformatted id")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
)

// NewID returns a new random record identifier.
func NewID() string {
	return uuid.NewString()
}

// ParseID reports ErrMalformedID when id is not a canonical record identifier.
func ParseID(id string) error {
	// uuid.Parse also accepts braced and urn forms, which would not match stored ids.
	if len(id) != 36 {
		return ErrMalformedID
	}
	if _, err := uuid.Parse(id); err != nil {
		return ErrMalformedID
	}
	return nil
}
