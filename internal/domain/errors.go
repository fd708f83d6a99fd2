package domain

import (
	"errors"

	"github.com/google/uuid"
)

// Storage-level sentinels every repository implementation maps its driver
// errors onto.
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrStaleVersion = errors.New("stale version")
)

func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id has the identifier format used by every store.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
