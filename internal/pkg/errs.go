package pkg

import (
	"errors"

	"gorm.io/gorm"
)

// Error taxonomy for the engagement core. Services wrap these with %w and
// handlers match with errors.Is; raw store errors never cross the HTTP
// boundary.
var (
	ErrNotFound         = errors.New("not found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrConflict         = errors.New("conflict")
	ErrUnavailable      = errors.New("store unavailable")
)

// IsDuplicateKey reports whether err is a unique-constraint violation.
// On toggle paths a duplicate key means another caller already produced the
// target state, so the loser resolves it as success instead of an error.
// Requires gorm's TranslateError so every driver reports ErrDuplicatedKey.
func IsDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// IsNotFound reports whether err is a missing-record result from the store.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, ErrNotFound)
}
