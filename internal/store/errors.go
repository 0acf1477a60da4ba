package store

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrInvalidID = errors.New("invalid id format")
	ErrDuplicate = errors.New("duplicate key")
)

// IsDuplicateKey reports whether err is a mongo duplicate-key violation
// (unique index on user email or product title).
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDuplicate) {
		return true
	}
	return mongo.IsDuplicateKeyError(err)
}
