package anki

import (
	"encoding/base64"

	"github.com/google/uuid"
)

// NewGUID returns a fresh 10-character globally-unique note guid: the first
// 10 characters of the base64 encoding of a random UUID.
func NewGUID() string {
	id := uuid.New()
	return base64.RawURLEncoding.EncodeToString(id[:])[:10]
}
