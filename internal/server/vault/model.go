package vault

import "time"

// Entry payload bounds: at least one byte, at most 100 MiB.
const (
	EncDataMinLength = 1
	EncDataMaxLength = 100 * 1024 * 1024
)

// Entry is one encrypted blob in a user's vault. The server never
// inspects EncData; encryption and decryption happen client-side.
type Entry struct {
	ID        int64
	UserID    int64
	EncData   []byte
	CreatedAt time.Time
}
