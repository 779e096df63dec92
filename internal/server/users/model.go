package users

import "time"

// User is a stored credential record. Salt and MasterKey are written
// once at account creation and never mutated afterwards.
type User struct {
	ID        int64
	Username  string
	Salt      []byte
	MasterKey []byte
	CreatedAt time.Time
}
