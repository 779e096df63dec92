package users

import "context"

// Repository persists stored credentials. Create returns
// common.ErrorAlreadyExists when the username collides with an existing
// row; GetByUsername returns common.ErrorNotFound for unknown names.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
