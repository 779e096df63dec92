package vault

import "context"

// Repository persists vault entries. All lookups are scoped by owner:
// an entry that exists but belongs to someone else behaves exactly like
// one that does not exist (common.ErrorNotFound).
type Repository interface {
	ListByUser(ctx context.Context, userID int64) ([]*Entry, error)
	Get(ctx context.Context, userID, id int64) (*Entry, error)
	Create(ctx context.Context, entry *Entry) (*Entry, error)
	Update(ctx context.Context, userID, id int64, encData []byte) error
	Delete(ctx context.Context, userID, id int64) error
	DeleteAllByUser(ctx context.Context, userID int64) (int64, error)
}
