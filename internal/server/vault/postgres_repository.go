package vault

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vaultkeep/vaultkeep/internal/common"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*Entry, error) {
	query :=
		`SELECT id, fk_user, enc_data, created_at FROM vault_entries
		 WHERE fk_user = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		e := &Entry{}
		if err := rows.Scan(&e.ID, &e.UserID, &e.EncData, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return entries, nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id int64) (*Entry, error) {
	query :=
		`SELECT id, fk_user, enc_data, created_at FROM vault_entries
		 WHERE fk_user = $1 AND id = $2
		 `

	e := &Entry{}
	err := r.db.QueryRowContext(ctx, query, userID, id).
		Scan(&e.ID, &e.UserID, &e.EncData, &e.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return e, nil
}

func (r *PostgresRepository) Create(ctx context.Context, entry *Entry) (*Entry, error) {
	query :=
		`INSERT INTO vault_entries (fk_user, enc_data)
		 VALUES ($1, $2)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query, entry.UserID, entry.EncData).
		Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return entry, nil
}

func (r *PostgresRepository) Update(ctx context.Context, userID, id int64, encData []byte) error {
	query :=
		`UPDATE vault_entries SET enc_data = $3
		 WHERE fk_user = $1 AND id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, userID, id, encData)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id int64) error {
	query := `DELETE FROM vault_entries WHERE fk_user = $1 AND id = $2`

	res, err := r.db.ExecContext(ctx, query, userID, id)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) DeleteAllByUser(ctx context.Context, userID int64) (int64, error) {
	query := `DELETE FROM vault_entries WHERE fk_user = $1`

	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("error performing sql request: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error reading rows affected: %w", err)
	}

	return affected, nil
}
