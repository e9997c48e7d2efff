package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

type sqlStore struct {
	db *sqlx.DB
}

// NewSQLStore stores entries in the learner_entries table (sqlite or postgres).
func NewSQLStore(db *sqlx.DB) KeyValueStore {
	return &sqlStore{db: db}
}

func (r *sqlStore) Get(ctx context.Context, learnerID, key string) ([]byte, error) {
	var value string
	query := `SELECT value FROM learner_entries WHERE learner_id = $1 AND key = $2`

	err := r.db.GetContext(ctx, &value, query, learnerID, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}

	return []byte(value), nil
}

func (r *sqlStore) Put(ctx context.Context, learnerID, key string, value []byte) error {
	query := `INSERT INTO learner_entries (learner_id, key, value, updated_at)
	          VALUES ($1, $2, $3, $4)
	          ON CONFLICT (learner_id, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	_, err := r.db.ExecContext(ctx, query, learnerID, key, string(value), time.Now())
	return err
}
