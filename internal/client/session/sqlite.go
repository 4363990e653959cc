package session

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/circuitstock/internal/client/models"
	"github.com/dmitrijs2005/circuitstock/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/circuitstock/internal/dbx"
)

// SQLiteStore keeps the session in the terminal client's local_storage table,
// so it survives restarts the way browser local storage survives reloads.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Get(ctx context.Context) (models.Session, error) {
	values, err := metadata.NewSQLiteRepository(s.db).List(ctx)
	if err != nil {
		return models.Session{}, fmt.Errorf("load session: %w", err)
	}
	return Decode(func(key string) string { return values[key] }), nil
}

// Set replaces every session key in one transaction; keys absent from s are
// deleted so a shorter session does not inherit stale values.
func (s *SQLiteStore) Set(ctx context.Context, sess models.Session) error {
	kv := Encode(sess)
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		for _, key := range models.SessionKeys {
			value, ok := kv[key]
			if !ok {
				if err := repo.Delete(ctx, key); err != nil {
					return err
				}
				continue
			}
			if err := repo.Set(ctx, key, value); err != nil {
				return err
			}
		}
		return nil
	})
}

// Clear removes only the session keys.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		for _, key := range models.SessionKeys {
			if err := repo.Delete(ctx, key); err != nil {
				return err
			}
		}
		return nil
	})
}
