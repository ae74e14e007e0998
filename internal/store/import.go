package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/JonMunkholm/portal/internal/core/roster"
	"github.com/JonMunkholm/portal/internal/models"
)

// BeginImport opens the transaction a roster import writes through.
func (s *Store) BeginImport(ctx context.Context) (roster.Batch, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &importBatch{tx: tx}, nil
}

// importBatch runs every statement under its own savepoint so a failing row
// leaves the surrounding transaction usable.
type importBatch struct {
	tx pgx.Tx
}

func (b *importBatch) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var found *models.User
	err := b.savepoint(ctx, func(tx pgx.Tx) error {
		u, err := findByUsername(ctx, tx, username)
		found = u
		return err
	})
	return found, err
}

func (b *importBatch) Insert(ctx context.Context, u models.User) (int64, error) {
	var id int64
	err := b.savepoint(ctx, func(tx pgx.Tx) error {
		var err error
		id, err = insertUser(ctx, tx, u)
		return err
	})
	return id, err
}

func (b *importBatch) Commit(ctx context.Context) error {
	return b.tx.Commit(ctx)
}

func (b *importBatch) Rollback(ctx context.Context) error {
	return b.tx.Rollback(ctx)
}

// savepoint runs fn in a pseudo nested transaction (SAVEPOINT) and rolls back
// to it when fn fails.
func (b *importBatch) savepoint(ctx context.Context, fn func(tx pgx.Tx) error) error {
	sp, err := b.tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("create savepoint: %w", err)
	}
	if err := fn(sp); err != nil {
		_ = sp.Rollback(ctx)
		return err
	}
	if err := sp.Commit(ctx); err != nil {
		return fmt.Errorf("release savepoint: %w", err)
	}
	return nil
}
