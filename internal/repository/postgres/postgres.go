package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"rentaldesk-backend/internal/repository"

	_ "github.com/lib/pq"
)

// dbtx is the subset of database/sql shared by *sql.DB and *sql.Tx, so every
// repository can run either directly or inside a transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db    *sql.DB
	repos repository.Repos
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:    db,
		repos: newRepos(db),
	}
}

func newRepos(run dbtx) repository.Repos {
	return repository.Repos{
		Users:     NewUserRepository(run),
		Clients:   NewClientRepository(run),
		Providers: NewProviderRepository(run),
		Products:  NewProductRepository(run),
		Rents:     NewRentRepository(run),
	}
}

func (s *Store) Repos() repository.Repos {
	return s.repos
}

// RunAtomic executes fn with repositories bound to one transaction. Rollback
// on error is handled by the deferred call; Commit makes it a no-op.
func (s *Store) RunAtomic(ctx context.Context, fn func(r repository.Repos) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(newRepos(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
