package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/saradorri/fairplay/internal/domain"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// Store implements domain.Store on top of gorm
type Store struct {
	db *gorm.DB
	*repositories
}

// NewStore creates a gorm backed store
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db, repositories: newRepositories(db)}
}

// Atomic runs fn inside a database transaction. gorm commits when fn returns
// nil and rolls back on error or panic.
func (s *Store) Atomic(ctx context.Context, fn func(repos domain.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newRepositories(tx))
	})
}

type repositories struct {
	users        *UserRepository
	wallets      *WalletRepository
	transactions *TransactionRepository
	sessions     *GameSessionRepository
	seeds        *ServerSeedRepository
	outbox       *OutboxRepository
}

func newRepositories(db *gorm.DB) *repositories {
	return &repositories{
		users:        &UserRepository{db: db},
		wallets:      &WalletRepository{db: db},
		transactions: &TransactionRepository{db: db},
		sessions:     &GameSessionRepository{db: db},
		seeds:        &ServerSeedRepository{db: db},
		outbox:       &OutboxRepository{db: db},
	}
}

func (r *repositories) Users() domain.UserRepository               { return r.users }
func (r *repositories) Wallets() domain.WalletRepository           { return r.wallets }
func (r *repositories) Transactions() domain.TransactionRepository { return r.transactions }
func (r *repositories) GameSessions() domain.GameSessionRepository { return r.sessions }
func (r *repositories) ServerSeeds() domain.ServerSeedRepository   { return r.seeds }
func (r *repositories) Outbox() domain.OutboxRepository            { return r.outbox }

// translateError maps driver errors onto domain errors
func translateError(operation string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%s: %w", operation, domain.ErrDuplicate)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %s: %w", operation, pgErr.ConstraintName, domain.ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", operation, err)
}

// first loads one row into dest and reports a missing row as (false, nil)
func first(q *gorm.DB, dest interface{}) (bool, error) {
	result := q.First(dest)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, result.Error
	}
	return true, nil
}

var (
	_ domain.Store        = (*Store)(nil)
	_ domain.Repositories = (*repositories)(nil)
)
