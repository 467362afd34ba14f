// Package memory is an in-process domain.Store used for tests and for running
// the API without Postgres (database.driver: memory).
//
// Atomic works on a private copy of the whole dataset and swaps it in only
// when the callback succeeds, so a failed unit of work leaves no trace.
// Transactions are serialized by a single mutex; repositories obtained from
// the Store itself must not be used inside an Atomic callback.
package memory

import (
	"context"
	"sync"

	"github.com/saradorri/fairplay/internal/domain"
)

type state struct {
	seq int64

	users        map[string]domain.User
	wallets      map[string]domain.Wallet
	transactions map[string]domain.Transaction
	sessions     map[string]domain.GameSession
	seeds        map[string]domain.ServerSeed
	outbox       map[string]domain.OutboxEvent

	// insertion order for entities without their own sequence column
	order map[string]int64
}

func newState() *state {
	return &state{
		users:        make(map[string]domain.User),
		wallets:      make(map[string]domain.Wallet),
		transactions: make(map[string]domain.Transaction),
		sessions:     make(map[string]domain.GameSession),
		seeds:        make(map[string]domain.ServerSeed),
		outbox:       make(map[string]domain.OutboxEvent),
		order:        make(map[string]int64),
	}
}

func (s *state) next() int64 {
	s.seq++
	return s.seq
}

func (s *state) clone() *state {
	c := &state{
		seq:          s.seq,
		users:        make(map[string]domain.User, len(s.users)),
		wallets:      make(map[string]domain.Wallet, len(s.wallets)),
		transactions: make(map[string]domain.Transaction, len(s.transactions)),
		sessions:     make(map[string]domain.GameSession, len(s.sessions)),
		seeds:        make(map[string]domain.ServerSeed, len(s.seeds)),
		outbox:       make(map[string]domain.OutboxEvent, len(s.outbox)),
		order:        make(map[string]int64, len(s.order)),
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.wallets {
		c.wallets[k] = v
	}
	for k, v := range s.transactions {
		c.transactions[k] = v
	}
	for k, v := range s.sessions {
		c.sessions[k] = v
	}
	for k, v := range s.seeds {
		c.seeds[k] = v
	}
	for k, v := range s.outbox {
		c.outbox[k] = v
	}
	for k, v := range s.order {
		c.order[k] = v
	}
	return c
}

// accessor runs fn against the state visible to a repository.
type accessor func(fn func(st *state) error) error

// Store implements domain.Store in memory
type Store struct {
	mu    sync.Mutex
	state *state
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{state: newState()}
}

func (s *Store) direct(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

// Atomic runs fn on a snapshot and commits it only if fn succeeds
func (s *Store) Atomic(ctx context.Context, fn func(repos domain.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	bound := func(f func(st *state) error) error { return f(work) }
	if err := fn(newRepositories(bound)); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.state = work
	return nil
}

func (s *Store) Users() domain.UserRepository     { return &userRepository{with: s.direct} }
func (s *Store) Wallets() domain.WalletRepository { return &walletRepository{with: s.direct} }
func (s *Store) Transactions() domain.TransactionRepository {
	return &transactionRepository{with: s.direct}
}
func (s *Store) GameSessions() domain.GameSessionRepository {
	return &gameSessionRepository{with: s.direct}
}
func (s *Store) ServerSeeds() domain.ServerSeedRepository {
	return &serverSeedRepository{with: s.direct}
}
func (s *Store) Outbox() domain.OutboxRepository { return &outboxRepository{with: s.direct} }

type repositories struct {
	with accessor
}

func newRepositories(with accessor) *repositories {
	return &repositories{with: with}
}

func (r *repositories) Users() domain.UserRepository     { return &userRepository{with: r.with} }
func (r *repositories) Wallets() domain.WalletRepository { return &walletRepository{with: r.with} }
func (r *repositories) Transactions() domain.TransactionRepository {
	return &transactionRepository{with: r.with}
}
func (r *repositories) GameSessions() domain.GameSessionRepository {
	return &gameSessionRepository{with: r.with}
}
func (r *repositories) ServerSeeds() domain.ServerSeedRepository {
	return &serverSeedRepository{with: r.with}
}
func (r *repositories) Outbox() domain.OutboxRepository { return &outboxRepository{with: r.with} }

var (
	_ domain.Store        = (*Store)(nil)
	_ domain.Repositories = (*repositories)(nil)
)
