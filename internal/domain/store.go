package domain

//go:generate mockgen -source=store.go -destination=mocks/store_mock.go -package=mocks

import "context"

// Repositories groups the repositories bound to one store or transaction
type Repositories interface {
	Users() UserRepository
	Wallets() WalletRepository
	Transactions() TransactionRepository
	GameSessions() GameSessionRepository
	ServerSeeds() ServerSeedRepository
	Outbox() OutboxRepository
}

// Store is the persistence boundary. Atomic runs fn against repositories bound
// to a single transaction: every write made through them commits together
// when fn returns nil and none of them survive when it returns an error.
type Store interface {
	Repositories
	Atomic(ctx context.Context, fn func(repos Repositories) error) error
}

// RateLimiter counts hits per key within a fixed window
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
