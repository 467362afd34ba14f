package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/saradorri/fairplay/internal/domain"
)

type transactionRepository struct {
	with accessor
}

func (r *transactionRepository) Create(ctx context.Context, transaction *domain.Transaction) error {
	return r.with(func(st *state) error {
		if transaction.ID == "" {
			transaction.ID = uuid.NewString()
		}
		if _, ok := st.transactions[transaction.ID]; ok {
			return fmt.Errorf("transaction %s: %w", transaction.ID, domain.ErrDuplicate)
		}
		if transaction.CreatedAt.IsZero() {
			transaction.CreatedAt = time.Now().UTC()
		}
		transaction.Seq = st.next()
		stored := *transaction
		stored.Metadata = transaction.Metadata.Clone()
		st.transactions[transaction.ID] = stored
		return nil
	})
}

func (r *transactionRepository) Update(ctx context.Context, transaction *domain.Transaction) error {
	return r.with(func(st *state) error {
		existing, ok := st.transactions[transaction.ID]
		if !ok {
			return fmt.Errorf("transaction %s not found", transaction.ID)
		}
		stored := *transaction
		stored.Seq = existing.Seq
		if existing.Status != domain.TransactionStatusCompleted && transaction.Status == domain.TransactionStatusCompleted {
			stored.Seq = st.next()
		}
		transaction.Seq = stored.Seq
		stored.Metadata = transaction.Metadata.Clone()
		st.transactions[transaction.ID] = stored
		return nil
	})
}

func (r *transactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	var out *domain.Transaction
	err := r.with(func(st *state) error {
		if t, ok := st.transactions[id]; ok {
			t.Metadata = t.Metadata.Clone()
			out = &t
		}
		return nil
	})
	return out, err
}

func (r *transactionRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Transaction, error) {
	return r.GetByID(ctx, id)
}

func (r *transactionRepository) collect(match func(t domain.Transaction) bool) ([]*domain.Transaction, error) {
	var out []*domain.Transaction
	err := r.with(func(st *state) error {
		for _, t := range st.transactions {
			if match(t) {
				t := t
				t.Metadata = t.Metadata.Clone()
				out = append(out, &t)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, err
}

func (r *transactionRepository) ListByUser(ctx context.Context, userID, currency string, limit int) ([]*domain.Transaction, error) {
	items, err := r.collect(func(t domain.Transaction) bool {
		return t.UserID == userID && (currency == "" || t.Currency == currency)
	})
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return truncate(items, limit), nil
}

func (r *transactionRepository) ListLedger(ctx context.Context, userID, currency string) ([]*domain.Transaction, error) {
	return r.collect(func(t domain.Transaction) bool {
		return t.UserID == userID && t.Currency == currency && t.Status == domain.TransactionStatusCompleted
	})
}

func (r *transactionRepository) ListByGameSession(ctx context.Context, sessionID string) ([]*domain.Transaction, error) {
	return r.collect(func(t domain.Transaction) bool {
		return t.GameSessionID != nil && *t.GameSessionID == sessionID
	})
}

func (r *transactionRepository) ListPendingDeposits(ctx context.Context, limit int) ([]*domain.Transaction, error) {
	items, err := r.collect(func(t domain.Transaction) bool {
		return t.Type == domain.TransactionTypeDeposit && t.Status == domain.TransactionStatusPending
	})
	return truncate(items, limit), err
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

type gameSessionRepository struct {
	with accessor
}

func (r *gameSessionRepository) Create(ctx context.Context, session *domain.GameSession) error {
	return r.with(func(st *state) error {
		for _, s := range st.sessions {
			if s.UserID == session.UserID && s.ServerSeedID == session.ServerSeedID && s.Nonce == session.Nonce {
				return fmt.Errorf("nonce %d for user %s: %w", session.Nonce, session.UserID, domain.ErrDuplicate)
			}
		}
		if session.ID == "" {
			session.ID = uuid.NewString()
		}
		if session.CreatedAt.IsZero() {
			session.CreatedAt = time.Now().UTC()
		}
		stored := *session
		stored.GameData = session.GameData.Clone()
		st.sessions[session.ID] = stored
		st.order[session.ID] = st.next()
		return nil
	})
}

func (r *gameSessionRepository) UpdateStatus(ctx context.Context, id string, status domain.GameSessionStatus, completedAt time.Time) error {
	return r.with(func(st *state) error {
		s, ok := st.sessions[id]
		if !ok {
			return fmt.Errorf("game session %s not found", id)
		}
		s.Status = status
		s.CompletedAt = &completedAt
		st.sessions[id] = s
		return nil
	})
}

func (r *gameSessionRepository) GetByID(ctx context.Context, id string) (*domain.GameSession, error) {
	var out *domain.GameSession
	err := r.with(func(st *state) error {
		if s, ok := st.sessions[id]; ok {
			s.GameData = s.GameData.Clone()
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *gameSessionRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.GameSession, error) {
	var out []*domain.GameSession
	order := make(map[string]int64)
	err := r.with(func(st *state) error {
		for id, s := range st.sessions {
			if s.UserID == userID {
				s := s
				out = append(out, &s)
				order[id] = st.order[id]
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return order[out[i].ID] > order[out[j].ID] })
	return truncate(out, limit), err
}

func (r *gameSessionRepository) NextNonce(ctx context.Context, userID, serverSeedID string) (int64, error) {
	next := int64(0)
	err := r.with(func(st *state) error {
		for _, s := range st.sessions {
			if s.UserID == userID && s.ServerSeedID == serverSeedID && s.Nonce >= next {
				next = s.Nonce + 1
			}
		}
		return nil
	})
	return next, err
}
