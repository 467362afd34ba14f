package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/saradorri/fairplay/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TransactionRepository implements domain.TransactionRepository
type TransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create appends a ledger entry; seq is assigned by the database
func (r *TransactionRepository) Create(ctx context.Context, transaction *domain.Transaction) error {
	if transaction.ID == "" {
		transaction.ID = uuid.NewString()
	}
	if transaction.CreatedAt.IsZero() {
		transaction.CreatedAt = time.Now().UTC()
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "seq"}}}).
		Create(transaction).Error
	return translateError("create transaction", err)
}

// Update writes the mutable fields of a ledger entry. An entry that moves to
// COMPLETED takes the next seq so it sorts after everything already settled.
func (r *TransactionRepository) Update(ctx context.Context, transaction *domain.Transaction) error {
	db := r.db.WithContext(ctx)

	if transaction.Status == domain.TransactionStatusCompleted {
		var seq int64
		err := db.Raw(
			"UPDATE transactions SET seq = nextval(pg_get_serial_sequence('transactions', 'seq')) WHERE id = ? AND status <> ? RETURNING seq",
			transaction.ID, domain.TransactionStatusCompleted,
		).Scan(&seq).Error
		if err != nil {
			return translateError("resequence transaction", err)
		}
		if seq != 0 {
			transaction.Seq = seq
		}
	}

	result := db.
		Model(&domain.Transaction{}).
		Where("id = ?", transaction.ID).
		Updates(map[string]interface{}{
			"status":         transaction.Status,
			"amount":         transaction.Amount,
			"balance_before": transaction.BalanceBefore,
			"balance_after":  transaction.BalanceAfter,
			"metadata":       transaction.Metadata,
			"completed_at":   transaction.CompletedAt,
		})
	if result.Error != nil {
		return translateError("update transaction", result.Error)
	}
	if result.RowsAffected == 0 {
		return translateError("update transaction", gorm.ErrRecordNotFound)
	}
	return nil
}

// GetByID retrieves a transaction by ID
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetByIDForUpdate retrieves a transaction and locks its row
func (r *TransactionRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Transaction, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *TransactionRepository) get(q *gorm.DB, id string) (*domain.Transaction, error) {
	var transaction domain.Transaction
	found, err := first(q.Where("id = ?", id), &transaction)
	if err != nil || !found {
		return nil, err
	}
	return &transaction, nil
}

// ListByUser retrieves transactions of a user, newest first
func (r *TransactionRepository) ListByUser(ctx context.Context, userID, currency string, limit int) ([]*domain.Transaction, error) {
	var transactions []*domain.Transaction
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if currency != "" {
		q = q.Where("currency = ?", currency)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Order("seq DESC").Find(&transactions).Error
	return transactions, err
}

// ListLedger retrieves completed entries of one wallet in the order they were written
func (r *TransactionRepository) ListLedger(ctx context.Context, userID, currency string) ([]*domain.Transaction, error) {
	var transactions []*domain.Transaction
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND currency = ? AND status = ?", userID, currency, domain.TransactionStatusCompleted).
		Order("seq ASC").
		Find(&transactions).Error
	return transactions, err
}

// ListByGameSession retrieves the entries written for one bet
func (r *TransactionRepository) ListByGameSession(ctx context.Context, sessionID string) ([]*domain.Transaction, error) {
	var transactions []*domain.Transaction
	err := r.db.WithContext(ctx).
		Where("game_session_id = ?", sessionID).
		Order("seq ASC").
		Find(&transactions).Error
	return transactions, err
}

// ListPendingDeposits retrieves deposits awaiting review, oldest first
func (r *TransactionRepository) ListPendingDeposits(ctx context.Context, limit int) ([]*domain.Transaction, error) {
	var transactions []*domain.Transaction
	q := r.db.WithContext(ctx).
		Where("type = ? AND status = ?", domain.TransactionTypeDeposit, domain.TransactionStatusPending).
		Order("seq ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&transactions).Error
	return transactions, err
}
