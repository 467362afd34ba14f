package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/saradorri/fairplay/internal/domain"
)

type userRepository struct {
	with accessor
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var out *domain.User
	err := r.with(func(st *state) error {
		if u, ok := st.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *userRepository) GetByWalletAddress(ctx context.Context, address string) (*domain.User, error) {
	var out *domain.User
	err := r.with(func(st *state) error {
		for _, u := range st.users {
			if u.WalletAddress == address {
				u := u
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	return r.with(func(st *state) error {
		for _, u := range st.users {
			if u.WalletAddress == user.WalletAddress {
				return fmt.Errorf("user %s: %w", user.WalletAddress, domain.ErrDuplicate)
			}
		}
		if user.ID == "" {
			user.ID = uuid.NewString()
		}
		now := time.Now().UTC()
		user.CreatedAt, user.UpdatedAt = now, now
		st.users[user.ID] = *user
		st.order[user.ID] = st.next()
		return nil
	})
}

type walletRepository struct {
	with accessor
}

func walletKey(userID, currency string) string {
	return userID + "|" + currency
}

func (r *walletRepository) Get(ctx context.Context, userID, currency string) (*domain.Wallet, error) {
	var out *domain.Wallet
	err := r.with(func(st *state) error {
		if w, ok := st.wallets[walletKey(userID, currency)]; ok {
			out = &w
		}
		return nil
	})
	return out, err
}

// GetForUpdate is Get: transactions are already serialized.
func (r *walletRepository) GetForUpdate(ctx context.Context, userID, currency string) (*domain.Wallet, error) {
	return r.Get(ctx, userID, currency)
}

func (r *walletRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Wallet, error) {
	var out []*domain.Wallet
	err := r.with(func(st *state) error {
		for _, w := range st.wallets {
			if w.UserID == userID {
				w := w
				out = append(out, &w)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Currency < out[j].Currency })
	return out, err
}

func (r *walletRepository) Create(ctx context.Context, wallet *domain.Wallet) error {
	return r.with(func(st *state) error {
		key := walletKey(wallet.UserID, wallet.Currency)
		if _, ok := st.wallets[key]; ok {
			return fmt.Errorf("wallet %s: %w", key, domain.ErrDuplicate)
		}
		if wallet.AvailableBalance.IsNegative() {
			return fmt.Errorf("wallet %s: negative balance", key)
		}
		if wallet.ID == "" {
			wallet.ID = uuid.NewString()
		}
		now := time.Now().UTC()
		wallet.CreatedAt, wallet.UpdatedAt = now, now
		st.wallets[key] = *wallet
		return nil
	})
}

func (r *walletRepository) Update(ctx context.Context, wallet *domain.Wallet) error {
	return r.with(func(st *state) error {
		key := walletKey(wallet.UserID, wallet.Currency)
		if _, ok := st.wallets[key]; !ok {
			return fmt.Errorf("wallet %s not found", key)
		}
		if wallet.AvailableBalance.IsNegative() {
			return fmt.Errorf("wallet %s: negative balance", key)
		}
		wallet.UpdatedAt = time.Now().UTC()
		st.wallets[key] = *wallet
		return nil
	})
}
