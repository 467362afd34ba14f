package bet

import (
	"context"
	"time"

	"github.com/saradorri/fairplay/internal/domain"
	"github.com/saradorri/fairplay/internal/fairness"
	"github.com/shopspring/decimal"
)

// settle runs one all-or-nothing settlement attempt
func (uc *BetUseCase) settle(ctx context.Context, req domain.PlaceBetRequest) (*domain.BetResult, error) {
	var result *domain.BetResult

	err := uc.store.Atomic(ctx, func(repos domain.Repositories) error {
		wallet, err := repos.Wallets().GetForUpdate(ctx, req.UserID, req.Currency)
		if err != nil {
			return err
		}
		if wallet == nil {
			return domain.NewNotFoundError("Wallet")
		}
		if wallet.AvailableBalance.LessThan(req.Amount) {
			return domain.NewInsufficientFundsError(wallet.AvailableBalance, req.Amount)
		}

		seed, err := repos.ServerSeeds().GetActiveForShare(ctx)
		if err != nil {
			return err
		}
		if seed == nil {
			return errNoActiveSeed
		}

		nonce, err := uc.seeds.NextNonce(ctx, repos, req.UserID, seed.ID)
		if err != nil {
			return err
		}

		roll, err := fairness.CalculateOutcome(seed.SeedValue, req.ClientSeed, nonce)
		if err != nil {
			return toAppError(err)
		}
		evaluation := req.Spec.Evaluate(roll.Outcome)
		winAmount := evaluation.Payout(req.Amount)
		// sub-1x payouts on dust bets can round to zero
		won := winAmount.IsPositive()
		now := time.Now().UTC()

		session := &domain.GameSession{
			UserID:       req.UserID,
			ServerSeedID: seed.ID,
			ClientSeed:   req.ClientSeed,
			Nonce:        nonce,
			Game:         string(req.Spec.Game()),
			BetAmount:    req.Amount,
			Currency:     req.Currency,
			Outcome:      roll.Outcome,
			Multiplier:   evaluation.Multiplier,
			WinAmount:    winAmount,
			Status:       domain.GameSessionPending,
			GameData: domain.JSONB{
				"params": req.Spec.Params(),
				"detail": evaluation.Detail,
				"hex":    roll.Hex,
			},
			CreatedAt: now,
		}
		if err := repos.GameSessions().Create(ctx, session); err != nil {
			return err
		}

		ledger := newLedgerWriter(repos.Transactions(), session, wallet.AvailableBalance, now)
		if err := ledger.write(ctx, domain.TransactionTypeWager, req.Amount.Neg()); err != nil {
			return err
		}
		if won {
			err = ledger.write(ctx, domain.TransactionTypeWin, winAmount)
		} else {
			err = ledger.write(ctx, domain.TransactionTypeLoss, decimal.Zero)
		}
		if err != nil {
			return err
		}

		session.Status = domain.GameSessionLost
		if won {
			session.Status = domain.GameSessionWon
		}
		session.CompletedAt = &now
		if err := repos.GameSessions().UpdateStatus(ctx, session.ID, session.Status, now); err != nil {
			return err
		}

		wallet.AvailableBalance = ledger.balance
		if err := repos.Wallets().Update(ctx, wallet); err != nil {
			return err
		}

		event := domain.NewOutboxEvent(domain.EventTypeBetSettled, domain.JSONB{
			"session_id":     session.ID,
			"user_id":        session.UserID,
			"game":           session.Game,
			"currency":       session.Currency,
			"bet_amount":     session.BetAmount.String(),
			"win_amount":     winAmount.String(),
			"outcome":        fairness.FormatOutcome(roll.Outcome),
			"nonce":          nonce,
			"server_seed_id": seed.ID,
			"won":            won,
			"balance":        ledger.balance.String(),
		})
		if err := repos.Outbox().Save(ctx, event); err != nil {
			return err
		}

		result = &domain.BetResult{
			Session:      session,
			Outcome:      roll.Outcome,
			Won:          won,
			WinAmount:    winAmount,
			Transactions: ledger.entries,
			Balance:      ledger.balance,
			ServerSeed:   seed.Public(),
			Detail:       domain.JSONB(evaluation.Detail),
		}
		return nil
	})
	return result, err
}

// ledgerWriter appends completed entries for one session and tracks the running balance
type ledgerWriter struct {
	repo    domain.TransactionRepository
	session *domain.GameSession
	balance decimal.Decimal
	at      time.Time
	entries []*domain.Transaction
}

func newLedgerWriter(repo domain.TransactionRepository, session *domain.GameSession, balance decimal.Decimal, at time.Time) *ledgerWriter {
	return &ledgerWriter{repo: repo, session: session, balance: balance, at: at}
}

func (w *ledgerWriter) write(ctx context.Context, kind domain.TransactionType, amount decimal.Decimal) error {
	sessionID := w.session.ID
	completedAt := w.at
	entry := &domain.Transaction{
		UserID:        w.session.UserID,
		Type:          kind,
		Currency:      w.session.Currency,
		Amount:        amount,
		BalanceBefore: w.balance,
		BalanceAfter:  w.balance.Add(amount),
		Status:        domain.TransactionStatusCompleted,
		GameSessionID: &sessionID,
		Metadata: domain.JSONB{
			"game":  w.session.Game,
			"nonce": w.session.Nonce,
		},
		CreatedAt:   w.at,
		CompletedAt: &completedAt,
	}
	if err := w.repo.Create(ctx, entry); err != nil {
		return err
	}
	w.balance = entry.BalanceAfter
	w.entries = append(w.entries, entry)
	return nil
}
