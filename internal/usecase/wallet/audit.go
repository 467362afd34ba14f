package wallet

import (
	"context"
	"fmt"

	"github.com/saradorri/fairplay/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Audit replays the completed ledger of one wallet and compares it with the
// stored balance
func (uc *WalletUseCase) Audit(ctx context.Context, userID, currency string) (*domain.AuditReport, error) {
	var report *domain.AuditReport

	err := uc.store.Atomic(ctx, func(repos domain.Repositories) error {
		wallet, err := repos.Wallets().GetForUpdate(ctx, userID, currency)
		if err != nil {
			return err
		}
		if wallet == nil {
			return domain.NewNotFoundError("Wallet")
		}
		entries, err := repos.Transactions().ListLedger(ctx, userID, currency)
		if err != nil {
			return err
		}
		report = replay(wallet, entries)
		return nil
	})
	if err != nil {
		return nil, uc.fail(uc.logger, "audit wallet", err)
	}

	if report.Consistent {
		uc.logger.Info("Wallet audit passed",
			zap.String("user_id", userID),
			zap.String("currency", currency),
			zap.Int("transactions", report.Transactions))
	} else {
		uc.logger.Error("Wallet audit found inconsistencies",
			zap.String("user_id", userID),
			zap.String("currency", currency),
			zap.String("balance", report.AvailableBalance.String()),
			zap.String("ledger_sum", report.LedgerSum.String()),
			zap.Int("issues", len(report.Issues)))
	}
	return report, nil
}

func replay(wallet *domain.Wallet, entries []*domain.Transaction) *domain.AuditReport {
	report := &domain.AuditReport{
		UserID:           wallet.UserID,
		Currency:         wallet.Currency,
		AvailableBalance: wallet.AvailableBalance,
		LedgerSum:        decimal.Zero,
		Transactions:     len(entries),
		Issues:           []domain.AuditIssue{},
	}

	running := decimal.Zero
	for _, e := range entries {
		if !e.BalanceBefore.Equal(running) {
			report.Issues = append(report.Issues, domain.AuditIssue{
				TransactionID: e.ID,
				Problem:       fmt.Sprintf("balance_before %s does not continue from %s", e.BalanceBefore, running),
			})
		}
		if !e.BalanceBefore.Add(e.Amount).Equal(e.BalanceAfter) {
			report.Issues = append(report.Issues, domain.AuditIssue{
				TransactionID: e.ID,
				Problem:       fmt.Sprintf("balance_before %s + amount %s != balance_after %s", e.BalanceBefore, e.Amount, e.BalanceAfter),
			})
		}
		running = e.BalanceAfter
		report.LedgerSum = report.LedgerSum.Add(e.Amount)
	}

	if !report.LedgerSum.Equal(wallet.AvailableBalance) {
		report.Issues = append(report.Issues, domain.AuditIssue{
			Problem: fmt.Sprintf("ledger sum %s != available balance %s", report.LedgerSum, wallet.AvailableBalance),
		})
	}
	report.Consistent = len(report.Issues) == 0
	return report
}
