package bet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/saradorri/fairplay/internal/domain"
	"github.com/saradorri/fairplay/internal/fairness"
)

const maxClientSeedLength = 64

// validate rejects requests before any lock or transaction is taken
func (uc *BetUseCase) validate(req *domain.PlaceBetRequest) error {
	if req.UserID == "" {
		return domain.NewValidationError("user_id", "is required")
	}
	if !domain.IsSupportedCurrency(req.Currency) {
		return domain.NewValidationError("currency", fmt.Sprintf("unsupported currency %q", req.Currency))
	}
	if err := uc.validateAmount(req); err != nil {
		return err
	}

	req.ClientSeed = strings.TrimSpace(req.ClientSeed)
	if req.ClientSeed == "" {
		return domain.NewValidationError("client_seed", "is required")
	}
	if len(req.ClientSeed) > maxClientSeedLength {
		return domain.NewValidationError("client_seed", fmt.Sprintf("must be at most %d characters", maxClientSeedLength))
	}

	if req.Spec == nil {
		return domain.NewValidationError("game", "is required")
	}
	if err := req.Spec.Validate(); err != nil {
		return toAppError(err)
	}
	return nil
}

func (uc *BetUseCase) validateAmount(req *domain.PlaceBetRequest) error {
	amount := req.Amount
	if !amount.IsPositive() {
		return domain.NewValidationError("amount", "must be greater than 0")
	}
	if !amount.Equal(amount.Truncate(8)) {
		return domain.NewValidationError("amount", "cannot have more than 8 decimal places")
	}
	if uc.config.MinAmount.IsPositive() && amount.LessThan(uc.config.MinAmount) {
		return domain.NewValidationError("amount", fmt.Sprintf("must be at least %s", uc.config.MinAmount.String()))
	}
	if uc.config.MaxAmount.IsPositive() && amount.GreaterThan(uc.config.MaxAmount) {
		return domain.NewValidationError("amount", fmt.Sprintf("must be at most %s", uc.config.MaxAmount.String()))
	}
	return nil
}

// toAppError maps outcome engine and game errors onto the domain taxonomy
func toAppError(err error) error {
	if errors.Is(err, fairness.ErrInvalidArgument) {
		return domain.NewInvalidArgumentError(strings.TrimPrefix(err.Error(), fairness.ErrInvalidArgument.Error()+": "), err)
	}
	return err
}
