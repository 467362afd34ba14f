package app

import (
	"github.com/saradorri/fairplay/internal/domain"
	"github.com/saradorri/fairplay/internal/http"
	"github.com/saradorri/fairplay/internal/http/handlers"
)

func (a *application) InitHandlers(
	users domain.UserUseCase,
	seeds domain.SeedUseCase,
	bets domain.BetUseCase,
	wallets domain.WalletUseCase,
) http.Handlers {
	return http.Handlers{
		Auth:     handlers.NewAuthHandler(users),
		Fairness: handlers.NewFairnessHandler(seeds),
		Bet:      handlers.NewBetHandler(bets),
		Wallet:   handlers.NewWalletHandler(wallets),
		Admin:    handlers.NewAdminHandler(seeds, wallets),
	}
}
