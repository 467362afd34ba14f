package app

import (
	"github.com/saradorri/fairplay/internal/infrastructure/lock"
	"github.com/saradorri/fairplay/internal/infrastructure/logger"
)

func (a *application) InitUserLockManager(log *logger.Logger) *lock.UserLockManager {
	return lock.NewUserLockManager(a.config.Bet.LockTimeout, log)
}
