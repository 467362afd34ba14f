package app

import (
	"github.com/saradorri/fairplay/internal/http/middleware"
	"github.com/saradorri/fairplay/internal/infrastructure/logger"
)

func (a *application) InitErrorHandler(log *logger.Logger) *middleware.ErrorHandler {
	return middleware.NewErrorHandler(log)
}
