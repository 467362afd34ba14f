package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/saradorri/fairplay/internal/domain"
	"github.com/saradorri/fairplay/internal/http/middleware"
)

// respondError writes err using its AppError status, or as an internal error
func respondError(c *gin.Context, err error) {
	appErr, ok := domain.IsAppError(err)
	if !ok {
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			appErr = domain.NewAppError(domain.ErrCodeTimeout, "Request timeout", http.StatusGatewayTimeout, err)
		case errors.Is(err, context.Canceled):
			appErr = domain.NewAppError(domain.ErrCodeTimeout, "Request cancelled", http.StatusRequestTimeout, err)
		default:
			appErr = domain.NewInternalError("", err)
		}
	}
	middleware.Abort(c, appErr)
}

// badRequest reports a body or query that could not be bound
func badRequest(c *gin.Context, err error) {
	middleware.Abort(c, domain.NewInvalidArgumentError("Invalid request body", err))
}

func authenticatedUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(middleware.UserIDKey)
	if userID == "" {
		middleware.Abort(c, domain.NewUnauthorizedError("User not authenticated"))
		return "", false
	}
	return userID, true
}

// queryLimit parses ?limit=; zero lets the use case apply its default
func queryLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		middleware.Abort(c, domain.NewValidationError("limit", "must be a non-negative integer"))
		return 0, false
	}
	return limit, true
}
