package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/saradorri/fairplay/internal/domain"
	"github.com/saradorri/fairplay/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Context keys set by the middleware chain
const (
	RequestIDKey     = "request_id"
	UserIDKey        = "user_id"
	WalletAddressKey = "wallet_address"
	RequestIDHeader  = "X-Request-ID"
)

// ErrorHandler provides centralized error handling
type ErrorHandler struct {
	logger *logger.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *logger.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger.Named("http"),
	}
}

// ErrorHandlerMiddleware recovers panics and answers with an INTERNAL_ERROR body
func (h *ErrorHandler) ErrorHandlerMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		h.handlePanic(c, recovered)
	})
}

func (h *ErrorHandler) handlePanic(c *gin.Context, recovered interface{}) {
	h.logger.WithContext(c.Request.Context()).Error("Panic recovered",
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Any("panic", recovered),
		zap.ByteString("stack", debug.Stack()))

	Abort(c, domain.NewInternalError("Internal server error", fmt.Errorf("panic: %v", recovered)))
}

// RequestIDMiddleware adds a unique request ID to each request
func (h *ErrorHandler) RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = generateRequestID()
		}
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(logger.ContextWithRequestID(c.Request.Context(), requestID))
		c.Next()
	}
}

// TimeoutMiddleware bounds the request context. Use cases observe the
// deadline and the handler reports it as TIMEOUT.
func (h *ErrorHandler) TimeoutMiddleware(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if ctx.Err() == context.DeadlineExceeded && !c.Writer.Written() {
			h.logger.WithContext(ctx).Warn("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method))
			Abort(c, domain.NewAppError(domain.ErrCodeTimeout, "Request timeout", http.StatusGatewayTimeout, ctx.Err()))
		}
	}
}

// Abort stamps err with the request coordinates and writes it as the response
func Abort(c *gin.Context, err *domain.AppError) {
	err.RequestID = c.GetString(RequestIDKey)
	err.UserID = c.GetString(UserIDKey)
	err.Path = c.Request.URL.Path
	err.Method = c.Request.Method
	c.AbortWithStatusJSON(err.HTTPStatus, domain.NewErrorResponse(err))
}

func generateRequestID() string {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		panic(err)
	}
	return hex.EncodeToString(bytes)
}
