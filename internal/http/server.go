package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/saradorri/fairplay/internal/config"
	"github.com/saradorri/fairplay/internal/domain"
	"github.com/saradorri/fairplay/internal/http/handlers"
	"github.com/saradorri/fairplay/internal/http/middleware"
	"github.com/saradorri/fairplay/internal/infrastructure/auth"
	"github.com/saradorri/fairplay/internal/infrastructure/logger"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Handlers groups the route handlers mounted by the server
type Handlers struct {
	Auth     *handlers.AuthHandler
	Fairness *handlers.FairnessHandler
	Bet      *handlers.BetHandler
	Wallet   *handlers.WalletHandler
	Admin    *handlers.AdminHandler
}

// Server represents the HTTP server
type Server struct {
	router       *gin.Engine
	httpServer   *http.Server
	jwtService   auth.JWTService
	limiter      domain.RateLimiter
	handlers     Handlers
	errorHandler *middleware.ErrorHandler
	logger       *logger.Logger
	adminKey     string
}

// NewServer creates a new HTTP server
func NewServer(
	cfg *config.Config,
	jwtService auth.JWTService,
	limiter domain.RateLimiter,
	h Handlers,
	errorHandler *middleware.ErrorHandler,
	log *logger.Logger,
) *Server {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(errorHandler.RequestIDMiddleware())
	router.Use(errorHandler.ErrorHandlerMiddleware())
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(errorHandler.TimeoutMiddleware(cfg.Server.RequestTimeout))

	server := &Server{
		router:       router,
		jwtService:   jwtService,
		limiter:      limiter,
		handlers:     h,
		errorHandler: errorHandler,
		logger:       log.Named("http"),
		adminKey:     cfg.Admin.APIKey,
	}
	server.httpServer = &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures all the routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/auth/connect", s.handlers.Auth.Connect)

		fairnessRoutes := v1.Group("/fairness")
		{
			fairnessRoutes.GET("/seed", s.handlers.Fairness.ActiveSeed)
			fairnessRoutes.POST("/verify", s.handlers.Fairness.Verify)
			fairnessRoutes.GET("/seeds", s.handlers.Fairness.Seeds)
		}

		protected := v1.Group("/")
		protected.Use(middleware.JWTMiddleware(s.jwtService))
		{
			protected.GET("/users/me", s.handlers.Auth.Me)

			betRoutes := protected.Group("/bets")
			{
				betRoutes.POST("", middleware.RateLimitMiddleware(s.limiter, s.logger), s.handlers.Bet.PlaceBet)
				betRoutes.GET("", s.handlers.Bet.History)
				betRoutes.GET("/:id/verification", s.handlers.Bet.Verification)
			}

			walletRoutes := protected.Group("/wallet")
			{
				walletRoutes.POST("/deposits", s.handlers.Wallet.RequestDeposit)
				walletRoutes.GET("/transactions", s.handlers.Wallet.Transactions)
			}
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.AdminMiddleware(s.adminKey))
		{
			admin.POST("/seeds/rotate", s.handlers.Admin.RotateSeed)
			admin.GET("/deposits/pending", s.handlers.Admin.PendingDeposits)
			admin.POST("/deposits/:id/approve", s.handlers.Admin.ApproveDeposit)
			admin.POST("/deposits/:id/decline", s.handlers.Admin.DeclineDeposit)
			admin.GET("/audit/:userId/:currency", s.handlers.Admin.Audit)
		}
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
