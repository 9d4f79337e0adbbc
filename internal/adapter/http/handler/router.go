package handler

import (
	"dare-escrow/config"
	"dare-escrow/internal/adapter/http/middleware"
	"dare-escrow/internal/core/ports"
	"dare-escrow/internal/sweeper"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	EscrowSvc      ports.EscrowService
	WalletSvc      ports.WalletService
	TokenSvc       ports.TokenService
	AccountRepo    ports.AccountRepository
	Sweeper        *sweeper.Sweeper
	HealthCheckers []ports.HealthChecker
	OperatorCfg    config.OperatorConfig
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// API v1 routes
	v1 := r.Group("/api/v1")

	// --- Account-authenticated routes ---
	identity := middleware.Identity(deps.AccountRepo, deps.Logger)
	challengeHandler := NewChallengeHandler(deps.EscrowSvc)
	walletHandler := NewWalletHandler(deps.WalletSvc)

	challenges := v1.Group("/challenges", identity)
	{
		challenges.POST("", challengeHandler.Create)
		challenges.GET("/:id", challengeHandler.Get)
		challenges.POST("/:id/join", challengeHandler.Join)
		challenges.POST("/:id/proof", challengeHandler.SubmitProof)
		challenges.POST("/:id/verify", challengeHandler.Verify)
		challenges.POST("/:id/ignore", challengeHandler.Ignore)
	}

	wallet := v1.Group("/wallet", identity)
	{
		wallet.GET("/balance", walletHandler.GetBalance)
		wallet.GET("/entries", walletHandler.ListEntries)
		wallet.POST("/transfer", walletHandler.Transfer)
		wallet.POST("/deposit", walletHandler.Deposit)
		wallet.POST("/withdraw", walletHandler.Withdraw)
	}

	// --- Operator surface ---
	operatorHandler := NewOperatorHandler(deps.TokenSvc, deps.EscrowSvc, deps.Sweeper, deps.OperatorCfg)
	operatorAuth := middleware.OperatorAuth(deps.TokenSvc, deps.Logger)

	ops := v1.Group("/ops")
	{
		ops.POST("/token", operatorHandler.IssueToken)
		ops.GET("/quarantined", operatorAuth, operatorHandler.ListQuarantined)
		ops.POST("/challenges/:id/reconcile", operatorAuth, operatorHandler.Reconcile)
		ops.POST("/sweep", operatorAuth, operatorHandler.TriggerSweep)
	}

	return r
}
