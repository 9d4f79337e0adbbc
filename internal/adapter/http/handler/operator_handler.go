package handler

import (
	"crypto/subtle"
	"net/http"

	"dare-escrow/config"
	"dare-escrow/internal/adapter/http/dto"
	"dare-escrow/internal/core/ports"
	"dare-escrow/internal/sweeper"
	"dare-escrow/pkg/apperror"
	"dare-escrow/pkg/response"

	"github.com/gin-gonic/gin"
)

// OperatorHandler handles the operator surface: token issuance, quarantine
// inspection, reconciliation and manual sweeps.
type OperatorHandler struct {
	tokenSvc  ports.TokenService
	escrowSvc ports.EscrowService
	sweep     *sweeper.Sweeper
	cfg       config.OperatorConfig
}

// NewOperatorHandler creates a new OperatorHandler.
func NewOperatorHandler(tokenSvc ports.TokenService, escrowSvc ports.EscrowService, sweep *sweeper.Sweeper, cfg config.OperatorConfig) *OperatorHandler {
	return &OperatorHandler{tokenSvc: tokenSvc, escrowSvc: escrowSvc, sweep: sweep, cfg: cfg}
}

// IssueToken handles POST /ops/token. Issuance is gated by the shared
// provisioning secret; everything else on the surface requires the token.
func (h *OperatorHandler) IssueToken(c *gin.Context) {
	var req dto.OperatorTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Secret), []byte(h.cfg.TokenSecret)) != 1 {
		response.Error(c, apperror.ErrInvalidOperatorToken())
		return
	}

	token, expiresAt, err := h.tokenSvc.Generate(req.Operator)
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}

	response.OK(c, dto.OperatorTokenResponse{Token: token, ExpiresAt: expiresAt})
}

// ListQuarantined handles GET /ops/quarantined.
func (h *OperatorHandler) ListQuarantined(c *gin.Context) {
	stuck, err := h.sweep.ListQuarantined(c.Request.Context())
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}

	out := make([]dto.ChallengeResponse, 0, len(stuck))
	for i := range stuck {
		out = append(out, dto.FromChallenge(&stuck[i]))
	}
	response.OK(c, out)
}

// Reconcile handles POST /ops/challenges/:id/reconcile.
func (h *OperatorHandler) Reconcile(c *gin.Context) {
	challengeID, ok := challengeParam(c)
	if !ok {
		return
	}

	if err := h.escrowSvc.ReconcileQuarantined(c.Request.Context(), challengeID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// TriggerSweep handles POST /ops/sweep, running one sweep pass immediately.
func (h *OperatorHandler) TriggerSweep(c *gin.Context) {
	stats, err := h.sweep.RunOnce(c.Request.Context())
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}

	response.OK(c, dto.SweepResponse{
		Scanned:        stats.Scanned,
		Refunded:       stats.Refunded,
		AlreadySettled: stats.AlreadySettled,
		Failed:         stats.Failed,
	})
}

// HealthCheck reports the liveness of the service's dependencies.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}
