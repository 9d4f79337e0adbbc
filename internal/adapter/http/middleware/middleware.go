package middleware

import (
	"net/http"
	"strings"
	"time"

	"dare-escrow/internal/core/ports"
	"dare-escrow/pkg/apperror"
	"dare-escrow/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// HeaderAccountID carries the caller's account identity. Upstream API
	// gateway authentication is assumed; this service only resolves the ID.
	HeaderAccountID = "X-Account-ID"

	// Context keys
	CtxAccountID = "account_id"
	CtxAccount   = "account"
	CtxOperator  = "operator"
)

// Identity resolves the caller's account from the X-Account-ID header and
// stores it in the request context. Requests without a valid, existing
// account are rejected.
func Identity(accountRepo ports.AccountRepository, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(HeaderAccountID)
		if raw == "" {
			response.Error(c, apperror.Validation("missing X-Account-ID header"))
			c.Abort()
			return
		}

		accountID, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, apperror.Validation("malformed X-Account-ID header"))
			c.Abort()
			return
		}

		account, err := accountRepo.GetByID(c.Request.Context(), accountID)
		if err != nil {
			log.Error().Err(err).Str("account_id", raw).Msg("failed to resolve account")
			response.Error(c, apperror.InternalError(err))
			c.Abort()
			return
		}
		if account == nil {
			response.Error(c, apperror.ErrNotFound("account"))
			c.Abort()
			return
		}

		c.Set(CtxAccountID, account.ID)
		c.Set(CtxAccount, account)
		c.Next()
	}
}

// OperatorAuth validates the bearer token on the operator surface.
func OperatorAuth(tokenSvc ports.TokenService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Error(c, apperror.ErrInvalidOperatorToken())
			c.Abort()
			return
		}

		operator, err := tokenSvc.Validate(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			log.Warn().Err(err).Msg("operator token rejected")
			response.Error(c, apperror.ErrInvalidOperatorToken())
			c.Abort()
			return
		}

		c.Set(CtxOperator, operator)
		c.Next()
	}
}

// RequestLogger creates a middleware that logs every HTTP request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Msg("http request")
	}
}

// Recovery creates a panic recovery middleware.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error_code": "SYS_001",
					"message":    "Internal server error",
				})
			}
		}()
		c.Next()
	}
}

// MaxBodySize returns middleware that limits the request body size.
// Once the limit is exceeded the reader returns an error and the
// request is rejected with 413 Payload Too Large.
func MaxBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
