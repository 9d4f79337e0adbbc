package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"dare-escrow/internal/core/domain"
	"dare-escrow/internal/core/ports/mocks"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func identityRouter(repo *mocks.MockAccountRepository) *gin.Engine {
	r := gin.New()
	r.GET("/probe", Identity(repo, zerolog.Nop()), func(c *gin.Context) {
		id, _ := c.Get(CtxAccountID)
		c.JSON(http.StatusOK, gin.H{"account_id": id.(uuid.UUID).String()})
	})
	return r
}

func TestIdentity_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mocks.NewMockAccountRepository(ctrl)

	accountID := uuid.New()
	repo.EXPECT().GetByID(gomock.Any(), accountID).Return(&domain.Account{ID: accountID, Handle: "maya"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(HeaderAccountID, accountID.String())
	w := httptest.NewRecorder()
	identityRouter(repo).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), accountID.String())
}

func TestIdentity_Rejections(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mocks.NewMockAccountRepository(ctrl)
	router := identityRouter(repo)

	// Missing header.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Malformed ID.
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(HeaderAccountID, "garbage")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown account.
	unknown := uuid.New()
	repo.EXPECT().GetByID(gomock.Any(), unknown).Return(nil, nil)
	req = httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(HeaderAccountID, unknown.String())
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOperatorAuth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	tokenSvc := mocks.NewMockTokenService(ctrl)

	r := gin.New()
	r.GET("/ops", OperatorAuth(tokenSvc, zerolog.Nop()), func(c *gin.Context) {
		op, _ := c.Get(CtxOperator)
		c.JSON(http.StatusOK, gin.H{"operator": op})
	})

	// No header.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ops", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Bad token.
	tokenSvc.EXPECT().Validate("bad").Return("", errors.New("expired"))
	req := httptest.NewRequest(http.MethodGet, "/ops", nil)
	req.Header.Set("Authorization", "Bearer bad")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Good token.
	tokenSvc.EXPECT().Validate("good").Return("ops-alice", nil)
	req = httptest.NewRequest(http.MethodGet, "/ops", nil)
	req.Header.Set("Authorization", "Bearer good")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ops-alice")
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(zerolog.Nop()))
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "SYS_001")
}
