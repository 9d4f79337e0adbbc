package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dare-escrow/config"
	"dare-escrow/internal/adapter/http/middleware"
	"dare-escrow/internal/core/domain"
	"dare-escrow/internal/core/ports"
	"dare-escrow/internal/core/ports/mocks"
	"dare-escrow/internal/sweeper"
	"dare-escrow/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type routerTestDeps struct {
	router        *gin.Engine
	escrowSvc     *mocks.MockEscrowService
	walletSvc     *mocks.MockWalletService
	tokenSvc      *mocks.MockTokenService
	accountRepo   *mocks.MockAccountRepository
	challengeRepo *mocks.MockChallengeRepository
	ctrl          *gomock.Controller
}

func setupRouter(t *testing.T) *routerTestDeps {
	ctrl := gomock.NewController(t)
	d := &routerTestDeps{
		escrowSvc:     mocks.NewMockEscrowService(ctrl),
		walletSvc:     mocks.NewMockWalletService(ctrl),
		tokenSvc:      mocks.NewMockTokenService(ctrl),
		accountRepo:   mocks.NewMockAccountRepository(ctrl),
		challengeRepo: mocks.NewMockChallengeRepository(ctrl),
		ctrl:          ctrl,
	}
	sw := sweeper.New(d.escrowSvc, d.challengeRepo, config.SweeperConfig{Interval: time.Minute, BatchSize: 10}, zerolog.Nop())
	d.router = SetupRouter(RouterDeps{
		EscrowSvc:   d.escrowSvc,
		WalletSvc:   d.walletSvc,
		TokenSvc:    d.tokenSvc,
		AccountRepo: d.accountRepo,
		Sweeper:     sw,
		OperatorCfg: config.OperatorConfig{TokenSecret: "provisioning-secret"},
		Logger:      zerolog.Nop(),
	})
	return d
}

func doJSON(router *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func asAccount(id uuid.UUID) map[string]string {
	return map[string]string{middleware.HeaderAccountID: id.String()}
}

func TestRouter_CreateChallenge(t *testing.T) {
	d := setupRouter(t)
	defer d.ctrl.Finish()

	accountID := uuid.New()
	d.accountRepo.EXPECT().GetByID(gomock.Any(), accountID).Return(&domain.Account{ID: accountID, Balance: 1000}, nil)
	d.escrowSvc.EXPECT().CreateChallenge(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, req ports.CreateChallengeRequest) (*domain.Challenge, error) {
			assert.Equal(t, accountID, req.CreatorID)
			assert.Equal(t, domain.ChallengeKindDare, req.Kind)
			assert.Equal(t, int64(500), req.Reward)
			assert.Equal(t, "2h", req.DurationSpec)
			return &domain.Challenge{
				ID: uuid.New(), Kind: req.Kind, CreatorID: accountID,
				Reward: req.Reward, Title: req.Title, Status: domain.ChallengeStatusActive,
			}, nil
		})

	w := doJSON(d.router, http.MethodPost, "/api/v1/challenges", gin.H{
		"kind":     "DARE",
		"title":    "karaoke at lunch",
		"reward":   500,
		"duration": "2h",
	}, asAccount(accountID))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ACTIVE"`)
}

func TestRouter_MissingIdentity(t *testing.T) {
	d := setupRouter(t)
	defer d.ctrl.Finish()

	w := doJSON(d.router, http.MethodPost, "/api/v1/challenges", gin.H{"kind": "DARE", "title": "x"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_UnknownAccount(t *testing.T) {
	d := setupRouter(t)
	defer d.ctrl.Finish()

	accountID := uuid.New()
	d.accountRepo.EXPECT().GetByID(gomock.Any(), accountID).Return(nil, nil)

	w := doJSON(d.router, http.MethodGet, "/api/v1/wallet/balance", nil, asAccount(accountID))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_Verify_ConflictOnSettledChallenge(t *testing.T) {
	d := setupRouter(t)
	defer d.ctrl.Finish()

	accountID := uuid.New()
	challengeID := uuid.New()
	d.accountRepo.EXPECT().GetByID(gomock.Any(), accountID).Return(&domain.Account{ID: accountID}, nil)
	d.escrowSvc.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(apperror.ErrChallengeAlreadySettled())

	w := doJSON(d.router, http.MethodPost, "/api/v1/challenges/"+challengeID.String()+"/verify", gin.H{
		"participant_id": uuid.New().String(),
		"approve":        true,
	}, asAccount(accountID))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "CHL_007")
}

func TestRouter_MalformedChallengeID(t *testing.T) {
	d := setupRouter(t)
	defer d.ctrl.Finish()

	accountID := uuid.New()
	d.accountRepo.EXPECT().GetByID(gomock.Any(), accountID).Return(&domain.Account{ID: accountID}, nil)

	w := doJSON(d.router, http.MethodPost, "/api/v1/challenges/not-a-uuid/join", nil, asAccount(accountID))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_WalletBalance(t *testing.T) {
	d := setupRouter(t)
	defer d.ctrl.Finish()

	accountID := uuid.New()
	d.accountRepo.EXPECT().GetByID(gomock.Any(), accountID).Return(&domain.Account{ID: accountID}, nil)
	d.walletSvc.EXPECT().GetBalance(gomock.Any(), accountID).Return(int64(420), nil)

	w := doJSON(d.router, http.MethodGet, "/api/v1/wallet/balance", nil, asAccount(accountID))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"balance":420`)
}

func TestRouter_OperatorToken_WrongSecret(t *testing.T) {
	d := setupRouter(t)
	defer d.ctrl.Finish()

	w := doJSON(d.router, http.MethodPost, "/api/v1/ops/token", gin.H{
		"operator": "ops-alice",
		"secret":   "wrong",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_OperatorToken_Issue(t *testing.T) {
	d := setupRouter(t)
	defer d.ctrl.Finish()

	expiresAt := time.Now().Add(time.Hour)
	d.tokenSvc.EXPECT().Generate("ops-alice").Return("signed-token", expiresAt, nil)

	w := doJSON(d.router, http.MethodPost, "/api/v1/ops/token", gin.H{
		"operator": "ops-alice",
		"secret":   "provisioning-secret",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "signed-token")
}

func TestRouter_OperatorSurface_RequiresToken(t *testing.T) {
	d := setupRouter(t)
	defer d.ctrl.Finish()

	w := doJSON(d.router, http.MethodGet, "/api/v1/ops/quarantined", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_OperatorReconcile(t *testing.T) {
	d := setupRouter(t)
	defer d.ctrl.Finish()

	challengeID := uuid.New()
	d.tokenSvc.EXPECT().Validate("good-token").Return("ops-alice", nil)
	d.escrowSvc.EXPECT().ReconcileQuarantined(gomock.Any(), challengeID).Return(nil)

	w := doJSON(d.router, http.MethodPost, "/api/v1/ops/challenges/"+challengeID.String()+"/reconcile", nil,
		map[string]string{"Authorization": "Bearer good-token"})
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRouter_OperatorSweep(t *testing.T) {
	d := setupRouter(t)
	defer d.ctrl.Finish()

	d.tokenSvc.EXPECT().Validate("good-token").Return("ops-alice", nil)
	d.challengeRepo.EXPECT().ListExpired(gomock.Any(), gomock.Any(), 10).Return([]domain.Challenge{
		{ID: uuid.New(), Status: domain.ChallengeStatusActive, ExpiresAt: time.Now().Add(-time.Hour)},
	}, nil)
	d.escrowSvc.EXPECT().ExpireChallenge(gomock.Any(), gomock.Any()).Return(nil)

	w := doJSON(d.router, http.MethodPost, "/api/v1/ops/sweep", nil,
		map[string]string{"Authorization": "Bearer good-token"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"refunded":1`)
}

func TestRouter_Health(t *testing.T) {
	d := setupRouter(t)
	defer d.ctrl.Finish()

	w := doJSON(d.router, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
