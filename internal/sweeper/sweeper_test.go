package sweeper

import (
	"context"
	"errors"
	"testing"
	"time"

	"dare-escrow/config"
	"dare-escrow/internal/core/domain"
	"dare-escrow/internal/core/ports/mocks"
	"dare-escrow/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupSweeper(t *testing.T) (*Sweeper, *mocks.MockEscrowService, *mocks.MockChallengeRepository, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	escrow := mocks.NewMockEscrowService(ctrl)
	challenges := mocks.NewMockChallengeRepository(ctrl)
	s := New(escrow, challenges, config.SweeperConfig{Interval: time.Minute, BatchSize: 10}, zerolog.Nop())
	return s, escrow, challenges, ctrl
}

func expiredChallenge() domain.Challenge {
	return domain.Challenge{
		ID:        uuid.New(),
		Status:    domain.ChallengeStatusActive,
		ExpiresAt: time.Now().Add(-time.Hour),
	}
}

func TestSweeper_RunOnce_MixedOutcomes(t *testing.T) {
	s, escrow, challenges, ctrl := setupSweeper(t)
	defer ctrl.Finish()

	ctx := context.Background()
	refunded := expiredChallenge()
	raced := expiredChallenge()
	broken := expiredChallenge()

	challenges.EXPECT().ListExpired(ctx, gomock.Any(), 10).
		Return([]domain.Challenge{refunded, raced, broken}, nil)
	escrow.EXPECT().ExpireChallenge(ctx, refunded.ID).Return(nil)
	// A verify beat the sweeper to this one; benign.
	escrow.EXPECT().ExpireChallenge(ctx, raced.ID).Return(apperror.ErrChallengeAlreadySettled())
	escrow.EXPECT().ExpireChallenge(ctx, broken.ID).Return(errors.New("db down"))

	stats, err := s.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Scanned)
	assert.Equal(t, 1, stats.Refunded)
	assert.Equal(t, 1, stats.AlreadySettled)
	assert.Equal(t, 1, stats.Failed)
}

func TestSweeper_RunOnce_EmptyCandidateSet(t *testing.T) {
	s, _, challenges, ctrl := setupSweeper(t)
	defer ctrl.Finish()

	ctx := context.Background()
	challenges.EXPECT().ListExpired(ctx, gomock.Any(), 10).Return(nil, nil)

	stats, err := s.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, SweepStats{}, stats)
}

func TestSweeper_RunOnce_ListError(t *testing.T) {
	s, _, challenges, ctrl := setupSweeper(t)
	defer ctrl.Finish()

	ctx := context.Background()
	challenges.EXPECT().ListExpired(ctx, gomock.Any(), 10).Return(nil, errors.New("timeout"))

	_, err := s.RunOnce(ctx)
	assert.Error(t, err)
}

func TestSweeper_Run_StopsOnContextCancel(t *testing.T) {
	s, _, challenges, ctrl := setupSweeper(t)
	defer ctrl.Finish()

	challenges.EXPECT().ListExpired(gomock.Any(), gomock.Any(), 10).Return(nil, nil).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop on cancel")
	}
}

func TestSweeper_ListQuarantined(t *testing.T) {
	s, _, challenges, ctrl := setupSweeper(t)
	defer ctrl.Finish()

	ctx := context.Background()
	stuck := expiredChallenge()
	stuck.Status = domain.ChallengeStatusCleaningUp
	challenges.EXPECT().ListByStatus(ctx, domain.ChallengeStatusCleaningUp, 10).
		Return([]domain.Challenge{stuck}, nil)

	out, err := s.ListQuarantined(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, stuck.ID, out[0].ID)
}
