// Package sweeper drives lazy expiration: challenges carry no timers, so a
// background loop periodically scans for past-deadline actives and hands each
// one to the escrow engine for claim and refund.
package sweeper

import (
	"context"
	"errors"
	"time"

	"dare-escrow/config"
	"dare-escrow/internal/core/domain"
	"dare-escrow/internal/core/ports"
	"dare-escrow/pkg/apperror"

	"github.com/rs/zerolog"
)

// SweepStats summarizes one pass over the expired-candidate set.
type SweepStats struct {
	Scanned        int
	Refunded       int
	AlreadySettled int
	Failed         int
}

// Sweeper scans for expired challenges on an interval. It holds no settlement
// logic of its own; the engine's claim step makes a double-started sweep
// harmless.
type Sweeper struct {
	escrow     ports.EscrowService
	challenges ports.ChallengeRepository
	interval   time.Duration
	batchSize  int
	log        zerolog.Logger
}

// New creates a Sweeper.
func New(escrow ports.EscrowService, challenges ports.ChallengeRepository, cfg config.SweeperConfig, log zerolog.Logger) *Sweeper {
	return &Sweeper{
		escrow:     escrow,
		challenges: challenges,
		interval:   cfg.Interval,
		batchSize:  cfg.BatchSize,
		log:        log,
	}
}

// Run sweeps once immediately, then on every tick until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) error {
	s.log.Info().
		Dur("interval", s.interval).
		Int("batch_size", s.batchSize).
		Msg("expiration sweeper starting")

	if _, err := s.RunOnce(ctx); err != nil {
		s.log.Error().Err(err).Msg("initial sweep failed")
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("expiration sweeper stopped")
			return ctx.Err()
		case <-ticker.C:
			stats, err := s.RunOnce(ctx)
			if err != nil {
				s.log.Error().Err(err).Msg("sweep pass failed")
				continue
			}
			if stats.Scanned > 0 {
				s.log.Info().
					Int("scanned", stats.Scanned).
					Int("refunded", stats.Refunded).
					Int("already_settled", stats.AlreadySettled).
					Int("failed", stats.Failed).
					Msg("sweep pass completed")
			}
		}
	}
}

// RunOnce performs a single pass. The candidate list may be stale by the time
// each challenge is handled; the engine's conditional claim resolves every
// race, so a candidate settled meanwhile just counts as AlreadySettled. One
// failing candidate never aborts the rest of the pass.
func (s *Sweeper) RunOnce(ctx context.Context) (SweepStats, error) {
	var stats SweepStats

	candidates, err := s.challenges.ListExpired(ctx, time.Now().UTC(), s.batchSize)
	if err != nil {
		return stats, err
	}
	stats.Scanned = len(candidates)

	for i := range candidates {
		c := &candidates[i]
		if err := s.escrow.ExpireChallenge(ctx, c.ID); err != nil {
			if isAlreadySettled(err) {
				stats.AlreadySettled++
				continue
			}
			stats.Failed++
			s.log.Error().Err(err).
				Str("challenge_id", c.ID.String()).
				Msg("failed to expire challenge")
			continue
		}
		stats.Refunded++
	}

	return stats, nil
}

// ListQuarantined surfaces challenges stuck in CLEANING_UP for the operator
// dashboard.
func (s *Sweeper) ListQuarantined(ctx context.Context) ([]domain.Challenge, error) {
	return s.challenges.ListByStatus(ctx, domain.ChallengeStatusCleaningUp, s.batchSize)
}

func isAlreadySettled(err error) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr) && appErr.Code == "CHL_007"
}
