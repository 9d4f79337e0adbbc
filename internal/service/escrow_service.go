package service

import (
	"context"
	"fmt"
	"time"

	"dare-escrow/internal/core/domain"
	"dare-escrow/internal/core/ports"
	"dare-escrow/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// EscrowServiceImpl implements ports.EscrowService. It owns every transition
// that moves a reward between held and settled states. All three settlement
// paths (approve, targeted ignore, expire) funnel through the same
// conditional status update, so at most one of them ever moves the funds.
type EscrowServiceImpl struct {
	challengeRepo ports.ChallengeRepository
	accountRepo   ports.AccountRepository
	ledgerRepo    ports.LedgerRepository
	transactor    ports.DBTransactor
	invites       ports.InviteStore
	notifier      ports.NotificationSink
	log           zerolog.Logger
}

// NewEscrowService creates a new EscrowServiceImpl.
func NewEscrowService(
	challengeRepo ports.ChallengeRepository,
	accountRepo ports.AccountRepository,
	ledgerRepo ports.LedgerRepository,
	transactor ports.DBTransactor,
	invites ports.InviteStore,
	notifier ports.NotificationSink,
	log zerolog.Logger,
) *EscrowServiceImpl {
	return &EscrowServiceImpl{
		challengeRepo: challengeRepo,
		accountRepo:   accountRepo,
		ledgerRepo:    ledgerRepo,
		transactor:    transactor,
		invites:       invites,
		notifier:      notifier,
		log:           log,
	}
}

// CreateChallenge escrows the reward and creates the challenge as one unit:
// balance check, debit, hold entry and challenge row commit together or not
// at all.
func (s *EscrowServiceImpl) CreateChallenge(ctx context.Context, req ports.CreateChallengeRequest) (*domain.Challenge, error) {
	if req.Reward < 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	if req.Kind != domain.ChallengeKindDare && req.Kind != domain.ChallengeKindTruth {
		return nil, apperror.Validation("unknown challenge kind")
	}
	if req.TargetID != nil && *req.TargetID == req.CreatorID {
		return nil, apperror.Validation("cannot target your own challenge at yourself")
	}

	lifetime, err := domain.ParseChallengeDuration(req.DurationSpec)
	if err != nil {
		return nil, apperror.ErrInvalidDuration(req.DurationSpec)
	}

	if req.TargetID != nil {
		target, err := s.accountRepo.GetByID(ctx, *req.TargetID)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("lookup target: %w", err))
		}
		if target == nil {
			return nil, apperror.ErrNotFound("target account")
		}
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	creator, err := s.accountRepo.GetByIDForUpdate(ctx, dbTx, req.CreatorID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock creator account: %w", err))
	}
	if creator == nil {
		return nil, apperror.ErrNotFound("creator account")
	}

	if creator.Balance < req.Reward {
		return nil, apperror.ErrInsufficientFunds()
	}

	now := time.Now().UTC()
	challenge := &domain.Challenge{
		ID:        uuid.New(),
		Kind:      req.Kind,
		CreatorID: req.CreatorID,
		TargetID:  req.TargetID,
		Reward:    req.Reward,
		Category:  req.Category,
		Title:     req.Title,
		Status:    domain.ChallengeStatusActive,
		CreatedAt: now,
		ExpiresAt: now.Add(lifetime),
	}

	if req.Reward > 0 {
		if err := s.accountRepo.UpdateBalance(ctx, dbTx, creator.ID, creator.Balance-req.Reward); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("debit creator: %w", err))
		}
	}

	if err := s.challengeRepo.Create(ctx, dbTx, challenge); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create challenge: %w", err))
	}

	if req.Reward > 0 {
		entry := &domain.LedgerEntry{
			ID:          uuid.New(),
			AccountID:   creator.ID,
			Amount:      -req.Reward,
			Kind:        domain.LedgerEntryEscrowHold,
			Status:      domain.LedgerEntryCompleted,
			ChallengeID: &challenge.ID,
			Description: fmt.Sprintf("Escrow hold for %q", challenge.Title),
			CreatedAt:   now,
		}
		if err := s.ledgerRepo.Create(ctx, dbTx, entry); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("write hold entry: %w", err))
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	// Post-commit: outstanding invitation and notification are best-effort.
	if challenge.TargetID != nil {
		if err := s.invites.Put(ctx, challenge.ID, *challenge.TargetID, lifetime); err != nil {
			s.log.Warn().Err(err).Str("challenge_id", challenge.ID.String()).Msg("failed to record invitation")
		}
		s.notifier.ChallengeReceived(ctx, challenge)
	}

	s.log.Info().
		Str("challenge_id", challenge.ID.String()).
		Str("creator_id", creator.ID.String()).
		Int64("reward", req.Reward).
		Time("expires_at", challenge.ExpiresAt).
		Msg("challenge created, reward escrowed")

	return challenge, nil
}

// JoinChallenge adds a pending participation for a non-creator account.
func (s *EscrowServiceImpl) JoinChallenge(ctx context.Context, challengeID, accountID uuid.UUID) (*domain.Participation, error) {
	challenge, err := s.loadChallenge(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if challenge.Status != domain.ChallengeStatusActive || challenge.IsExpired(now) {
		return nil, apperror.ErrChallengeNotActive()
	}
	if challenge.CreatorID == accountID {
		return nil, apperror.ErrSelfJoinNotAllowed()
	}
	if challenge.ParticipationOf(accountID) != nil {
		return nil, apperror.ErrAlreadyJoined()
	}

	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lookup account: %w", err))
	}
	if account == nil {
		return nil, apperror.ErrNotFound("account")
	}

	p := &domain.Participation{
		ChallengeID: challengeID,
		AccountID:   accountID,
		Status:      domain.ParticipationStatusPending,
		JoinedAt:    now,
	}
	if err := s.challengeRepo.AddParticipation(ctx, p); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("add participation: %w", err))
	}

	s.log.Info().
		Str("challenge_id", challengeID.String()).
		Str("account_id", accountID.String()).
		Msg("account joined challenge")

	return p, nil
}

// SubmitProof moves a participation to PENDING_REVIEW with the proof attached.
func (s *EscrowServiceImpl) SubmitProof(ctx context.Context, req ports.SubmitProofRequest) error {
	challenge, err := s.loadChallenge(ctx, req.ChallengeID)
	if err != nil {
		return err
	}

	p := challenge.ParticipationOf(req.AccountID)
	if p == nil {
		return apperror.ErrNotAParticipant()
	}
	if p.IsTerminal() {
		return apperror.Validation("participation was already judged")
	}
	if req.ProofRef == "" {
		return apperror.Validation("proof reference is required")
	}

	now := time.Now().UTC()
	if err := s.challengeRepo.RecordProof(ctx, req.ChallengeID, req.AccountID, req.ProofRef, req.Note, now); err != nil {
		return apperror.InternalError(fmt.Errorf("record proof: %w", err))
	}

	p.Status = domain.ParticipationStatusPendingReview
	p.ProofRef = &req.ProofRef
	p.ProofNote = req.Note
	p.SubmittedAt = &now
	s.notifier.ProofSubmitted(ctx, challenge, p)

	s.log.Info().
		Str("challenge_id", req.ChallengeID.String()).
		Str("account_id", req.AccountID.String()).
		Msg("proof submitted for review")

	return nil
}

// Verify applies the creator's decision. Approval is the terminal payout
// path: it pays the participant the full reward and completes the challenge.
// Rejection only closes the participation; the challenge stays active for
// other participants or eventual expiry.
func (s *EscrowServiceImpl) Verify(ctx context.Context, req ports.VerifyRequest) error {
	challenge, err := s.loadChallenge(ctx, req.ChallengeID)
	if err != nil {
		return err
	}
	if challenge.CreatorID != req.CreatorID {
		return apperror.ErrNotAuthorized()
	}

	p := challenge.ParticipationOf(req.ParticipantID)
	if p == nil || p.IsTerminal() {
		return apperror.ErrParticipantNotFound()
	}

	if challenge.Status != domain.ChallengeStatusActive {
		return apperror.ErrChallengeAlreadySettled()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if !req.Approve {
		if err := s.challengeRepo.UpdateParticipationStatus(ctx, dbTx, req.ChallengeID, req.ParticipantID, domain.ParticipationStatusRejected); err != nil {
			return apperror.InternalError(fmt.Errorf("reject participation: %w", err))
		}
		if err := dbTx.Commit(ctx); err != nil {
			return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
		}

		s.log.Info().
			Str("challenge_id", req.ChallengeID.String()).
			Str("participant_id", req.ParticipantID.String()).
			Msg("participation rejected, challenge stays active")
		return nil
	}

	// The conditional update is the authoritative settlement guard; the
	// status read above was only a fast path.
	won, err := s.challengeRepo.UpdateStatusIf(ctx, dbTx, req.ChallengeID, domain.ChallengeStatusActive, domain.ChallengeStatusCompleted)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("complete challenge: %w", err))
	}
	if !won {
		return apperror.ErrChallengeAlreadySettled()
	}

	if challenge.Reward > 0 {
		winner, err := s.accountRepo.GetByIDForUpdate(ctx, dbTx, req.ParticipantID)
		if err != nil {
			return apperror.InternalError(fmt.Errorf("lock winner account: %w", err))
		}
		if winner == nil {
			return apperror.ErrNotFound("participant account")
		}
		if err := s.accountRepo.UpdateBalance(ctx, dbTx, winner.ID, winner.Balance+challenge.Reward); err != nil {
			return apperror.InternalError(fmt.Errorf("credit winner: %w", err))
		}

		entry := &domain.LedgerEntry{
			ID:             uuid.New(),
			AccountID:      req.ParticipantID,
			Amount:         challenge.Reward,
			Kind:           domain.LedgerEntryPayout,
			Status:         domain.LedgerEntryCompleted,
			ChallengeID:    &challenge.ID,
			CounterpartyID: &challenge.CreatorID,
			Description:    fmt.Sprintf("Payout for %q", challenge.Title),
			CreatedAt:      time.Now().UTC(),
		}
		if err := s.ledgerRepo.Create(ctx, dbTx, entry); err != nil {
			return apperror.InternalError(fmt.Errorf("write payout entry: %w", err))
		}
	}

	if err := s.challengeRepo.UpdateParticipationStatus(ctx, dbTx, req.ChallengeID, req.ParticipantID, domain.ParticipationStatusCompleted); err != nil {
		return apperror.InternalError(fmt.Errorf("complete participation: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.removeInvite(ctx, challenge)
	challenge.Status = domain.ChallengeStatusCompleted
	s.notifier.ChallengeSettled(ctx, challenge, ports.SettlementOutcomePaidOut)

	s.log.Info().
		Str("challenge_id", req.ChallengeID.String()).
		Str("participant_id", req.ParticipantID.String()).
		Int64("reward", challenge.Reward).
		Msg("challenge approved, reward paid out")

	return nil
}

// Ignore declines a targeted challenge (refunding the creator) or hides a
// public one from the caller's feed.
func (s *EscrowServiceImpl) Ignore(ctx context.Context, challengeID, accountID uuid.UUID) error {
	challenge, err := s.loadChallenge(ctx, challengeID)
	if err != nil {
		return err
	}

	// Public challenges: a feed opt-out, idempotent and settlement-free.
	if challenge.TargetID == nil {
		if err := s.challengeRepo.HideForAccount(ctx, challengeID, accountID); err != nil {
			return apperror.InternalError(fmt.Errorf("hide challenge: %w", err))
		}
		return nil
	}

	if *challenge.TargetID != accountID {
		return apperror.ErrNotAuthorized()
	}

	// Declining a targeted challenge is a terminal settlement path, guarded
	// by the same active-status precondition as approval and expiry.
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	won, err := s.challengeRepo.UpdateStatusIf(ctx, dbTx, challengeID, domain.ChallengeStatusActive, domain.ChallengeStatusRejected)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("reject challenge: %w", err))
	}
	if !won {
		return apperror.ErrChallengeAlreadySettled()
	}

	if err := s.refundCreator(ctx, dbTx, challenge, fmt.Sprintf("Refund for declined %q", challenge.Title)); err != nil {
		return err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.removeInvite(ctx, challenge)
	challenge.Status = domain.ChallengeStatusRejected
	s.notifier.ChallengeSettled(ctx, challenge, ports.SettlementOutcomeRefunded)

	s.log.Info().
		Str("challenge_id", challengeID.String()).
		Str("target_id", accountID.String()).
		Int64("reward", challenge.Reward).
		Msg("targeted challenge declined, creator refunded")

	return nil
}

// ExpireChallenge claims one past-deadline challenge and refunds its
// creator. Losing the claim is the benign already-settled outcome. A refund
// failure after a won claim leaves the record in CLEANING_UP on purpose:
// retrying blindly risks a double refund, so the record waits for
// ReconcileQuarantined.
func (s *EscrowServiceImpl) ExpireChallenge(ctx context.Context, challengeID uuid.UUID) error {
	challenge, err := s.loadChallenge(ctx, challengeID)
	if err != nil {
		return err
	}

	won, err := s.challengeRepo.Claim(ctx, challengeID, domain.ChallengeStatusActive, domain.ChallengeStatusCleaningUp)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("claim challenge: %w", err))
	}
	if !won {
		return apperror.ErrChallengeAlreadySettled()
	}

	if err := s.settleRefundAndArchive(ctx, challenge, true); err != nil {
		s.log.Error().Err(err).
			Str("challenge_id", challengeID.String()).
			Msg("refund failed after claim, challenge quarantined in CLEANING_UP")
		return err
	}

	s.removeInvite(ctx, challenge)
	challenge.Status = domain.ChallengeStatusExpired
	s.notifier.ChallengeSettled(ctx, challenge, ports.SettlementOutcomeRefunded)

	s.log.Info().
		Str("challenge_id", challengeID.String()).
		Str("creator_id", challenge.CreatorID.String()).
		Int64("reward", challenge.Reward).
		Msg("expired challenge refunded")

	return nil
}

// ReconcileQuarantined resolves a challenge stuck in CLEANING_UP. The ledger
// decides whether funds already moved: if a completed refund entry exists
// the record is only archived, otherwise the refund is performed now.
func (s *EscrowServiceImpl) ReconcileQuarantined(ctx context.Context, challengeID uuid.UUID) error {
	challenge, err := s.loadChallenge(ctx, challengeID)
	if err != nil {
		return err
	}
	if challenge.Status != domain.ChallengeStatusCleaningUp {
		return apperror.ErrNotQuarantined()
	}

	refunded, err := s.ledgerRepo.HasEntry(ctx, challengeID, domain.LedgerEntryRefund)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("check refund entry: %w", err))
	}

	if err := s.settleRefundAndArchive(ctx, challenge, !refunded); err != nil {
		return err
	}

	s.log.Info().
		Str("challenge_id", challengeID.String()).
		Bool("refund_performed", !refunded).
		Msg("quarantined challenge reconciled")

	return nil
}

// GetChallenge fetches a challenge with participations and hidden set.
func (s *EscrowServiceImpl) GetChallenge(ctx context.Context, challengeID uuid.UUID) (*domain.Challenge, error) {
	return s.loadChallenge(ctx, challengeID)
}

// settleRefundAndArchive credits the creator (when withRefund), writes the
// refund entry and deletes the challenge record in one transaction.
func (s *EscrowServiceImpl) settleRefundAndArchive(ctx context.Context, challenge *domain.Challenge, withRefund bool) error {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if withRefund {
		if err := s.refundCreator(ctx, dbTx, challenge, fmt.Sprintf("Refund for expired %q", challenge.Title)); err != nil {
			return err
		}
	}

	if err := s.challengeRepo.Delete(ctx, dbTx, challenge.ID); err != nil {
		return apperror.InternalError(fmt.Errorf("archive challenge: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	return nil
}

// refundCreator credits the escrowed reward back to the creator and writes
// the paired refund entry, inside the caller's transaction.
func (s *EscrowServiceImpl) refundCreator(ctx context.Context, dbTx pgx.Tx, challenge *domain.Challenge, description string) error {
	if challenge.Reward == 0 {
		return nil
	}

	creator, err := s.accountRepo.GetByIDForUpdate(ctx, dbTx, challenge.CreatorID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("lock creator account: %w", err))
	}
	if creator == nil {
		return apperror.ErrNotFound("creator account")
	}
	if err := s.accountRepo.UpdateBalance(ctx, dbTx, creator.ID, creator.Balance+challenge.Reward); err != nil {
		return apperror.InternalError(fmt.Errorf("credit creator: %w", err))
	}

	entry := &domain.LedgerEntry{
		ID:          uuid.New(),
		AccountID:   challenge.CreatorID,
		Amount:      challenge.Reward,
		Kind:        domain.LedgerEntryRefund,
		Status:      domain.LedgerEntryCompleted,
		ChallengeID: &challenge.ID,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.ledgerRepo.Create(ctx, dbTx, entry); err != nil {
		return apperror.InternalError(fmt.Errorf("write refund entry: %w", err))
	}
	return nil
}

func (s *EscrowServiceImpl) loadChallenge(ctx context.Context, id uuid.UUID) (*domain.Challenge, error) {
	challenge, err := s.challengeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get challenge: %w", err))
	}
	if challenge == nil {
		return nil, apperror.ErrNotFound("challenge")
	}
	return challenge, nil
}

func (s *EscrowServiceImpl) removeInvite(ctx context.Context, challenge *domain.Challenge) {
	if challenge.TargetID == nil {
		return
	}
	if err := s.invites.Remove(ctx, challenge.ID, *challenge.TargetID); err != nil {
		s.log.Warn().Err(err).
			Str("challenge_id", challenge.ID.String()).
			Msg("failed to withdraw invitation")
	}
}
