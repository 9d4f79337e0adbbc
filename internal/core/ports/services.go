package ports

import (
	"context"
	"time"

	"dare-escrow/internal/core/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -source=services.go -destination=mocks/mocks.go -package=mocks

// --- Service Ports (Business Logic) ---

// EscrowService owns every transition that moves a reward between held and
// settled states. It is the only component permitted to mutate reward state.
type EscrowService interface {
	CreateChallenge(ctx context.Context, req CreateChallengeRequest) (*domain.Challenge, error)
	JoinChallenge(ctx context.Context, challengeID, accountID uuid.UUID) (*domain.Participation, error)
	SubmitProof(ctx context.Context, req SubmitProofRequest) error
	Verify(ctx context.Context, req VerifyRequest) error
	Ignore(ctx context.Context, challengeID, accountID uuid.UUID) error
	// ExpireChallenge claims and refunds one past-deadline challenge.
	// A lost claim is a benign no-op.
	ExpireChallenge(ctx context.Context, challengeID uuid.UUID) error
	// ReconcileQuarantined is the operator path for records stuck in
	// CLEANING_UP after a post-claim refund failure.
	ReconcileQuarantined(ctx context.Context, challengeID uuid.UUID) error
	GetChallenge(ctx context.Context, challengeID uuid.UUID) (*domain.Challenge, error)
}

// CreateChallengeRequest holds validated input for challenge creation.
type CreateChallengeRequest struct {
	CreatorID    uuid.UUID
	Kind         domain.ChallengeKind
	Title        string
	Category     string
	Reward       int64
	DurationSpec string
	TargetID     *uuid.UUID // nil = public
}

// SubmitProofRequest holds validated input for proof submission.
type SubmitProofRequest struct {
	ChallengeID uuid.UUID
	AccountID   uuid.UUID
	ProofRef    string
	Note        *string
}

// VerifyRequest holds the creator's decision on a participant's attempt.
type VerifyRequest struct {
	ChallengeID   uuid.UUID
	CreatorID     uuid.UUID
	ParticipantID uuid.UUID
	Approve       bool
}

// WalletService covers balance moves outside the challenge lifecycle.
type WalletService interface {
	Transfer(ctx context.Context, req TransferRequest) error
	// Deposit credits a verified external top-up. The gateway-side order
	// creation and signature verification happen upstream.
	Deposit(ctx context.Context, accountID uuid.UUID, amount int64, reference string) (*domain.LedgerEntry, error)
	Withdraw(ctx context.Context, accountID uuid.UUID, amount int64, reference string) (*domain.LedgerEntry, error)
	GetBalance(ctx context.Context, accountID uuid.UUID) (int64, error)
	ListEntries(ctx context.Context, accountID uuid.UUID, limit int) ([]domain.LedgerEntry, error)
}

// TransferRequest holds validated input for a peer-to-peer transfer.
type TransferRequest struct {
	SenderID        uuid.UUID
	RecipientHandle string
	Amount          int64
	Note            string
}

// NotificationSink is informed of lifecycle transitions. Delivery is
// best-effort and outside the transactional boundary; implementations must
// never fail the engine.
type NotificationSink interface {
	ChallengeReceived(ctx context.Context, challenge *domain.Challenge)
	ProofSubmitted(ctx context.Context, challenge *domain.Challenge, p *domain.Participation)
	ChallengeSettled(ctx context.Context, challenge *domain.Challenge, outcome string)
}

// Settlement outcomes reported to the notification sink.
const (
	SettlementOutcomePaidOut  = "PAID_OUT"
	SettlementOutcomeRefunded = "REFUNDED"
)

// InviteStore tracks the outstanding invitation of a targeted challenge so
// the engine can withdraw it when the target declines or the reward settles.
type InviteStore interface {
	Put(ctx context.Context, challengeID, targetID uuid.UUID, ttl time.Duration) error
	Remove(ctx context.Context, challengeID, targetID uuid.UUID) error
	Exists(ctx context.Context, challengeID, targetID uuid.UUID) (bool, error)
}

// TokenService issues and validates operator tokens for the admin surface.
type TokenService interface {
	Generate(operator string) (string, time.Time, error)
	Validate(tokenString string) (string, error) // returns operator name
}
