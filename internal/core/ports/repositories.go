package ports

import (
	"context"
	"time"

	"dare-escrow/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

//go:generate mockgen -source=repositories.go -destination=mocks/repositories.go -package=mocks

// AccountRepository defines persistence operations for accounts.
// Methods accepting pgx.Tx are used inside transaction blocks so balance
// mutations and their ledger entries commit as one unit.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByHandle(ctx context.Context, handle string) (*domain.Account, error)
	// GetByIDForUpdate locks the account row (SELECT ... FOR UPDATE).
	// Must be called within a transaction.
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Account, error)
	UpdateBalance(ctx context.Context, tx pgx.Tx, id uuid.UUID, balance int64) error
}

// ChallengeRepository defines persistence operations for challenges and
// their participation sub-records.
type ChallengeRepository interface {
	Create(ctx context.Context, tx pgx.Tx, challenge *domain.Challenge) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Challenge, error)

	// UpdateStatusIf performs the conditional status transition that
	// serializes settlement: the update applies only when the stored status
	// still equals from. Returns false when another path won the race.
	UpdateStatusIf(ctx context.Context, tx pgx.Tx, id uuid.UUID, from, to domain.ChallengeStatus) (bool, error)
	// Claim is the pool-level variant used by the sweeper outside any
	// transaction, with identical semantics.
	Claim(ctx context.Context, id uuid.UUID, from, to domain.ChallengeStatus) (bool, error)

	// ListExpired returns active challenges whose deadline is in the past.
	// The candidate set may be stale by claim time; callers must claim.
	ListExpired(ctx context.Context, now time.Time, limit int) ([]domain.Challenge, error)
	ListByStatus(ctx context.Context, status domain.ChallengeStatus, limit int) ([]domain.Challenge, error)
	Delete(ctx context.Context, tx pgx.Tx, id uuid.UUID) error

	AddParticipation(ctx context.Context, p *domain.Participation) error
	UpdateParticipationStatus(ctx context.Context, tx pgx.Tx, challengeID, accountID uuid.UUID, status domain.ParticipationStatus) error
	RecordProof(ctx context.Context, challengeID, accountID uuid.UUID, proofRef string, note *string, at time.Time) error

	// HideForAccount records a feed opt-out. Idempotent.
	HideForAccount(ctx context.Context, challengeID, accountID uuid.UUID) error
}

// LedgerRepository defines persistence for the append-only ledger.
// Entries are immutable once written.
type LedgerRepository interface {
	Create(ctx context.Context, tx pgx.Tx, entry *domain.LedgerEntry) error
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]domain.LedgerEntry, error)
	ListByChallenge(ctx context.Context, challengeID uuid.UUID) ([]domain.LedgerEntry, error)
	// HasEntry reports whether an entry of the given kind exists for the
	// challenge. Reconciliation uses it to decide whether a quarantined
	// refund already moved funds.
	HasEntry(ctx context.Context, challengeID uuid.UUID, kind domain.LedgerEntryKind) (bool, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
