package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ChallengeKind distinguishes dares from truths. Both share one lifecycle;
// a truth's reward may be zero.
type ChallengeKind string

const (
	ChallengeKindDare  ChallengeKind = "DARE"
	ChallengeKindTruth ChallengeKind = "TRUTH"
)

// ChallengeStatus is the lifecycle state of a challenge. Every funds-moving
// transition out of ACTIVE is a conditional update whose precondition is that
// the stored status is still ACTIVE, so at most one settlement path wins.
type ChallengeStatus string

const (
	ChallengeStatusActive    ChallengeStatus = "ACTIVE"
	ChallengeStatusCompleted ChallengeStatus = "COMPLETED"
	ChallengeStatusExpired   ChallengeStatus = "EXPIRED"
	ChallengeStatusCancelled ChallengeStatus = "CANCELLED"
	ChallengeStatusRejected  ChallengeStatus = "REJECTED"
	// ChallengeStatusCleaningUp is the sweeper's claim state. A record stuck
	// here had its refund fail after the claim and waits for operator
	// reconciliation; it is never re-claimed automatically.
	ChallengeStatusCleaningUp ChallengeStatus = "CLEANING_UP"
)

// ParticipationStatus is the lifecycle state of one account's attempt.
type ParticipationStatus string

const (
	ParticipationStatusPending       ParticipationStatus = "PENDING"
	ParticipationStatusPendingReview ParticipationStatus = "PENDING_REVIEW"
	ParticipationStatusCompleted     ParticipationStatus = "COMPLETED"
	ParticipationStatusRejected      ParticipationStatus = "REJECTED"
)

// Challenge is a dare or truth with a reward held in escrow at creation.
type Challenge struct {
	ID        uuid.UUID       `json:"id"`
	Kind      ChallengeKind   `json:"kind"`
	CreatorID uuid.UUID       `json:"creator_id"`
	TargetID  *uuid.UUID      `json:"target_id,omitempty"` // nil = public
	Reward    int64           `json:"reward"`
	Category  string          `json:"category"`
	Title     string          `json:"title"`
	Status    ChallengeStatus `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	// ExpiresAt is derived once at creation and persisted, so deadline checks
	// never re-parse the duration spec.
	ExpiresAt time.Time `json:"expires_at"`

	Participations []Participation `json:"participations,omitempty"`
	HiddenBy       []uuid.UUID     `json:"-"` // feed opt-outs, public challenges only
}

// Participation is a sub-record of exactly one challenge.
type Participation struct {
	ChallengeID uuid.UUID           `json:"challenge_id"`
	AccountID   uuid.UUID           `json:"account_id"`
	Status      ParticipationStatus `json:"status"`
	ProofRef    *string             `json:"proof_ref,omitempty"`
	ProofNote   *string             `json:"proof_note,omitempty"`
	JoinedAt    time.Time           `json:"joined_at"`
	SubmittedAt *time.Time          `json:"submitted_at,omitempty"`
}

// IsTerminal returns true once the challenge can never change status again.
// CLEANING_UP is not terminal in the lifecycle sense but is excluded from
// settlement; it resolves only through operator reconciliation.
func (c *Challenge) IsTerminal() bool {
	switch c.Status {
	case ChallengeStatusCompleted, ChallengeStatusExpired,
		ChallengeStatusCancelled, ChallengeStatusRejected:
		return true
	}
	return false
}

// IsExpired reports whether the deadline has passed at the given instant.
func (c *Challenge) IsExpired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// IsTargetedAt reports whether the challenge was addressed to this account.
func (c *Challenge) IsTargetedAt(accountID uuid.UUID) bool {
	return c.TargetID != nil && *c.TargetID == accountID
}

// IsHiddenBy reports whether the account opted this challenge out of its feed.
func (c *Challenge) IsHiddenBy(accountID uuid.UUID) bool {
	for _, id := range c.HiddenBy {
		if id == accountID {
			return true
		}
	}
	return false
}

// ParticipationOf returns the participation for an account, or nil.
func (c *Challenge) ParticipationOf(accountID uuid.UUID) *Participation {
	for i := range c.Participations {
		if c.Participations[i].AccountID == accountID {
			return &c.Participations[i]
		}
	}
	return nil
}

// IsTerminal returns true once the participation was judged.
func (p *Participation) IsTerminal() bool {
	return p.Status == ParticipationStatusCompleted || p.Status == ParticipationStatusRejected
}

// DefaultChallengeDuration applies when no duration spec is given.
const DefaultChallengeDuration = 24 * time.Hour

// ParseChallengeDuration parses a user-supplied duration spec.
// A trailing unit letter selects minutes (m), hours (h) or days (d);
// a bare number means minutes; the empty string means 24 hours.
func ParseChallengeDuration(spec string) (time.Duration, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return DefaultChallengeDuration, nil
	}

	unit := time.Minute
	digits := spec
	switch spec[len(spec)-1] {
	case 'm', 'M':
		digits = spec[:len(spec)-1]
	case 'h', 'H':
		unit = time.Hour
		digits = spec[:len(spec)-1]
	case 'd', 'D':
		unit = 24 * time.Hour
		digits = spec[:len(spec)-1]
	}

	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid duration spec %q", spec)
	}
	return time.Duration(n) * unit, nil
}
