// Package dto defines the HTTP request and response shapes. Domain objects
// never cross the HTTP boundary directly.
package dto

import (
	"time"

	"dare-escrow/internal/core/domain"
)

// CreateChallengeRequest is the body for POST /challenges.
type CreateChallengeRequest struct {
	Kind     string  `json:"kind" binding:"required"`
	Title    string  `json:"title" binding:"required,max=200"`
	Category string  `json:"category" binding:"max=50"`
	Reward   int64   `json:"reward"`
	Duration string  `json:"duration"`  // e.g. "30m", "2h", "1d"; empty = default
	TargetID *string `json:"target_id"` // nil = public
}

// SubmitProofRequest is the body for POST /challenges/:id/proof.
type SubmitProofRequest struct {
	ProofRef string  `json:"proof_ref" binding:"required,max=500"`
	Note     *string `json:"note" binding:"omitempty,max=1000"`
}

// VerifyRequest is the body for POST /challenges/:id/verify.
type VerifyRequest struct {
	ParticipantID string `json:"participant_id" binding:"required,uuid"`
	Approve       bool   `json:"approve"`
}

// TransferRequest is the body for POST /wallet/transfer.
type TransferRequest struct {
	RecipientHandle string `json:"recipient_handle" binding:"required"`
	Amount          int64  `json:"amount" binding:"required"`
	Note            string `json:"note" binding:"max=200"`
}

// DepositRequest is the body for POST /wallet/deposit.
type DepositRequest struct {
	Amount    int64  `json:"amount" binding:"required"`
	Reference string `json:"reference" binding:"required,max=100"`
}

// WithdrawRequest is the body for POST /wallet/withdraw.
type WithdrawRequest struct {
	Amount    int64  `json:"amount" binding:"required"`
	Reference string `json:"reference" binding:"required,max=100"`
}

// OperatorTokenRequest is the body for POST /ops/token.
type OperatorTokenRequest struct {
	Operator string `json:"operator" binding:"required"`
	Secret   string `json:"secret" binding:"required"`
}

// ParticipationResponse mirrors domain.Participation.
type ParticipationResponse struct {
	AccountID   string     `json:"account_id"`
	Status      string     `json:"status"`
	ProofRef    *string    `json:"proof_ref,omitempty"`
	ProofNote   *string    `json:"proof_note,omitempty"`
	JoinedAt    time.Time  `json:"joined_at"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

// ChallengeResponse mirrors domain.Challenge.
type ChallengeResponse struct {
	ID             string                  `json:"id"`
	Kind           string                  `json:"kind"`
	CreatorID      string                  `json:"creator_id"`
	TargetID       *string                 `json:"target_id,omitempty"`
	Reward         int64                   `json:"reward"`
	Category       string                  `json:"category,omitempty"`
	Title          string                  `json:"title"`
	Status         string                  `json:"status"`
	CreatedAt      time.Time               `json:"created_at"`
	ExpiresAt      time.Time               `json:"expires_at"`
	Participations []ParticipationResponse `json:"participations,omitempty"`
}

// BalanceResponse is the body of GET /wallet/balance.
type BalanceResponse struct {
	Balance int64 `json:"balance"`
}

// LedgerEntryResponse mirrors domain.LedgerEntry.
type LedgerEntryResponse struct {
	ID             string    `json:"id"`
	Amount         int64     `json:"amount"`
	Kind           string    `json:"kind"`
	Status         string    `json:"status"`
	ChallengeID    *string   `json:"challenge_id,omitempty"`
	CounterpartyID *string   `json:"counterparty_id,omitempty"`
	Description    string    `json:"description,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// OperatorTokenResponse is the body of POST /ops/token.
type OperatorTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SweepResponse reports the outcome of a manually triggered sweep.
type SweepResponse struct {
	Scanned        int `json:"scanned"`
	Refunded       int `json:"refunded"`
	AlreadySettled int `json:"already_settled"`
	Failed         int `json:"failed"`
}

// FromChallenge converts a domain challenge to its response shape.
func FromChallenge(c *domain.Challenge) ChallengeResponse {
	resp := ChallengeResponse{
		ID:        c.ID.String(),
		Kind:      string(c.Kind),
		CreatorID: c.CreatorID.String(),
		Reward:    c.Reward,
		Category:  c.Category,
		Title:     c.Title,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt,
		ExpiresAt: c.ExpiresAt,
	}
	if c.TargetID != nil {
		id := c.TargetID.String()
		resp.TargetID = &id
	}
	for i := range c.Participations {
		resp.Participations = append(resp.Participations, FromParticipation(&c.Participations[i]))
	}
	return resp
}

// FromParticipation converts a domain participation to its response shape.
func FromParticipation(p *domain.Participation) ParticipationResponse {
	return ParticipationResponse{
		AccountID:   p.AccountID.String(),
		Status:      string(p.Status),
		ProofRef:    p.ProofRef,
		ProofNote:   p.ProofNote,
		JoinedAt:    p.JoinedAt,
		SubmittedAt: p.SubmittedAt,
	}
}

// FromLedgerEntry converts a domain ledger entry to its response shape.
func FromLedgerEntry(e *domain.LedgerEntry) LedgerEntryResponse {
	resp := LedgerEntryResponse{
		ID:          e.ID.String(),
		Amount:      e.Amount,
		Kind:        string(e.Kind),
		Status:      string(e.Status),
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
	if e.ChallengeID != nil {
		id := e.ChallengeID.String()
		resp.ChallengeID = &id
	}
	if e.CounterpartyID != nil {
		id := e.CounterpartyID.String()
		resp.CounterpartyID = &id
	}
	return resp
}
