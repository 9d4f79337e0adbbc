package domain

import (
	"time"

	"github.com/google/uuid"
)

// LedgerEntryKind classifies a balance-affecting event.
type LedgerEntryKind string

const (
	LedgerEntryEscrowHold  LedgerEntryKind = "ESCROW_HOLD"
	LedgerEntryPayout      LedgerEntryKind = "PAYOUT"
	LedgerEntryRefund      LedgerEntryKind = "REFUND"
	LedgerEntryDeposit     LedgerEntryKind = "DEPOSIT"
	LedgerEntryWithdrawal  LedgerEntryKind = "WITHDRAWAL"
	LedgerEntryTransferIn  LedgerEntryKind = "TRANSFER_IN"
	LedgerEntryTransferOut LedgerEntryKind = "TRANSFER_OUT"
)

// LedgerEntryStatus is the settlement outcome of an entry. There is no
// long-running pending state; entries are written in the same unit of work
// as the balance mutation they record.
type LedgerEntryStatus string

const (
	LedgerEntryCompleted LedgerEntryStatus = "COMPLETED"
	LedgerEntryFailed    LedgerEntryStatus = "FAILED"
)

// LedgerEntry is an immutable record of one balance mutation. Every balance
// change performed by the engine writes exactly one paired entry.
type LedgerEntry struct {
	ID             uuid.UUID         `json:"id"`
	AccountID      uuid.UUID         `json:"account_id"`
	Amount         int64             `json:"amount"` // signed: debit < 0, credit > 0
	Kind           LedgerEntryKind   `json:"kind"`
	Status         LedgerEntryStatus `json:"status"`
	ChallengeID    *uuid.UUID        `json:"challenge_id,omitempty"`
	CounterpartyID *uuid.UUID        `json:"counterparty_id,omitempty"`
	Description    string            `json:"description"`
	CreatedAt      time.Time         `json:"created_at"`
}
