package domain

import (
	"time"

	"github.com/google/uuid"
)

// AccountRole affects visibility in surrounding queries only, never settlement.
type AccountRole string

const (
	AccountRoleNormal AccountRole = "NORMAL"
	AccountRoleAdmin  AccountRole = "ADMIN"
)

// Account holds a user's spendable balance in smallest currency units.
// Balance is a live snapshot; the ledger is the audit trail.
type Account struct {
	ID        uuid.UUID   `json:"id"`
	Handle    string      `json:"handle"`
	Balance   int64       `json:"balance"`
	Role      AccountRole `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// IsAdmin reports whether the account carries the admin role flag.
func (a *Account) IsAdmin() bool {
	return a.Role == AccountRoleAdmin
}
