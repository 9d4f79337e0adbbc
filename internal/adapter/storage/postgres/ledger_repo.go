package postgres

import (
	"context"
	"fmt"

	"dare-escrow/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// LedgerRepo implements ports.LedgerRepository. The ledger table is
// append-only; there are no update or delete operations.
type LedgerRepo struct {
	pool Pool
}

// NewLedgerRepo creates a new LedgerRepo.
func NewLedgerRepo(pool Pool) *LedgerRepo {
	return &LedgerRepo{pool: pool}
}

const ledgerColumns = `id, account_id, amount, kind, status, challenge_id, counterparty_id, description, created_at`

// Create inserts a ledger entry within a database transaction.
func (r *LedgerRepo) Create(ctx context.Context, tx pgx.Tx, e *domain.LedgerEntry) error {
	query := `INSERT INTO ledger_entries (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := tx.Exec(ctx, query,
		e.ID, e.AccountID, e.Amount, e.Kind, e.Status,
		e.ChallengeID, e.CounterpartyID, e.Description, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// ListByAccount returns an account's entries, newest first.
func (r *LedgerRepo) ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries
		WHERE account_id = $1 ORDER BY created_at DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries by account: %w", err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

// ListByChallenge returns every entry attributable to a challenge's reward.
func (r *LedgerRepo) ListByChallenge(ctx context.Context, challengeID uuid.UUID) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries
		WHERE challenge_id = $1 ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, challengeID)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries by challenge: %w", err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

// HasEntry reports whether a completed entry of the given kind exists for
// the challenge.
func (r *LedgerRepo) HasEntry(ctx context.Context, challengeID uuid.UUID, kind domain.LedgerEntryKind) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM ledger_entries
		WHERE challenge_id = $1 AND kind = $2 AND status = $3)`

	var exists bool
	err := r.pool.QueryRow(ctx, query, challengeID, kind, domain.LedgerEntryCompleted).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check ledger entry exists: %w", err)
	}
	return exists, nil
}

func collectEntries(rows pgx.Rows) ([]domain.LedgerEntry, error) {
	var result []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		if err := rows.Scan(
			&e.ID, &e.AccountID, &e.Amount, &e.Kind, &e.Status,
			&e.ChallengeID, &e.CounterpartyID, &e.Description, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}
