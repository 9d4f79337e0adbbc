package postgres

import (
	"context"
	"errors"
	"fmt"

	"dare-escrow/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AccountRepo implements ports.AccountRepository.
type AccountRepo struct {
	pool Pool
}

// NewAccountRepo creates a new AccountRepo.
func NewAccountRepo(pool Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

// Create inserts a new account.
func (r *AccountRepo) Create(ctx context.Context, a *domain.Account) error {
	query := `INSERT INTO accounts (id, handle, balance, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		a.ID, a.Handle, a.Balance, a.Role, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByID fetches an account by its UUID (without locking).
func (r *AccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	query := `SELECT id, handle, balance, role, created_at, updated_at
		FROM accounts WHERE id = $1`

	return scanAccount(r.pool.QueryRow(ctx, query, id))
}

// GetByHandle fetches an account by its user-visible handle.
func (r *AccountRepo) GetByHandle(ctx context.Context, handle string) (*domain.Account, error) {
	query := `SELECT id, handle, balance, role, created_at, updated_at
		FROM accounts WHERE handle = $1`

	return scanAccount(r.pool.QueryRow(ctx, query, handle))
}

// GetByIDForUpdate fetches an account with a pessimistic row lock.
// This MUST be called within a transaction.
func (r *AccountRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Account, error) {
	query := `SELECT id, handle, balance, role, created_at, updated_at
		FROM accounts WHERE id = $1 FOR UPDATE`

	return scanAccount(tx.QueryRow(ctx, query, id))
}

// UpdateBalance sets an account's balance within a transaction.
func (r *AccountRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, id uuid.UUID, balance int64) error {
	query := `UPDATE accounts SET balance = $1, updated_at = NOW() WHERE id = $2`

	tag, err := tx.Exec(ctx, query, balance, id)
	if err != nil {
		return fmt.Errorf("update account balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account not found: %s", id)
	}
	return nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	a := &domain.Account{}
	err := row.Scan(&a.ID, &a.Handle, &a.Balance, &a.Role, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}
	return a, nil
}
