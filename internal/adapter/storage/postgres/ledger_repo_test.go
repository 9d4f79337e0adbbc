package postgres

import (
	"context"
	"testing"
	"time"

	"dare-escrow/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEntry() *domain.LedgerEntry {
	challengeID := uuid.New()
	return &domain.LedgerEntry{
		ID:          uuid.New(),
		AccountID:   uuid.New(),
		Amount:      -200,
		Kind:        domain.LedgerEntryEscrowHold,
		Status:      domain.LedgerEntryCompleted,
		ChallengeID: &challengeID,
		Description: "escrow hold for dare",
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}
}

func ledgerCols() []string {
	return []string{"id", "account_id", "amount", "kind", "status", "challenge_id", "counterparty_id", "description", "created_at"}
}

func TestLedgerRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewLedgerRepo(mock)
	e := newTestEntry()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO ledger_entries").
		WithArgs(e.ID, e.AccountID, e.Amount, e.Kind, e.Status,
			e.ChallengeID, e.CounterpartyID, e.Description, e.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Create(context.Background(), tx, e)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepo_ListByChallenge(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewLedgerRepo(mock)
	e := newTestEntry()

	mock.ExpectQuery("SELECT .+ FROM ledger_entries").
		WithArgs(*e.ChallengeID).
		WillReturnRows(pgxmock.NewRows(ledgerCols()).AddRow(
			e.ID, e.AccountID, e.Amount, e.Kind, e.Status,
			e.ChallengeID, e.CounterpartyID, e.Description, e.CreatedAt,
		))

	result, err := repo.ListByChallenge(context.Background(), *e.ChallengeID)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, int64(-200), result[0].Amount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepo_HasEntry(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewLedgerRepo(mock)
	challengeID := uuid.New()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(challengeID, domain.LedgerEntryRefund, domain.LedgerEntryCompleted).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.HasEntry(context.Background(), challengeID, domain.LedgerEntryRefund)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
