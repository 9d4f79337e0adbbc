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

func newTestAccount() *domain.Account {
	return &domain.Account{
		ID:        uuid.New(),
		Handle:    "daredevil",
		Balance:   500,
		Role:      domain.AccountRoleNormal,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
		UpdatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func accountColumns() []string {
	return []string{"id", "handle", "balance", "role", "created_at", "updated_at"}
}

func accountRow(a *domain.Account) *pgxmock.Rows {
	return pgxmock.NewRows(accountColumns()).AddRow(
		a.ID, a.Handle, a.Balance, a.Role, a.CreatedAt, a.UpdatedAt,
	)
}

func TestAccountRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAccountRepo(mock)
	a := newTestAccount()

	mock.ExpectExec("INSERT INTO accounts").
		WithArgs(a.ID, a.Handle, a.Balance, a.Role, a.CreatedAt, a.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), a)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAccountRepo(mock)
	a := newTestAccount()

	mock.ExpectQuery("SELECT .+ FROM accounts WHERE id").
		WithArgs(a.ID).
		WillReturnRows(accountRow(a))

	result, err := repo.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, a.ID, result.ID)
	assert.Equal(t, int64(500), result.Balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAccountRepo(mock)
	id := uuid.New()

	mock.ExpectQuery("SELECT .+ FROM accounts WHERE id").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(accountColumns()))

	result, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_GetByHandle(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAccountRepo(mock)
	a := newTestAccount()

	mock.ExpectQuery("SELECT .+ FROM accounts WHERE handle").
		WithArgs(a.Handle).
		WillReturnRows(accountRow(a))

	result, err := repo.GetByHandle(context.Background(), a.Handle)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, a.Handle, result.Handle)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_GetByIDForUpdate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAccountRepo(mock)
	a := newTestAccount()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM accounts WHERE id .+ FOR UPDATE").
		WithArgs(a.ID).
		WillReturnRows(accountRow(a))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	result, err := repo.GetByIDForUpdate(context.Background(), tx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, a.ID, result.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_UpdateBalance(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAccountRepo(mock)
	a := newTestAccount()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE accounts SET balance").
		WithArgs(int64(300), a.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.UpdateBalance(context.Background(), tx, a.ID, 300)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_UpdateBalance_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAccountRepo(mock)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE accounts SET balance").
		WithArgs(int64(100), id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.UpdateBalance(context.Background(), tx, id, 100)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
