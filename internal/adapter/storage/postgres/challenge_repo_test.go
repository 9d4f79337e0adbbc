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

func newTestChallenge() *domain.Challenge {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Challenge{
		ID:        uuid.New(),
		Kind:      domain.ChallengeKindDare,
		CreatorID: uuid.New(),
		Reward:    200,
		Category:  "outdoors",
		Title:     "Cold plunge",
		Status:    domain.ChallengeStatusActive,
		CreatedAt: now,
		ExpiresAt: now.Add(24 * time.Hour),
	}
}

func challengeCols() []string {
	return []string{"id", "kind", "creator_id", "target_id", "reward", "category", "title", "status", "created_at", "expires_at"}
}

func challengeRow(c *domain.Challenge) *pgxmock.Rows {
	return pgxmock.NewRows(challengeCols()).AddRow(
		c.ID, c.Kind, c.CreatorID, c.TargetID, c.Reward,
		c.Category, c.Title, c.Status, c.CreatedAt, c.ExpiresAt,
	)
}

func TestChallengeRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewChallengeRepo(mock)
	c := newTestChallenge()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO challenges").
		WithArgs(c.ID, c.Kind, c.CreatorID, c.TargetID, c.Reward,
			c.Category, c.Title, c.Status, c.CreatedAt, c.ExpiresAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Create(context.Background(), tx, c)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChallengeRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewChallengeRepo(mock)
	c := newTestChallenge()
	joined := uuid.New()

	mock.ExpectQuery("SELECT .+ FROM challenges WHERE id").
		WithArgs(c.ID).
		WillReturnRows(challengeRow(c))
	mock.ExpectQuery("SELECT .+ FROM participations WHERE challenge_id").
		WithArgs(c.ID).
		WillReturnRows(pgxmock.NewRows([]string{"challenge_id", "account_id", "status", "proof_ref", "proof_note", "joined_at", "submitted_at"}).
			AddRow(c.ID, joined, domain.ParticipationStatusPending, nil, nil, c.CreatedAt, nil))
	mock.ExpectQuery("SELECT account_id FROM challenge_hidden").
		WithArgs(c.ID).
		WillReturnRows(pgxmock.NewRows([]string{"account_id"}))

	result, err := repo.GetByID(context.Background(), c.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, c.ID, result.ID)
	require.Len(t, result.Participations, 1)
	assert.Equal(t, joined, result.Participations[0].AccountID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The conditional update is the settlement guard: only the caller whose
// UPDATE matched a row may move funds.
func TestChallengeRepo_UpdateStatusIf_Won(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewChallengeRepo(mock)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE challenges SET status").
		WithArgs(domain.ChallengeStatusCompleted, id, domain.ChallengeStatusActive).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	won, err := repo.UpdateStatusIf(context.Background(), tx, id, domain.ChallengeStatusActive, domain.ChallengeStatusCompleted)
	require.NoError(t, err)
	assert.True(t, won)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChallengeRepo_UpdateStatusIf_Lost(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewChallengeRepo(mock)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE challenges SET status").
		WithArgs(domain.ChallengeStatusRejected, id, domain.ChallengeStatusActive).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	won, err := repo.UpdateStatusIf(context.Background(), tx, id, domain.ChallengeStatusActive, domain.ChallengeStatusRejected)
	require.NoError(t, err)
	assert.False(t, won)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChallengeRepo_Claim(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewChallengeRepo(mock)
	id := uuid.New()

	mock.ExpectExec("UPDATE challenges SET status").
		WithArgs(domain.ChallengeStatusCleaningUp, id, domain.ChallengeStatusActive).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	won, err := repo.Claim(context.Background(), id, domain.ChallengeStatusActive, domain.ChallengeStatusCleaningUp)
	require.NoError(t, err)
	assert.True(t, won)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChallengeRepo_ListExpired(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewChallengeRepo(mock)
	c := newTestChallenge()
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT .+ FROM challenges").
		WithArgs(domain.ChallengeStatusActive, now, 50).
		WillReturnRows(challengeRow(c))

	result, err := repo.ListExpired(context.Background(), now, 50)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, c.ID, result[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChallengeRepo_AddParticipation(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewChallengeRepo(mock)
	p := &domain.Participation{
		ChallengeID: uuid.New(),
		AccountID:   uuid.New(),
		Status:      domain.ParticipationStatusPending,
		JoinedAt:    time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO participations").
		WithArgs(p.ChallengeID, p.AccountID, p.Status, p.ProofRef, p.ProofNote, p.JoinedAt, p.SubmittedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.AddParticipation(context.Background(), p)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChallengeRepo_RecordProof(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewChallengeRepo(mock)
	challengeID, accountID := uuid.New(), uuid.New()
	at := time.Now().UTC()

	mock.ExpectExec("UPDATE participations").
		WithArgs(domain.ParticipationStatusPendingReview, "https://proof.example/1", (*string)(nil), at, challengeID, accountID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.RecordProof(context.Background(), challengeID, accountID, "https://proof.example/1", nil, at)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChallengeRepo_HideForAccount(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewChallengeRepo(mock)
	challengeID, accountID := uuid.New(), uuid.New()

	// Second insert hits ON CONFLICT DO NOTHING and affects zero rows;
	// both calls succeed.
	mock.ExpectExec("INSERT INTO challenge_hidden").
		WithArgs(challengeID, accountID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO challenge_hidden").
		WithArgs(challengeID, accountID).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	require.NoError(t, repo.HideForAccount(context.Background(), challengeID, accountID))
	require.NoError(t, repo.HideForAccount(context.Background(), challengeID, accountID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChallengeRepo_Delete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewChallengeRepo(mock)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM challenges").
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Delete(context.Background(), tx, id)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
