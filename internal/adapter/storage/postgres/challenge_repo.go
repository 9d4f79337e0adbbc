package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dare-escrow/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ChallengeRepo implements ports.ChallengeRepository.
type ChallengeRepo struct {
	pool Pool
}

// NewChallengeRepo creates a new ChallengeRepo.
func NewChallengeRepo(pool Pool) *ChallengeRepo {
	return &ChallengeRepo{pool: pool}
}

const challengeColumns = `id, kind, creator_id, target_id, reward, category, title, status, created_at, expires_at`

// Create inserts a new challenge within a database transaction.
func (r *ChallengeRepo) Create(ctx context.Context, tx pgx.Tx, c *domain.Challenge) error {
	query := `INSERT INTO challenges (` + challengeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := tx.Exec(ctx, query,
		c.ID, c.Kind, c.CreatorID, c.TargetID, c.Reward,
		c.Category, c.Title, c.Status, c.CreatedAt, c.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("insert challenge: %w", err)
	}
	return nil
}

// GetByID fetches a challenge with its participations and hidden set.
func (r *ChallengeRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Challenge, error) {
	query := `SELECT ` + challengeColumns + ` FROM challenges WHERE id = $1`

	c := &domain.Challenge{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Kind, &c.CreatorID, &c.TargetID, &c.Reward,
		&c.Category, &c.Title, &c.Status, &c.CreatedAt, &c.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get challenge by id: %w", err)
	}

	if err := r.loadParticipations(ctx, c); err != nil {
		return nil, err
	}
	if err := r.loadHiddenSet(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateStatusIf applies the conditional status transition that guards
// settlement. The row changes only when the stored status still equals from;
// RowsAffected tells the caller whether it won the transition.
func (r *ChallengeRepo) UpdateStatusIf(ctx context.Context, tx pgx.Tx, id uuid.UUID, from, to domain.ChallengeStatus) (bool, error) {
	query := `UPDATE challenges SET status = $1 WHERE id = $2 AND status = $3`

	tag, err := tx.Exec(ctx, query, to, id, from)
	if err != nil {
		return false, fmt.Errorf("conditional status update: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Claim is the pool-level conditional transition used by the sweeper. It is
// a single statement, so it needs no surrounding transaction.
func (r *ChallengeRepo) Claim(ctx context.Context, id uuid.UUID, from, to domain.ChallengeStatus) (bool, error) {
	query := `UPDATE challenges SET status = $1 WHERE id = $2 AND status = $3`

	tag, err := r.pool.Exec(ctx, query, to, id, from)
	if err != nil {
		return false, fmt.Errorf("claim challenge: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListExpired returns active challenges whose deadline has passed.
func (r *ChallengeRepo) ListExpired(ctx context.Context, now time.Time, limit int) ([]domain.Challenge, error) {
	query := `SELECT ` + challengeColumns + ` FROM challenges
		WHERE status = $1 AND expires_at < $2
		ORDER BY expires_at ASC LIMIT $3`

	rows, err := r.pool.Query(ctx, query, domain.ChallengeStatusActive, now, limit)
	if err != nil {
		return nil, fmt.Errorf("list expired challenges: %w", err)
	}
	defer rows.Close()
	return collectChallenges(rows)
}

// ListByStatus returns challenges in a given status, oldest first.
func (r *ChallengeRepo) ListByStatus(ctx context.Context, status domain.ChallengeStatus, limit int) ([]domain.Challenge, error) {
	query := `SELECT ` + challengeColumns + ` FROM challenges
		WHERE status = $1 ORDER BY created_at ASC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, status, limit)
	if err != nil {
		return nil, fmt.Errorf("list challenges by status: %w", err)
	}
	defer rows.Close()
	return collectChallenges(rows)
}

// Delete removes a settled challenge record. Participations and the hidden
// set cascade via foreign keys; ledger entries keep the challenge id.
func (r *ChallengeRepo) Delete(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, `DELETE FROM challenges WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete challenge: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("challenge not found: %s", id)
	}
	return nil
}

// AddParticipation inserts a participation. The (challenge_id, account_id)
// primary key makes joining twice a constraint violation.
func (r *ChallengeRepo) AddParticipation(ctx context.Context, p *domain.Participation) error {
	query := `INSERT INTO participations (challenge_id, account_id, status, proof_ref, proof_note, joined_at, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		p.ChallengeID, p.AccountID, p.Status, p.ProofRef, p.ProofNote, p.JoinedAt, p.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("insert participation: %w", err)
	}
	return nil
}

// UpdateParticipationStatus sets a participation's status within a transaction.
func (r *ChallengeRepo) UpdateParticipationStatus(ctx context.Context, tx pgx.Tx, challengeID, accountID uuid.UUID, status domain.ParticipationStatus) error {
	query := `UPDATE participations SET status = $1 WHERE challenge_id = $2 AND account_id = $3`

	tag, err := tx.Exec(ctx, query, status, challengeID, accountID)
	if err != nil {
		return fmt.Errorf("update participation status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("participation not found: %s/%s", challengeID, accountID)
	}
	return nil
}

// RecordProof stores the proof reference and moves the participation to
// PENDING_REVIEW.
func (r *ChallengeRepo) RecordProof(ctx context.Context, challengeID, accountID uuid.UUID, proofRef string, note *string, at time.Time) error {
	query := `UPDATE participations
		SET status = $1, proof_ref = $2, proof_note = $3, submitted_at = $4
		WHERE challenge_id = $5 AND account_id = $6`

	tag, err := r.pool.Exec(ctx, query,
		domain.ParticipationStatusPendingReview, proofRef, note, at, challengeID, accountID,
	)
	if err != nil {
		return fmt.Errorf("record proof: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("participation not found: %s/%s", challengeID, accountID)
	}
	return nil
}

// HideForAccount records a feed opt-out. ON CONFLICT DO NOTHING keeps it
// idempotent.
func (r *ChallengeRepo) HideForAccount(ctx context.Context, challengeID, accountID uuid.UUID) error {
	query := `INSERT INTO challenge_hidden (challenge_id, account_id)
		VALUES ($1, $2) ON CONFLICT DO NOTHING`

	_, err := r.pool.Exec(ctx, query, challengeID, accountID)
	if err != nil {
		return fmt.Errorf("hide challenge: %w", err)
	}
	return nil
}

func (r *ChallengeRepo) loadParticipations(ctx context.Context, c *domain.Challenge) error {
	query := `SELECT challenge_id, account_id, status, proof_ref, proof_note, joined_at, submitted_at
		FROM participations WHERE challenge_id = $1 ORDER BY joined_at ASC`

	rows, err := r.pool.Query(ctx, query, c.ID)
	if err != nil {
		return fmt.Errorf("load participations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.Participation
		if err := rows.Scan(&p.ChallengeID, &p.AccountID, &p.Status, &p.ProofRef, &p.ProofNote, &p.JoinedAt, &p.SubmittedAt); err != nil {
			return fmt.Errorf("scan participation: %w", err)
		}
		c.Participations = append(c.Participations, p)
	}
	return rows.Err()
}

func (r *ChallengeRepo) loadHiddenSet(ctx context.Context, c *domain.Challenge) error {
	query := `SELECT account_id FROM challenge_hidden WHERE challenge_id = $1`

	rows, err := r.pool.Query(ctx, query, c.ID)
	if err != nil {
		return fmt.Errorf("load hidden set: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("scan hidden account: %w", err)
		}
		c.HiddenBy = append(c.HiddenBy, id)
	}
	return rows.Err()
}

func collectChallenges(rows pgx.Rows) ([]domain.Challenge, error) {
	var result []domain.Challenge
	for rows.Next() {
		var c domain.Challenge
		if err := rows.Scan(
			&c.ID, &c.Kind, &c.CreatorID, &c.TargetID, &c.Reward,
			&c.Category, &c.Title, &c.Status, &c.CreatedAt, &c.ExpiresAt,
		); err != nil {
			return nil, fmt.Errorf("scan challenge: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}
