package integration

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"dare-escrow/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// --- In-Memory Account Repo ---

type inMemoryAccountRepo struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*domain.Account
}

func newInMemoryAccountRepo() *inMemoryAccountRepo {
	return &inMemoryAccountRepo{accounts: make(map[uuid.UUID]*domain.Account)}
}

func (r *inMemoryAccountRepo) Create(ctx context.Context, a *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.accounts {
		if existing.Handle == a.Handle {
			return fmt.Errorf("handle already exists")
		}
	}
	cp := *a
	r.accounts[a.ID] = &cp
	return nil
}

func (r *inMemoryAccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *inMemoryAccountRepo) GetByHandle(ctx context.Context, handle string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.accounts {
		if a.Handle == handle {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryAccountRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Account, error) {
	return r.GetByID(ctx, id)
}

func (r *inMemoryAccountRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, id uuid.UUID, balance int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return fmt.Errorf("account not found")
	}
	a.Balance = balance
	return nil
}

// balance reads the live balance outside any transaction, for assertions.
func (r *inMemoryAccountRepo) balance(id uuid.UUID) int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.accounts[id].Balance
}

// --- In-Memory Challenge Repo ---

type inMemoryChallengeRepo struct {
	mu         sync.RWMutex
	challenges map[uuid.UUID]*domain.Challenge
	hidden     map[uuid.UUID]map[uuid.UUID]struct{}
}

func newInMemoryChallengeRepo() *inMemoryChallengeRepo {
	return &inMemoryChallengeRepo{
		challenges: make(map[uuid.UUID]*domain.Challenge),
		hidden:     make(map[uuid.UUID]map[uuid.UUID]struct{}),
	}
}

func copyChallenge(c *domain.Challenge) *domain.Challenge {
	cp := *c
	cp.Participations = append([]domain.Participation(nil), c.Participations...)
	cp.HiddenBy = append([]uuid.UUID(nil), c.HiddenBy...)
	return &cp
}

func (r *inMemoryChallengeRepo) Create(ctx context.Context, tx pgx.Tx, c *domain.Challenge) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.challenges[c.ID] = copyChallenge(c)
	return nil
}

func (r *inMemoryChallengeRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Challenge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.challenges[id]
	if !ok {
		return nil, nil
	}
	out := copyChallenge(c)
	for hiddenBy := range r.hidden[id] {
		out.HiddenBy = append(out.HiddenBy, hiddenBy)
	}
	return out, nil
}

// UpdateStatusIf is the in-memory equivalent of the conditional UPDATE: the
// check and the write happen under one lock, so concurrent settlement paths
// serialize exactly as they do against the database.
func (r *inMemoryChallengeRepo) UpdateStatusIf(ctx context.Context, tx pgx.Tx, id uuid.UUID, from, to domain.ChallengeStatus) (bool, error) {
	return r.casStatus(id, from, to)
}

func (r *inMemoryChallengeRepo) Claim(ctx context.Context, id uuid.UUID, from, to domain.ChallengeStatus) (bool, error) {
	return r.casStatus(id, from, to)
}

func (r *inMemoryChallengeRepo) casStatus(id uuid.UUID, from, to domain.ChallengeStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.challenges[id]
	if !ok || c.Status != from {
		return false, nil
	}
	c.Status = to
	return true, nil
}

func (r *inMemoryChallengeRepo) ListExpired(ctx context.Context, now time.Time, limit int) ([]domain.Challenge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Challenge
	for _, c := range r.challenges {
		if c.Status == domain.ChallengeStatusActive && now.After(c.ExpiresAt) {
			out = append(out, *copyChallenge(c))
			if len(out) == limit {
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpiresAt.Before(out[j].ExpiresAt) })
	return out, nil
}

func (r *inMemoryChallengeRepo) ListByStatus(ctx context.Context, status domain.ChallengeStatus, limit int) ([]domain.Challenge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Challenge
	for _, c := range r.challenges {
		if c.Status == status {
			out = append(out, *copyChallenge(c))
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *inMemoryChallengeRepo) Delete(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.challenges, id)
	delete(r.hidden, id)
	return nil
}

func (r *inMemoryChallengeRepo) AddParticipation(ctx context.Context, p *domain.Participation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.challenges[p.ChallengeID]
	if !ok {
		return fmt.Errorf("challenge not found")
	}
	for _, existing := range c.Participations {
		if existing.AccountID == p.AccountID {
			return fmt.Errorf("duplicate participation")
		}
	}
	c.Participations = append(c.Participations, *p)
	return nil
}

func (r *inMemoryChallengeRepo) UpdateParticipationStatus(ctx context.Context, tx pgx.Tx, challengeID, accountID uuid.UUID, status domain.ParticipationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.challenges[challengeID]
	if !ok {
		return fmt.Errorf("challenge not found")
	}
	for i := range c.Participations {
		if c.Participations[i].AccountID == accountID {
			c.Participations[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("participation not found")
}

func (r *inMemoryChallengeRepo) RecordProof(ctx context.Context, challengeID, accountID uuid.UUID, proofRef string, note *string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.challenges[challengeID]
	if !ok {
		return fmt.Errorf("challenge not found")
	}
	for i := range c.Participations {
		if c.Participations[i].AccountID == accountID {
			c.Participations[i].Status = domain.ParticipationStatusPendingReview
			c.Participations[i].ProofRef = &proofRef
			c.Participations[i].ProofNote = note
			c.Participations[i].SubmittedAt = &at
			return nil
		}
	}
	return fmt.Errorf("participation not found")
}

func (r *inMemoryChallengeRepo) HideForAccount(ctx context.Context, challengeID, accountID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.hidden[challengeID]; !ok {
		r.hidden[challengeID] = make(map[uuid.UUID]struct{})
	}
	r.hidden[challengeID][accountID] = struct{}{}
	return nil
}

// forceExpire backdates a stored deadline so sweeper tests don't have to wait.
func (r *inMemoryChallengeRepo) forceExpire(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.challenges[id]; ok {
		c.ExpiresAt = time.Now().Add(-time.Minute)
	}
}

func (r *inMemoryChallengeRepo) exists(id uuid.UUID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.challenges[id]
	return ok
}

// --- In-Memory Ledger Repo ---

type inMemoryLedgerRepo struct {
	mu      sync.RWMutex
	entries []domain.LedgerEntry
}

func newInMemoryLedgerRepo() *inMemoryLedgerRepo {
	return &inMemoryLedgerRepo{}
}

func (r *inMemoryLedgerRepo) Create(ctx context.Context, tx pgx.Tx, entry *domain.LedgerEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *inMemoryLedgerRepo) ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]domain.LedgerEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.LedgerEntry
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if r.entries[i].AccountID == accountID {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}

func (r *inMemoryLedgerRepo) ListByChallenge(ctx context.Context, challengeID uuid.UUID) ([]domain.LedgerEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.LedgerEntry
	for _, e := range r.entries {
		if e.ChallengeID != nil && *e.ChallengeID == challengeID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *inMemoryLedgerRepo) HasEntry(ctx context.Context, challengeID uuid.UUID, kind domain.LedgerEntryKind) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.entries {
		if e.ChallengeID != nil && *e.ChallengeID == challengeID &&
			e.Kind == kind && e.Status == domain.LedgerEntryCompleted {
			return true, nil
		}
	}
	return false, nil
}

func (r *inMemoryLedgerRepo) countByKind(challengeID uuid.UUID, kind domain.LedgerEntryKind) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, e := range r.entries {
		if e.ChallengeID != nil && *e.ChallengeID == challengeID && e.Kind == kind {
			n++
		}
	}
	return n
}

// --- In-Memory Transactor (no-op tx) ---

type inMemoryTransactor struct{}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return &noopTx{}, nil
}

// noopTx is a no-op pgx.Tx implementation for in-memory testing.
type noopTx struct{}

func (t *noopTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *noopTx) Commit(ctx context.Context) error          { return nil }
func (t *noopTx) Rollback(ctx context.Context) error        { return nil }
func (t *noopTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *noopTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *noopTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *noopTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *noopTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *noopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *noopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *noopTx) Conn() *pgx.Conn { return nil }

// --- In-Memory Invite Store ---

type inMemoryInviteStore struct {
	mu      sync.Mutex
	invites map[string]struct{}
}

func newInMemoryInviteStore() *inMemoryInviteStore {
	return &inMemoryInviteStore{invites: make(map[string]struct{})}
}

func inviteKey(challengeID, targetID uuid.UUID) string {
	return challengeID.String() + ":" + targetID.String()
}

func (s *inMemoryInviteStore) Put(ctx context.Context, challengeID, targetID uuid.UUID, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invites[inviteKey(challengeID, targetID)] = struct{}{}
	return nil
}

func (s *inMemoryInviteStore) Remove(ctx context.Context, challengeID, targetID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.invites, inviteKey(challengeID, targetID))
	return nil
}

func (s *inMemoryInviteStore) Exists(ctx context.Context, challengeID, targetID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.invites[inviteKey(challengeID, targetID)]
	return ok, nil
}
