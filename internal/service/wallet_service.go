package service

import (
	"context"
	"fmt"
	"time"

	"dare-escrow/internal/core/domain"
	"dare-escrow/internal/core/ports"
	"dare-escrow/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultEntryLimit = 50

// WalletServiceImpl implements ports.WalletService for balance moves that
// happen outside the challenge lifecycle.
type WalletServiceImpl struct {
	accountRepo ports.AccountRepository
	ledgerRepo  ports.LedgerRepository
	transactor  ports.DBTransactor
	log         zerolog.Logger
}

// NewWalletService creates a new WalletServiceImpl.
func NewWalletService(
	accountRepo ports.AccountRepository,
	ledgerRepo ports.LedgerRepository,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *WalletServiceImpl {
	return &WalletServiceImpl{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		transactor:  transactor,
		log:         log,
	}
}

// Transfer moves funds between two accounts, writing a TRANSFER_OUT entry
// for the sender and a TRANSFER_IN entry for the recipient in one
// transaction. Wallet rows are locked in a fixed ID order to avoid deadlock
// between crossing transfers.
func (s *WalletServiceImpl) Transfer(ctx context.Context, req ports.TransferRequest) error {
	if req.Amount <= 0 {
		return apperror.ErrInvalidAmount()
	}

	recipient, err := s.accountRepo.GetByHandle(ctx, req.RecipientHandle)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("lookup recipient: %w", err))
	}
	if recipient == nil {
		return apperror.ErrRecipientNotFound()
	}
	if recipient.ID == req.SenderID {
		return apperror.ErrSelfTransfer()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	first, second := req.SenderID, recipient.ID
	if second.String() < first.String() {
		first, second = second, first
	}
	locked := map[uuid.UUID]*domain.Account{}
	for _, id := range []uuid.UUID{first, second} {
		acct, err := s.accountRepo.GetByIDForUpdate(ctx, dbTx, id)
		if err != nil {
			return apperror.InternalError(fmt.Errorf("lock account: %w", err))
		}
		if acct == nil {
			return apperror.ErrNotFound("account")
		}
		locked[id] = acct
	}
	sender := locked[req.SenderID]
	if sender.Balance < req.Amount {
		return apperror.ErrInsufficientFunds()
	}

	if err := s.accountRepo.UpdateBalance(ctx, dbTx, sender.ID, sender.Balance-req.Amount); err != nil {
		return apperror.InternalError(fmt.Errorf("debit sender: %w", err))
	}
	if err := s.accountRepo.UpdateBalance(ctx, dbTx, recipient.ID, locked[recipient.ID].Balance+req.Amount); err != nil {
		return apperror.InternalError(fmt.Errorf("credit recipient: %w", err))
	}

	now := time.Now().UTC()
	out := &domain.LedgerEntry{
		ID:             uuid.New(),
		AccountID:      sender.ID,
		Amount:         -req.Amount,
		Kind:           domain.LedgerEntryTransferOut,
		Status:         domain.LedgerEntryCompleted,
		CounterpartyID: &recipient.ID,
		Description:    req.Note,
		CreatedAt:      now,
	}
	in := &domain.LedgerEntry{
		ID:             uuid.New(),
		AccountID:      recipient.ID,
		Amount:         req.Amount,
		Kind:           domain.LedgerEntryTransferIn,
		Status:         domain.LedgerEntryCompleted,
		CounterpartyID: &sender.ID,
		Description:    req.Note,
		CreatedAt:      now,
	}
	for _, entry := range []*domain.LedgerEntry{out, in} {
		if err := s.ledgerRepo.Create(ctx, dbTx, entry); err != nil {
			return apperror.InternalError(fmt.Errorf("write transfer entry: %w", err))
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("sender_id", sender.ID.String()).
		Str("recipient_id", recipient.ID.String()).
		Int64("amount", req.Amount).
		Msg("transfer completed")

	return nil
}

// Deposit credits a verified external top-up.
func (s *WalletServiceImpl) Deposit(ctx context.Context, accountID uuid.UUID, amount int64, reference string) (*domain.LedgerEntry, error) {
	return s.adjust(ctx, accountID, amount, domain.LedgerEntryDeposit, reference)
}

// Withdraw debits funds for an external cash-out. Fails on insufficient
// balance; escrowed rewards are already excluded because holds debit the
// balance at challenge creation.
func (s *WalletServiceImpl) Withdraw(ctx context.Context, accountID uuid.UUID, amount int64, reference string) (*domain.LedgerEntry, error) {
	return s.adjust(ctx, accountID, -amount, domain.LedgerEntryWithdrawal, reference)
}

func (s *WalletServiceImpl) adjust(ctx context.Context, accountID uuid.UUID, delta int64, kind domain.LedgerEntryKind, reference string) (*domain.LedgerEntry, error) {
	if delta == 0 || (kind == domain.LedgerEntryDeposit && delta < 0) || (kind == domain.LedgerEntryWithdrawal && delta > 0) {
		return nil, apperror.ErrInvalidAmount()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	acct, err := s.accountRepo.GetByIDForUpdate(ctx, dbTx, accountID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock account: %w", err))
	}
	if acct == nil {
		return nil, apperror.ErrNotFound("account")
	}
	if acct.Balance+delta < 0 {
		return nil, apperror.ErrInsufficientFunds()
	}

	if err := s.accountRepo.UpdateBalance(ctx, dbTx, acct.ID, acct.Balance+delta); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update balance: %w", err))
	}

	entry := &domain.LedgerEntry{
		ID:          uuid.New(),
		AccountID:   accountID,
		Amount:      delta,
		Kind:        kind,
		Status:      domain.LedgerEntryCompleted,
		Description: reference,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.ledgerRepo.Create(ctx, dbTx, entry); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("write entry: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("account_id", accountID.String()).
		Int64("amount", delta).
		Str("kind", string(kind)).
		Msg("wallet adjusted")

	return entry, nil
}

// GetBalance returns the account's available balance.
func (s *WalletServiceImpl) GetBalance(ctx context.Context, accountID uuid.UUID) (int64, error) {
	acct, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("get account: %w", err))
	}
	if acct == nil {
		return 0, apperror.ErrNotFound("account")
	}
	return acct.Balance, nil
}

// ListEntries returns the account's most recent ledger entries.
func (s *WalletServiceImpl) ListEntries(ctx context.Context, accountID uuid.UUID, limit int) ([]domain.LedgerEntry, error) {
	if limit <= 0 {
		limit = defaultEntryLimit
	}
	entries, err := s.ledgerRepo.ListByAccount(ctx, accountID, limit)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list entries: %w", err))
	}
	return entries, nil
}
