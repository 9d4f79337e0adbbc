package handler

import (
	"strconv"

	"dare-escrow/internal/adapter/http/dto"
	"dare-escrow/internal/core/ports"
	"dare-escrow/pkg/apperror"
	"dare-escrow/pkg/response"

	"github.com/gin-gonic/gin"
)

// WalletHandler handles balance and ledger endpoints.
type WalletHandler struct {
	walletSvc ports.WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletSvc ports.WalletService) *WalletHandler {
	return &WalletHandler{walletSvc: walletSvc}
}

// GetBalance handles GET /api/v1/wallet/balance.
func (h *WalletHandler) GetBalance(c *gin.Context) {
	accountID, ok := callerID(c)
	if !ok {
		return
	}

	balance, err := h.walletSvc.GetBalance(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BalanceResponse{Balance: balance})
}

// ListEntries handles GET /api/v1/wallet/entries.
func (h *WalletHandler) ListEntries(c *gin.Context) {
	accountID, ok := callerID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	entries, err := h.walletSvc.ListEntries(c.Request.Context(), accountID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.LedgerEntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, dto.FromLedgerEntry(&entries[i]))
	}
	response.OK(c, out)
}

// Transfer handles POST /api/v1/wallet/transfer.
func (h *WalletHandler) Transfer(c *gin.Context) {
	accountID, ok := callerID(c)
	if !ok {
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	err := h.walletSvc.Transfer(c.Request.Context(), ports.TransferRequest{
		SenderID:        accountID,
		RecipientHandle: req.RecipientHandle,
		Amount:          req.Amount,
		Note:            req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	balance, err := h.walletSvc.GetBalance(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.BalanceResponse{Balance: balance})
}

// Deposit handles POST /api/v1/wallet/deposit.
func (h *WalletHandler) Deposit(c *gin.Context) {
	accountID, ok := callerID(c)
	if !ok {
		return
	}

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	entry, err := h.walletSvc.Deposit(c.Request.Context(), accountID, req.Amount, req.Reference)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.FromLedgerEntry(entry))
}

// Withdraw handles POST /api/v1/wallet/withdraw.
func (h *WalletHandler) Withdraw(c *gin.Context) {
	accountID, ok := callerID(c)
	if !ok {
		return
	}

	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	entry, err := h.walletSvc.Withdraw(c.Request.Context(), accountID, req.Amount, req.Reference)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.FromLedgerEntry(entry))
}
