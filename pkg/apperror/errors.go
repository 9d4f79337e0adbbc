package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Challenge Lifecycle (CHL) ----

func ErrChallengeNotActive() *AppError {
	return New("CHL_001", "Challenge is not active", http.StatusConflict)
}

func ErrAlreadyJoined() *AppError {
	return New("CHL_002", "Account already joined this challenge", http.StatusConflict)
}

func ErrSelfJoinNotAllowed() *AppError {
	return New("CHL_003", "Creator cannot join their own challenge", http.StatusBadRequest)
}

func ErrNotAParticipant() *AppError {
	return New("CHL_004", "Account never joined this challenge", http.StatusForbidden)
}

func ErrNotAuthorized() *AppError {
	return New("CHL_005", "Account is not allowed to perform this action", http.StatusForbidden)
}

func ErrParticipantNotFound() *AppError {
	return New("CHL_006", "No such participant awaiting review", http.StatusNotFound)
}

// ErrChallengeAlreadySettled is the benign already-settled outcome: a
// concurrent settlement path won the conditional update first. It is an
// expected result of the exclusivity design, not a bug.
func ErrChallengeAlreadySettled() *AppError {
	return New("CHL_007", "Challenge reward was already settled", http.StatusConflict)
}

func ErrInvalidDuration(spec string) *AppError {
	return New("CHL_008", fmt.Sprintf("Invalid duration spec %q", spec), http.StatusBadRequest)
}

func ErrNotQuarantined() *AppError {
	return New("CHL_009", "Challenge is not awaiting reconciliation", http.StatusConflict)
}

// ---- Wallet (WAL) ----

func ErrInsufficientFunds() *AppError {
	return New("WAL_001", "Insufficient balance", http.StatusPaymentRequired)
}

func ErrInvalidAmount() *AppError {
	return New("WAL_002", "Invalid amount", http.StatusBadRequest)
}

func ErrSelfTransfer() *AppError {
	return New("WAL_003", "Sender and recipient must differ", http.StatusBadRequest)
}

func ErrRecipientNotFound() *AppError {
	return New("WAL_004", "Recipient not found", http.StatusNotFound)
}

func ErrNotFound(entity string) *AppError {
	return New("WAL_005", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- Operator Access (OPS) ----

func ErrInvalidOperatorToken() *AppError {
	return New("OPS_001", "Invalid or expired operator token", http.StatusUnauthorized)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a request validation error with a custom message.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}
