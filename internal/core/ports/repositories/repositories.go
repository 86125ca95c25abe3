// Package repositories defines the storage contracts the core depends on.
// The ledger store owns account and transaction state exclusively; the core
// holds no private copies and re-reads before every mutation.
package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/corebank/banking-backend/internal/core/domain"
)

// TransferRequest describes the atomic unit a ledger store must execute:
// debit the source, credit the destination, and append the transaction
// record, all visible together or not at all.
type TransferRequest struct {
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	Description   string
}

// UserRepository persists and resolves users.
type UserRepository interface {
	// SaveUser persists a new user. Returns apperrors.ErrDuplicate when the
	// username or email is already taken.
	SaveUser(ctx context.Context, user domain.User) error

	// FindUserByID retrieves a user by ID. Returns apperrors.ErrNotFound if missing.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a user by username. Returns apperrors.ErrNotFound if missing.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves an account by its opaque id.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByNumber retrieves an account by its human-facing number.
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// FindAccountsByUserID retrieves all accounts owned by a user.
	FindAccountsByUserID(ctx context.Context, userID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account with its opening balance.
	// Returns apperrors.ErrDuplicate when the account number collides.
	SaveAccount(ctx context.Context, account domain.Account) error
}

// TransferExecutor executes the debit/credit/record unit atomically.
type TransferExecutor interface {
	// ExecuteTransfer locks both accounts in lexicographic id order,
	// re-checks sourceBalance >= amount against the freshly locked balance,
	// applies the debit and credit, and appends the completed transaction
	// record, as a single all-or-nothing unit. Source and destination must
	// differ; equal ids return apperrors.ErrValidation. Returns
	// apperrors.ErrNotFound, apperrors.ErrInsufficientFunds, or
	// apperrors.ErrConflict (transient; the caller may retry).
	ExecuteTransfer(ctx context.Context, req TransferRequest) (*domain.Transaction, error)
}

// TransactionReader reads the immutable audit trail.
type TransactionReader interface {
	// FindTransactionsByAccountID lists transactions touching an account,
	// newest first, with cursor pagination. nextToken is empty when the
	// listing is exhausted.
	FindTransactionsByAccountID(ctx context.Context, accountID string, limit int, pageToken string) ([]domain.Transaction, string, error)
}

// LedgerRepository is the full ledger store contract consumed by the core.
type LedgerRepository interface {
	AccountReader
	AccountWriter
	TransferExecutor
	TransactionReader
}
