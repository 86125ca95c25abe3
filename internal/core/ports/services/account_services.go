package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/corebank/banking-backend/internal/core/domain"
)

// AccountSvcFacade provisions accounts and exposes owner-scoped reads.
type AccountSvcFacade interface {
	// CreateAccount provisions an account for the user with a generated,
	// collision-checked account number and the given opening deposit
	// (>= 0). Returns apperrors.ErrValidation for a bad deposit and
	// apperrors.ErrProvisioningExhausted when number generation keeps
	// colliding.
	CreateAccount(ctx context.Context, userID, accountType string, openingDeposit decimal.Decimal) (*domain.Account, error)

	// GetAccount retrieves an account by id. The acting user must own it
	// (apperrors.ErrForbidden otherwise).
	GetAccount(ctx context.Context, actingUserID, accountID string) (*domain.Account, error)

	// ListAccounts retrieves the acting user's accounts.
	ListAccounts(ctx context.Context, actingUserID string) ([]domain.Account, error)

	// ListTransactions lists the audit trail of an account owned by the
	// acting user, newest first, cursor-paginated.
	ListTransactions(ctx context.Context, actingUserID, accountID string, limit int, pageToken string) ([]domain.Transaction, string, error)
}
