package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/corebank/banking-backend/internal/core/domain"
)

// TransferSvcFacade is the transfer engine boundary.
type TransferSvcFacade interface {
	// Transfer moves amount from the acting user's source account to the
	// account identified by destination number, atomically, and returns the
	// completed transaction record. Error contract: apperrors.ErrValidation
	// (bad amount, self transfer), apperrors.ErrNotFound (either account),
	// apperrors.ErrForbidden (source not owned by acting user),
	// apperrors.ErrInsufficientFunds, or an AppError wrapping a store
	// failure after retries are exhausted.
	Transfer(ctx context.Context, actingUserID, fromAccountID, toAccountNumber string, amount decimal.Decimal, description string) (*domain.Transaction, error)
}
