package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/corebank/banking-backend/internal/apperrors"
	"github.com/corebank/banking-backend/internal/core/domain"
	portsrepo "github.com/corebank/banking-backend/internal/core/ports/repositories"
	portssvc "github.com/corebank/banking-backend/internal/core/ports/services"
	"github.com/corebank/banking-backend/internal/middleware"
	"github.com/corebank/banking-backend/internal/utils"
)

// transferService is the transfer engine. It validates and authorizes a
// transfer, then delegates the atomic debit/credit/record unit to the ledger
// store, retrying transient conflicts a bounded number of times.
type transferService struct {
	ledger     portsrepo.LedgerRepository
	ceiling    decimal.Decimal
	maxRetries int
}

// NewTransferService creates the transfer engine. ceiling is the per-transfer
// policy limit; maxRetries bounds retries of transient store conflicts.
func NewTransferService(ledger portsrepo.LedgerRepository, ceiling decimal.Decimal, maxRetries int) portssvc.TransferSvcFacade {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &transferService{ledger: ledger, ceiling: ceiling, maxRetries: maxRetries}
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

// Transfer moves amount between two accounts as a single logical unit.
//
// The funds check happens inside the ledger store against the freshly locked
// source balance, in the same atomic unit as the debit, credit, and record
// append; balances read here are used only to resolve and authorize.
func (s *transferService) Transfer(ctx context.Context, actingUserID, fromAccountID, toAccountNumber string, amount decimal.Decimal, description string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !utils.IsValidAmount(amount, s.ceiling) {
		return nil, fmt.Errorf("%w: amount must be positive and at most %s", apperrors.ErrValidation, s.ceiling)
	}

	source, err := s.ledger.FindAccountByID(ctx, fromAccountID)
	if err != nil {
		return nil, err
	}
	destination, err := s.ledger.FindAccountByNumber(ctx, toAccountNumber)
	if err != nil {
		return nil, err
	}

	if source.UserID != actingUserID {
		return nil, apperrors.ErrForbidden
	}
	if source.AccountID == destination.AccountID {
		return nil, fmt.Errorf("%w: cannot transfer to the same account", apperrors.ErrValidation)
	}
	if source.Status != domain.AccountActive || destination.Status != domain.AccountActive {
		return nil, fmt.Errorf("%w: both accounts must be active", apperrors.ErrValidation)
	}

	req := portsrepo.TransferRequest{
		FromAccountID: source.AccountID,
		ToAccountID:   destination.AccountID,
		Amount:        amount,
		Description:   utils.SanitizeString(description),
	}

	var txn *domain.Transaction
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		txn, err = s.ledger.ExecuteTransfer(ctx, req)
		if err == nil {
			return txn, nil
		}
		if !errors.Is(err, apperrors.ErrConflict) {
			return nil, err
		}
		logger.Warn("transfer conflict, retrying",
			slog.String("from_account", source.AccountID),
			slog.String("to_account", destination.AccountID),
			slog.Int("attempt", attempt))
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, apperrors.NewAppError(500, "transfer cancelled", ctxErr)
		}
	}
	return nil, apperrors.NewAppError(500, "transfer failed after retries", err)
}
