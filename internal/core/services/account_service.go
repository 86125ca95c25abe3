package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/corebank/banking-backend/internal/apperrors"
	"github.com/corebank/banking-backend/internal/core/domain"
	portsrepo "github.com/corebank/banking-backend/internal/core/ports/repositories"
	portssvc "github.com/corebank/banking-backend/internal/core/ports/services"
	"github.com/corebank/banking-backend/internal/middleware"
	"github.com/corebank/banking-backend/internal/utils"
)

const defaultTransactionPageSize = 50

// accountService provisions accounts and serves owner-scoped reads.
type accountService struct {
	ledger      portsrepo.LedgerRepository
	ceiling     decimal.Decimal
	maxAttempts int
}

// NewAccountService creates the account service. maxAttempts bounds account
// number generation retries on collision.
func NewAccountService(ledger portsrepo.LedgerRepository, ceiling decimal.Decimal, maxAttempts int) portssvc.AccountSvcFacade {
	return &accountService{ledger: ledger, ceiling: ceiling, maxAttempts: maxAttempts}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount provisions an account with a generated, collision-checked
// account number and the given opening deposit.
func (s *accountService) CreateAccount(ctx context.Context, userID, accountType string, openingDeposit decimal.Decimal) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if openingDeposit.IsNegative() {
		return nil, fmt.Errorf("%w: opening deposit must not be negative", apperrors.ErrValidation)
	}
	if openingDeposit.GreaterThan(s.ceiling) {
		return nil, fmt.Errorf("%w: opening deposit exceeds ceiling", apperrors.ErrValidation)
	}
	accountType = utils.SanitizeString(accountType)
	if accountType == "" {
		return nil, fmt.Errorf("%w: account type is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		number, err := utils.GenerateAccountNumber()
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to generate account number", err)
		}

		// Collision check before insertion; the unique index remains the
		// backstop for the window between check and save.
		_, err = s.ledger.FindAccountByNumber(ctx, number)
		if err == nil {
			logger.Warn("account number collision", slog.String("account_number", number))
			continue
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAppError(500, "failed to check account number", err)
		}

		account := domain.Account{
			AccountID:     uuid.NewString(),
			UserID:        userID,
			AccountNumber: number,
			AccountType:   accountType,
			Balance:       openingDeposit,
			Status:        domain.AccountActive,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.ledger.SaveAccount(ctx, account); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				logger.Warn("account number collision on save", slog.String("account_number", number))
				continue
			}
			return nil, apperrors.NewAppError(500, "failed to save account", err)
		}
		return &account, nil
	}
	return nil, apperrors.ErrProvisioningExhausted
}

// GetAccount retrieves an account the acting user owns.
func (s *accountService) GetAccount(ctx context.Context, actingUserID, accountID string) (*domain.Account, error) {
	account, err := s.ledger.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != actingUserID {
		return nil, apperrors.ErrForbidden
	}
	return account, nil
}

// ListAccounts retrieves the acting user's accounts.
func (s *accountService) ListAccounts(ctx context.Context, actingUserID string) ([]domain.Account, error) {
	return s.ledger.FindAccountsByUserID(ctx, actingUserID)
}

// ListTransactions lists the audit trail of an owned account, newest first.
func (s *accountService) ListTransactions(ctx context.Context, actingUserID, accountID string, limit int, pageToken string) ([]domain.Transaction, string, error) {
	if _, err := s.GetAccount(ctx, actingUserID, accountID); err != nil {
		return nil, "", err
	}
	if limit <= 0 || limit > defaultTransactionPageSize {
		limit = defaultTransactionPageSize
	}
	return s.ledger.FindTransactionsByAccountID(ctx, accountID, limit, pageToken)
}
