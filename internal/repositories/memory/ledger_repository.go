// Package memory provides an in-process ledger store. It backs tests and
// local development without PostgreSQL while honoring the same contract:
// transfers lock both accounts in lexicographic id order and publish the
// debit, credit, and transaction record together or not at all.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/corebank/banking-backend/internal/apperrors"
	"github.com/corebank/banking-backend/internal/core/domain"
	portsrepo "github.com/corebank/banking-backend/internal/core/ports/repositories"
	"github.com/corebank/banking-backend/internal/utils/pagination"
)

type accountEntry struct {
	mu      sync.Mutex
	account domain.Account
}

// LedgerRepository is the in-memory ledger store.
type LedgerRepository struct {
	mu       sync.RWMutex
	accounts map[string]*accountEntry
	byNumber map[string]string
	txns     []domain.Transaction

	// OnBeforeCommit, when set, runs after a transfer is staged and before
	// anything is published. Returning an error aborts the transfer with no
	// observable mutation. Test support for simulated store failures.
	OnBeforeCommit func() error
}

// NewLedgerRepository creates an empty in-memory ledger.
func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{
		accounts: make(map[string]*accountEntry),
		byNumber: make(map[string]string),
	}
}

var _ portsrepo.LedgerRepository = (*LedgerRepository)(nil)

// SaveAccount persists a new account, enforcing account number uniqueness.
func (r *LedgerRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byNumber[account.AccountNumber]; exists {
		return apperrors.ErrDuplicate
	}
	if _, exists := r.accounts[account.AccountID]; exists {
		return apperrors.ErrDuplicate
	}
	r.accounts[account.AccountID] = &accountEntry{account: account}
	r.byNumber[account.AccountNumber] = account.AccountID
	return nil
}

// FindAccountByID returns a copy of the account.
func (r *LedgerRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	r.mu.RLock()
	entry, ok := r.accounts[accountID]
	r.mu.RUnlock()
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	entry.mu.Lock()
	account := entry.account
	entry.mu.Unlock()
	return &account, nil
}

// FindAccountByNumber returns a copy of the account.
func (r *LedgerRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	r.mu.RLock()
	id, ok := r.byNumber[accountNumber]
	r.mu.RUnlock()
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return r.FindAccountByID(ctx, id)
}

// FindAccountsByUserID returns copies of the user's accounts, oldest first.
func (r *LedgerRepository) FindAccountsByUserID(ctx context.Context, userID string) ([]domain.Account, error) {
	r.mu.RLock()
	entries := make([]*accountEntry, 0, len(r.accounts))
	for _, entry := range r.accounts {
		entries = append(entries, entry)
	}
	r.mu.RUnlock()

	var accounts []domain.Account
	for _, entry := range entries {
		entry.mu.Lock()
		if entry.account.UserID == userID {
			accounts = append(accounts, entry.account)
		}
		entry.mu.Unlock()
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].CreatedAt.Before(accounts[j].CreatedAt)
	})
	return accounts, nil
}

// ExecuteTransfer applies the debit, credit, and record as one unit.
//
// Both account locks are taken in lexicographic id order, the funds check
// runs against the locked balance, and nothing is published until the staged
// mutation passes the pre-commit hook.
func (r *LedgerRepository) ExecuteTransfer(ctx context.Context, req portsrepo.TransferRequest) (*domain.Transaction, error) {
	// Equal ids would lock the same entry twice below.
	if req.FromAccountID == req.ToAccountID {
		return nil, apperrors.ErrValidation
	}

	r.mu.RLock()
	from, fromOK := r.accounts[req.FromAccountID]
	to, toOK := r.accounts[req.ToAccountID]
	r.mu.RUnlock()
	if !fromOK || !toOK {
		return nil, apperrors.ErrNotFound
	}

	first, second := from, to
	if req.ToAccountID < req.FromAccountID {
		first, second = to, from
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if from.account.Balance.LessThan(req.Amount) {
		return nil, apperrors.ErrInsufficientFunds
	}

	now := time.Now().UTC()
	stagedFrom := from.account
	stagedFrom.Balance = stagedFrom.Balance.Sub(req.Amount)
	stagedFrom.UpdatedAt = now
	stagedTo := to.account
	stagedTo.Balance = stagedTo.Balance.Add(req.Amount)
	stagedTo.UpdatedAt = now

	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		FromAccountID:   req.FromAccountID,
		ToAccountID:     req.ToAccountID,
		Amount:          req.Amount,
		TransactionType: domain.TransferTransaction,
		Description:     req.Description,
		Status:          domain.TransactionCompleted,
		CreatedAt:       now,
	}

	if r.OnBeforeCommit != nil {
		if err := r.OnBeforeCommit(); err != nil {
			return nil, apperrors.NewAppError(500, "ledger store failed before commit", err)
		}
	}

	from.account = stagedFrom
	to.account = stagedTo
	r.mu.Lock()
	r.txns = append(r.txns, txn)
	r.mu.Unlock()

	return &txn, nil
}

// FindTransactionsByAccountID lists transactions touching an account, newest
// first, with keyset cursor pagination.
func (r *LedgerRepository) FindTransactionsByAccountID(ctx context.Context, accountID string, limit int, pageToken string) ([]domain.Transaction, string, error) {
	r.mu.RLock()
	var matched []domain.Transaction
	for _, txn := range r.txns {
		if txn.FromAccountID == accountID || txn.ToAccountID == accountID {
			matched = append(matched, txn)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].TransactionID > matched[j].TransactionID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if pageToken != "" {
		afterTime, afterID, err := pagination.DecodeToken(pageToken)
		if err != nil {
			return nil, "", apperrors.ErrValidation
		}
		cut := 0
		for i, txn := range matched {
			if txn.CreatedAt.Before(afterTime) ||
				(txn.CreatedAt.Equal(afterTime) && txn.TransactionID < afterID) {
				cut = i
				break
			}
			cut = i + 1
		}
		matched = matched[cut:]
	}

	nextToken := ""
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
		last := matched[len(matched)-1]
		nextToken = pagination.EncodeToken(last.CreatedAt, last.TransactionID)
	}
	return matched, nextToken, nil
}

// TotalBalance sums every account balance. Test support for conservation checks.
func (r *LedgerRepository) TotalBalance() decimal.Decimal {
	r.mu.RLock()
	entries := make([]*accountEntry, 0, len(r.accounts))
	for _, entry := range r.accounts {
		entries = append(entries, entry)
	}
	r.mu.RUnlock()

	total := decimal.Zero
	for _, entry := range entries {
		entry.mu.Lock()
		total = total.Add(entry.account.Balance)
		entry.mu.Unlock()
	}
	return total
}
