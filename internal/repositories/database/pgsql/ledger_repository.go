package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/corebank/banking-backend/internal/apperrors"
	"github.com/corebank/banking-backend/internal/core/domain"
	portsrepo "github.com/corebank/banking-backend/internal/core/ports/repositories"
	"github.com/corebank/banking-backend/internal/utils/pagination"
)

const accountColumns = `account_id, user_id, account_number, account_type, balance, status, created_at, updated_at`

// PgxLedgerRepository implements the ledger store contract over PostgreSQL.
// Transfers run in a single database transaction: both account rows are
// locked with SELECT ... FOR UPDATE in lexicographic id order, the funds
// check runs against the locked balance, and the balance updates and the
// transaction record commit together.
type PgxLedgerRepository struct {
	BaseRepository
}

// NewLedgerRepository creates a ledger repository backed by the pool.
func NewLedgerRepository(pool *pgxpool.Pool) *PgxLedgerRepository {
	return &PgxLedgerRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

// SaveAccount inserts a new account with its opening balance. The unique
// index on account_number turns collisions into apperrors.ErrDuplicate.
func (r *PgxLedgerRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		account.AccountID, account.UserID, account.AccountNumber, account.AccountType,
		account.Balance, account.Status, account.CreatedAt, account.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert account "+account.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its opaque id.
func (r *PgxLedgerRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return r.findAccount(ctx, `WHERE account_id = $1`, accountID)
}

// FindAccountByNumber retrieves an account by its human-facing number.
func (r *PgxLedgerRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	return r.findAccount(ctx, `WHERE account_number = $1`, accountNumber)
}

func (r *PgxLedgerRepository) findAccount(ctx context.Context, where string, arg any) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ` + where + `;`

	var account domain.Account
	err := r.Pool.QueryRow(ctx, query, arg).Scan(
		&account.AccountID, &account.UserID, &account.AccountNumber, &account.AccountType,
		&account.Balance, &account.Status, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account", err)
	}
	return &account, nil
}

// FindAccountsByUserID retrieves all accounts owned by a user.
func (r *PgxLedgerRepository) FindAccountsByUserID(ctx context.Context, userID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 ORDER BY created_at;`

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts for user "+userID, err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(
			&account.AccountID, &account.UserID, &account.AccountNumber, &account.AccountType,
			&account.Balance, &account.Status, &account.CreatedAt, &account.UpdatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return accounts, nil
}

// ExecuteTransfer applies the debit, the credit, and the transaction record
// as one database transaction.
func (r *PgxLedgerRepository) ExecuteTransfer(ctx context.Context, req portsrepo.TransferRequest) (*domain.Transaction, error) {
	if req.FromAccountID == req.ToAccountID {
		return nil, apperrors.ErrValidation
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	// Lock both rows in lexicographic id order so two opposite-direction
	// transfers on the same pair cannot deadlock.
	balances := make(map[string]decimal.Decimal, 2)
	for _, id := range sortedIDs(req.FromAccountID, req.ToAccountID) {
		var balance decimal.Decimal
		err := tx.QueryRow(ctx,
			`SELECT balance FROM accounts WHERE account_id = $1 FOR UPDATE;`, id,
		).Scan(&balance)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.ErrNotFound
			}
			if isSerializationError(err) {
				return nil, apperrors.ErrConflict
			}
			return nil, apperrors.NewAppError(500, "failed to lock account "+id, err)
		}
		balances[id] = balance
	}

	// Funds check against the freshly locked balance; same atomic unit as
	// the debit, so there is no check-to-use gap.
	if balances[req.FromAccountID].LessThan(req.Amount) {
		return nil, apperrors.ErrInsufficientFunds
	}

	now := time.Now().UTC()
	updateQuery := `
		UPDATE accounts SET balance = balance + $2, updated_at = $3
		WHERE account_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, req.FromAccountID, req.Amount.Neg(), now); err != nil {
		return nil, translateExecError("failed to debit account "+req.FromAccountID, err)
	}
	if _, err := tx.Exec(ctx, updateQuery, req.ToAccountID, req.Amount, now); err != nil {
		return nil, translateExecError("failed to credit account "+req.ToAccountID, err)
	}

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
	insertQuery := `
		INSERT INTO transactions (transaction_id, from_account_id, to_account_id, amount, transaction_type, description, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	if _, err := tx.Exec(ctx, insertQuery,
		txn.TransactionID, txn.FromAccountID, txn.ToAccountID, txn.Amount,
		txn.TransactionType, txn.Description, txn.Status, txn.CreatedAt); err != nil {
		return nil, translateExecError("failed to insert transaction "+txn.TransactionID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &txn, nil
}

// FindTransactionsByAccountID lists transactions touching an account, newest
// first, using a keyset cursor over (created_at, transaction_id).
func (r *PgxLedgerRepository) FindTransactionsByAccountID(ctx context.Context, accountID string, limit int, pageToken string) ([]domain.Transaction, string, error) {
	query := `
		SELECT transaction_id, from_account_id, to_account_id, amount, transaction_type, description, status, created_at
		FROM transactions
		WHERE (from_account_id = $1 OR to_account_id = $1)
	`
	args := []any{accountID}

	if pageToken != "" {
		afterTime, afterID, err := pagination.DecodeToken(pageToken)
		if err != nil {
			return nil, "", apperrors.ErrValidation
		}
		query += ` AND (created_at, transaction_id) < ($2, $3)`
		args = append(args, afterTime, afterID)
	}
	query += ` ORDER BY created_at DESC, transaction_id DESC LIMIT ` + strconv.Itoa(limit+1) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, "", apperrors.NewAppError(500, "failed to query transactions for account "+accountID, err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		var txn domain.Transaction
		if err := rows.Scan(
			&txn.TransactionID, &txn.FromAccountID, &txn.ToAccountID, &txn.Amount,
			&txn.TransactionType, &txn.Description, &txn.Status, &txn.CreatedAt); err != nil {
			return nil, "", apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, "", apperrors.NewAppError(500, "error iterating transaction rows", err)
	}

	nextToken := ""
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[len(txns)-1]
		nextToken = pagination.EncodeToken(last.CreatedAt, last.TransactionID)
	}
	return txns, nextToken, nil
}

func translateExecError(msg string, err error) error {
	if isSerializationError(err) {
		return apperrors.ErrConflict
	}
	return apperrors.NewAppError(500, msg, err)
}

func sortedIDs(a, b string) []string {
	if a < b {
		return []string{a, b}
	}
	return []string{b, a}
}

