package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tags the kind of money movement a transaction records.
type TransactionType string

const TransferTransaction TransactionType = "transfer"

// TransactionStatus is the outcome recorded on a transaction. Failed
// transfers are never recorded, so every written record is completed.
type TransactionStatus string

const TransactionCompleted TransactionStatus = "completed"

// Transaction is an immutable, append-only audit record of a money movement.
// Once written it is never mutated. The set of transactions referencing an
// account reconstructs that account's balance history.
type Transaction struct {
	TransactionID   string            `json:"transactionID"` // Primary Key (UUID)
	FromAccountID   string            `json:"fromAccountID"`
	ToAccountID     string            `json:"toAccountID"`
	Amount          decimal.Decimal   `json:"amount"` // Always > 0
	TransactionType TransactionType   `json:"transactionType"`
	Description     string            `json:"description"`
	Status          TransactionStatus `json:"status"`
	CreatedAt       time.Time         `json:"createdAt"` // UTC
}
