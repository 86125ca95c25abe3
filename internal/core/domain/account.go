package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	AccountActive AccountStatus = "active"
	AccountFrozen AccountStatus = "frozen"
)

// Account represents a money-holding account within the core domain.
// Invariant: Balance >= 0 at all observable times. The balance is mutated
// only by the transfer engine and by provisioning (opening deposit);
// every mutation goes through the ledger store.
type Account struct {
	AccountID     string          `json:"accountID"`     // Primary Key (UUID)
	UserID        string          `json:"userID"`        // Owning user
	AccountNumber string          `json:"accountNumber"` // Globally unique, "ACC" + 10 alphanumerics
	AccountType   string          `json:"accountType"`   // Free-form tag, e.g. "checking"
	Balance       decimal.Decimal `json:"balance"`
	Status        AccountStatus   `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}
