package dto

import "github.com/shopspring/decimal"

// TransferRequest is the POST /api/transfer body. The source is referenced
// by account id, the destination by its human-facing account number.
type TransferRequest struct {
	FromAccount     string          `json:"from_account" binding:"required"`
	ToAccountNumber string          `json:"to_account_number" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"gt=0"`
	Description     string          `json:"description"`
}
