package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/corebank/banking-backend/internal/core/domain"
)

// TransactionResponse is one element of the GET /api/transactions listing.
// Timestamps are UTC ISO-8601.
type TransactionResponse struct {
	ID              string          `json:"id"`
	FromAccount     string          `json:"from_account"`
	ToAccount       string          `json:"to_account"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionType string          `json:"transaction_type"`
	Description     string          `json:"description"`
	Timestamp       string          `json:"timestamp"`
	Status          string          `json:"status"`
}

// ToTransactionResponse maps a domain transaction onto the wire shape.
func ToTransactionResponse(t domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:              t.TransactionID,
		FromAccount:     t.FromAccountID,
		ToAccount:       t.ToAccountID,
		Amount:          t.Amount,
		TransactionType: string(t.TransactionType),
		Description:     t.Description,
		Timestamp:       t.CreatedAt.UTC().Format(time.RFC3339),
		Status:          string(t.Status),
	}
}

// ToTransactionResponses maps a slice of domain transactions onto the wire shape.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txns))
	for _, t := range txns {
		out = append(out, ToTransactionResponse(t))
	}
	return out
}
