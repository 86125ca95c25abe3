package dto

import (
	"github.com/shopspring/decimal"

	"github.com/corebank/banking-backend/internal/core/domain"
)

// CreateAccountRequest is the POST /api/accounts body.
type CreateAccountRequest struct {
	AccountType    string          `json:"account_type" binding:"required"`
	InitialDeposit decimal.Decimal `json:"initial_deposit" binding:"gte=0"`
}

// CreateAccountResponse is returned on successful provisioning. The id is
// what later balance and transfer calls reference.
type CreateAccountResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	AccountID     string `json:"account_id"`
	AccountNumber string `json:"account_number"`
}

// AccountResponse is one element of the GET /api/accounts listing.
type AccountResponse struct {
	ID            string          `json:"id"`
	AccountNumber string          `json:"account_number"`
	AccountType   string          `json:"account_type"`
	Balance       decimal.Decimal `json:"balance"`
	Status        string          `json:"status"`
}

// BalanceResponse is the GET /api/balance/{account_id} body.
type BalanceResponse struct {
	AccountID     string          `json:"account_id"`
	Balance       decimal.Decimal `json:"balance"`
	AccountNumber string          `json:"account_number"`
}

// ToAccountResponse maps a domain account onto the wire shape.
func ToAccountResponse(a domain.Account) AccountResponse {
	return AccountResponse{
		ID:            a.AccountID,
		AccountNumber: a.AccountNumber,
		AccountType:   a.AccountType,
		Balance:       a.Balance,
		Status:        string(a.Status),
	}
}

// ToAccountResponses maps a slice of domain accounts onto the wire shape.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, ToAccountResponse(a))
	}
	return out
}
