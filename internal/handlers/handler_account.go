package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/corebank/banking-backend/internal/core/ports/services"
	"github.com/corebank/banking-backend/internal/dto"
	"github.com/corebank/banking-backend/internal/middleware"
)

// AccountHandler handles account provisioning and owner-scoped reads.
type AccountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(as portssvc.AccountSvcFacade) *AccountHandler {
	return &AccountHandler{accountService: as}
}

// CreateAccount godoc
// @Summary Create account
// @Description Provisions an account with a generated account number and an opening deposit.
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param account body dto.CreateAccountRequest true "Account Info"
// @Success 201 {object} dto.CreateAccountResponse
// @Failure 400 {object} ErrorResponse "Invalid deposit"
// @Failure 401 {object} ErrorResponse
// @Router /api/accounts [post]
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid token"})
		return
	}

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid initial deposit amount"})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), userID, req.AccountType, req.InitialDeposit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CreateAccountResponse{
		Success:       true,
		Message:       "Account created successfully",
		AccountID:     account.AccountID,
		AccountNumber: account.AccountNumber,
	})
}

// ListAccounts godoc
// @Summary List accounts
// @Description Lists the authenticated user's accounts.
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.AccountResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/accounts [get]
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid token"})
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponses(accounts))
}

// GetBalance godoc
// @Summary Get balance
// @Description Returns the current balance of an owned account.
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param account_id path string true "Account ID"
// @Success 200 {object} dto.BalanceResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/balance/{account_id} [get]
func (h *AccountHandler) GetBalance(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid token"})
		return
	}

	account, err := h.accountService.GetAccount(c.Request.Context(), userID, c.Param("account_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{
		AccountID:     account.AccountID,
		Balance:       account.Balance,
		AccountNumber: account.AccountNumber,
	})
}
