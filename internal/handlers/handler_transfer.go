package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/corebank/banking-backend/internal/core/ports/services"
	"github.com/corebank/banking-backend/internal/dto"
	"github.com/corebank/banking-backend/internal/middleware"
)

// TransferHandler handles transfers and the transaction audit trail.
type TransferHandler struct {
	transferService portssvc.TransferSvcFacade
	accountService  portssvc.AccountSvcFacade
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(ts portssvc.TransferSvcFacade, as portssvc.AccountSvcFacade) *TransferHandler {
	return &TransferHandler{transferService: ts, accountService: as}
}

// Transfer godoc
// @Summary Transfer funds
// @Description Moves funds atomically from an owned account to a destination account number.
// @Tags transfers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param transfer body dto.TransferRequest true "Transfer Details"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse "Invalid amount or insufficient funds"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Account not found"
// @Router /api/transfer [post]
func (h *TransferHandler) Transfer(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid token"})
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	_, err := h.transferService.Transfer(c.Request.Context(), userID,
		req.FromAccount, req.ToAccountNumber, req.Amount, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Transfer completed successfully"})
}

// ListTransactions godoc
// @Summary List transactions
// @Description Lists the audit trail of an owned account, newest first.
// @Tags transfers
// @Produce json
// @Security BearerAuth
// @Param account_id path string true "Account ID"
// @Param limit query int false "Page size"
// @Param page_token query string false "Cursor from a previous page"
// @Success 200 {array} dto.TransactionResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/transactions/{account_id} [get]
func (h *TransferHandler) ListTransactions(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid token"})
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	txns, nextToken, err := h.accountService.ListTransactions(c.Request.Context(),
		userID, c.Param("account_id"), limit, c.Query("page_token"))
	if err != nil {
		respondError(c, err)
		return
	}

	if nextToken != "" {
		c.Header("X-Next-Page-Token", nextToken)
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponses(txns))
}
