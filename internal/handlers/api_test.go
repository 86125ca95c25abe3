package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/corebank/banking-backend/internal/core/services"
	"github.com/corebank/banking-backend/internal/dto"
	"github.com/corebank/banking-backend/internal/handlers"
	"github.com/corebank/banking-backend/internal/platform/config"
	"github.com/corebank/banking-backend/internal/repositories/memory"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// APITestSuite exercises the HTTP surface end to end against the in-memory
// stores: real routing, real auth middleware, real services.
type APITestSuite struct {
	suite.Suite
	router *gin.Engine
	ledger *memory.LedgerRepository
}

func (suite *APITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		SessionSecret:            "api-test-secret-0123456789abcdef",
		SessionIssuer:            "banking-backend-test",
		SessionExpiryDuration:    24 * time.Hour,
		TransferCeiling:          decimal.NewFromInt(1000000),
		TransferMaxRetries:       3,
		AccountNumberMaxAttempts: 5,
	}
	suite.ledger = memory.NewLedgerRepository()
	container := services.NewServicesContainer(cfg, suite.ledger, memory.NewUserRepository())

	suite.router = gin.New()
	handlers.RegisterHandlers(suite.router, container)
}

func (suite *APITestSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *APITestSuite) registerAndLogin(username string) (token, userID string) {
	w := suite.do(http.MethodPost, "/api/register", "", dto.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = suite.do(http.MethodPost, "/api/login", "", dto.LoginRequest{
		Username: username,
		Password: "password123",
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().True(resp.Success)
	suite.Require().NotEmpty(resp.Token)
	return resp.Token, resp.UserID
}

func (suite *APITestSuite) createAccount(token string, deposit int64) dto.CreateAccountResponse {
	w := suite.do(http.MethodPost, "/api/accounts", token, dto.CreateAccountRequest{
		AccountType:    "checking",
		InitialDeposit: decimal.NewFromInt(deposit),
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.CreateAccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func (suite *APITestSuite) TestHealthz() {
	w := suite.do(http.MethodGet, "/healthz", "", nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *APITestSuite) TestRegister_DuplicateUsername() {
	suite.registerAndLogin("alice")

	w := suite.do(http.MethodPost, "/api/register", "", dto.RegisterRequest{
		Username: "alice",
		Email:    "other@example.com",
		Password: "password456",
	})
	suite.Equal(http.StatusConflict, w.Code)

	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Username already exists", resp.Error)
}

func (suite *APITestSuite) TestRegister_MalformedBody() {
	w := suite.do(http.MethodPost, "/api/register", "", map[string]string{"username": "alice"})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *APITestSuite) TestLogin_WrongPassword() {
	suite.registerAndLogin("alice")

	w := suite.do(http.MethodPost, "/api/login", "", dto.LoginRequest{
		Username: "alice",
		Password: "wrong",
	})
	suite.Equal(http.StatusUnauthorized, w.Code)

	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Invalid credentials", resp.Error)
}

func (suite *APITestSuite) TestProtectedRoutes_RequireToken() {
	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/accounts"},
		{http.MethodPost, "/api/accounts"},
		{http.MethodGet, "/api/balance/some-id"},
		{http.MethodPost, "/api/transfer"},
		{http.MethodGet, "/api/transactions/some-id"},
		{http.MethodPost, "/api/logout"},
	} {
		w := suite.do(route.method, route.path, "", nil)
		suite.Equal(http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)

		w = suite.do(route.method, route.path, "garbage-token", nil)
		suite.Equal(http.StatusUnauthorized, w.Code, "%s %s with bad token", route.method, route.path)
	}
}

func (suite *APITestSuite) TestCreateAndListAccounts() {
	token, _ := suite.registerAndLogin("alice")

	created := suite.createAccount(token, 250)
	suite.NotEmpty(created.AccountID)
	suite.Regexp(`^ACC[A-Za-z0-9]{10}$`, created.AccountNumber)

	w := suite.do(http.MethodGet, "/api/accounts", token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var accounts []dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &accounts))
	suite.Require().Len(accounts, 1)
	suite.Equal(created.AccountNumber, accounts[0].AccountNumber)
	suite.True(accounts[0].Balance.Equal(decimal.NewFromInt(250)))
}

func (suite *APITestSuite) TestGetBalance_OwnershipEnforced() {
	aliceToken, _ := suite.registerAndLogin("alice")
	bobToken, _ := suite.registerAndLogin("bob")
	account := suite.createAccount(aliceToken, 100)

	w := suite.do(http.MethodGet, "/api/balance/"+account.AccountID, aliceToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var balance dto.BalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &balance))
	suite.True(balance.Balance.Equal(decimal.NewFromInt(100)))

	// Bob holds a valid session but does not own the account.
	w = suite.do(http.MethodGet, "/api/balance/"+account.AccountID, bobToken, nil)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *APITestSuite) TestTransfer_EndToEnd() {
	aliceToken, _ := suite.registerAndLogin("alice")
	bobToken, _ := suite.registerAndLogin("bob")
	aliceAccount := suite.createAccount(aliceToken, 500)
	bobAccount := suite.createAccount(bobToken, 0)

	w := suite.do(http.MethodPost, "/api/transfer", aliceToken, dto.TransferRequest{
		FromAccount:     aliceAccount.AccountID,
		ToAccountNumber: bobAccount.AccountNumber,
		Amount:          decimal.NewFromInt(150),
		Description:     "rent",
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var msg dto.MessageResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &msg))
	suite.True(msg.Success)
	suite.Equal("Transfer completed successfully", msg.Message)

	// Balances reflect the transfer on both sides.
	w = suite.do(http.MethodGet, "/api/balance/"+aliceAccount.AccountID, aliceToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var balance dto.BalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &balance))
	suite.True(balance.Balance.Equal(decimal.NewFromInt(350)))

	w = suite.do(http.MethodGet, "/api/balance/"+bobAccount.AccountID, bobToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &balance))
	suite.True(balance.Balance.Equal(decimal.NewFromInt(150)))

	// Both accounts see the transaction in their history.
	for _, probe := range []struct{ token, accountID string }{
		{aliceToken, aliceAccount.AccountID},
		{bobToken, bobAccount.AccountID},
	} {
		w = suite.do(http.MethodGet, "/api/transactions/"+probe.accountID, probe.token, nil)
		suite.Require().Equal(http.StatusOK, w.Code)
		var txns []dto.TransactionResponse
		suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &txns))
		suite.Require().Len(txns, 1)
		suite.True(txns[0].Amount.Equal(decimal.NewFromInt(150)))
		suite.Equal("rent", txns[0].Description)
	}
}

func (suite *APITestSuite) TestTransfer_InsufficientFunds() {
	aliceToken, _ := suite.registerAndLogin("alice")
	bobToken, _ := suite.registerAndLogin("bob")
	aliceAccount := suite.createAccount(aliceToken, 50)
	bobAccount := suite.createAccount(bobToken, 0)

	w := suite.do(http.MethodPost, "/api/transfer", aliceToken, dto.TransferRequest{
		FromAccount:     aliceAccount.AccountID,
		ToAccountNumber: bobAccount.AccountNumber,
		Amount:          decimal.NewFromInt(51),
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Insufficient balance", resp.Error)
}

func (suite *APITestSuite) TestTransfer_FromSomeoneElsesAccount() {
	aliceToken, _ := suite.registerAndLogin("alice")
	bobToken, _ := suite.registerAndLogin("bob")
	aliceAccount := suite.createAccount(aliceToken, 500)
	bobAccount := suite.createAccount(bobToken, 0)

	w := suite.do(http.MethodPost, "/api/transfer", bobToken, dto.TransferRequest{
		FromAccount:     aliceAccount.AccountID,
		ToAccountNumber: bobAccount.AccountNumber,
		Amount:          decimal.NewFromInt(10),
	})
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *APITestSuite) TestTransfer_UnknownDestination() {
	aliceToken, _ := suite.registerAndLogin("alice")
	aliceAccount := suite.createAccount(aliceToken, 500)

	w := suite.do(http.MethodPost, "/api/transfer", aliceToken, dto.TransferRequest{
		FromAccount:     aliceAccount.AccountID,
		ToAccountNumber: "ACCnosuchnum0",
		Amount:          decimal.NewFromInt(10),
	})
	suite.Equal(http.StatusNotFound, w.Code)

	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Account not found", resp.Error)
}

func (suite *APITestSuite) TestTransactions_Pagination() {
	aliceToken, _ := suite.registerAndLogin("alice")
	bobToken, _ := suite.registerAndLogin("bob")
	aliceAccount := suite.createAccount(aliceToken, 500)
	bobAccount := suite.createAccount(bobToken, 0)

	for i := 0; i < 5; i++ {
		w := suite.do(http.MethodPost, "/api/transfer", aliceToken, dto.TransferRequest{
			FromAccount:     aliceAccount.AccountID,
			ToAccountNumber: bobAccount.AccountNumber,
			Amount:          decimal.NewFromInt(1),
			Description:     fmt.Sprintf("payment %d", i),
		})
		suite.Require().Equal(http.StatusOK, w.Code)
	}

	w := suite.do(http.MethodGet, "/api/transactions/"+aliceAccount.AccountID+"?limit=2", aliceToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var page []dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &page))
	suite.Len(page, 2)
	next := w.Header().Get("X-Next-Page-Token")
	suite.Require().NotEmpty(next)

	seen := map[string]bool{page[0].ID: true, page[1].ID: true}
	for next != "" {
		w = suite.do(http.MethodGet,
			"/api/transactions/"+aliceAccount.AccountID+"?limit=2&page_token="+next, aliceToken, nil)
		suite.Require().Equal(http.StatusOK, w.Code)
		suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &page))
		for _, txn := range page {
			suite.False(seen[txn.ID], "transaction repeated across pages")
			seen[txn.ID] = true
		}
		next = w.Header().Get("X-Next-Page-Token")
	}
	suite.Len(seen, 5)
}

func (suite *APITestSuite) TestLogout_RevokesSession() {
	token, _ := suite.registerAndLogin("alice")

	w := suite.do(http.MethodPost, "/api/logout", token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	// The revoked token no longer opens protected routes.
	w = suite.do(http.MethodGet, "/api/accounts", token, nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
