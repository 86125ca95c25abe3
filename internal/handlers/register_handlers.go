package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/corebank/banking-backend/internal/core/ports/services"
	"github.com/corebank/banking-backend/internal/middleware"
)

// RegisterHandlers wires every API route onto the engine. Paths match the
// public API contract: /api/register, /api/login, /api/accounts,
// /api/balance/:account_id, /api/transfer, /api/transactions/:account_id.
func RegisterHandlers(r *gin.Engine, services *portssvc.ServicesContainer) {
	authHandler := NewAuthHandler(services.User, services.Session)
	accountHandler := NewAccountHandler(services.Account)
	transferHandler := NewTransferHandler(services.Transfer, services.Account)

	// 5 attempts per minute per IP on the credential endpoint.
	rate, _ := limiter.NewRateFromFormatted("5-M")
	loginLimiter := limiter.New(memory.NewStore(), rate)

	r.GET("/healthz", Healthz)

	api := r.Group("/api")
	{
		api.POST("/register", authHandler.Register)
		api.POST("/login", middleware.RateLimit(loginLimiter), authHandler.Login)
	}

	authed := r.Group("/api", middleware.AuthMiddleware(services.Session))
	{
		authed.POST("/logout", authHandler.Logout)
		authed.GET("/accounts", accountHandler.ListAccounts)
		authed.POST("/accounts", accountHandler.CreateAccount)
		authed.GET("/balance/:account_id", accountHandler.GetBalance)
		authed.POST("/transfer", transferHandler.Transfer)
		authed.GET("/transactions/:account_id", transferHandler.ListTransactions)
	}
}
