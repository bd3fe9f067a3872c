// SPDX-License-Identifier: GPL-3.0-only

package routes

import (
	"clarity-server/commons"
	"clarity-server/handlers"
	"clarity-server/middlewares"
	"clarity-server/notifications"
	"clarity-server/sessions"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

func RegisterRoutes(e *echo.Echo, manager *sessions.Manager, mailer *notifications.Dispatcher) {
	commons.Logger.Debug("Registering API routes")

	// Credential endpoints are the brute-force surface; throttle per IP.
	auth := e.Group("/api/auth",
		middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(10))))
	auth.POST("/signup", handlers.SignupHandler(mailer))
	auth.POST("/login", handlers.LoginHandler(manager))
	auth.POST("/logout", handlers.LogoutHandler(manager))
	auth.GET("/session", handlers.SessionHandler(manager))
	auth.POST("/verify-email", handlers.VerifyEmailHandler())
	auth.POST("/resend-verification", handlers.ResendVerificationHandler(mailer))
	auth.POST("/forgot-password", handlers.ForgotPasswordHandler(mailer))
	auth.POST("/reset-password", handlers.ResetPasswordHandler())

	api := e.Group("/api", middlewares.RequireSession(manager), middlewares.RequireVerified())
	api.GET("/accounts", handlers.ListAccountsHandler())
	api.POST("/accounts", handlers.CreateAccountHandler())
	api.GET("/accounts/:account_id", handlers.GetAccountHandler())
	api.PUT("/accounts/:account_id", handlers.UpdateAccountHandler())
	api.DELETE("/accounts/:account_id", handlers.DeleteAccountHandler())
	api.GET("/transactions", handlers.ListTransactionsHandler())
	api.POST("/transactions", handlers.CreateTransactionHandler())
	api.PUT("/transactions/:transaction_id", handlers.UpdateTransactionHandler())
	api.DELETE("/transactions/:transaction_id", handlers.DeleteTransactionHandler())
	api.GET("/budgets", handlers.ListBudgetsHandler())
	api.POST("/budgets", handlers.CreateBudgetHandler())
	api.PUT("/budgets/:budget_id", handlers.UpdateBudgetHandler())
	api.DELETE("/budgets/:budget_id", handlers.DeleteBudgetHandler())
	api.GET("/categories", handlers.ListCategoriesHandler())
	api.GET("/insights", handlers.ListInsightsHandler())
	api.PUT("/insights/:insight_id/read", handlers.MarkInsightReadHandler())

	commons.Logger.Info("API routes registered successfully")
}
