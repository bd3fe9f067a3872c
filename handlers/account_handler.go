// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"net/http"
	"time"

	"clarity-server/db"
	"clarity-server/middlewares"
	"clarity-server/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func accountDetails(a models.Account) AccountDetails {
	return AccountDetails{
		ID:        a.ID.String(),
		Name:      a.Name,
		Type:      string(a.Type),
		Balance:   a.Balance,
		Currency:  a.Currency,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
		UpdatedAt: a.UpdatedAt.Format(time.RFC3339),
	}
}

// ListAccountsHandler godoc
// @Summary      List accounts
// @Tags         accounts
// @Produce      json
// @Success      200 {object} AccountListResponse
// @Failure      401 {object} ErrorResponse
// @Router       /api/accounts [get]
func ListAccountsHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := c.Logger()

		claims, err := middlewares.GetClaims(c)
		if err != nil {
			return echo.ErrUnauthorized
		}

		var accounts []models.Account
		if err := db.Conn.Where("user_id = ?", claims.UserID).
			Order("created_at ASC").Find(&accounts).Error; err != nil {
			logger.Errorf("Failed to list accounts: %v", err)
			return echo.ErrInternalServerError
		}

		resp := AccountListResponse{Accounts: make([]AccountDetails, 0, len(accounts))}
		for _, a := range accounts {
			resp.Accounts = append(resp.Accounts, accountDetails(a))
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// CreateAccountHandler godoc
// @Summary      Create an account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        accountRequest  body  AccountRequest  true  "Account payload"
// @Success      201 {object} AccountDetails
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /api/accounts [post]
func CreateAccountHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := c.Logger()

		claims, err := middlewares.GetClaims(c)
		if err != nil {
			return echo.ErrUnauthorized
		}

		var req AccountRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Invalid account request payload:", err)
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		}

		var details []FieldError
		if req.Name == "" {
			details = append(details, FieldError{Field: "name", Message: "Name is required"})
		}
		if !models.AccountType(req.Type).Valid() {
			details = append(details, FieldError{Field: "type", Message: "Type must be one of checking, savings, credit_card, investment"})
		}
		if len(details) > 0 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Details: details})
		}

		account := models.Account{
			Name:     req.Name,
			Type:     models.AccountType(req.Type),
			Balance:  req.Balance,
			Currency: req.Currency,
			UserID:   claims.UserID,
		}
		if account.Balance == "" {
			account.Balance = "0"
		}
		if account.Currency == "" {
			account.Currency = "USD"
		}

		if err := db.Conn.Create(&account).Error; err != nil {
			logger.Errorf("Failed to create account: %v", err)
			return echo.ErrInternalServerError
		}

		logger.Infof("Account created successfully")
		return c.JSON(http.StatusCreated, accountDetails(account))
	}
}

// findOwnedAccount loads an account by path param, scoped to the session
// user. An account belonging to someone else is indistinguishable from a
// missing one.
func findOwnedAccount(c echo.Context, userID uuid.UUID) (*models.Account, error) {
	accountID, err := uuid.Parse(c.Param("account_id"))
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	var account models.Account
	err = db.Conn.Where("id = ? AND user_id = ?", accountID, userID).First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// GetAccountHandler godoc
// @Summary      Get an account
// @Tags         accounts
// @Produce      json
// @Success      200 {object} AccountDetails
// @Failure      404 {object} ErrorResponse
// @Router       /api/accounts/{account_id} [get]
func GetAccountHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := c.Logger()

		claims, err := middlewares.GetClaims(c)
		if err != nil {
			return echo.ErrUnauthorized
		}

		account, err := findOwnedAccount(c, claims.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
			}
			logger.Errorf("Failed to find account: %v", err)
			return echo.ErrInternalServerError
		}
		return c.JSON(http.StatusOK, accountDetails(*account))
	}
}

// UpdateAccountHandler godoc
// @Summary      Update an account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Success      200 {object} AccountDetails
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/accounts/{account_id} [put]
func UpdateAccountHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := c.Logger()

		claims, err := middlewares.GetClaims(c)
		if err != nil {
			return echo.ErrUnauthorized
		}

		account, err := findOwnedAccount(c, claims.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
			}
			logger.Errorf("Failed to find account: %v", err)
			return echo.ErrInternalServerError
		}

		var req AccountRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Invalid account request payload:", err)
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		}

		if req.Name != "" {
			account.Name = req.Name
		}
		if req.Type != "" {
			if !models.AccountType(req.Type).Valid() {
				return c.JSON(http.StatusBadRequest, ErrorResponse{
					Error: "Validation failed",
					Details: []FieldError{{
						Field:   "type",
						Message: "Type must be one of checking, savings, credit_card, investment",
					}},
				})
			}
			account.Type = models.AccountType(req.Type)
		}
		if req.Balance != "" {
			account.Balance = req.Balance
		}
		if req.Currency != "" {
			account.Currency = req.Currency
		}

		if err := db.Conn.Save(account).Error; err != nil {
			logger.Errorf("Failed to update account: %v", err)
			return echo.ErrInternalServerError
		}
		return c.JSON(http.StatusOK, accountDetails(*account))
	}
}

// DeleteAccountHandler godoc
// @Summary      Delete an account
// @Description  Deletes an account; its transactions cascade with it.
// @Tags         accounts
// @Success      204 "Account deleted"
// @Failure      404 {object} ErrorResponse
// @Router       /api/accounts/{account_id} [delete]
func DeleteAccountHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := c.Logger()

		claims, err := middlewares.GetClaims(c)
		if err != nil {
			return echo.ErrUnauthorized
		}

		account, err := findOwnedAccount(c, claims.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
			}
			logger.Errorf("Failed to find account: %v", err)
			return echo.ErrInternalServerError
		}

		// Cascade removes the account's transactions; on sqlite without
		// foreign_keys enabled, delete them explicitly first.
		if err := db.Conn.Where("account_id = ?", account.ID).
			Delete(&models.Transaction{}).Error; err != nil {
			logger.Errorf("Failed to delete account transactions: %v", err)
			return echo.ErrInternalServerError
		}
		if err := db.Conn.Delete(account).Error; err != nil {
			logger.Errorf("Failed to delete account: %v", err)
			return echo.ErrInternalServerError
		}

		logger.Infof("Account deleted successfully")
		return c.NoContent(http.StatusNoContent)
	}
}
