// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"clarity-server/db"
	"clarity-server/middlewares"
	"clarity-server/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

func transactionDetails(t models.Transaction) TransactionDetails {
	var tags []string
	if len(t.Tags) > 0 {
		_ = json.Unmarshal(t.Tags, &tags)
	}
	var categoryID *string
	if t.CategoryID != nil {
		s := t.CategoryID.String()
		categoryID = &s
	}
	return TransactionDetails{
		ID:               t.ID.String(),
		AccountID:        t.AccountID.String(),
		Amount:           t.Amount,
		Type:             string(t.Type),
		CategoryID:       categoryID,
		MerchantName:     t.MerchantName,
		Description:      t.Description,
		Date:             t.Date.Format(dateLayout),
		IsRecurring:      t.IsRecurring,
		RecurringPattern: t.RecurringPattern,
		Tags:             tags,
		CreatedAt:        t.CreatedAt.Format(time.RFC3339),
	}
}

func validateTransactionRequest(req TransactionRequest) ([]FieldError, time.Time) {
	var details []FieldError

	if req.AccountID == "" {
		details = append(details, FieldError{Field: "account_id", Message: "Account is required"})
	}
	if req.Amount == "" {
		details = append(details, FieldError{Field: "amount", Message: "Amount is required"})
	}
	if !models.TransactionType(req.Type).Valid() {
		details = append(details, FieldError{Field: "type", Message: "Type must be one of income, expense, transfer"})
	}

	var date time.Time
	if req.Date == "" {
		details = append(details, FieldError{Field: "date", Message: "Date is required"})
	} else {
		var err error
		date, err = time.Parse(dateLayout, req.Date)
		if err != nil {
			details = append(details, FieldError{Field: "date", Message: "Date must be in YYYY-MM-DD format"})
		}
	}
	return details, date
}

// ListTransactionsHandler godoc
// @Summary      List transactions
// @Description  Lists the user's transactions, optionally filtered by account, category, type and date range.
// @Tags         transactions
// @Produce      json
// @Param        account_id   query  string  false  "Filter by account"
// @Param        category_id  query  string  false  "Filter by category"
// @Param        type         query  string  false  "Filter by type"
// @Param        from         query  string  false  "Start date (YYYY-MM-DD)"
// @Param        to           query  string  false  "End date (YYYY-MM-DD)"
// @Success      200 {object} TransactionListResponse
// @Failure      401 {object} ErrorResponse
// @Router       /api/transactions [get]
func ListTransactionsHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := c.Logger()

		claims, err := middlewares.GetClaims(c)
		if err != nil {
			return echo.ErrUnauthorized
		}

		query := db.Conn.Where("user_id = ?", claims.UserID)
		if v := c.QueryParam("account_id"); v != "" {
			query = query.Where("account_id = ?", v)
		}
		if v := c.QueryParam("category_id"); v != "" {
			query = query.Where("category_id = ?", v)
		}
		if v := c.QueryParam("type"); v != "" {
			query = query.Where("type = ?", v)
		}
		if v := c.QueryParam("from"); v != "" {
			if from, err := time.Parse(dateLayout, v); err == nil {
				query = query.Where("date >= ?", from)
			}
		}
		if v := c.QueryParam("to"); v != "" {
			if to, err := time.Parse(dateLayout, v); err == nil {
				query = query.Where("date <= ?", to)
			}
		}

		var transactions []models.Transaction
		if err := query.Order("date DESC, created_at DESC").Find(&transactions).Error; err != nil {
			logger.Errorf("Failed to list transactions: %v", err)
			return echo.ErrInternalServerError
		}

		resp := TransactionListResponse{Transactions: make([]TransactionDetails, 0, len(transactions))}
		for _, t := range transactions {
			resp.Transactions = append(resp.Transactions, transactionDetails(t))
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// CreateTransactionHandler godoc
// @Summary      Record a transaction
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        transactionRequest  body  TransactionRequest  true  "Transaction payload"
// @Success      201 {object} TransactionDetails
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Account not found"
// @Router       /api/transactions [post]
func CreateTransactionHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := c.Logger()

		claims, err := middlewares.GetClaims(c)
		if err != nil {
			return echo.ErrUnauthorized
		}

		var req TransactionRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Invalid transaction request payload:", err)
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		}

		details, date := validateTransactionRequest(req)
		if len(details) > 0 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Details: details})
		}

		accountID, err := uuid.Parse(req.AccountID)
		if err != nil {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
		}
		var account models.Account
		if err := db.Conn.Where("id = ? AND user_id = ?", accountID, claims.UserID).
			First(&account).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
			}
			logger.Errorf("Failed to find account: %v", err)
			return echo.ErrInternalServerError
		}

		transaction := models.Transaction{
			Amount:           req.Amount,
			Type:             models.TransactionType(req.Type),
			MerchantName:     req.MerchantName,
			Description:      req.Description,
			Date:             date,
			RecurringPattern: req.RecurringPattern,
			AccountID:        account.ID,
			UserID:           claims.UserID,
		}
		if req.IsRecurring != nil {
			transaction.IsRecurring = *req.IsRecurring
		}

		if req.CategoryID != nil && *req.CategoryID != "" {
			categoryID, err := uuid.Parse(*req.CategoryID)
			if err != nil {
				return c.JSON(http.StatusBadRequest, ErrorResponse{
					Error:   "Validation failed",
					Details: []FieldError{{Field: "category_id", Message: "Invalid category"}},
				})
			}
			transaction.CategoryID = &categoryID
		}

		if len(req.Tags) > 0 {
			raw, err := json.Marshal(req.Tags)
			if err != nil {
				logger.Errorf("Failed to encode tags: %v", err)
				return echo.ErrInternalServerError
			}
			transaction.Tags = datatypes.JSON(raw)
		}

		if err := db.Conn.Create(&transaction).Error; err != nil {
			logger.Errorf("Failed to create transaction: %v", err)
			return echo.ErrInternalServerError
		}

		logger.Infof("Transaction recorded successfully")
		return c.JSON(http.StatusCreated, transactionDetails(transaction))
	}
}

// UpdateTransactionHandler godoc
// @Summary      Update a transaction
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Success      200 {object} TransactionDetails
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/transactions/{transaction_id} [put]
func UpdateTransactionHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := c.Logger()

		claims, err := middlewares.GetClaims(c)
		if err != nil {
			return echo.ErrUnauthorized
		}

		transactionID, err := uuid.Parse(c.Param("transaction_id"))
		if err != nil {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Transaction not found"})
		}
		var transaction models.Transaction
		if err := db.Conn.Where("id = ? AND user_id = ?", transactionID, claims.UserID).
			First(&transaction).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Transaction not found"})
			}
			logger.Errorf("Failed to find transaction: %v", err)
			return echo.ErrInternalServerError
		}

		var req TransactionRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Invalid transaction request payload:", err)
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		}

		if req.Amount != "" {
			transaction.Amount = req.Amount
		}
		if req.Type != "" {
			if !models.TransactionType(req.Type).Valid() {
				return c.JSON(http.StatusBadRequest, ErrorResponse{
					Error:   "Validation failed",
					Details: []FieldError{{Field: "type", Message: "Type must be one of income, expense, transfer"}},
				})
			}
			transaction.Type = models.TransactionType(req.Type)
		}
		if req.Date != "" {
			date, err := time.Parse(dateLayout, req.Date)
			if err != nil {
				return c.JSON(http.StatusBadRequest, ErrorResponse{
					Error:   "Validation failed",
					Details: []FieldError{{Field: "date", Message: "Date must be in YYYY-MM-DD format"}},
				})
			}
			transaction.Date = date
		}
		if req.AccountID != "" {
			accountID, err := uuid.Parse(req.AccountID)
			if err != nil {
				return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
			}
			var account models.Account
			if err := db.Conn.Where("id = ? AND user_id = ?", accountID, claims.UserID).
				First(&account).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
				}
				logger.Errorf("Failed to find account: %v", err)
				return echo.ErrInternalServerError
			}
			transaction.AccountID = account.ID
		}
		if req.CategoryID != nil {
			if *req.CategoryID == "" {
				transaction.CategoryID = nil
			} else {
				categoryID, err := uuid.Parse(*req.CategoryID)
				if err != nil {
					return c.JSON(http.StatusBadRequest, ErrorResponse{
						Error:   "Validation failed",
						Details: []FieldError{{Field: "category_id", Message: "Invalid category"}},
					})
				}
				transaction.CategoryID = &categoryID
			}
		}
		if req.MerchantName != nil {
			transaction.MerchantName = req.MerchantName
		}
		if req.Description != nil {
			transaction.Description = req.Description
		}
		if req.RecurringPattern != nil {
			transaction.RecurringPattern = req.RecurringPattern
		}
		if req.IsRecurring != nil {
			transaction.IsRecurring = *req.IsRecurring
		}
		if req.Tags != nil {
			raw, err := json.Marshal(req.Tags)
			if err != nil {
				logger.Errorf("Failed to encode tags: %v", err)
				return echo.ErrInternalServerError
			}
			transaction.Tags = datatypes.JSON(raw)
		}

		if err := db.Conn.Save(&transaction).Error; err != nil {
			logger.Errorf("Failed to update transaction: %v", err)
			return echo.ErrInternalServerError
		}
		return c.JSON(http.StatusOK, transactionDetails(transaction))
	}
}

// DeleteTransactionHandler godoc
// @Summary      Delete a transaction
// @Tags         transactions
// @Success      204 "Transaction deleted"
// @Failure      404 {object} ErrorResponse
// @Router       /api/transactions/{transaction_id} [delete]
func DeleteTransactionHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := c.Logger()

		claims, err := middlewares.GetClaims(c)
		if err != nil {
			return echo.ErrUnauthorized
		}

		transactionID, err := uuid.Parse(c.Param("transaction_id"))
		if err != nil {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Transaction not found"})
		}

		res := db.Conn.Where("id = ? AND user_id = ?", transactionID, claims.UserID).
			Delete(&models.Transaction{})
		if res.Error != nil {
			logger.Errorf("Failed to delete transaction: %v", res.Error)
			return echo.ErrInternalServerError
		}
		if res.RowsAffected == 0 {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Transaction not found"})
		}
		return c.NoContent(http.StatusNoContent)
	}
}
