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

func budgetDetails(b models.Budget) BudgetDetails {
	var categoryID *string
	if b.CategoryID != nil {
		s := b.CategoryID.String()
		categoryID = &s
	}
	var endDate *string
	if b.EndDate != nil {
		s := b.EndDate.Format(dateLayout)
		endDate = &s
	}
	return BudgetDetails{
		ID:         b.ID.String(),
		CategoryID: categoryID,
		Amount:     b.Amount,
		Period:     string(b.Period),
		StartDate:  b.StartDate.Format(dateLayout),
		EndDate:    endDate,
		CreatedAt:  b.CreatedAt.Format(time.RFC3339),
	}
}

// ListBudgetsHandler godoc
// @Summary      List budgets
// @Tags         budgets
// @Produce      json
// @Success      200 {object} BudgetListResponse
// @Failure      401 {object} ErrorResponse
// @Router       /api/budgets [get]
func ListBudgetsHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := c.Logger()

		claims, err := middlewares.GetClaims(c)
		if err != nil {
			return echo.ErrUnauthorized
		}

		var budgets []models.Budget
		if err := db.Conn.Where("user_id = ?", claims.UserID).
			Order("start_date DESC").Find(&budgets).Error; err != nil {
			logger.Errorf("Failed to list budgets: %v", err)
			return echo.ErrInternalServerError
		}

		resp := BudgetListResponse{Budgets: make([]BudgetDetails, 0, len(budgets))}
		for _, b := range budgets {
			resp.Budgets = append(resp.Budgets, budgetDetails(b))
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// CreateBudgetHandler godoc
// @Summary      Create a budget
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Param        budgetRequest  body  BudgetRequest  true  "Budget payload"
// @Success      201 {object} BudgetDetails
// @Failure      400 {object} ErrorResponse
// @Router       /api/budgets [post]
func CreateBudgetHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := c.Logger()

		claims, err := middlewares.GetClaims(c)
		if err != nil {
			return echo.ErrUnauthorized
		}

		var req BudgetRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Invalid budget request payload:", err)
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		}

		var details []FieldError
		if req.Amount == "" {
			details = append(details, FieldError{Field: "amount", Message: "Amount is required"})
		}
		if !models.BudgetPeriod(req.Period).Valid() {
			details = append(details, FieldError{Field: "period", Message: "Period must be monthly or yearly"})
		}
		var startDate time.Time
		if req.StartDate == "" {
			details = append(details, FieldError{Field: "start_date", Message: "Start date is required"})
		} else {
			startDate, err = time.Parse(dateLayout, req.StartDate)
			if err != nil {
				details = append(details, FieldError{Field: "start_date", Message: "Start date must be in YYYY-MM-DD format"})
			}
		}
		if len(details) > 0 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Details: details})
		}

		budget := models.Budget{
			Amount:    req.Amount,
			Period:    models.BudgetPeriod(req.Period),
			StartDate: startDate,
			UserID:    claims.UserID,
		}

		if req.CategoryID != nil && *req.CategoryID != "" {
			categoryID, err := uuid.Parse(*req.CategoryID)
			if err != nil {
				return c.JSON(http.StatusBadRequest, ErrorResponse{
					Error:   "Validation failed",
					Details: []FieldError{{Field: "category_id", Message: "Invalid category"}},
				})
			}
			budget.CategoryID = &categoryID
		}
		if req.EndDate != nil && *req.EndDate != "" {
			endDate, err := time.Parse(dateLayout, *req.EndDate)
			if err != nil {
				return c.JSON(http.StatusBadRequest, ErrorResponse{
					Error:   "Validation failed",
					Details: []FieldError{{Field: "end_date", Message: "End date must be in YYYY-MM-DD format"}},
				})
			}
			budget.EndDate = &endDate
		}

		if err := db.Conn.Create(&budget).Error; err != nil {
			logger.Errorf("Failed to create budget: %v", err)
			return echo.ErrInternalServerError
		}

		logger.Infof("Budget created successfully")
		return c.JSON(http.StatusCreated, budgetDetails(budget))
	}
}

// UpdateBudgetHandler godoc
// @Summary      Update a budget
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Success      200 {object} BudgetDetails
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/budgets/{budget_id} [put]
func UpdateBudgetHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := c.Logger()

		claims, err := middlewares.GetClaims(c)
		if err != nil {
			return echo.ErrUnauthorized
		}

		budgetID, err := uuid.Parse(c.Param("budget_id"))
		if err != nil {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Budget not found"})
		}
		var budget models.Budget
		if err := db.Conn.Where("id = ? AND user_id = ?", budgetID, claims.UserID).
			First(&budget).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Budget not found"})
			}
			logger.Errorf("Failed to find budget: %v", err)
			return echo.ErrInternalServerError
		}

		var req BudgetRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Invalid budget request payload:", err)
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		}

		if req.Amount != "" {
			budget.Amount = req.Amount
		}
		if req.Period != "" {
			if !models.BudgetPeriod(req.Period).Valid() {
				return c.JSON(http.StatusBadRequest, ErrorResponse{
					Error:   "Validation failed",
					Details: []FieldError{{Field: "period", Message: "Period must be monthly or yearly"}},
				})
			}
			budget.Period = models.BudgetPeriod(req.Period)
		}
		if req.StartDate != "" {
			startDate, err := time.Parse(dateLayout, req.StartDate)
			if err != nil {
				return c.JSON(http.StatusBadRequest, ErrorResponse{
					Error:   "Validation failed",
					Details: []FieldError{{Field: "start_date", Message: "Start date must be in YYYY-MM-DD format"}},
				})
			}
			budget.StartDate = startDate
		}
		if req.EndDate != nil {
			if *req.EndDate == "" {
				budget.EndDate = nil
			} else {
				endDate, err := time.Parse(dateLayout, *req.EndDate)
				if err != nil {
					return c.JSON(http.StatusBadRequest, ErrorResponse{
						Error:   "Validation failed",
						Details: []FieldError{{Field: "end_date", Message: "End date must be in YYYY-MM-DD format"}},
					})
				}
				budget.EndDate = &endDate
			}
		}
		if req.CategoryID != nil {
			if *req.CategoryID == "" {
				budget.CategoryID = nil
			} else {
				categoryID, err := uuid.Parse(*req.CategoryID)
				if err != nil {
					return c.JSON(http.StatusBadRequest, ErrorResponse{
						Error:   "Validation failed",
						Details: []FieldError{{Field: "category_id", Message: "Invalid category"}},
					})
				}
				budget.CategoryID = &categoryID
			}
		}

		if err := db.Conn.Save(&budget).Error; err != nil {
			logger.Errorf("Failed to update budget: %v", err)
			return echo.ErrInternalServerError
		}
		return c.JSON(http.StatusOK, budgetDetails(budget))
	}
}

// DeleteBudgetHandler godoc
// @Summary      Delete a budget
// @Tags         budgets
// @Success      204 "Budget deleted"
// @Failure      404 {object} ErrorResponse
// @Router       /api/budgets/{budget_id} [delete]
func DeleteBudgetHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := c.Logger()

		claims, err := middlewares.GetClaims(c)
		if err != nil {
			return echo.ErrUnauthorized
		}

		budgetID, err := uuid.Parse(c.Param("budget_id"))
		if err != nil {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Budget not found"})
		}

		res := db.Conn.Where("id = ? AND user_id = ?", budgetID, claims.UserID).
			Delete(&models.Budget{})
		if res.Error != nil {
			logger.Errorf("Failed to delete budget: %v", res.Error)
			return echo.ErrInternalServerError
		}
		if res.RowsAffected == 0 {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Budget not found"})
		}
		return c.NoContent(http.StatusNoContent)
	}
}
