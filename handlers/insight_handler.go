// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"clarity-server/db"
	"clarity-server/middlewares"
	"clarity-server/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ListInsightsHandler godoc
// @Summary      List insights
// @Description  Lists the user's unexpired insights, newest first.
// @Tags         insights
// @Produce      json
// @Success      200 {object} InsightListResponse
// @Failure      401 {object} ErrorResponse
// @Router       /api/insights [get]
func ListInsightsHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := c.Logger()

		claims, err := middlewares.GetClaims(c)
		if err != nil {
			return echo.ErrUnauthorized
		}

		var insights []models.Insight
		if err := db.Conn.
			Where("user_id = ? AND (expires_at IS NULL OR expires_at > ?)", claims.UserID, time.Now()).
			Order("generated_at DESC").Find(&insights).Error; err != nil {
			logger.Errorf("Failed to list insights: %v", err)
			return echo.ErrInternalServerError
		}

		resp := InsightListResponse{Insights: make([]InsightDetails, 0, len(insights))}
		for _, ins := range insights {
			var priority *string
			if ins.Priority != nil {
				s := string(*ins.Priority)
				priority = &s
			}
			var data any
			if len(ins.Data) > 0 {
				_ = json.Unmarshal(ins.Data, &data)
			}
			resp.Insights = append(resp.Insights, InsightDetails{
				ID:          ins.ID.String(),
				InsightType: string(ins.InsightType),
				Title:       ins.Title,
				Description: ins.Description,
				Priority:    priority,
				Data:        data,
				IsRead:      ins.IsRead,
				GeneratedAt: ins.GeneratedAt.Format(time.RFC3339),
			})
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// MarkInsightReadHandler godoc
// @Summary      Mark an insight as read
// @Tags         insights
// @Produce      json
// @Success      200 {object} GenericResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/insights/{insight_id}/read [put]
func MarkInsightReadHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := c.Logger()

		claims, err := middlewares.GetClaims(c)
		if err != nil {
			return echo.ErrUnauthorized
		}

		insightID, err := uuid.Parse(c.Param("insight_id"))
		if err != nil {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Insight not found"})
		}

		res := db.Conn.Model(&models.Insight{}).
			Where("id = ? AND user_id = ?", insightID, claims.UserID).
			Update("is_read", true)
		if res.Error != nil {
			logger.Errorf("Failed to mark insight read: %v", res.Error)
			return echo.ErrInternalServerError
		}
		if res.RowsAffected == 0 {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Insight not found"})
		}
		return c.JSON(http.StatusOK, GenericResponse{Message: "Insight marked as read"})
	}
}
