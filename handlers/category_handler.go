// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"

	"clarity-server/db"
	"clarity-server/models"

	"github.com/labstack/echo/v4"
)

// ListCategoriesHandler godoc
// @Summary      List categories
// @Description  Lists the category catalog, system categories first.
// @Tags         categories
// @Produce      json
// @Success      200 {object} CategoryListResponse
// @Router       /api/categories [get]
func ListCategoriesHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := c.Logger()

		var categories []models.Category
		if err := db.Conn.Order("is_system DESC, name ASC").Find(&categories).Error; err != nil {
			logger.Errorf("Failed to list categories: %v", err)
			return echo.ErrInternalServerError
		}

		resp := CategoryListResponse{Categories: make([]CategoryDetails, 0, len(categories))}
		for _, cat := range categories {
			resp.Categories = append(resp.Categories, CategoryDetails{
				ID:       cat.ID.String(),
				Name:     cat.Name,
				Type:     string(cat.Type),
				Icon:     cat.Icon,
				Color:    cat.Color,
				IsSystem: cat.IsSystem,
			})
		}
		return c.JSON(http.StatusOK, resp)
	}
}
