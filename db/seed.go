// SPDX-License-Identifier: GPL-3.0-only

package db

import (
	"clarity-server/commons"
	"clarity-server/models"
	"os"
)

func str(s string) *string { return &s }

// DefaultCategories is the system category set every installation starts
// with. User-created categories are never marked IsSystem.
var DefaultCategories = []models.Category{
	{Name: "Salary", Type: models.CategoryIncome, Icon: str("💰"), Color: str("#10b981"), IsSystem: true},
	{Name: "Freelance", Type: models.CategoryIncome, Icon: str("💼"), Color: str("#3b82f6"), IsSystem: true},
	{Name: "Investment", Type: models.CategoryIncome, Icon: str("📈"), Color: str("#8b5cf6"), IsSystem: true},
	{Name: "Other Income", Type: models.CategoryIncome, Icon: str("💵"), Color: str("#06b6d4"), IsSystem: true},
	{Name: "Housing", Type: models.CategoryExpense, Icon: str("🏠"), Color: str("#ef4444"), IsSystem: true},
	{Name: "Transportation", Type: models.CategoryExpense, Icon: str("🚗"), Color: str("#f59e0b"), IsSystem: true},
	{Name: "Food & Dining", Type: models.CategoryExpense, Icon: str("🍔"), Color: str("#ec4899"), IsSystem: true},
	{Name: "Groceries", Type: models.CategoryExpense, Icon: str("🛒"), Color: str("#84cc16"), IsSystem: true},
	{Name: "Shopping", Type: models.CategoryExpense, Icon: str("🛍️"), Color: str("#a855f7"), IsSystem: true},
	{Name: "Entertainment", Type: models.CategoryExpense, Icon: str("🎬"), Color: str("#14b8a6"), IsSystem: true},
	{Name: "Healthcare", Type: models.CategoryExpense, Icon: str("⚕️"), Color: str("#f43f5e"), IsSystem: true},
	{Name: "Utilities", Type: models.CategoryExpense, Icon: str("⚡"), Color: str("#eab308"), IsSystem: true},
	{Name: "Insurance", Type: models.CategoryExpense, Icon: str("🛡️"), Color: str("#6366f1"), IsSystem: true},
	{Name: "Education", Type: models.CategoryExpense, Icon: str("📚"), Color: str("#0ea5e9"), IsSystem: true},
	{Name: "Personal Care", Type: models.CategoryExpense, Icon: str("💅"), Color: str("#d946ef"), IsSystem: true},
	{Name: "Subscriptions", Type: models.CategoryExpense, Icon: str("📱"), Color: str("#64748b"), IsSystem: true},
	{Name: "Other Expense", Type: models.CategoryExpense, Icon: str("📝"), Color: str("#94a3b8"), IsSystem: true},
}

// SeedCategories inserts the system categories if none exist yet.
func SeedCategories() {
	commons.Logger.Info("Seeding system categories")

	var count int64
	if err := Conn.Model(&models.Category{}).Where("is_system = ?", true).Count(&count).Error; err != nil {
		commons.Logger.Error("Failed to count system categories:", err)
		os.Exit(1)
	}
	if count > 0 {
		commons.Logger.Info("System categories already seeded, skipping")
		return
	}

	if err := Conn.Create(&DefaultCategories).Error; err != nil {
		commons.Logger.Error("Failed to seed categories:", err)
		os.Exit(1)
	}
	commons.Logger.Info("System categories seeded successfully")
}
