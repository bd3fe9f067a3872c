// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryType string

const (
	CategoryIncome  CategoryType = "income"
	CategoryExpense CategoryType = "expense"
)

type Category struct {
	ID               uuid.UUID    `gorm:"type:uuid;primaryKey"`
	Name             string       `gorm:"size:100;not null"`
	Type             CategoryType `gorm:"size:10;not null"`
	Icon             *string      `gorm:"size:50"`
	Color            *string      `gorm:"size:7"`
	ParentCategoryID *uuid.UUID   `gorm:"type:uuid"`
	IsSystem         bool         `gorm:"not null;default:false"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func init() {
	AllModels = append(AllModels, &Category{})
}
