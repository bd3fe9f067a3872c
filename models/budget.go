// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BudgetPeriod string

const (
	BudgetMonthly BudgetPeriod = "monthly"
	BudgetYearly  BudgetPeriod = "yearly"
)

func (p BudgetPeriod) Valid() bool {
	return p == BudgetMonthly || p == BudgetYearly
}

type Budget struct {
	ID         uuid.UUID    `gorm:"type:uuid;primaryKey"`
	CategoryID *uuid.UUID   `gorm:"type:uuid"`
	Category   *Category
	Amount     string       `gorm:"type:decimal(12,2);not null"`
	Period     BudgetPeriod `gorm:"size:10;not null"`
	StartDate  time.Time    `gorm:"type:date;not null"`
	EndDate    *time.Time   `gorm:"type:date"`
	CreatedAt  time.Time
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	User       User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func init() {
	AllModels = append(AllModels, &Budget{})
}
