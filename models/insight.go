// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type InsightType string

const (
	InsightSpendingPattern    InsightType = "spending_pattern"
	InsightSavingsOpportunity InsightType = "savings_opportunity"
	InsightBudgetAlert        InsightType = "budget_alert"
)

type InsightPriority string

const (
	PriorityHigh   InsightPriority = "high"
	PriorityMedium InsightPriority = "medium"
	PriorityLow    InsightPriority = "low"
)

type Insight struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey"`
	InsightType InsightType `gorm:"size:30;not null"`
	Title       string      `gorm:"size:255;not null"`
	Description string      `gorm:"not null"`
	Priority    *InsightPriority `gorm:"size:10"`
	Data        datatypes.JSON   `gorm:"type:json"`
	IsRead      bool             `gorm:"not null;default:false"`
	GeneratedAt time.Time
	ExpiresAt   *time.Time
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	User        User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (i *Insight) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.GeneratedAt.IsZero() {
		i.GeneratedAt = time.Now()
	}
	return nil
}

func init() {
	AllModels = append(AllModels, &Insight{})
}
