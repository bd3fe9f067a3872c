// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TransactionType string

const (
	TransactionIncome   TransactionType = "income"
	TransactionExpense  TransactionType = "expense"
	TransactionTransfer TransactionType = "transfer"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionIncome, TransactionExpense, TransactionTransfer:
		return true
	}
	return false
}

type Transaction struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Amount           string          `gorm:"type:decimal(12,2);not null"`
	Type             TransactionType `gorm:"size:10;not null"`
	CategoryID       *uuid.UUID      `gorm:"type:uuid"`
	Category         *Category
	MerchantName     *string `gorm:"size:255"`
	Description      *string
	Date             time.Time      `gorm:"type:date;not null;index"`
	IsRecurring      bool           `gorm:"not null;default:false"`
	RecurringPattern *string        `gorm:"size:50"`
	Tags             datatypes.JSON `gorm:"type:json"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	AccountID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Account          Account   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index"`
	User             User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func init() {
	AllModels = append(AllModels, &Transaction{})
}
