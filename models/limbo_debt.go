package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LimboDebt pending debt not yet turned into a transaction
type LimboDebt struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	UserID      uint            `json:"user_id" gorm:"index;not null"`
	Description string          `json:"description" gorm:"size:255;not null"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (LimboDebt) TableName() string {
	return "limbo_debts"
}
