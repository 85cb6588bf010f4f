package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// FixedFollowUps number of monthly rows generated after a fixed origin
const FixedFollowUps = 12

// Transaction income/expense record.
// A parceled purchase is one anchor (IsParceled=false, TotalParcels=N) plus N children
// (IsParceled=true, ParentTransactionID=anchor). A fixed family is an origin plus
// FixedFollowUps rows pointing at it.
type Transaction struct {
	ID                  uint            `json:"id" gorm:"primaryKey"`
	UserID              uint            `json:"user_id" gorm:"index;not null"`
	Description         string          `json:"description" gorm:"size:255;not null"`
	Amount              decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Type                string          `json:"type" gorm:"size:10;not null;index"`
	Category            string          `json:"category" gorm:"size:50;not null"`
	Date                Date            `json:"date" gorm:"type:date;not null;index"`
	IsParceled          bool            `json:"is_parceled" gorm:"not null"`
	TotalParcels        int             `json:"total_parcels" gorm:"not null"`
	CurrentParcel       *int            `json:"current_parcel"`
	ParentTransactionID *uint           `json:"parent_transaction_id" gorm:"index"`
	IsFixed             bool            `json:"is_fixed" gorm:"not null"`
	Paid                bool            `json:"paid" gorm:"not null"`
	PaidAt              *time.Time      `json:"paid_at"`
	CreatedAt           time.Time       `json:"created_at"`
}

// TableName sets the table name
func (Transaction) TableName() string {
	return "transactions"
}

// IsParceledAnchor reports whether the row is the parent of a parceled family
func (t *Transaction) IsParceledAnchor() bool {
	return !t.IsParceled && t.TotalParcels > 1 && t.ParentTransactionID == nil
}

// FixedAnchor id shared by every member of the row's fixed family
func (t *Transaction) FixedAnchor() uint {
	if t.ParentTransactionID != nil {
		return *t.ParentTransactionID
	}
	return t.ID
}

// TransactionView row as returned by listings, with the category color joined in
type TransactionView struct {
	Transaction
	CategoryColor *string `json:"category_color"`
}

// ValidType reports whether s is income or expense
func ValidType(s string) bool {
	return s == TypeIncome || s == TypeExpense
}
