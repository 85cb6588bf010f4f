package models

import (
	"time"
)

// DefaultCategoryColor color used when none is given
const DefaultCategoryColor = "#3b82f6"

// Category user-owned transaction category
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_categories_user_name"`
	Name      string    `json:"name" gorm:"size:50;not null;uniqueIndex:idx_categories_user_name"`
	Type      string    `json:"type" gorm:"size:10;not null"`
	Color     string    `json:"color" gorm:"size:20;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (Category) TableName() string {
	return "categories"
}

// DefaultCategories seeded into every new account
func DefaultCategories(userID uint) []Category {
	defaults := []struct {
		Name  string
		Type  string
		Color string
	}{
		{"Salário", TypeIncome, "#22c55e"},
		{"Freelance", TypeIncome, "#22c55e"},
		{"Investimentos", TypeIncome, "#22c55e"},
		{"Alimentação", TypeExpense, "#ef4444"},
		{"Transporte", TypeExpense, "#ef4444"},
		{"Moradia", TypeExpense, "#ef4444"},
		{"Saúde", TypeExpense, "#ef4444"},
		{"Educação", TypeExpense, "#ef4444"},
		{"Lazer", TypeExpense, "#ef4444"},
		{"Outros", TypeExpense, "#6b7280"},
	}
	cats := make([]Category, 0, len(defaults))
	for _, d := range defaults {
		cats = append(cats, Category{UserID: userID, Name: d.Name, Type: d.Type, Color: d.Color})
	}
	return cats
}
