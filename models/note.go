package models

import "time"

// Note free-form note
type Note struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Content   *string   `json:"content" gorm:"type:text"`
	Tags      *string   `json:"tags" gorm:"size:255"`
	Color     string    `json:"color" gorm:"size:20;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"index"`
}

func (Note) TableName() string {
	return "notes"
}
