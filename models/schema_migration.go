package models

import "time"

// SchemaMigration applied migration version
type SchemaMigration struct {
	Version   string    `gorm:"primaryKey;size:100"`
	AppliedAt time.Time `gorm:"not null"`
}

func (SchemaMigration) TableName() string {
	return "schema_migrations"
}
