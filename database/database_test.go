package database

import (
	"context"
	"errors"
	"testing"

	"fintrack/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock, func() { sqlDB.Close() }
}

func TestDSN(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Host: "db", Port: "3306", Username: "u", Password: "p", DBName: "fin",
	}
	assert.Equal(t, "u:p@tcp(db:3306)/fin?charset=utf8mb4&parseTime=True&loc=Local", MySQLDSN(cfg))

	cfg.Port = "5432"
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=fin sslmode=disable", PostgresDSN(cfg))
}

func TestDialector(t *testing.T) {
	d, err := Dialector(&config.DatabaseConfig{Driver: "mysql"})
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())

	d, err = Dialector(&config.DatabaseConfig{Driver: "postgres"})
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	_, err = Dialector(&config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestRunMigrations_SkipsAppliedVersions(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
		WillReturnResult(sqlmock.NewResult(0, 0))

	// 0001 already recorded
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `schema_migrations`").
		WithArgs("0001_a").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	// 0002 pending
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `schema_migrations`").
		WithArgs("0002_b").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec("CREATE INDEX idx_b").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO `schema_migrations`").
		WithArgs("0002_b", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ran := map[string]bool{}
	steps := []Migration{
		{Version: "0001_a", Up: func(tx *gorm.DB) error { ran["a"] = true; return nil }},
		{Version: "0002_b", Up: func(tx *gorm.DB) error { ran["b"] = true; return tx.Exec("CREATE INDEX idx_b ON t (c)").Error }},
	}

	require.NoError(t, RunMigrations(context.Background(), db, zerolog.Nop(), steps))
	assert.False(t, ran["a"])
	assert.True(t, ran["b"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_FailedStepRollsBack(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `schema_migrations`").
		WithArgs("0001_bad").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectRollback()

	steps := []Migration{
		{Version: "0001_bad", Up: func(tx *gorm.DB) error { return errors.New("boom") }},
		{Version: "0002_never", Up: func(tx *gorm.DB) error { t.Fatal("must not run"); return nil }},
	}

	err := RunMigrations(context.Background(), db, zerolog.Nop(), steps)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "0001_bad")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrations_Ordered(t *testing.T) {
	seen := map[string]bool{}
	for i, m := range Migrations {
		assert.False(t, seen[m.Version], "duplicate version %s", m.Version)
		seen[m.Version] = true
		if i > 0 {
			assert.Less(t, Migrations[i-1].Version, m.Version)
		}
	}
}
