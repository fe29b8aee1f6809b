package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"servehours/models"
)

// newTestDB opens an isolated in-memory sqlite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every session on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Enrollment{},
		&models.HourLogEntry{},
		&models.Certificate{},
		&models.CheckoutSession{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name, email, tz string) *models.User {
	t.Helper()

	user := models.User{
		Name:     name,
		Email:    email,
		Password: "hashed",
		City:     "Austin",
		State:    "TX",
	}
	if tz != "" {
		user.Timezone = &tz
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// fixedClock pins a service clock to a sequence of instants.
func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}
