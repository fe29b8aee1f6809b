package utils

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"servehours/models"
)

// ExpireStaleCheckouts marks checkout sessions still pending after 24 hours
// as expired. The webhook never confirms these; expiring them keeps the
// pending set honest for reporting.
func ExpireStaleCheckouts(db *gorm.DB) {
	cutoff := time.Now().Add(-24 * time.Hour)

	result := db.Model(&models.CheckoutSession{}).
		Where("status = ? AND created_at < ?", models.CheckoutPending, cutoff).
		Update("status", models.CheckoutExpired)
	if result.Error != nil {
		log.Printf("Failed to expire stale checkout sessions: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Expired %d stale checkout session(s)", result.RowsAffected)
	}
}

// InitializeCheckoutScheduler runs the stale-checkout sweep nightly
func InitializeCheckoutScheduler(db *gorm.DB) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc("15 2 * * *", func() {
		ExpireStaleCheckouts(db)
	})
	if err != nil {
		log.Printf("Failed to schedule checkout expiry job: %v", err)
		return c
	}

	c.Start()
	log.Println("Checkout expiry scheduler started")
	return c
}
