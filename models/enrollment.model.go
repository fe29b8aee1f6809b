package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment statuses
const (
	EnrollmentActive    = "ACTIVE"
	EnrollmentSuspended = "SUSPENDED"
	EnrollmentCompleted = "COMPLETED"
)

// Enrollment is one participant's purchased (or granted) allotment of required
// service hours. Rows are never deleted; they remain as an audit record.
type Enrollment struct {
	gorm.Model
	// Partial unique index is the real guard for "one active enrollment per
	// participant"; the application-level check is only a friendlier error.
	UserID           uint       `json:"user_id" gorm:"not null;index;index:uidx_user_active,unique,where:status = 'ACTIVE'"`
	HoursRequired    int        `json:"hours_required" gorm:"not null"`
	HoursCompleted   float64    `json:"hours_completed" gorm:"default:0"`
	Status           string     `json:"status" gorm:"default:'ACTIVE'"`
	AmountPaid       float64    `json:"amount_paid" gorm:"default:0"`
	PaymentReference *string    `json:"payment_reference" gorm:"uniqueIndex"` // idempotency key from the payment provider
	StartDate        time.Time  `json:"start_date"`
	CompletedAt      *time.Time `json:"completed_at"`
}
