package models

import (
	"time"

	"gorm.io/gorm"
)

// Certificate is the proof of completion for one enrollment. At most one
// certificate exists per enrollment; the verification code is public,
// unique across all certificates and immutable once issued.
type Certificate struct {
	gorm.Model
	EnrollmentID     uint      `json:"enrollment_id" gorm:"uniqueIndex;not null"`
	UserID           uint      `json:"user_id" gorm:"index;not null"`
	VerificationCode string    `json:"verification_code" gorm:"uniqueIndex;not null"`
	IssuedAt         time.Time `json:"issued_at"`
	HoursVerified    float64   `json:"hours_verified"`
}
