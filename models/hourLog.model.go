package models

import "gorm.io/gorm"

// HourLogEntry is one unit of recorded coursework time. Entries are append
// only: never mutated or deleted. Multiple entries per (enrollment, log_date)
// are allowed; only their sum is capped.
type HourLogEntry struct {
	gorm.Model
	EnrollmentID uint   `json:"enrollment_id" gorm:"not null;index;index:idx_enrollment_day"`
	UserID       uint   `json:"user_id" gorm:"not null;index"`
	LogDate      string `json:"log_date" gorm:"not null;index:idx_enrollment_day"` // YYYY-MM-DD in the participant's local zone
	Hours        int    `json:"hours" gorm:"default:0"`
	Minutes      int    `json:"minutes" gorm:"default:0"`
}
