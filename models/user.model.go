package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name      string  `gorm:"default:''"`
	Email     string  `gorm:"unique;not null"`
	Mobile    string  `gorm:"default:''"`
	Role      string  `gorm:"default:'PARTICIPANT'"` // PARTICIPANT, ADMIN
	Password  string  `gorm:"not null"`
	Timezone  *string `json:"timezone"` // IANA zone, captured on first client observation
	City      string
	State     string
	LastLogin time.Time `gorm:"default:NULL"`
	IsDeleted bool      `gorm:"default:false"`
}
