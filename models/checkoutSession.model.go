package models

import "gorm.io/gorm"

// Checkout session statuses
const (
	CheckoutPending   = "PENDING"
	CheckoutCompleted = "COMPLETED"
	CheckoutExpired   = "EXPIRED"
)

// CheckoutSession records a checkout created with the payment provider. The
// payment reference minted here doubles as the idempotency key the webhook
// carries back in its metadata.
type CheckoutSession struct {
	gorm.Model
	UserID           uint   `json:"user_id" gorm:"index;not null"`
	Hours            int    `json:"hours" gorm:"not null"`
	TierID           string `json:"tier_id"`
	AmountCents      int64  `json:"amount_cents"`
	PaymentReference string `json:"payment_reference" gorm:"uniqueIndex;not null"`
	CheckoutURL      string `json:"checkout_url"`
	Status           string `json:"status" gorm:"default:'PENDING'"`
}
