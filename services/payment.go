package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"servehours/models"
)

// Payments reconciles provider webhook events into enrollments and creates
// checkout sessions. It is the only component allowed to create enrollments
// from unauthenticated input, which is why signature verification happens
// before anything else is read from the payload.
type Payments struct {
	db            *gorm.DB
	enrollments   *Enrollments
	client        *resty.Client
	webhookSecret string
	successURL    string
	cancelURL     string
}

func NewPayments(db *gorm.DB, enrollments *Enrollments, client *resty.Client, webhookSecret, successURL, cancelURL string) *Payments {
	return &Payments{
		db:            db,
		enrollments:   enrollments,
		client:        client,
		webhookSecret: webhookSecret,
		successURL:    successURL,
		cancelURL:     cancelURL,
	}
}

// eventCheckoutCompleted is the only event type that creates enrollments.
const eventCheckoutCompleted = "checkout.completed"

// webhookEvent is the canonical event schema. Metadata values arrive as
// strings, the way provider metadata is transported.
type webhookEvent struct {
	Type string `json:"type"`
	Data struct {
		AmountTotal int64 `json:"amount_total"`
		Metadata    struct {
			ParticipantID    string `json:"participant_id"`
			Hours            string `json:"hours"`
			TierID           string `json:"tier_id"`
			PaymentReference string `json:"payment_reference"`
		} `json:"metadata"`
	} `json:"data"`
}

// Signature returns the hex HMAC-SHA256 of payload under the shared secret.
// Exported so tests and tooling can sign events the way the provider does.
func (p *Payments) Signature(payload []byte) string {
	mac := hmac.New(sha256.New, []byte(p.webhookSecret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks the provider signature over the raw body. Constant
// time compare; a missing or wrong signature fails before any parsing.
func (p *Payments) VerifySignature(payload []byte, signature string) error {
	signature = strings.ToLower(strings.TrimSpace(signature))
	if signature == "" {
		return reject(CodeUpstreamVerification, "Missing webhook signature!")
	}
	expected := p.Signature(payload)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return reject(CodeUpstreamVerification, "Invalid webhook signature!")
	}
	return nil
}

// HandlePaymentConfirmed turns a signed payment confirmation into an active
// enrollment exactly once. Redelivery of the same payment_reference returns
// the existing enrollment; a concurrent duplicate that trips the unique index
// is absorbed by re-reading.
func (p *Payments) HandlePaymentConfirmed(payload []byte, signature string) (*models.Enrollment, error) {
	if err := p.VerifySignature(payload, signature); err != nil {
		log.Printf("Rejected webhook with bad signature")
		return nil, err
	}

	var event webhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, reject(CodeInvalidInput, "Malformed webhook payload!")
	}
	if event.Type != eventCheckoutCompleted {
		return nil, reject(CodeInvalidInput, "Unsupported event type %q!", event.Type)
	}
	meta := event.Data.Metadata

	participantID, err := strconv.ParseUint(meta.ParticipantID, 10, 64)
	if err != nil || participantID == 0 {
		return nil, reject(CodeInvalidInput, "Webhook metadata is missing a participant id!")
	}
	hours, err := strconv.Atoi(meta.Hours)
	if err != nil || hours <= 0 {
		return nil, reject(CodeInvalidInput, "Webhook metadata is missing a valid hours quantity!")
	}
	ref := strings.TrimSpace(meta.PaymentReference)
	if ref == "" {
		return nil, reject(CodeInvalidInput, "Webhook metadata is missing a payment reference!")
	}
	if _, ok := FindTier(hours); !ok {
		return nil, reject(CodeInvalidInput, "No pricing tier matches %d hours!", hours)
	}

	// Idempotency: the provider may deliver the same event more than once.
	if existing, err := p.enrollments.ByPaymentReference(ref); err == nil {
		return existing, nil
	}

	enrollment, err := p.enrollments.Create(uint(participantID), hours, &ref, float64(event.Data.AmountTotal)/100)
	if err != nil {
		r := AsRejection(err)
		if r.Code == CodeConflict {
			// A concurrent delivery may have won the insert race.
			if existing, lookupErr := p.enrollments.ByPaymentReference(ref); lookupErr == nil {
				return existing, nil
			}
		}
		return nil, r
	}

	p.markSessionCompleted(ref)
	return enrollment, nil
}

// markSessionCompleted closes the originating checkout session. Best effort;
// webhooks for administratively seeded references have no session row.
func (p *Payments) markSessionCompleted(ref string) {
	err := p.db.Model(&models.CheckoutSession{}).
		Where("payment_reference = ?", ref).
		Update("status", models.CheckoutCompleted).Error
	if err != nil {
		log.Printf("Failed to mark checkout session %s completed: %v", ref, err)
	}
}

// checkoutResponse is the provider's session-creation reply.
type checkoutResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateCheckout prices the requested hours, mints a payment reference and
// opens a checkout session with the provider.
func (p *Payments) CreateCheckout(userID uint, email string, hours int) (*models.CheckoutSession, error) {
	if hours < MinPurchasableHours || hours > MaxPurchasableHours {
		return nil, reject(CodeInvalidInput, "Hours must be between %d and %d!", MinPurchasableHours, MaxPurchasableHours)
	}
	tier, ok := FindTier(hours)
	if !ok {
		return nil, reject(CodeInvalidInput, "No pricing tier matches %d hours!", hours)
	}

	ref := uuid.NewString()
	var result checkoutResponse
	resp, err := p.client.R().
		SetBody(map[string]interface{}{
			"hours":            hours,
			"unit_price_cents": tier.PriceCents,
			"success_url":      p.successURL,
			"cancel_url":       p.cancelURL,
			"customer_email":   email,
			"metadata": map[string]string{
				"participant_id":    strconv.FormatUint(uint64(userID), 10),
				"hours":             strconv.Itoa(hours),
				"tier_id":           tier.ID,
				"payment_reference": ref,
			},
		}).
		SetResult(&result).
		Post("/checkout/sessions")
	if err != nil {
		return nil, internalErr(err)
	}
	if resp.IsError() {
		return nil, internalErr(fmt.Errorf("payment provider returned %s", resp.Status()))
	}
	if result.URL == "" {
		return nil, internalErr(errors.New("payment provider returned no checkout url"))
	}

	session := models.CheckoutSession{
		UserID:           userID,
		Hours:            hours,
		TierID:           tier.ID,
		AmountCents:      tier.PriceCents,
		PaymentReference: ref,
		CheckoutURL:      result.URL,
		Status:           models.CheckoutPending,
	}
	if err := p.db.Create(&session).Error; err != nil {
		return nil, internalErr(err)
	}
	return &session, nil
}
