package model

import (
	"math"
	"time"

	"rental-marketplace/internal/domain"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"   // order created; awaiting gateway confirmation
	PaymentStatusCompleted PaymentStatus = "completed" // signature verified, credits merged
	PaymentStatusFailed    PaymentStatus = "failed"    // verification failed or gateway reported failure
)

// GSTPercentage is a fixed property of the system, not configurable per order.
const GSTPercentage = 18

// Payment records one credit-purchase attempt through its lifecycle.
// pending -> completed|failed are the only legal transitions; both are terminal.
type Payment struct {
	ID               int64
	UserID           int64
	OrderID          string // gateway order id (or local surrogate in offline mode)
	GatewayPaymentID string // set after confirmation
	Signature        string // set after confirmation, kept for audit even on failure

	PlanType      string
	Credits       int64
	BasePrice     int64
	GSTAmount     int64
	GSTPct        int
	TotalAmount   int64
	Currency      string
	ValidityDays  int
	CreditsExpiry time.Time

	Status    PaymentStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPayment computes the commercial fields and returns a pending payment.
// The order id is assigned by the caller once the gateway registers the
// order. Tax is rounded the same way the checkout UI rounds it, so the
// stored total matches what the gateway charged.
func NewPayment(userID int64, planType string, credits, basePrice int64, validityDays int) (*Payment, error) {
	if userID <= 0 || planType == "" || credits <= 0 || basePrice <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	if validityDays <= 0 {
		validityDays = 30
	}
	gst := int64(math.Round(float64(basePrice) * GSTPercentage / 100))
	now := time.Now()
	return &Payment{
		UserID:        userID,
		PlanType:      planType,
		Credits:       credits,
		BasePrice:     basePrice,
		GSTAmount:     gst,
		GSTPct:        GSTPercentage,
		TotalAmount:   basePrice + gst,
		Currency:      "INR",
		ValidityDays:  validityDays,
		CreditsExpiry: now.AddDate(0, 0, validityDays),
		Status:        PaymentStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func (p *Payment) IsZero() bool { return p == nil || p.OrderID == "" }

// AmountMinorUnits is the total in paise, the unit the gateway expects.
func (p *Payment) AmountMinorUnits() int64 { return p.TotalAmount * 100 }
