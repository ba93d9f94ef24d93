// File: internal/infra/web/handlers_payment.go
package web

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"rental-marketplace/internal/domain/model"
	"rental-marketplace/internal/infra/logging"
	"rental-marketplace/internal/infra/metrics"
	"rental-marketplace/internal/infra/payment"
)

type paymentResponse struct {
	ID            int64     `json:"id"`
	OrderID       string    `json:"order_id"`
	PlanType      string    `json:"plan_type"`
	Credits       int64     `json:"credits"`
	BasePrice     int64     `json:"base_price"`
	GSTAmount     int64     `json:"gst_amount"`
	GSTPct        int       `json:"gst_percentage"`
	TotalAmount   int64     `json:"total_amount"`
	Currency      string    `json:"currency"`
	ValidityDays  int       `json:"validity_days"`
	CreditsExpiry time.Time `json:"credits_expiry"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

func toPaymentResponse(p *model.Payment) paymentResponse {
	return paymentResponse{
		ID:            p.ID,
		OrderID:       p.OrderID,
		PlanType:      p.PlanType,
		Credits:       p.Credits,
		BasePrice:     p.BasePrice,
		GSTAmount:     p.GSTAmount,
		GSTPct:        p.GSTPct,
		TotalAmount:   p.TotalAmount,
		Currency:      p.Currency,
		ValidityDays:  p.ValidityDays,
		CreditsExpiry: p.CreditsExpiry,
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt,
	}
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	var req struct {
		PlanType     string `json:"plan_type"`
		Credits      int64  `json:"credits"`
		BasePrice    int64  `json:"base_price"`
		ValidityDays int    `json:"validity_days"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}

	p, err := s.paymentUC.CreateOrder(r.Context(), claims.UserID, req.PlanType, req.Credits, req.BasePrice, req.ValidityDays)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPaymentResponse(p))
}

func (s *Server) handleVerifyPayment(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	var req struct {
		OrderID          string `json:"order_id"`
		GatewayPaymentID string `json:"payment_id"`
		Signature        string `json:"signature"`
	}
	if err := decodeJSON(r, &req); err != nil {
		metrics.IncVerifications("error")
		writeDomainError(w, err)
		return
	}

	res, err := s.paymentUC.VerifyPayment(r.Context(), claims.UserID, req.OrderID, req.GatewayPaymentID, req.Signature)
	if err != nil {
		metrics.IncVerifications("rejected")
		writeDomainError(w, err)
		return
	}
	if res.AlreadyCompleted {
		metrics.IncVerifications("replay")
	} else {
		metrics.IncVerifications("completed")
		metrics.AddCreditsPurchased(res.CreditsAdded)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"payment":           toPaymentResponse(res.Payment),
		"credits_added":     res.CreditsAdded,
		"balance":           res.Balance,
		"credit_expiry":     res.CreditExpiry,
		"already_completed": res.AlreadyCompleted,
	})
}

func (s *Server) handlePaymentHistory(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	items, total, err := s.paymentUC.History(r.Context(), claims.UserID, limit, offset)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]paymentResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toPaymentResponse(p))
	}
	writeJSON(w, http.StatusOK, map[string]any{"payments": out, "total": total})
}

type ledgerEntryResponse struct {
	ID           int64      `json:"id"`
	Type         string     `json:"type"`
	Credits      int64      `json:"credits"`
	BalanceAfter int64      `json:"balance_after"`
	PaymentID    *int64     `json:"payment_id,omitempty"`
	PropertyID   *int64     `json:"property_id,omitempty"`
	Description  string     `json:"description,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	b, err := s.creditUC.Balance(r.Context(), claims.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	recent := make([]ledgerEntryResponse, 0, len(b.Recent))
	for _, e := range b.Recent {
		recent = append(recent, ledgerEntryResponse{
			ID:           e.ID,
			Type:         string(e.Type),
			Credits:      e.Credits,
			BalanceAfter: e.BalanceAfter,
			PaymentID:    e.PaymentID,
			PropertyID:   e.PropertyID,
			Description:  e.Description,
			ExpiresAt:    e.ExpiresAt,
			CreatedAt:    e.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"balance":         b.Balance,
		"credit_expiry":   b.CreditExpiry,
		"total_purchased": b.TotalPurchased,
		"total_used":      b.TotalUsed,
		"is_expired":      b.IsExpired,
		"days_remaining":  b.DaysRemaining,
		"recent":          recent,
	})
}

// handleWebhook verifies the body signature and applies the event. Business
// failures still return 200 so the gateway stops retrying; only transport
// and persistence problems are surfaced as errors.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		metrics.IncWebhookEvents("unknown", "error")
		writeError(w, http.StatusBadRequest, "unreadable body")
		return
	}

	signature := r.Header.Get("X-Razorpay-Signature")
	if s.verifier.WebhookSigningConfigured() {
		if signature == "" || !s.verifier.VerifyWebhook(body, signature) {
			metrics.IncWebhookEvents("unknown", "bad_signature")
			writeError(w, http.StatusUnauthorized, "invalid signature")
			return
		}
	}

	ev, err := payment.ParseWebhookEvent(body)
	if err != nil {
		metrics.IncWebhookEvents("unknown", "bad_payload")
		writeError(w, http.StatusBadRequest, "malformed payload")
		return
	}

	if err := s.paymentUC.ProcessWebhookEvent(r.Context(), ev); err != nil {
		l := logging.With(r.Context(), s.log)
		l.Error().Err(err).Str("event", ev.RawEvent).Msg("webhook processing failed")
		metrics.IncWebhookEvents(ev.RawEvent, "error")
		writeError(w, http.StatusInternalServerError, "processing failed")
		return
	}
	metrics.IncWebhookEvents(ev.RawEvent, "processed")
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
