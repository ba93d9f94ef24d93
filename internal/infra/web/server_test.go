//go:build !integration

// File: internal/infra/web/server_test.go
package web

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"rental-marketplace/internal/domain"
	"rental-marketplace/internal/domain/model"
	"rental-marketplace/internal/domain/ports/repository"
	"rental-marketplace/internal/usecase"
)

func webhookSignature(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func doRequest(t *testing.T, env *testEnv, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	env.server.Routes().ServeHTTP(rr, req)
	return rr
}

func TestAuthMiddleware(t *testing.T) {
	env := newTestEnv("")
	env.userUC.ProfileFunc = func(_ context.Context, userID int64) (*model.User, error) {
		return &model.User{ID: userID, Name: "Asha", Email: "asha@example.com", UserType: model.UserTypeTenant}, nil
	}

	t.Run("should reject requests without a token", func(t *testing.T) {
		rr := doRequest(t, env, "GET", "/api/v1/users/me", "", "")
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rr.Code)
		}
	})

	t.Run("should reject garbage tokens", func(t *testing.T) {
		rr := doRequest(t, env, "GET", "/api/v1/users/me", "not-a-jwt", "")
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rr.Code)
		}
	})

	t.Run("should admit a minted token and pass claims through", func(t *testing.T) {
		tok := env.tokenFor(&model.User{ID: 42, UserType: model.UserTypeTenant})
		rr := doRequest(t, env, "GET", "/api/v1/users/me", tok, "")
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
		}
		var resp struct {
			ID int64 `json:"id"`
		}
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.ID != 42 {
			t.Errorf("expected profile for user 42, got %d", resp.ID)
		}
	})

	t.Run("should reject an expired token", func(t *testing.T) {
		expired := NewAuthManager("test-secret", -time.Hour)
		tok, _ := expired.Mint(&model.User{ID: 42, UserType: model.UserTypeTenant})
		rr := doRequest(t, env, "GET", "/api/v1/users/me", tok, "")
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rr.Code)
		}
	})

	t.Run("should keep admin routes from non-admins", func(t *testing.T) {
		tok := env.tokenFor(&model.User{ID: 42, UserType: model.UserTypeTenant})
		rr := doRequest(t, env, "GET", "/api/v1/support/", tok, "")
		if rr.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rr.Code)
		}
	})
}

func TestWebhookHandler(t *testing.T) {
	const secret = "whsec_test"
	body := `{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1","order_id":"order_1","method":"upi"}}}}`

	t.Run("should reject a missing signature when signing is configured", func(t *testing.T) {
		env := newTestEnv(secret)
		req := httptest.NewRequest("POST", "/api/v1/payments/webhook", strings.NewReader(body))
		rr := httptest.NewRecorder()
		env.server.Routes().ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rr.Code)
		}
		if len(env.paymentUC.Events) != 0 {
			t.Error("event must not reach the use case on a bad signature")
		}
	})

	t.Run("should reject a wrong signature", func(t *testing.T) {
		env := newTestEnv(secret)
		req := httptest.NewRequest("POST", "/api/v1/payments/webhook", strings.NewReader(body))
		req.Header.Set("X-Razorpay-Signature", "deadbeef")
		rr := httptest.NewRecorder()
		env.server.Routes().ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rr.Code)
		}
	})

	t.Run("should accept a valid signature and ACK", func(t *testing.T) {
		env := newTestEnv(secret)
		req := httptest.NewRequest("POST", "/api/v1/payments/webhook", strings.NewReader(body))
		req.Header.Set("X-Razorpay-Signature", webhookSignature(secret, []byte(body)))
		rr := httptest.NewRecorder()
		env.server.Routes().ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
		}
		if len(env.paymentUC.Events) != 1 {
			t.Fatalf("expected 1 forwarded event, got %d", len(env.paymentUC.Events))
		}
		ev := env.paymentUC.Events[0]
		if ev.Kind != model.WebhookPaymentCaptured || ev.OrderID != "order_1" || ev.PaymentID != "pay_1" {
			t.Errorf("event decoded wrong: %+v", ev)
		}
	})

	t.Run("should be permissive when no webhook secret is configured", func(t *testing.T) {
		env := newTestEnv("")
		req := httptest.NewRequest("POST", "/api/v1/payments/webhook", strings.NewReader(body))
		rr := httptest.NewRecorder()
		env.server.Routes().ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		if len(env.paymentUC.Events) != 1 {
			t.Fatalf("expected 1 forwarded event, got %d", len(env.paymentUC.Events))
		}
	})

	t.Run("should 400 on a malformed payload", func(t *testing.T) {
		env := newTestEnv("")
		req := httptest.NewRequest("POST", "/api/v1/payments/webhook", strings.NewReader("{not json"))
		rr := httptest.NewRecorder()
		env.server.Routes().ServeHTTP(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
	})

	t.Run("should 500 when processing fails so the gateway retries", func(t *testing.T) {
		env := newTestEnv("")
		env.paymentUC.ProcessWebhookEventFunc = func(_ context.Context, _ *model.WebhookEvent) error {
			return errors.New("db down")
		}
		req := httptest.NewRequest("POST", "/api/v1/payments/webhook", strings.NewReader(body))
		rr := httptest.NewRecorder()
		env.server.Routes().ServeHTTP(rr, req)

		if rr.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rr.Code)
		}
	})
}

func TestVerifyPaymentHandler(t *testing.T) {
	env := newTestEnv("")
	tok := env.tokenFor(&model.User{ID: 7, UserType: model.UserTypeTenant})

	t.Run("should return merge outcome on success", func(t *testing.T) {
		expiry := time.Now().Add(30 * 24 * time.Hour)
		env.paymentUC.VerifyPaymentFunc = func(_ context.Context, userID int64, orderID, paymentID, sig string) (*usecase.VerifyResult, error) {
			if userID != 7 || orderID != "order_1" {
				t.Errorf("unexpected args: user=%d order=%s", userID, orderID)
			}
			return &usecase.VerifyResult{
				Payment:      &model.Payment{ID: 1, OrderID: orderID, Status: model.PaymentStatusCompleted},
				CreditsAdded: 4,
				Balance:      4,
				CreditExpiry: expiry,
			}, nil
		}
		rr := doRequest(t, env, "POST", "/api/v1/payments/verify", tok,
			`{"order_id":"order_1","payment_id":"pay_1","signature":"valid-sig"}`)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
		}
		var resp struct {
			CreditsAdded     int64 `json:"credits_added"`
			Balance          int64 `json:"balance"`
			AlreadyCompleted bool  `json:"already_completed"`
		}
		json.Unmarshal(rr.Body.Bytes(), &resp)
		if resp.CreditsAdded != 4 || resp.Balance != 4 || resp.AlreadyCompleted {
			t.Errorf("unexpected response: %+v", resp)
		}
	})

	t.Run("should map a failed verification to 400", func(t *testing.T) {
		env.paymentUC.VerifyPaymentFunc = func(_ context.Context, _ int64, _, _, _ string) (*usecase.VerifyResult, error) {
			return nil, domain.ErrVerificationFailed
		}
		rr := doRequest(t, env, "POST", "/api/v1/payments/verify", tok,
			`{"order_id":"order_1","payment_id":"pay_1","signature":"bad"}`)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
	})

	t.Run("should require authentication", func(t *testing.T) {
		rr := doRequest(t, env, "POST", "/api/v1/payments/verify", "",
			`{"order_id":"order_1","payment_id":"pay_1","signature":"valid-sig"}`)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rr.Code)
		}
	})
}

func TestUnlockContactHandler(t *testing.T) {
	env := newTestEnv("")
	tok := env.tokenFor(&model.User{ID: 7, UserType: model.UserTypeTenant})

	t.Run("should return contact details and post-debit state", func(t *testing.T) {
		env.creditUC.ConsumeCreditFunc = func(_ context.Context, userID, propertyID int64) (*usecase.ConsumeResult, error) {
			if userID != 7 || propertyID != 3 {
				t.Errorf("unexpected args: user=%d property=%d", userID, propertyID)
			}
			return &usecase.ConsumeResult{
				Contact:       &model.ContactDetails{Name: "Owner", Phone: "+911234567890"},
				Balance:       3,
				FirstTimeView: true,
				Charged:       true,
			}, nil
		}
		rr := doRequest(t, env, "POST", "/api/v1/properties/3/contact", tok, "")
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
		}
		var resp struct {
			Contact struct {
				Phone string `json:"phone"`
			} `json:"contact"`
			Balance int64 `json:"balance"`
			Charged bool  `json:"charged"`
		}
		json.Unmarshal(rr.Body.Bytes(), &resp)
		if resp.Contact.Phone != "+911234567890" || resp.Balance != 3 || !resp.Charged {
			t.Errorf("unexpected response: %+v", resp)
		}
	})

	t.Run("should map insufficient credits to 402", func(t *testing.T) {
		env.creditUC.ConsumeCreditFunc = nil
		rr := doRequest(t, env, "POST", "/api/v1/properties/3/contact", tok, "")
		if rr.Code != http.StatusPaymentRequired {
			t.Fatalf("expected 402, got %d", rr.Code)
		}
	})

	t.Run("should map expired credits to 402", func(t *testing.T) {
		env.creditUC.ConsumeCreditFunc = func(_ context.Context, _, _ int64) (*usecase.ConsumeResult, error) {
			return nil, domain.ErrCreditsExpired
		}
		rr := doRequest(t, env, "POST", "/api/v1/properties/3/contact", tok, "")
		if rr.Code != http.StatusPaymentRequired {
			t.Fatalf("expected 402, got %d", rr.Code)
		}
	})

	t.Run("should reject a non-numeric property id", func(t *testing.T) {
		rr := doRequest(t, env, "POST", "/api/v1/properties/abc/contact", tok, "")
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
	})
}

func TestPublicPropertyRoutes(t *testing.T) {
	env := newTestEnv("")

	t.Run("should serve an approved listing without auth", func(t *testing.T) {
		env.propUC.GetFunc = func(_ context.Context, id int64, viewer *model.User) (*model.Property, error) {
			if viewer != nil {
				t.Error("viewer must be nil on unauthenticated reads")
			}
			p := &model.Property{ID: id, Title: "2BHK in Indiranagar", City: "Bengaluru",
				Status: model.PropertyStatusApproved, IsActive: true}
			return p.Public(), nil
		}
		rr := doRequest(t, env, "GET", "/api/v1/properties/5", "", "")
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		if strings.Contains(rr.Body.String(), "contact") {
			t.Error("public listing body must not carry contact details")
		}
	})

	t.Run("should pass the token identity through on authed reads", func(t *testing.T) {
		var seen *model.User
		env.propUC.GetFunc = func(_ context.Context, id int64, viewer *model.User) (*model.Property, error) {
			seen = viewer
			return &model.Property{ID: id, OwnerID: 9, Status: model.PropertyStatusPending, IsActive: true}, nil
		}
		tok := env.tokenFor(&model.User{ID: 9, UserType: model.UserTypeOwner})
		rr := doRequest(t, env, "GET", "/api/v1/properties/5", tok, "")
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		if seen == nil || seen.ID != 9 {
			t.Errorf("expected viewer 9, got %+v", seen)
		}
	})

	t.Run("should translate search filters from the query string", func(t *testing.T) {
		env.propUC.ListFunc = func(_ context.Context, f repository.PropertyFilter) ([]*model.Property, int, error) {
			if f.City != "Bengaluru" || f.Bedrooms != 2 || f.MaxPrice != 40000 {
				t.Errorf("filter mistranslated: %+v", f)
			}
			return []*model.Property{}, 0, nil
		}
		rr := doRequest(t, env, "GET", "/api/v1/properties/?city=Bengaluru&bedrooms=2&max_price=40000", "", "")
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
	})
}

func TestSubmitTicketHandler(t *testing.T) {
	env := newTestEnv("")

	t.Run("should accept anonymous submissions", func(t *testing.T) {
		rr := doRequest(t, env, "POST", "/api/v1/support/", "",
			`{"name":"Ravi","email":"ravi@example.com","message":"help"}`)
		if rr.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
		}
	})

	t.Run("should reject unknown fields", func(t *testing.T) {
		rr := doRequest(t, env, "POST", "/api/v1/support/", "",
			`{"name":"Ravi","email":"ravi@example.com","message":"help","admin":true}`)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
	})
}

func TestHealthAndMetricsRoutes(t *testing.T) {
	env := newTestEnv("")

	rr := doRequest(t, env, "GET", "/health", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", rr.Code)
	}
	rr = doRequest(t, env, "GET", "/metrics", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", rr.Code)
	}
}
