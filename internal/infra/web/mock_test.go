// File: internal/infra/web/mock_test.go
package web

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"

	"rental-marketplace/internal/domain"
	"rental-marketplace/internal/domain/model"
	"rental-marketplace/internal/domain/ports/repository"
	"rental-marketplace/internal/usecase"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.New(io.Discard)
	return &l
}

// --- Mock use cases ---
//
// Each mock embeds its interface for forward compatibility and exposes
// overridable func fields so tests can script individual operations.

type mockUserUC struct {
	usecase.UserUseCase
	LoginFunc    func(ctx context.Context, identifier, password string) (*model.User, error)
	RegisterFunc func(ctx context.Context, name, email, phone, password string, userType model.UserType) (*model.User, error)
	ProfileFunc  func(ctx context.Context, userID int64) (*model.User, error)
}

func (m *mockUserUC) Login(ctx context.Context, identifier, password string) (*model.User, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, identifier, password)
	}
	return nil, domain.ErrUnauthorized
}

func (m *mockUserUC) Register(ctx context.Context, name, email, phone, password string, userType model.UserType) (*model.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, name, email, phone, password, userType)
	}
	return nil, domain.ErrInvalidArgument
}

func (m *mockUserUC) Profile(ctx context.Context, userID int64) (*model.User, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx, userID)
	}
	return nil, domain.ErrNotFound
}

type mockPropertyUC struct {
	usecase.PropertyUseCase
	GetFunc  func(ctx context.Context, id int64, viewer *model.User) (*model.Property, error)
	ListFunc func(ctx context.Context, f repository.PropertyFilter) ([]*model.Property, int, error)
}

func (m *mockPropertyUC) Get(ctx context.Context, id int64, viewer *model.User) (*model.Property, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id, viewer)
	}
	return nil, domain.ErrNotFound
}

func (m *mockPropertyUC) List(ctx context.Context, f repository.PropertyFilter) ([]*model.Property, int, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return []*model.Property{}, 0, nil
}

type mockPaymentUC struct {
	usecase.PaymentUseCase
	VerifyPaymentFunc       func(ctx context.Context, userID int64, orderID, gatewayPaymentID, signature string) (*usecase.VerifyResult, error)
	ProcessWebhookEventFunc func(ctx context.Context, ev *model.WebhookEvent) error

	// Events records every decoded webhook event the handler forwarded.
	Events []*model.WebhookEvent
}

func (m *mockPaymentUC) VerifyPayment(ctx context.Context, userID int64, orderID, gatewayPaymentID, signature string) (*usecase.VerifyResult, error) {
	if m.VerifyPaymentFunc != nil {
		return m.VerifyPaymentFunc(ctx, userID, orderID, gatewayPaymentID, signature)
	}
	return nil, domain.ErrVerificationFailed
}

func (m *mockPaymentUC) ProcessWebhookEvent(ctx context.Context, ev *model.WebhookEvent) error {
	m.Events = append(m.Events, ev)
	if m.ProcessWebhookEventFunc != nil {
		return m.ProcessWebhookEventFunc(ctx, ev)
	}
	return nil
}

type mockCreditUC struct {
	usecase.CreditUseCase
	ConsumeCreditFunc func(ctx context.Context, userID, propertyID int64) (*usecase.ConsumeResult, error)
	BalanceFunc       func(ctx context.Context, userID int64) (*model.CreditBalance, error)
}

func (m *mockCreditUC) ConsumeCredit(ctx context.Context, userID, propertyID int64) (*usecase.ConsumeResult, error) {
	if m.ConsumeCreditFunc != nil {
		return m.ConsumeCreditFunc(ctx, userID, propertyID)
	}
	return nil, domain.ErrInsufficientCredits
}

func (m *mockCreditUC) Balance(ctx context.Context, userID int64) (*model.CreditBalance, error) {
	if m.BalanceFunc != nil {
		return m.BalanceFunc(ctx, userID)
	}
	return &model.CreditBalance{}, nil
}

type mockSupportUC struct {
	usecase.SupportUseCase
	SubmitFunc func(ctx context.Context, name, email, phone, message string) (*model.SupportTicket, error)
}

func (m *mockSupportUC) Submit(ctx context.Context, name, email, phone, message string) (*model.SupportTicket, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, name, email, phone, message)
	}
	return &model.SupportTicket{ID: 1, Name: name, Email: email, Phone: phone,
		Message: message, Status: model.TicketStatusOpen, CreatedAt: time.Now()}, nil
}

type mockViewingUC struct {
	usecase.ViewingUseCase
}

// --- Server assembly ---

type testEnv struct {
	server    *Server
	auth      *AuthManager
	userUC    *mockUserUC
	propUC    *mockPropertyUC
	paymentUC *mockPaymentUC
	creditUC  *mockCreditUC
	supportUC *mockSupportUC
}

func newTestEnv(webhookSecret string) *testEnv {
	env := &testEnv{
		auth:      NewAuthManager("test-secret", time.Hour),
		userUC:    &mockUserUC{},
		propUC:    &mockPropertyUC{},
		paymentUC: &mockPaymentUC{},
		creditUC:  &mockCreditUC{},
		supportUC: &mockSupportUC{},
	}
	env.server = &Server{
		auth:       env.auth,
		verifier:   &staticVerifier{webhookSecret: webhookSecret},
		userUC:     env.userUC,
		propertyUC: env.propUC,
		paymentUC:  env.paymentUC,
		creditUC:   env.creditUC,
		supportUC:  env.supportUC,
		viewingUC:  &mockViewingUC{},
		log:        newTestLogger(),
	}
	return env
}

func (e *testEnv) tokenFor(u *model.User) string {
	tok, _ := e.auth.Mint(u)
	return tok
}

// staticVerifier mirrors the production webhook check: HMAC over the raw
// body with the configured secret, permissive when no secret is set.
type staticVerifier struct {
	webhookSecret string
}

func (v *staticVerifier) VerifyOrder(orderID, paymentID, signature string) bool {
	return signature == "valid-sig"
}

func (v *staticVerifier) VerifyWebhook(body []byte, signature string) bool {
	return signature == webhookSignature(v.webhookSecret, body)
}

func (v *staticVerifier) WebhookSigningConfigured() bool { return v.webhookSecret != "" }
