// File: internal/usecase/mock_test.go
package usecase_test

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"rental-marketplace/internal/domain"
	"rental-marketplace/internal/domain/model"
	"rental-marketplace/internal/domain/ports/adapter"
	"rental-marketplace/internal/domain/ports/repository"
)

// =============================
// In-memory repositories
// =============================

type MockUserRepo struct {
	mu     sync.Mutex
	seq    int64
	data   map[int64]*model.User
	byMail map[string]int64
	byTel  map[string]int64

	SaveFunc                     func(ctx context.Context, tx repository.Tx, u *model.User) error
	FindCreditStateForUpdateFunc func(ctx context.Context, tx repository.Tx, id int64) (*model.User, error)
	UpdateCreditStateFunc        func(ctx context.Context, tx repository.Tx, id int64, credits int64, expiry *time.Time, purchasedDelta, usedDelta int64) error
}

var _ repository.UserRepository = (*MockUserRepo)(nil)

func NewMockUserRepo() *MockUserRepo {
	return &MockUserRepo{data: map[int64]*model.User{}, byMail: map[string]int64{}, byTel: map[string]int64{}}
}

func (r *MockUserRepo) Save(ctx context.Context, tx repository.Tx, u *model.User) error {
	if r.SaveFunc != nil {
		return r.SaveFunc(ctx, tx, u)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.byMail[u.Email]; dup {
		return domain.ErrAlreadyExists
	}
	if _, dup := r.byTel[u.Phone]; dup {
		return domain.ErrAlreadyExists
	}
	if u.ID == 0 {
		r.seq++
		u.ID = r.seq
	}
	cp := *u
	r.data[u.ID] = &cp
	r.byMail[u.Email] = u.ID
	r.byTel[u.Phone] = u.ID
	return nil
}

func (r *MockUserRepo) FindByID(ctx context.Context, tx repository.Tx, id int64) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.data[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *MockUserRepo) FindByEmail(ctx context.Context, tx repository.Tx, email string) (*model.User, error) {
	r.mu.Lock()
	id, ok := r.byMail[email]
	r.mu.Unlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r.FindByID(ctx, tx, id)
}

func (r *MockUserRepo) FindByPhone(ctx context.Context, tx repository.Tx, phone string) (*model.User, error) {
	r.mu.Lock()
	id, ok := r.byTel[phone]
	r.mu.Unlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r.FindByID(ctx, tx, id)
}

func (r *MockUserRepo) UpdateProfile(ctx context.Context, tx repository.Tx, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[u.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *u
	r.data[u.ID] = &cp
	return nil
}

func (r *MockUserRepo) UpdatePassword(ctx context.Context, tx repository.Tx, id int64, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.data[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *MockUserRepo) FindCreditStateForUpdate(ctx context.Context, tx repository.Tx, id int64) (*model.User, error) {
	if r.FindCreditStateForUpdateFunc != nil {
		return r.FindCreditStateForUpdateFunc(ctx, tx, id)
	}
	return r.FindByID(ctx, tx, id)
}

func (r *MockUserRepo) UpdateCreditState(ctx context.Context, tx repository.Tx, id int64, credits int64, expiry *time.Time, purchasedDelta, usedDelta int64) error {
	if r.UpdateCreditStateFunc != nil {
		return r.UpdateCreditStateFunc(ctx, tx, id, credits, expiry, purchasedDelta, usedDelta)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.data[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Credits = credits
	u.CreditExpiry = expiry
	u.TotalPurchasedCredits += purchasedDelta
	u.TotalUsedCredits += usedDelta
	return nil
}

// snapshot/restore let tests emulate transaction rollback on the in-memory
// store.
func (r *MockUserRepo) snapshot() map[int64]model.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[int64]model.User, len(r.data))
	for id, u := range r.data {
		out[id] = *u
	}
	return out
}

func (r *MockUserRepo) restore(snap map[int64]model.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = make(map[int64]*model.User, len(snap))
	for id := range snap {
		u := snap[id]
		r.data[id] = &u
	}
}

type MockPaymentRepo struct {
	mu      sync.Mutex
	seq     int64
	data    map[int64]*model.Payment
	byOrder map[string]int64

	SaveFunc              func(ctx context.Context, tx repository.Tx, p *model.Payment) error
	CompleteIfPendingFunc func(ctx context.Context, tx repository.Tx, id int64, gatewayPaymentID, signature string) (bool, error)
}

var _ repository.PaymentRepository = (*MockPaymentRepo)(nil)

func NewMockPaymentRepo() *MockPaymentRepo {
	return &MockPaymentRepo{data: map[int64]*model.Payment{}, byOrder: map[string]int64{}}
}

func (r *MockPaymentRepo) Save(ctx context.Context, tx repository.Tx, p *model.Payment) error {
	if r.SaveFunc != nil {
		return r.SaveFunc(ctx, tx, p)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == 0 {
		r.seq++
		p.ID = r.seq
	}
	cp := *p
	r.data[p.ID] = &cp
	r.byOrder[p.OrderID] = p.ID
	return nil
}

func (r *MockPaymentRepo) FindByID(ctx context.Context, tx repository.Tx, id int64) (*model.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.data[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *MockPaymentRepo) FindByOrderAndUser(ctx context.Context, tx repository.Tx, orderID string, userID int64) (*model.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byOrder[orderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p := r.data[id]
	if p.UserID != userID {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *MockPaymentRepo) FindByOrderID(ctx context.Context, tx repository.Tx, orderID string) (*model.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byOrder[orderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r.data[id]
	return &cp, nil
}

func (r *MockPaymentRepo) ListByUser(ctx context.Context, tx repository.Tx, userID int64, limit, offset int) ([]*model.Payment, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*model.Payment
	for _, p := range r.data {
		if p.UserID == userID {
			cp := *p
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := len(all)
	if offset >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, total, nil
}

func (r *MockPaymentRepo) CompleteIfPending(ctx context.Context, tx repository.Tx, id int64, gatewayPaymentID, signature string) (bool, error) {
	if r.CompleteIfPendingFunc != nil {
		return r.CompleteIfPendingFunc(ctx, tx, id, gatewayPaymentID, signature)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.data[id]
	if !ok || p.Status != model.PaymentStatusPending {
		return false, nil
	}
	p.Status = model.PaymentStatusCompleted
	p.GatewayPaymentID = gatewayPaymentID
	p.Signature = signature
	p.UpdatedAt = time.Now()
	return true, nil
}

func (r *MockPaymentRepo) FailIfPending(ctx context.Context, tx repository.Tx, id int64, gatewayPaymentID, signature string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.data[id]
	if !ok || p.Status != model.PaymentStatusPending {
		return false, nil
	}
	p.Status = model.PaymentStatusFailed
	p.GatewayPaymentID = gatewayPaymentID
	p.Signature = signature
	p.UpdatedAt = time.Now()
	return true, nil
}

type MockCreditTxRepo struct {
	mu      sync.Mutex
	seq     int64
	entries []*model.CreditTransaction

	AppendFunc func(ctx context.Context, tx repository.Tx, t *model.CreditTransaction) error
}

var _ repository.CreditTransactionRepository = (*MockCreditTxRepo)(nil)

func NewMockCreditTxRepo() *MockCreditTxRepo {
	return &MockCreditTxRepo{}
}

func (r *MockCreditTxRepo) Append(ctx context.Context, tx repository.Tx, t *model.CreditTransaction) error {
	if r.AppendFunc != nil {
		return r.AppendFunc(ctx, tx, t)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	t.ID = r.seq
	cp := *t
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *MockCreditTxRepo) ListByUser(ctx context.Context, tx repository.Tx, userID int64, limit int) ([]*model.CreditTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.CreditTransaction
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if r.entries[i].UserID == userID {
			cp := *r.entries[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MockCreditTxRepo) HasUsedForProperty(ctx context.Context, tx repository.Tx, userID, propertyID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.UserID == userID && e.Type == model.CreditTransactionUsed &&
			e.PropertyID != nil && *e.PropertyID == propertyID {
			return true, nil
		}
	}
	return false, nil
}

// Entries returns a snapshot for assertions.
func (r *MockCreditTxRepo) Entries() []*model.CreditTransaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.CreditTransaction, 0, len(r.entries))
	for _, e := range r.entries {
		cp := *e
		out = append(out, &cp)
	}
	return out
}

func (r *MockCreditTxRepo) snapshot() []*model.CreditTransaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*model.CreditTransaction(nil), r.entries...)
}

func (r *MockCreditTxRepo) restore(snap []*model.CreditTransaction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = snap
	r.seq = int64(len(snap))
}

type MockPropertyRepo struct {
	mu   sync.Mutex
	seq  int64
	data map[int64]*model.Property

	FindContactDetailsFunc func(ctx context.Context, tx repository.Tx, id int64) (*model.ContactDetails, error)
}

var _ repository.PropertyRepository = (*MockPropertyRepo)(nil)

func NewMockPropertyRepo() *MockPropertyRepo {
	return &MockPropertyRepo{data: map[int64]*model.Property{}}
}

func (r *MockPropertyRepo) Save(ctx context.Context, tx repository.Tx, p *model.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == 0 {
		r.seq++
		p.ID = r.seq
	}
	cp := *p
	r.data[p.ID] = &cp
	return nil
}

func (r *MockPropertyRepo) FindByID(ctx context.Context, tx repository.Tx, id int64) (*model.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.data[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *MockPropertyRepo) List(ctx context.Context, tx repository.Tx, f repository.PropertyFilter) ([]*model.Property, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Property
	for _, p := range r.data {
		if p.Status != model.PropertyStatusApproved || !p.IsActive {
			continue
		}
		if f.City != "" && p.City != f.City {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (r *MockPropertyRepo) ListByOwner(ctx context.Context, tx repository.Tx, ownerID int64) ([]*model.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Property
	for _, p := range r.data {
		if p.OwnerID == ownerID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MockPropertyRepo) Update(ctx context.Context, tx repository.Tx, p *model.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.data[p.ID] = &cp
	return nil
}

func (r *MockPropertyRepo) Delete(ctx context.Context, tx repository.Tx, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.data, id)
	return nil
}

func (r *MockPropertyRepo) SetStatus(ctx context.Context, tx repository.Tx, id int64, status model.PropertyStatus, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.data[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Status = status
	return nil
}

func (r *MockPropertyRepo) IncrementViews(ctx context.Context, tx repository.Tx, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.data[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Views++
	return nil
}

func (r *MockPropertyRepo) FindContactDetails(ctx context.Context, tx repository.Tx, id int64) (*model.ContactDetails, error) {
	if r.FindContactDetailsFunc != nil {
		return r.FindContactDetailsFunc(ctx, tx, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.data[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := p.Contact
	return &cp, nil
}

func (r *MockPropertyRepo) AddImage(ctx context.Context, tx repository.Tx, propertyID int64, img *model.PropertyImage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.data[propertyID]
	if !ok {
		return domain.ErrNotFound
	}
	img.ID = int64(len(p.Images) + 1)
	p.Images = append(p.Images, *img)
	return nil
}

func (r *MockPropertyRepo) DeleteImage(ctx context.Context, tx repository.Tx, propertyID, imageID int64) (*model.PropertyImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.data[propertyID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	for i, img := range p.Images {
		if img.ID == imageID {
			p.Images = append(p.Images[:i], p.Images[i+1:]...)
			return &img, nil
		}
	}
	return nil, domain.ErrNotFound
}

type MockSupportRepo struct {
	mu   sync.Mutex
	seq  int64
	data map[int64]*model.SupportTicket
}

var _ repository.SupportTicketRepository = (*MockSupportRepo)(nil)

func NewMockSupportRepo() *MockSupportRepo {
	return &MockSupportRepo{data: map[int64]*model.SupportTicket{}}
}

func (r *MockSupportRepo) Save(ctx context.Context, tx repository.Tx, t *model.SupportTicket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.ID == 0 {
		r.seq++
		t.ID = r.seq
	}
	cp := *t
	r.data[t.ID] = &cp
	return nil
}

func (r *MockSupportRepo) FindByID(ctx context.Context, tx repository.Tx, id int64) (*model.SupportTicket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.data[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *MockSupportRepo) List(ctx context.Context, tx repository.Tx, limit, offset int) ([]*model.SupportTicket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.SupportTicket
	for _, t := range r.data {
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *MockSupportRepo) UpdateStatus(ctx context.Context, tx repository.Tx, id int64, status model.TicketStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.data[id]
	if !ok {
		return false, nil
	}
	t.Status = status
	return true, nil
}

type MockViewingRepo struct {
	mu   sync.Mutex
	seq  int64
	data map[int64]*model.ViewingRequest
}

var _ repository.ViewingRequestRepository = (*MockViewingRepo)(nil)

func NewMockViewingRepo() *MockViewingRepo {
	return &MockViewingRepo{data: map[int64]*model.ViewingRequest{}}
}

func (r *MockViewingRepo) Save(ctx context.Context, tx repository.Tx, v *model.ViewingRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v.ID == 0 {
		r.seq++
		v.ID = r.seq
	}
	cp := *v
	r.data[v.ID] = &cp
	return nil
}

func (r *MockViewingRepo) FindByID(ctx context.Context, tx repository.Tx, id int64) (*model.ViewingRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.data[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *MockViewingRepo) List(ctx context.Context, tx repository.Tx, limit, offset int) ([]*model.ViewingRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.ViewingRequest
	for _, v := range r.data {
		cp := *v
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *MockViewingRepo) ListByPhone(ctx context.Context, tx repository.Tx, phone string) ([]*model.ViewingRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.ViewingRequest
	for _, v := range r.data {
		if v.Phone == phone {
			cp := *v
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *MockViewingRepo) UpdateStatus(ctx context.Context, tx repository.Tx, id int64, status model.ViewingStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.data[id]
	if !ok {
		return false, nil
	}
	v.Status = status
	v.UpdatedAt = time.Now()
	return true, nil
}

// =============================
// Adapter mocks
// =============================

type MockPaymentGateway struct {
	CreateOrderFunc func(ctx context.Context, amountMinorUnits int64, currency, receipt string, notes map[string]string) (string, error)
}

var _ adapter.PaymentGateway = (*MockPaymentGateway)(nil)

func (g *MockPaymentGateway) Name() string { return "mock" }

func (g *MockPaymentGateway) CreateOrder(ctx context.Context, amountMinorUnits int64, currency, receipt string, notes map[string]string) (string, error) {
	if g.CreateOrderFunc != nil {
		return g.CreateOrderFunc(ctx, amountMinorUnits, currency, receipt, notes)
	}
	return "order_mock_1", nil
}

// MockVerifier accepts any signature equal to "valid-sig" unless overridden.
type MockVerifier struct {
	VerifyOrderFunc func(orderID, paymentID, signature string) bool
	WebhookSecret   bool
}

var _ adapter.SignatureVerifier = (*MockVerifier)(nil)

func (v *MockVerifier) VerifyOrder(orderID, paymentID, signature string) bool {
	if v.VerifyOrderFunc != nil {
		return v.VerifyOrderFunc(orderID, paymentID, signature)
	}
	return signature == "valid-sig"
}

func (v *MockVerifier) VerifyWebhook(body []byte, signature string) bool { return true }
func (v *MockVerifier) WebhookSigningConfigured() bool                  { return v.WebhookSecret }

type MockMediaStore struct {
	mu      sync.Mutex
	deleted []string

	UploadFunc func(ctx context.Context, r io.Reader, filename, contentType string) (*adapter.UploadResult, error)
}

var _ adapter.MediaStore = (*MockMediaStore)(nil)

func (m *MockMediaStore) Upload(ctx context.Context, r io.Reader, filename, contentType string) (*adapter.UploadResult, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, r, filename, contentType)
	}
	return &adapter.UploadResult{URL: "https://cdn.test/" + filename, PublicID: "media/" + filename}, nil
}

func (m *MockMediaStore) Delete(ctx context.Context, publicID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, publicID)
	return nil
}

type sentMessage struct {
	Recipient string
	Subject   string
	Message   string
}

type MockNotifier struct {
	mu   sync.Mutex
	sent []sentMessage
	err  error
}

var _ adapter.Notifier = (*MockNotifier)(nil)

func (n *MockNotifier) Notify(ctx context.Context, recipient, subject, message string) error {
	if n.err != nil {
		return n.err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMessage{recipient, subject, message})
	return nil
}

func (n *MockNotifier) Sent() []sentMessage {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentMessage(nil), n.sent...)
}

type MockOTPStore struct {
	mu    sync.Mutex
	codes map[string]string
}

var _ adapter.OTPStore = (*MockOTPStore)(nil)

func NewMockOTPStore() *MockOTPStore {
	return &MockOTPStore{codes: map[string]string{}}
}

func (s *MockOTPStore) Save(ctx context.Context, phone, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[phone] = code
	return nil
}

func (s *MockOTPStore) Verify(ctx context.Context, phone, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.codes[phone]
	if !ok || stored != code {
		return false, nil
	}
	delete(s.codes, phone)
	return true, nil
}

type MockRateLimiter struct {
	mu     sync.Mutex
	counts map[string]int
}

var _ adapter.RateLimiter = (*MockRateLimiter)(nil)

func NewMockRateLimiter() *MockRateLimiter {
	return &MockRateLimiter{counts: map[string]int{}}
}

func (l *MockRateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts[key]++
	return l.counts[key] <= limit, nil
}

// =============================
// Infra helpers for tests
// =============================

// MockTxManager runs the function immediately with NoTX unless a custom
// WithTxFunc is supplied. Rollback semantics are approximated by the
// in-memory repos only mutating state on success paths the tests assert.
type MockTxManager struct {
	WithTxFunc func(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error
}

var _ repository.TransactionManager = (*MockTxManager)(nil)

func NewMockTxManager() *MockTxManager { return &MockTxManager{} }

func (m *MockTxManager) WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	if m.WithTxFunc != nil {
		return m.WithTxFunc(ctx, txOpt, fn)
	}
	return fn(ctx, repository.NoTX)
}

// newTestLogger creates a silent zerolog.Logger so test output stays clean.
func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}
