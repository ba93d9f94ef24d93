// File: internal/usecase/payment_uc.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"rental-marketplace/internal/domain"
	"rental-marketplace/internal/domain/model"
	"rental-marketplace/internal/domain/ports/adapter"
	"rental-marketplace/internal/domain/ports/repository"
)

// Compile-time check
var _ PaymentUseCase = (*paymentUC)(nil)

// VerifyResult is what the verification endpoint returns to the client.
type VerifyResult struct {
	Payment          *model.Payment
	CreditsAdded     int64
	Balance          int64
	CreditExpiry     time.Time
	AlreadyCompleted bool
}

type PaymentUseCase interface {
	// CreateOrder registers an order with the gateway and records a pending
	// payment. It never touches the user's balance.
	CreateOrder(ctx context.Context, userID int64, planType string, credits, basePrice int64, validityDays int) (*model.Payment, error)
	// VerifyPayment checks the checkout signature and, inside one transaction,
	// flips the payment to completed and merges the purchased credits.
	// Replays and races with the webhook resolve to a single merge.
	VerifyPayment(ctx context.Context, userID int64, orderID, gatewayPaymentID, signature string) (*VerifyResult, error)
	// ProcessWebhookEvent applies one decoded gateway event. Business-level
	// failures (unknown order, already-terminal payment) return nil so the
	// transport layer ACKs and the gateway stops retrying.
	ProcessWebhookEvent(ctx context.Context, ev *model.WebhookEvent) error
	History(ctx context.Context, userID int64, limit, offset int) ([]*model.Payment, int, error)
}

type paymentUC struct {
	payments repository.PaymentRepository
	users    repository.UserRepository
	ledger   repository.CreditTransactionRepository
	gateway  adapter.PaymentGateway
	verifier adapter.SignatureVerifier
	tm       repository.TransactionManager
	log      *zerolog.Logger
}

func NewPaymentUseCase(
	payments repository.PaymentRepository,
	users repository.UserRepository,
	ledger repository.CreditTransactionRepository,
	gateway adapter.PaymentGateway,
	verifier adapter.SignatureVerifier,
	tm repository.TransactionManager,
	log *zerolog.Logger,
) *paymentUC {
	l := log.With().Str("component", "payment_uc").Logger()
	return &paymentUC{
		payments: payments,
		users:    users,
		ledger:   ledger,
		gateway:  gateway,
		verifier: verifier,
		tm:       tm,
		log:      &l,
	}
}

func (u *paymentUC) CreateOrder(ctx context.Context, userID int64, planType string, credits, basePrice int64, validityDays int) (*model.Payment, error) {
	if _, err := u.users.FindByID(ctx, repository.NoTX, userID); err != nil {
		return nil, err
	}

	// Commercial fields are computed before the gateway call so it is
	// charged the same rounded total we persist; the order id comes back
	// from the gateway and is stamped on afterwards.
	draft, err := model.NewPayment(userID, planType, credits, basePrice, validityDays)
	if err != nil {
		return nil, err
	}

	receipt := fmt.Sprintf("rcpt_%d_%d", userID, time.Now().Unix())
	orderID, err := u.gateway.CreateOrder(ctx, draft.AmountMinorUnits(), draft.Currency, receipt, map[string]string{
		"plan_type": planType,
		"credits":   fmt.Sprintf("%d", credits),
	})
	if err != nil {
		u.log.Error().Err(err).Int64("user_id", userID).Msg("gateway order creation failed")
		return nil, fmt.Errorf("create order: %w", err)
	}
	draft.OrderID = orderID

	if err := u.payments.Save(ctx, repository.NoTX, draft); err != nil {
		return nil, err
	}
	u.log.Info().Int64("user_id", userID).Str("order_id", orderID).
		Int64("total", draft.TotalAmount).Msg("order created")
	return draft, nil
}

func (u *paymentUC) VerifyPayment(ctx context.Context, userID int64, orderID, gatewayPaymentID, signature string) (*VerifyResult, error) {
	if orderID == "" || gatewayPaymentID == "" || signature == "" {
		return nil, domain.ErrInvalidArgument
	}

	if !u.verifier.VerifyOrder(orderID, gatewayPaymentID, signature) {
		// Record the failure with the gateway ids for audit; an already
		// terminal payment stays untouched.
		err := u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
			p, err := u.payments.FindByOrderAndUser(ctx, tx, orderID, userID)
			if err != nil {
				return err
			}
			_, err = u.payments.FailIfPending(ctx, tx, p.ID, gatewayPaymentID, signature)
			return err
		})
		if errors.Is(err, domain.ErrNotFound) {
			// No such order for this user; that outranks the signature verdict.
			return nil, domain.ErrNotFound
		}
		if err != nil {
			u.log.Error().Err(err).Str("order_id", orderID).Msg("recording failed verification")
		}
		return nil, domain.ErrVerificationFailed
	}

	var res VerifyResult
	err := u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		// Row lock on the payment serializes this against the webhook path.
		p, err := u.payments.FindByOrderAndUser(ctx, tx, orderID, userID)
		if err != nil {
			return err
		}
		completed, err := u.payments.CompleteIfPending(ctx, tx, p.ID, gatewayPaymentID, signature)
		if err != nil {
			return err
		}
		if !completed {
			// failed is terminal; a valid signature presented later cannot
			// resurrect the payment or mint its credits.
			if p.Status == model.PaymentStatusFailed {
				return domain.ErrVerificationFailed
			}
			// Lost the race with the webhook, or a client retry. The merge
			// already happened; report current state instead of failing.
			res.AlreadyCompleted = true
			usr, err := u.users.FindByID(ctx, tx, userID)
			if err != nil {
				return err
			}
			res.Payment = p
			res.Balance = usr.Credits
			if usr.CreditExpiry != nil {
				res.CreditExpiry = *usr.CreditExpiry
			}
			return nil
		}
		balance, expiry, err := u.mergeCredits(ctx, tx, p)
		if err != nil {
			return err
		}
		p.Status = model.PaymentStatusCompleted
		p.GatewayPaymentID = gatewayPaymentID
		p.Signature = signature
		res.Payment = p
		res.CreditsAdded = p.Credits
		res.Balance = balance
		res.CreditExpiry = expiry
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.Info().Int64("user_id", userID).Str("order_id", orderID).
		Bool("replay", res.AlreadyCompleted).Int64("balance", res.Balance).Msg("payment verified")
	return &res, nil
}

func (u *paymentUC) ProcessWebhookEvent(ctx context.Context, ev *model.WebhookEvent) error {
	switch ev.Kind {
	case model.WebhookPaymentCaptured:
		return u.handleCaptured(ctx, ev)
	case model.WebhookPaymentFailed:
		return u.handleFailed(ctx, ev)
	case model.WebhookRefundCreated:
		// Acknowledged but not automated; refunds are settled manually.
		u.log.Info().Str("payment_id", ev.PaymentID).Msg("refund event received")
		return nil
	default:
		u.log.Debug().Str("event", ev.RawEvent).Msg("unhandled webhook event")
		return nil
	}
}

func (u *paymentUC) handleCaptured(ctx context.Context, ev *model.WebhookEvent) error {
	var merged bool
	err := u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		p, err := u.payments.FindByOrderID(ctx, tx, ev.OrderID)
		if err != nil {
			return err
		}
		completed, err := u.payments.CompleteIfPending(ctx, tx, p.ID, ev.PaymentID, "")
		if err != nil {
			return err
		}
		if !completed {
			return nil
		}
		if _, _, err := u.mergeCredits(ctx, tx, p); err != nil {
			return err
		}
		merged = true
		return nil
	})
	if errors.Is(err, domain.ErrNotFound) {
		// Order we never issued (or a different environment). ACK so the
		// gateway stops retrying.
		u.log.Warn().Str("order_id", ev.OrderID).Msg("captured event for unknown order")
		return nil
	}
	if err != nil {
		return err
	}
	u.log.Info().Str("order_id", ev.OrderID).Bool("merged", merged).Msg("captured event processed")
	return nil
}

func (u *paymentUC) handleFailed(ctx context.Context, ev *model.WebhookEvent) error {
	err := u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		p, err := u.payments.FindByOrderID(ctx, tx, ev.OrderID)
		if err != nil {
			return err
		}
		_, err = u.payments.FailIfPending(ctx, tx, p.ID, ev.PaymentID, "")
		return err
	})
	if errors.Is(err, domain.ErrNotFound) {
		u.log.Warn().Str("order_id", ev.OrderID).Msg("failed event for unknown order")
		return nil
	}
	if err != nil {
		return err
	}
	return nil
}

func (u *paymentUC) History(ctx context.Context, userID int64, limit, offset int) ([]*model.Payment, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return u.payments.ListByUser(ctx, repository.NoTX, userID, limit, offset)
}

// mergeCredits folds a completed purchase into the user's balance. Must run
// inside the same transaction as the status flip so a rollback undoes both.
//
// Merge rule: an unexpired positive balance accumulates; an expired or empty
// one is replaced. Expiry only ever extends (max of existing and new window).
func (u *paymentUC) mergeCredits(ctx context.Context, tx repository.Tx, p *model.Payment) (int64, time.Time, error) {
	usr, err := u.users.FindCreditStateForUpdate(ctx, tx, p.UserID)
	if err != nil {
		return 0, time.Time{}, err
	}

	now := time.Now()
	newBalance := p.Credits
	newExpiry := now.AddDate(0, 0, p.ValidityDays)
	if usr.Credits > 0 && usr.CreditExpiry != nil && usr.CreditExpiry.After(now) {
		newBalance = usr.Credits + p.Credits
		if usr.CreditExpiry.After(newExpiry) {
			newExpiry = *usr.CreditExpiry
		}
	}

	if err := u.users.UpdateCreditState(ctx, tx, p.UserID, newBalance, &newExpiry, p.Credits, 0); err != nil {
		return 0, time.Time{}, err
	}
	entry := &model.CreditTransaction{
		UserID:       p.UserID,
		Type:         model.CreditTransactionPurchase,
		Credits:      p.Credits,
		BalanceAfter: newBalance,
		PaymentID:    &p.ID,
		Description:  fmt.Sprintf("Purchased %d credits (%s plan)", p.Credits, p.PlanType),
		ExpiresAt:    &newExpiry,
		CreatedAt:    now,
	}
	if err := u.ledger.Append(ctx, tx, entry); err != nil {
		return 0, time.Time{}, err
	}
	return newBalance, newExpiry, nil
}
