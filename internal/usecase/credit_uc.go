// File: internal/usecase/credit_uc.go
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"rental-marketplace/internal/domain"
	"rental-marketplace/internal/domain/model"
	"rental-marketplace/internal/domain/ports/repository"
)

// Compile-time check
var _ CreditUseCase = (*creditUC)(nil)

// ConsumeResult carries the unlocked contact fields plus the caller's
// post-debit state.
type ConsumeResult struct {
	Contact       *model.ContactDetails
	Balance       int64
	CreditExpiry  *time.Time
	FirstTimeView bool
	Charged       bool
}

type CreditUseCase interface {
	// ConsumeCredit debits one credit and returns the property's gated
	// contact details. Debit and resource check run in one transaction with
	// the user row locked, so concurrent calls serialize and a missing
	// property never leaves a partial debit behind.
	ConsumeCredit(ctx context.Context, userID, propertyID int64) (*ConsumeResult, error)
	Balance(ctx context.Context, userID int64) (*model.CreditBalance, error)
}

type creditUC struct {
	users      repository.UserRepository
	properties repository.PropertyRepository
	ledger     repository.CreditTransactionRepository
	tm         repository.TransactionManager
	// freeRepeatView makes unlocking a property the user already paid for
	// free on subsequent calls instead of charging every time.
	freeRepeatView bool
	log            *zerolog.Logger
}

func NewCreditUseCase(
	users repository.UserRepository,
	properties repository.PropertyRepository,
	ledger repository.CreditTransactionRepository,
	tm repository.TransactionManager,
	freeRepeatView bool,
	log *zerolog.Logger,
) *creditUC {
	l := log.With().Str("component", "credit_uc").Logger()
	return &creditUC{
		users:          users,
		properties:     properties,
		ledger:         ledger,
		tm:             tm,
		freeRepeatView: freeRepeatView,
		log:            &l,
	}
}

func (u *creditUC) ConsumeCredit(ctx context.Context, userID, propertyID int64) (*ConsumeResult, error) {
	if propertyID <= 0 {
		return nil, domain.ErrInvalidArgument
	}

	var res ConsumeResult
	err := u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		usr, err := u.users.FindCreditStateForUpdate(ctx, tx, userID)
		if err != nil {
			return err
		}

		now := time.Now()
		prior, err := u.ledger.HasUsedForProperty(ctx, tx, userID, propertyID)
		if err != nil {
			return err
		}
		res.FirstTimeView = !prior

		if u.freeRepeatView && prior {
			// Already paid for this property; unlock again at no charge.
			contact, err := u.properties.FindContactDetails(ctx, tx, propertyID)
			if err != nil {
				return err
			}
			res.Contact = contact
			res.Balance = usr.EffectiveCredits(now)
			res.CreditExpiry = usr.CreditExpiry
			return nil
		}

		effective := usr.EffectiveCredits(now)
		if effective <= 0 {
			if usr.Credits > 0 {
				return domain.ErrCreditsExpired
			}
			return domain.ErrInsufficientCredits
		}

		newBalance := effective - 1
		if err := u.users.UpdateCreditState(ctx, tx, userID, newBalance, usr.CreditExpiry, 0, 1); err != nil {
			return err
		}
		entry := &model.CreditTransaction{
			UserID:       userID,
			Type:         model.CreditTransactionUsed,
			Credits:      -1,
			BalanceAfter: newBalance,
			PropertyID:   &propertyID,
			Description:  fmt.Sprintf("Viewed contact details for property %d", propertyID),
			ExpiresAt:    usr.CreditExpiry,
			CreatedAt:    now,
		}
		if err := u.ledger.Append(ctx, tx, entry); err != nil {
			return err
		}

		// Resource check last; a missing property rolls the debit back with
		// the transaction.
		contact, err := u.properties.FindContactDetails(ctx, tx, propertyID)
		if err != nil {
			return err
		}
		res.Contact = contact
		res.Balance = newBalance
		res.CreditExpiry = usr.CreditExpiry
		res.Charged = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Info().Int64("user_id", userID).Int64("property_id", propertyID).
		Bool("charged", res.Charged).Int64("balance", res.Balance).Msg("contact details unlocked")
	return &res, nil
}

func (u *creditUC) Balance(ctx context.Context, userID int64) (*model.CreditBalance, error) {
	usr, err := u.users.FindByID(ctx, repository.NoTX, userID)
	if err != nil {
		return nil, err
	}
	recent, err := u.ledger.ListByUser(ctx, repository.NoTX, userID, 10)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	out := &model.CreditBalance{
		Balance:        usr.EffectiveCredits(now),
		CreditExpiry:   usr.CreditExpiry,
		TotalPurchased: usr.TotalPurchasedCredits,
		TotalUsed:      usr.TotalUsedCredits,
		Recent:         recent,
	}
	if usr.Credits > 0 && usr.CreditExpiry != nil {
		if usr.CreditExpiry.After(now) {
			out.DaysRemaining = int(usr.CreditExpiry.Sub(now).Hours() / 24)
		} else {
			out.IsExpired = true
		}
	}
	return out, nil
}
