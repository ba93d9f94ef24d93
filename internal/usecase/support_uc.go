// File: internal/usecase/support_uc.go
package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"rental-marketplace/internal/domain"
	"rental-marketplace/internal/domain/model"
	"rental-marketplace/internal/domain/ports/adapter"
	"rental-marketplace/internal/domain/ports/repository"
)

// Compile-time check
var _ SupportUseCase = (*supportUC)(nil)

type SupportUseCase interface {
	Submit(ctx context.Context, name, email, phone, message string) (*model.SupportTicket, error)
	Get(ctx context.Context, id int64) (*model.SupportTicket, error)
	List(ctx context.Context, limit, offset int) ([]*model.SupportTicket, error)
	UpdateStatus(ctx context.Context, id int64, status model.TicketStatus) error
}

type supportUC struct {
	tickets  repository.SupportTicketRepository
	notifier adapter.Notifier
	log      *zerolog.Logger
}

func NewSupportUseCase(tickets repository.SupportTicketRepository, notifier adapter.Notifier, log *zerolog.Logger) *supportUC {
	l := log.With().Str("component", "support_uc").Logger()
	return &supportUC{tickets: tickets, notifier: notifier, log: &l}
}

func (u *supportUC) Submit(ctx context.Context, name, email, phone, message string) (*model.SupportTicket, error) {
	t, err := model.NewSupportTicket(name, email, phone, message)
	if err != nil {
		return nil, err
	}
	if err := u.tickets.Save(ctx, repository.NoTX, t); err != nil {
		return nil, err
	}
	// Acknowledgement is best effort; the ticket is already stored.
	if err := u.notifier.Notify(ctx, t.Email, "Support request received",
		"We received your request and will get back to you shortly."); err != nil {
		u.log.Warn().Err(err).Int64("ticket_id", t.ID).Msg("ticket ack delivery failed")
	}
	u.log.Info().Int64("ticket_id", t.ID).Msg("support ticket created")
	return t, nil
}

func (u *supportUC) Get(ctx context.Context, id int64) (*model.SupportTicket, error) {
	return u.tickets.FindByID(ctx, repository.NoTX, id)
}

func (u *supportUC) List(ctx context.Context, limit, offset int) ([]*model.SupportTicket, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return u.tickets.List(ctx, repository.NoTX, limit, offset)
}

func (u *supportUC) UpdateStatus(ctx context.Context, id int64, status model.TicketStatus) error {
	if !model.ValidTicketStatus(status) {
		return domain.ErrInvalidArgument
	}
	ok, err := u.tickets.UpdateStatus(ctx, repository.NoTX, id, status)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}
