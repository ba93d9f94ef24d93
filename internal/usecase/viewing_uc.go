// File: internal/usecase/viewing_uc.go
package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"rental-marketplace/internal/domain"
	"rental-marketplace/internal/domain/model"
	"rental-marketplace/internal/domain/ports/adapter"
	"rental-marketplace/internal/domain/ports/repository"
)

// Compile-time check
var _ ViewingUseCase = (*viewingUC)(nil)

type ViewingUseCase interface {
	Schedule(ctx context.Context, v *model.ViewingRequest) (*model.ViewingRequest, error)
	Get(ctx context.Context, id int64) (*model.ViewingRequest, error)
	List(ctx context.Context, limit, offset int) ([]*model.ViewingRequest, error)
	ListByPhone(ctx context.Context, phone string) ([]*model.ViewingRequest, error)
	UpdateStatus(ctx context.Context, id int64, status model.ViewingStatus) error
}

type viewingUC struct {
	viewings repository.ViewingRequestRepository
	notifier adapter.Notifier
	log      *zerolog.Logger
}

func NewViewingUseCase(viewings repository.ViewingRequestRepository, notifier adapter.Notifier, log *zerolog.Logger) *viewingUC {
	l := log.With().Str("component", "viewing_uc").Logger()
	return &viewingUC{viewings: viewings, notifier: notifier, log: &l}
}

func (u *viewingUC) Schedule(ctx context.Context, v *model.ViewingRequest) (*model.ViewingRequest, error) {
	req, err := model.NewViewingRequest(v.Name, v.Phone)
	if err != nil {
		return nil, err
	}
	req.PropertyType = v.PropertyType
	req.Location = v.Location
	req.PropertyLink = v.PropertyLink
	req.PreferredDate = v.PreferredDate
	req.PreferredTime = v.PreferredTime

	if err := u.viewings.Save(ctx, repository.NoTX, req); err != nil {
		return nil, err
	}
	if err := u.notifier.Notify(ctx, req.Phone, "Viewing request received",
		"Thanks! Our team will confirm your visit slot shortly."); err != nil {
		u.log.Warn().Err(err).Int64("viewing_id", req.ID).Msg("viewing ack delivery failed")
	}
	u.log.Info().Int64("viewing_id", req.ID).Msg("viewing scheduled")
	return req, nil
}

func (u *viewingUC) Get(ctx context.Context, id int64) (*model.ViewingRequest, error) {
	return u.viewings.FindByID(ctx, repository.NoTX, id)
}

func (u *viewingUC) List(ctx context.Context, limit, offset int) ([]*model.ViewingRequest, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return u.viewings.List(ctx, repository.NoTX, limit, offset)
}

func (u *viewingUC) ListByPhone(ctx context.Context, phone string) ([]*model.ViewingRequest, error) {
	if phone == "" {
		return nil, domain.ErrInvalidArgument
	}
	return u.viewings.ListByPhone(ctx, repository.NoTX, phone)
}

func (u *viewingUC) UpdateStatus(ctx context.Context, id int64, status model.ViewingStatus) error {
	if !model.ValidViewingStatus(status) {
		return domain.ErrInvalidArgument
	}
	ok, err := u.viewings.UpdateStatus(ctx, repository.NoTX, id, status)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	if req, err := u.viewings.FindByID(ctx, repository.NoTX, id); err == nil && req.Status == model.ViewingStatusConfirmed {
		msg := "Your property viewing has been confirmed."
		if req.PreferredDate != nil {
			msg = fmt.Sprintf("Your property viewing on %s has been confirmed.", req.PreferredDate.Format("02 Jan 2006"))
		}
		if err := u.notifier.Notify(ctx, req.Phone, "Viewing confirmed", msg); err != nil {
			u.log.Warn().Err(err).Int64("viewing_id", id).Msg("confirmation delivery failed")
		}
	}
	return nil
}
