// File: internal/usecase/property_uc.go
package usecase

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"

	"rental-marketplace/internal/domain"
	"rental-marketplace/internal/domain/model"
	"rental-marketplace/internal/domain/ports/adapter"
	"rental-marketplace/internal/domain/ports/repository"
)

// Compile-time check
var _ PropertyUseCase = (*propertyUC)(nil)

type PropertyUseCase interface {
	Create(ctx context.Context, ownerID int64, p *model.Property) (*model.Property, error)
	// Get returns the public view (contact stripped) and bumps the view
	// counter. Owner and admin callers see their listings regardless of
	// moderation status.
	Get(ctx context.Context, id int64, viewer *model.User) (*model.Property, error)
	List(ctx context.Context, f repository.PropertyFilter) ([]*model.Property, int, error)
	ListMine(ctx context.Context, ownerID int64) ([]*model.Property, error)
	Update(ctx context.Context, actor *model.User, p *model.Property) (*model.Property, error)
	Delete(ctx context.Context, actor *model.User, id int64) error
	// Moderate is the admin approval step; only approved listings appear in
	// public searches.
	Moderate(ctx context.Context, id int64, status model.PropertyStatus, reason string) error

	UploadImage(ctx context.Context, actor *model.User, propertyID int64, r io.Reader, filename, contentType, caption string, primary bool) (*model.PropertyImage, error)
	RemoveImage(ctx context.Context, actor *model.User, propertyID, imageID int64) error
}

type propertyUC struct {
	properties repository.PropertyRepository
	media      adapter.MediaStore
	log        *zerolog.Logger
}

func NewPropertyUseCase(properties repository.PropertyRepository, media adapter.MediaStore, log *zerolog.Logger) *propertyUC {
	l := log.With().Str("component", "property_uc").Logger()
	return &propertyUC{properties: properties, media: media, log: &l}
}

func (u *propertyUC) Create(ctx context.Context, ownerID int64, p *model.Property) (*model.Property, error) {
	draft, err := model.NewProperty(ownerID, p.Title, p.PropertyType, p.City, p.Price, p.Contact)
	if err != nil {
		return nil, err
	}
	draft.Description = p.Description
	if p.PropertyFor != "" {
		draft.PropertyFor = p.PropertyFor
	}
	draft.Address = p.Address
	draft.State = p.State
	draft.Pincode = p.Pincode
	draft.Locality = p.Locality
	draft.Landmark = p.Landmark
	draft.Bedrooms = p.Bedrooms
	draft.Bathrooms = p.Bathrooms
	draft.BuiltUpArea = p.BuiltUpArea
	if p.AreaUnit != "" {
		draft.AreaUnit = p.AreaUnit
	}
	if p.PriceType != "" {
		draft.PriceType = p.PriceType
	}
	draft.SecurityDeposit = p.SecurityDeposit
	draft.MaintenanceCharge = p.MaintenanceCharge
	draft.FurnishingStatus = p.FurnishingStatus
	draft.AvailableFrom = p.AvailableFrom
	draft.PreferredTenant = p.PreferredTenant
	draft.Amenities = p.Amenities

	if err := u.properties.Save(ctx, repository.NoTX, draft); err != nil {
		return nil, err
	}
	u.log.Info().Int64("owner_id", ownerID).Int64("property_id", draft.ID).
		Str("code", draft.Code).Msg("property listed")
	return draft, nil
}

func (u *propertyUC) Get(ctx context.Context, id int64, viewer *model.User) (*model.Property, error) {
	p, err := u.properties.FindByID(ctx, repository.NoTX, id)
	if err != nil {
		return nil, err
	}
	if !canManage(viewer, p) {
		if p.Status != model.PropertyStatusApproved || !p.IsActive {
			return nil, domain.ErrNotFound
		}
		// Best effort; a lost increment is not worth failing the read.
		if err := u.properties.IncrementViews(ctx, repository.NoTX, id); err != nil {
			u.log.Warn().Err(err).Int64("property_id", id).Msg("view counter increment failed")
		}
		p.Views++
		return p.Public(), nil
	}
	return p, nil
}

func (u *propertyUC) List(ctx context.Context, f repository.PropertyFilter) ([]*model.Property, int, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	items, total, err := u.properties.List(ctx, repository.NoTX, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*model.Property, 0, len(items))
	for _, p := range items {
		out = append(out, p.Public())
	}
	return out, total, nil
}

func (u *propertyUC) ListMine(ctx context.Context, ownerID int64) ([]*model.Property, error) {
	return u.properties.ListByOwner(ctx, repository.NoTX, ownerID)
}

func (u *propertyUC) Update(ctx context.Context, actor *model.User, p *model.Property) (*model.Property, error) {
	existing, err := u.properties.FindByID(ctx, repository.NoTX, p.ID)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, existing) {
		return nil, domain.ErrUnauthorized
	}
	p.OwnerID = existing.OwnerID
	p.Code = existing.Code
	p.Status = existing.Status
	p.UpdatedAt = time.Now()
	if err := u.properties.Update(ctx, repository.NoTX, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (u *propertyUC) Delete(ctx context.Context, actor *model.User, id int64) error {
	existing, err := u.properties.FindByID(ctx, repository.NoTX, id)
	if err != nil {
		return err
	}
	if !canManage(actor, existing) {
		return domain.ErrUnauthorized
	}
	for _, img := range existing.Images {
		if img.PublicID == "" {
			continue
		}
		if err := u.media.Delete(ctx, img.PublicID); err != nil {
			u.log.Warn().Err(err).Str("public_id", img.PublicID).Msg("orphaned media object")
		}
	}
	return u.properties.Delete(ctx, repository.NoTX, id)
}

func (u *propertyUC) Moderate(ctx context.Context, id int64, status model.PropertyStatus, reason string) error {
	switch status {
	case model.PropertyStatusApproved, model.PropertyStatusRejected:
	default:
		return domain.ErrInvalidArgument
	}
	if err := u.properties.SetStatus(ctx, repository.NoTX, id, status, reason); err != nil {
		return err
	}
	u.log.Info().Int64("property_id", id).Str("status", string(status)).Msg("property moderated")
	return nil
}

func (u *propertyUC) UploadImage(ctx context.Context, actor *model.User, propertyID int64, r io.Reader, filename, contentType, caption string, primary bool) (*model.PropertyImage, error) {
	existing, err := u.properties.FindByID(ctx, repository.NoTX, propertyID)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, existing) {
		return nil, domain.ErrUnauthorized
	}
	up, err := u.media.Upload(ctx, r, filename, contentType)
	if err != nil {
		return nil, err
	}
	img := &model.PropertyImage{
		URL:       up.URL,
		PublicID:  up.PublicID,
		Caption:   caption,
		Format:    up.Format,
		Width:     up.Width,
		Height:    up.Height,
		Bytes:     up.Bytes,
		IsPrimary: primary,
		CreatedAt: time.Now(),
	}
	if err := u.properties.AddImage(ctx, repository.NoTX, propertyID, img); err != nil {
		// Keep the store consistent with the database.
		if derr := u.media.Delete(ctx, up.PublicID); derr != nil {
			u.log.Warn().Err(derr).Str("public_id", up.PublicID).Msg("orphaned media object")
		}
		return nil, err
	}
	return img, nil
}

func (u *propertyUC) RemoveImage(ctx context.Context, actor *model.User, propertyID, imageID int64) error {
	existing, err := u.properties.FindByID(ctx, repository.NoTX, propertyID)
	if err != nil {
		return err
	}
	if !canManage(actor, existing) {
		return domain.ErrUnauthorized
	}
	img, err := u.properties.DeleteImage(ctx, repository.NoTX, propertyID, imageID)
	if err != nil {
		return err
	}
	if img.PublicID != "" {
		if err := u.media.Delete(ctx, img.PublicID); err != nil {
			u.log.Warn().Err(err).Str("public_id", img.PublicID).Msg("orphaned media object")
		}
	}
	return nil
}

func canManage(actor *model.User, p *model.Property) bool {
	if actor == nil {
		return false
	}
	return actor.UserType == model.UserTypeAdmin || actor.ID == p.OwnerID
}
