package repository

import (
	"context"

	"rental-marketplace/internal/domain/model"
)

// PropertyFilter narrows list queries. Zero values mean "no constraint".
type PropertyFilter struct {
	City             string
	PropertyType     string
	PropertyFor      string
	Bedrooms         int
	MinPrice         int64
	MaxPrice         int64
	FurnishingStatus string
	FeaturedOnly     bool
	Query            string // free-text over title/locality/city
	Limit            int
	Offset           int
}

type PropertyRepository interface {
	Save(ctx context.Context, tx Tx, p *model.Property) error
	FindByID(ctx context.Context, tx Tx, id int64) (*model.Property, error)
	List(ctx context.Context, tx Tx, f PropertyFilter) ([]*model.Property, int, error)
	ListByOwner(ctx context.Context, tx Tx, ownerID int64) ([]*model.Property, error)
	Update(ctx context.Context, tx Tx, p *model.Property) error
	Delete(ctx context.Context, tx Tx, id int64) error
	SetStatus(ctx context.Context, tx Tx, id int64, status model.PropertyStatus, reason string) error
	IncrementViews(ctx context.Context, tx Tx, id int64) error

	// FindContactDetails reads the gated fields. Used by the consumption gate
	// inside the debit transaction; existence doubles as the resource check.
	FindContactDetails(ctx context.Context, tx Tx, id int64) (*model.ContactDetails, error)

	AddImage(ctx context.Context, tx Tx, propertyID int64, img *model.PropertyImage) error
	DeleteImage(ctx context.Context, tx Tx, propertyID, imageID int64) (*model.PropertyImage, error)
}
