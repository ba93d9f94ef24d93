package repository

import (
	"context"

	"rental-marketplace/internal/domain/model"
)

type ViewingRequestRepository interface {
	Save(ctx context.Context, tx Tx, v *model.ViewingRequest) error
	FindByID(ctx context.Context, tx Tx, id int64) (*model.ViewingRequest, error)
	List(ctx context.Context, tx Tx, limit, offset int) ([]*model.ViewingRequest, error)
	ListByPhone(ctx context.Context, tx Tx, phone string) ([]*model.ViewingRequest, error)
	UpdateStatus(ctx context.Context, tx Tx, id int64, status model.ViewingStatus) (bool, error)
}
