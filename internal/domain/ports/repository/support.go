package repository

import (
	"context"

	"rental-marketplace/internal/domain/model"
)

type SupportTicketRepository interface {
	Save(ctx context.Context, tx Tx, t *model.SupportTicket) error
	FindByID(ctx context.Context, tx Tx, id int64) (*model.SupportTicket, error)
	List(ctx context.Context, tx Tx, limit, offset int) ([]*model.SupportTicket, error)
	UpdateStatus(ctx context.Context, tx Tx, id int64, status model.TicketStatus) (bool, error)
}
