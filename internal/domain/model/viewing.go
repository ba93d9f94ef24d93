package model

import (
	"strings"
	"time"

	"rental-marketplace/internal/domain"
)

type ViewingStatus string

const (
	ViewingStatusPending   ViewingStatus = "pending"
	ViewingStatusConfirmed ViewingStatus = "confirmed"
	ViewingStatusCompleted ViewingStatus = "completed"
	ViewingStatusCancelled ViewingStatus = "cancelled"
)

// ViewingRequest is a scheduling request for a property visit. Requests are
// keyed by phone so prospects without an account can track them.
type ViewingRequest struct {
	ID            int64
	Name          string
	Phone         string
	PropertyType  string
	Location      string
	PropertyLink  string
	PreferredDate *time.Time
	PreferredTime string
	Status        ViewingStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewViewingRequest(name, phone string) (*ViewingRequest, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" || phone == "" {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &ViewingRequest{
		Name:      name,
		Phone:     phone,
		Status:    ViewingStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func ValidViewingStatus(s ViewingStatus) bool {
	switch s {
	case ViewingStatusPending, ViewingStatusConfirmed, ViewingStatusCompleted, ViewingStatusCancelled:
		return true
	}
	return false
}
