package model

import (
	"strings"
	"time"

	"rental-marketplace/internal/domain"
)

type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// SupportTicket is a free-form help request; submitters do not need an account.
type SupportTicket struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	Message   string
	Status    TicketStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewSupportTicket(name, email, phone, message string) (*SupportTicket, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || strings.TrimSpace(message) == "" {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &SupportTicket{
		Name:      name,
		Email:     email,
		Phone:     strings.TrimSpace(phone),
		Message:   message,
		Status:    TicketStatusOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func ValidTicketStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}
