package model

import (
	"strings"
	"time"

	"rental-marketplace/internal/domain"
)

type PropertyStatus string

const (
	PropertyStatusPending  PropertyStatus = "pending"
	PropertyStatusApproved PropertyStatus = "approved"
	PropertyStatusRejected PropertyStatus = "rejected"
)

// ContactDetails are the credit-gated fields. They are stripped from every
// public read and only returned by the consumption gate.
type ContactDetails struct {
	Name     string
	Phone    string
	Email    string
	WhatsApp string
}

type PropertyImage struct {
	ID        int64
	URL       string
	PublicID  string
	Caption   string
	Format    string
	Width     int
	Height    int
	Bytes     int64
	IsPrimary bool
	CreatedAt time.Time
}

// Property is a rental listing.
type Property struct {
	ID          int64
	Code        string // public listing code, e.g. PROP000042
	OwnerID     int64
	Title       string
	Description string

	PropertyType string // apartment|house|villa|pg|commercial
	PropertyFor  string // Rent|Sale

	Address  string
	City     string
	State    string
	Pincode  string
	Locality string
	Landmark string

	Bedrooms    int
	Bathrooms   int
	BuiltUpArea int
	AreaUnit    string

	Price             int64
	Currency          string
	PriceType         string // Monthly|Yearly
	SecurityDeposit   int64
	MaintenanceCharge int64

	FurnishingStatus string // full|semi|none
	AvailableFrom    *time.Time
	PreferredTenant  string

	Contact ContactDetails

	Amenities []string
	Images    []PropertyImage

	Status     PropertyStatus
	IsActive   bool
	IsFeatured bool
	Views      int64
	Inquiries  int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewProperty(ownerID int64, title, propertyType, city string, price int64, contact ContactDetails) (*Property, error) {
	title = strings.TrimSpace(title)
	if ownerID <= 0 || title == "" || propertyType == "" || city == "" || price <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	if contact.Name == "" || contact.Phone == "" {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &Property{
		OwnerID:      ownerID,
		Title:        title,
		PropertyType: propertyType,
		PropertyFor:  "Rent",
		City:         city,
		Price:        price,
		Currency:     "INR",
		PriceType:    "Monthly",
		AreaUnit:     "sq ft",
		Contact:      contact,
		Status:       PropertyStatusPending,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (p *Property) IsZero() bool { return p == nil || p.ID == 0 }

// Public returns a copy safe for unauthenticated reads: gated contact fields
// removed.
func (p *Property) Public() *Property {
	cp := *p
	cp.Contact = ContactDetails{}
	return &cp
}
