package model

import (
	"strings"
	"time"

	"rental-marketplace/internal/domain"
)

type UserType string

const (
	UserTypeTenant UserType = "tenant"
	UserTypeOwner  UserType = "owner"
	UserTypeAdmin  UserType = "admin"
)

// User is a registered account. Credit fields live on the user row and are
// only ever mutated inside a transaction that also appends a ledger entry.
type User struct {
	ID           int64
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	UserType     UserType
	IsVerified   bool

	// Tenant profile
	Occupation        string
	PreferredLocation string
	Budget            int64

	// Owner profile
	CompanyName     string
	TotalProperties int

	Credits               int64
	CreditExpiry          *time.Time
	TotalPurchasedCredits int64
	TotalUsedCredits      int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewUser(name, email, phone, passwordHash string, userType UserType) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	phone = strings.TrimSpace(phone)
	if name == "" || email == "" || phone == "" || passwordHash == "" {
		return nil, domain.ErrInvalidArgument
	}
	if !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidArgument
	}
	switch userType {
	case UserTypeTenant, UserTypeOwner, UserTypeAdmin:
	default:
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: passwordHash,
		UserType:     userType,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (u *User) IsZero() bool { return u == nil || u.ID == 0 }

// EffectiveCredits returns the spendable balance at the given instant.
// Stored credits past their expiry count as zero; the row itself is left
// untouched (lazy expiry, no sweep).
func (u *User) EffectiveCredits(now time.Time) int64 {
	if u.Credits <= 0 {
		return 0
	}
	if u.CreditExpiry != nil && !u.CreditExpiry.After(now) {
		return 0
	}
	return u.Credits
}
