package model

import "time"

type CreditTransactionType string

const (
	CreditTransactionPurchase CreditTransactionType = "purchase"
	CreditTransactionUsed     CreditTransactionType = "used"
)

// CreditTransaction is one immutable ledger entry. Entries are append-only:
// replaying a user's entries in creation order must reproduce the balance on
// the user row.
type CreditTransaction struct {
	ID           int64
	UserID       int64
	Type         CreditTransactionType
	Credits      int64 // signed delta: +N for purchase, -1 for consumption
	BalanceAfter int64
	PaymentID    *int64 // set for purchases
	PropertyID   *int64 // set for consumption
	Description  string
	ExpiresAt    *time.Time // expiry snapshot at write time
	CreatedAt    time.Time
}

// CreditBalance is the read model returned by the balance endpoint.
type CreditBalance struct {
	Balance        int64
	CreditExpiry   *time.Time
	TotalPurchased int64
	TotalUsed      int64
	IsExpired      bool
	DaysRemaining  int
	Recent         []*CreditTransaction
}
