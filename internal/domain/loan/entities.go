package loan

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	// Created, waiting for the other party to accept.
	StatusPending Status = "PENDING"
	// Accepted, money conceptually exchanged.
	StatusActive Status = "ACTIVE"
	// Other party denied the request.
	StatusRejected Status = "REJECTED"
	// One party marked the loan as paid; awaits the other side.
	StatusPaidPendingConfirmation Status = "PAID_PENDING_CONFIRMATION"
	// Both parties confirmed payment.
	StatusPaid Status = "PAID"
	// Creator cancelled before acceptance.
	StatusCancelled Status = "CANCELLED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusRejected,
		StatusPaidPendingConfirmation, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// Closes reports whether reaching s stamps ClosedAt on the loan.
// CANCELLED is terminal too but keeps no closing timestamp.
func (s Status) Closes() bool { return s == StatusPaid || s == StatusRejected }

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyPEN Currency = "PEN"
	CurrencyMXN Currency = "MXN"
	CurrencyCOP Currency = "COP"
)

func (c Currency) Valid() bool {
	switch c {
	case CurrencyUSD, CurrencyEUR, CurrencyPEN, CurrencyMXN, CurrencyCOP:
		return true
	}
	return false
}

// Role is the side the creator records themselves on.
type Role string

const (
	RoleLender   Role = "LENDER"
	RoleBorrower Role = "BORROWER"
)

func (r Role) Valid() bool { return r == RoleLender || r == RoleBorrower }

var (
	ErrNotFound          = errors.New("loan not found")
	ErrInvalidTransition = errors.New("invalid loan status transition")
	ErrUnauthorized      = errors.New("actor not allowed to perform this transition")
	ErrInvalidDraft      = errors.New("invalid loan draft")
)

type Loan struct {
	ID     uint64 `gorm:"primaryKey;column:id" json:"-"`
	LoanID string `gorm:"size:32;uniqueIndex:ux_loans_loan_id_active" json:"loan_id"`

	Amount      float64  `gorm:"type:decimal(18,2)" json:"amount"`
	Currency    Currency `gorm:"type:enum('USD','EUR','PEN','MXN','COP')" json:"currency"`
	Description string   `gorm:"type:text" json:"description"`

	CreatedByEmail string `gorm:"size:255" json:"created_by_email"`
	LenderEmail    string `gorm:"size:255;index:idx_loans_lender" json:"lender_email"`
	BorrowerEmail  string `gorm:"size:255;index:idx_loans_borrower" json:"borrower_email"`

	// Display alias for the counterparty, typed in by the creator.
	OtherName string `gorm:"size:255" json:"other_name,omitempty"`
	// Offline loans have no real counterparty account; the creator
	// drives both sides and a synthetic counterparty email is generated.
	IsOffline bool `json:"is_offline,omitempty"`

	Status Status `gorm:"type:enum('PENDING','ACTIVE','REJECTED','PAID_PENDING_CONFIRMATION','PAID','CANCELLED');default:'PENDING'" json:"status"`
	// Whichever participant most recently caused a status change.
	// Decides whose turn it is to act next.
	LastActionByEmail string `gorm:"size:255" json:"last_action_by_email"`

	PaymentDate *time.Time     `gorm:"type:datetime" json:"payment_date,omitempty"`
	ClosedAt    *time.Time     `gorm:"type:datetime" json:"closed_at,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"-"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// NormalizeEmail is how every participant identity comparison is done:
// lowercased and trimmed, so "  A@x.com " and "a@x.com" are the same actor.
func NormalizeEmail(e string) string { return strings.ToLower(strings.TrimSpace(e)) }
