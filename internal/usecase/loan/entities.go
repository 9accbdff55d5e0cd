package loan

import (
	"time"

	domain "prestamist-backend/internal/domain/loan"
)

// CreateLoanInput is the creation draft. The engine fills id, status,
// lastActionBy and createdAt; the creator always sits on the side named
// by Role and the counterparty on the other.
type CreateLoanInput struct {
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
	Description  string  `json:"description"`
	CreatorEmail string  `json:"creator_email"`
	Role         string  `json:"role"`
	OtherEmail   string  `json:"other_email"`
	OtherName    string  `json:"other_name"`
	IsOffline    bool    `json:"is_offline"`
	// Optional repayment target, epoch milliseconds.
	PaymentDate *int64 `json:"payment_date"`
}

// LoanDTO is the external record shape. Timestamps are epoch
// milliseconds; optional fields are omitted when unset.
type LoanDTO struct {
	LoanID            string  `json:"loan_id"`
	Amount            float64 `json:"amount"`
	Currency          string  `json:"currency"`
	Description       string  `json:"description"`
	CreatedByEmail    string  `json:"created_by_email"`
	LenderEmail       string  `json:"lender_email"`
	BorrowerEmail     string  `json:"borrower_email"`
	OtherName         string  `json:"other_name,omitempty"`
	IsOffline         bool    `json:"is_offline,omitempty"`
	Status            string  `json:"status"`
	LastActionByEmail string  `json:"last_action_by_email"`
	CreatedAt         int64   `json:"created_at"`
	PaymentDate       *int64  `json:"payment_date,omitempty"`
	ClosedAt          *int64  `json:"closed_at,omitempty"`
}

type TransitionDTO struct {
	FromStatus string `json:"from_status"`
	ToStatus   string `json:"to_status"`
	ActorEmail string `json:"actor_email"`
	OccurredAt int64  `json:"occurred_at"`
}

func toDTO(l *domain.Loan) *LoanDTO {
	dto := &LoanDTO{
		LoanID:            l.LoanID,
		Amount:            l.Amount,
		Currency:          string(l.Currency),
		Description:       l.Description,
		CreatedByEmail:    l.CreatedByEmail,
		LenderEmail:       l.LenderEmail,
		BorrowerEmail:     l.BorrowerEmail,
		OtherName:         l.OtherName,
		IsOffline:         l.IsOffline,
		Status:            string(l.Status),
		LastActionByEmail: l.LastActionByEmail,
		CreatedAt:         l.CreatedAt.UnixMilli(),
	}
	dto.PaymentDate = optMillis(l.PaymentDate)
	dto.ClosedAt = optMillis(l.ClosedAt)
	return dto
}

func optMillis(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}
