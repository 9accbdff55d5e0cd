package transition

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("transition record not found")

// Record is one applied lifecycle transition, kept as an audit trail.
// Written in the same tx that mutates the loan row.
type Record struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// FK to loans.id (numeric)
	LoanID     uint64    `gorm:"column:loan_id;not null;index:idx_loan_transitions_loan"`
	FromStatus string    `gorm:"column:from_status;size:32;not null"`
	ToStatus   string    `gorm:"column:to_status;size:32;not null"`
	ActorEmail string    `gorm:"column:actor_email;size:255;not null"`
	OccurredAt time.Time `gorm:"column:occurred_at;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Record) TableName() string { return "loan_transitions" }
