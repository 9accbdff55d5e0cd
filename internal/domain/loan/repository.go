package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the row for the scope of the enclosing tx.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	// ListByParticipant returns loans where email is lender or borrower,
	// newest first.
	ListByParticipant(ctx context.Context, email string) ([]Loan, error)
	Save(ctx context.Context, l *Loan) error
}
