package transition

import "context"

type Repository interface {
	Create(ctx context.Context, rec *Record) error
	// ListByLoanID returns the records for one loan, oldest first.
	ListByLoanID(ctx context.Context, loanNumericID uint64) ([]Record, error)
}
