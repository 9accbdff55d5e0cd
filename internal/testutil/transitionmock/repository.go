package transitionmock

import (
	"context"
	"errors"

	"prestamist-backend/internal/domain/transition"
)

var _ transition.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("transitionmock: method not implemented")

// Repo is a function-backed mock that satisfies transition.Repository.
type Repo struct {
	CreateFn       func(ctx context.Context, rec *transition.Record) error
	ListByLoanIDFn func(ctx context.Context, loanNumericID uint64) ([]transition.Record, error)
}

func (m *Repo) Create(ctx context.Context, rec *transition.Record) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, rec)
	}
	return errUnimplemented
}

func (m *Repo) ListByLoanID(ctx context.Context, loanNumericID uint64) ([]transition.Record, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanNumericID)
	}
	return nil, errUnimplemented
}
