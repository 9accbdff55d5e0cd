package mysql

import (
	"context"

	transitionDomain "prestamist-backend/internal/domain/transition"

	"gorm.io/gorm"
)

type TransitionRepository struct{ db *gorm.DB }

func NewTransitionRepository(db *gorm.DB) *TransitionRepository {
	return &TransitionRepository{db: db}
}

func (r *TransitionRepository) Create(ctx context.Context, rec *transitionDomain.Record) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *TransitionRepository) ListByLoanID(ctx context.Context, loanNumericID uint64) ([]transitionDomain.Record, error) {
	var out []transitionDomain.Record
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanNumericID).
		Order("occurred_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}
