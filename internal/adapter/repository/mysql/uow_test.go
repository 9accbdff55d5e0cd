package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	loanDomain "prestamist-backend/internal/domain/loan"
	transitionDomain "prestamist-backend/internal/domain/transition"
	"prestamist-backend/internal/domain/uow"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type transitionSQLite struct {
	ID         uint64    `gorm:"column:id;primaryKey"`
	LoanID     uint64    `gorm:"column:loan_id"`
	FromStatus string    `gorm:"column:from_status"`
	ToStatus   string    `gorm:"column:to_status"`
	ActorEmail string    `gorm:"column:actor_email"`
	OccurredAt time.Time `gorm:"column:occurred_at"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (transitionSQLite) TableName() string { return "loan_transitions" }

// openUowTestDB migrates both tables, so UoW can orchestrate both repos.
func openUowTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&loanSQLite{}, &transitionSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeRecord(loanNumericID uint64, from, to loanDomain.Status, actor string) *transitionDomain.Record {
	return &transitionDomain.Record{
		LoanID:     loanNumericID,
		FromStatus: string(from),
		ToStatus:   string(to),
		ActorEmail: actor,
		OccurredAt: time.Now().UTC(),
	}
}

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	db := openUowTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	loanRepo := NewLoanRepository(db)
	trRepo := NewTransitionRepository(db)

	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		l := makeLoan("LN-COMMIT", "a@x.com", "b@x.com")
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		if l.ID == 0 {
			t.Fatalf("loan auto ID not set")
		}
		return r.Transitions.Create(ctx, makeRecord(l.ID, loanDomain.StatusPending, loanDomain.StatusActive, "b@x.com"))
	})
	if err != nil {
		t.Fatalf("WithinTx commit err: %v", err)
	}

	l, err := loanRepo.GetByLoanID(ctx, "LN-COMMIT")
	if err != nil {
		t.Fatalf("loan not visible after commit: %v", err)
	}
	recs, err := trRepo.ListByLoanID(ctx, l.ID)
	if err != nil || len(recs) != 1 {
		t.Fatalf("transition record not visible after commit: %v (len=%d)", err, len(recs))
	}
}

func TestGormUoW_WithinTx_Rollback(t *testing.T) {
	db := openUowTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	loanRepo := NewLoanRepository(db)

	sentinel := errors.New("boom")

	_ = guow.WithinTx(ctx, func(r uow.Repos) error {
		l := makeLoan("LN-ROLL", "a@x.com", "b@x.com")
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		if err := r.Transitions.Create(ctx, makeRecord(l.ID, loanDomain.StatusPending, loanDomain.StatusActive, "b@x.com")); err != nil {
			return err
		}
		return sentinel // force rollback
	})

	if _, err := loanRepo.GetByLoanID(ctx, "LN-ROLL"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected loan not found after rollback, got %v", err)
	}
	var n int64
	db.Model(&transitionSQLite{}).Count(&n)
	if n != 0 {
		t.Fatalf("transition records survived rollback: %d", n)
	}
}

func TestGormUoW_WithinLoanTx_CommitsStatusChange(t *testing.T) {
	db := openUowTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	loanRepo := NewLoanRepository(db)

	seed := makeLoan("LN-TARGET", "a@x.com", "b@x.com")
	if err := loanRepo.Create(ctx, seed); err != nil {
		t.Fatalf("seed loan: %v", err)
	}

	err := guow.WithinLoanTx(ctx, "LN-TARGET", func(r uow.Repos, l *loanDomain.Loan) error {
		if l == nil || l.LoanID != "LN-TARGET" || l.Status != loanDomain.StatusPending {
			t.Fatalf("unexpected loan passed to fn: %+v", l)
		}
		if err := l.Apply(loanDomain.StatusActive, "b@x.com", time.Now().UTC()); err != nil {
			return err
		}
		if err := r.Transitions.Create(ctx, makeRecord(l.ID, loanDomain.StatusPending, l.Status, "b@x.com")); err != nil {
			return err
		}
		return r.Loans.Save(ctx, l)
	})
	if err != nil {
		t.Fatalf("WithinLoanTx: %v", err)
	}

	got, err := loanRepo.GetByLoanID(ctx, "LN-TARGET")
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if got.Status != loanDomain.StatusActive || got.LastActionByEmail != "b@x.com" {
		t.Fatalf("status change not committed: %+v", got)
	}
}

func TestGormUoW_WithinLoanTx_UnknownLoan(t *testing.T) {
	db := openUowTestDB(t)
	guow := NewGormUoW(db)

	err := guow.WithinLoanTx(context.Background(), "LN-MISSING", func(r uow.Repos, l *loanDomain.Loan) error {
		t.Fatalf("fn must not run for unknown loan")
		return nil
	})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("want ErrRecordNotFound, got %v", err)
	}
}
