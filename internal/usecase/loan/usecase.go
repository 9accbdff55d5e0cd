package loan

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "prestamist-backend/internal/domain/loan"
	"prestamist-backend/internal/domain/transition"
	"prestamist-backend/internal/domain/uow"
	"prestamist-backend/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	repo        domain.Repository
	transitions transition.Repository
	uow         uow.UnitOfWork
}

// NewUsecase: pass both repos and a UoW for the read-modify-write flows.
func NewUsecase(loans domain.Repository, transitions transition.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: loans, transitions: transitions, uow: tx}
}

// Create validates the draft and persists a new PENDING loan. The
// creator is recorded as last actor, so for online loans the first move
// belongs to the counterparty.
func (u *Usecase) Create(ctx context.Context, in CreateLoanInput) (*LoanDTO, error) {
	creator := domain.NormalizeEmail(in.CreatorEmail)
	if creator == "" {
		return nil, fmt.Errorf("%w: creator email is required", domain.ErrInvalidDraft)
	}
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidDraft)
	}
	currency := domain.Currency(in.Currency)
	if !currency.Valid() {
		return nil, fmt.Errorf("%w: unknown currency %q", domain.ErrInvalidDraft, in.Currency)
	}
	role := domain.Role(in.Role)
	if !role.Valid() {
		return nil, fmt.Errorf("%w: role must be LENDER or BORROWER", domain.ErrInvalidDraft)
	}

	other := domain.NormalizeEmail(in.OtherEmail)
	if in.IsOffline {
		if in.OtherName == "" {
			return nil, fmt.Errorf("%w: offline loan needs a counterparty name", domain.ErrInvalidDraft)
		}
		// No real account on the other side: synthesize an identity so
		// the two participant slots are always filled.
		other = fmt.Sprintf("offline-%d-%s", time.Now().UnixMilli(), id.NewID32()[:8])
	} else if other == "" {
		return nil, fmt.Errorf("%w: counterparty email is required", domain.ErrInvalidDraft)
	}

	l := &domain.Loan{
		LoanID:            id.NewID32(),
		Amount:            in.Amount,
		Currency:          currency,
		Description:       in.Description,
		CreatedByEmail:    creator,
		OtherName:         in.OtherName,
		IsOffline:         in.IsOffline,
		Status:            domain.StatusPending,
		LastActionByEmail: creator,
	}
	if role == domain.RoleLender {
		l.LenderEmail, l.BorrowerEmail = creator, other
	} else {
		l.LenderEmail, l.BorrowerEmail = other, creator
	}
	if in.PaymentDate != nil {
		t := time.UnixMilli(*in.PaymentDate).UTC()
		l.PaymentDate = &t
	}

	if err := u.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return toDTO(l), nil
}

// Transition applies one lifecycle step as a single atomic
// read-modify-write: load the locked row, validate the edge and the
// actor, mutate, append the audit record, save. Last write wins across
// devices; there is no version check.
func (u *Usecase) Transition(ctx context.Context, loanID string, target domain.Status, actorEmail string) (*LoanDTO, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidTransition, string(target))
	}

	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		from := l.Status
		if err := l.Apply(target, actorEmail, time.Now().UTC()); err != nil {
			return err
		}
		rec := &transition.Record{
			LoanID:     l.ID,
			FromStatus: string(from),
			ToStatus:   string(l.Status),
			ActorEmail: l.LastActionByEmail,
			OccurredAt: time.Now().UTC(),
		}
		if err := r.Transitions.Create(ctx, rec); err != nil {
			return err
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return toDTO(l), nil
}

// List returns the loans where email participates, newest first.
func (u *Usecase) List(ctx context.Context, email string) ([]LoanDTO, error) {
	loans, err := u.repo.ListByParticipant(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	out := make([]LoanDTO, 0, len(loans))
	for i := range loans {
		out = append(out, *toDTO(&loans[i]))
	}
	return out, nil
}

// ListDomain is List without the DTO mapping, for callers that feed the
// ledger aggregator.
func (u *Usecase) ListDomain(ctx context.Context, email string) ([]domain.Loan, error) {
	return u.repo.ListByParticipant(ctx, domain.NormalizeEmail(email))
}

// History returns the audit trail of one loan, oldest first.
func (u *Usecase) History(ctx context.Context, loanID string) ([]TransitionDTO, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	recs, err := u.transitions.ListByLoanID(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	out := make([]TransitionDTO, 0, len(recs))
	for _, rec := range recs {
		out = append(out, TransitionDTO{
			FromStatus: rec.FromStatus,
			ToStatus:   rec.ToStatus,
			ActorEmail: rec.ActorEmail,
			OccurredAt: rec.OccurredAt.UnixMilli(),
		})
	}
	return out, nil
}
