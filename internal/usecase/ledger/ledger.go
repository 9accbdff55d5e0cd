// Package ledger derives a user's financial exposure and pending work
// from a set of loan records. Everything here is a pure function over
// its inputs: no I/O, no mutation, order of the input slice never
// matters.
package ledger

import (
	domain "prestamist-backend/internal/domain/loan"
)

type Summary struct {
	TotalLent     float64 `json:"total_lent"`
	TotalBorrowed float64 `json:"total_borrowed"`
	ActiveCount   int     `json:"active_count"`
	PendingCount  int     `json:"pending_count"`
}

// Summarize totals the caller's open positions. Only ACTIVE and
// PAID_PENDING_CONFIRMATION loans count toward money totals; amounts
// are summed as-is, so a user holding loans in several currencies gets
// a mixed total (no conversion is attempted). PendingCount counts every
// loan still waiting on somebody, whichever side that is.
func Summarize(loans []domain.Loan, myEmail string) Summary {
	me := domain.NormalizeEmail(myEmail)
	var s Summary

	for i := range loans {
		l := &loans[i]
		switch l.Status {
		case domain.StatusActive, domain.StatusPaidPendingConfirmation:
			if domain.NormalizeEmail(l.LenderEmail) == me {
				s.TotalLent += l.Amount
			} else if domain.NormalizeEmail(l.BorrowerEmail) == me {
				s.TotalBorrowed += l.Amount
			}
			s.ActiveCount++
		}

		if l.Status == domain.StatusPending || l.Status == domain.StatusPaidPendingConfirmation {
			s.PendingCount++
		}
	}
	return s
}

// PendingActions counts the loans waiting on this user right now.
// Offline loans always wait on their sole creator. Online loans wait on
// whoever did not act last.
func PendingActions(loans []domain.Loan, myEmail string) int {
	me := domain.NormalizeEmail(myEmail)
	n := 0
	for i := range loans {
		l := &loans[i]
		if l.Status != domain.StatusPending && l.Status != domain.StatusPaidPendingConfirmation {
			continue
		}
		if l.IsOffline || domain.NormalizeEmail(l.LastActionByEmail) != me {
			n++
		}
	}
	return n
}
