package loan

import "time"

// edge is one legal status transition plus the rule for who may trigger it.
type edge struct {
	to        Status
	authorize func(l *Loan, actor string) bool
}

// otherPartysTurn enforces the ping-pong of agency: only the participant
// who did NOT cause the last transition may act next. Offline loans waive
// the check because only the creator has agency.
func otherPartysTurn(l *Loan, actor string) bool {
	if l.IsOffline {
		return true
	}
	return NormalizeEmail(actor) != NormalizeEmail(l.LastActionByEmail)
}

func creatorOnly(l *Loan, actor string) bool {
	return NormalizeEmail(actor) == NormalizeEmail(l.CreatedByEmail)
}

// anyActor: either participant may assert a repayment happened. Actor
// membership in the loan is not checked anywhere in the table; identity
// comes from the caller and the only gate is turn order.
func anyActor(*Loan, string) bool { return true }

var transitions = map[Status][]edge{
	StatusPending: {
		{StatusActive, otherPartysTurn},
		{StatusRejected, otherPartysTurn},
		{StatusCancelled, creatorOnly},
	},
	StatusActive: {
		{StatusPaidPendingConfirmation, anyActor},
	},
	StatusPaidPendingConfirmation: {
		{StatusPaid, otherPartysTurn},
		// Dispute path: the counterparty denies the repayment claim.
		{StatusActive, otherPartysTurn},
	},
}

// CanTransition reports whether (from, to) is a legal edge, ignoring
// actor identity. PAID, REJECTED and CANCELLED have no outgoing edges.
func CanTransition(from, to Status) bool {
	for _, e := range transitions[from] {
		if e.to == to {
			return true
		}
	}
	return false
}

// Apply performs the transition in place. It fails with
// ErrInvalidTransition when the edge is not in the table and with
// ErrUnauthorized when the actor does not satisfy the edge's rule.
// On success it updates Status and LastActionByEmail, and stamps or
// clears ClosedAt depending on the target.
func (l *Loan) Apply(target Status, actor string, now time.Time) error {
	var found *edge
	for i := range transitions[l.Status] {
		if transitions[l.Status][i].to == target {
			found = &transitions[l.Status][i]
			break
		}
	}
	if found == nil {
		return ErrInvalidTransition
	}
	if !found.authorize(l, actor) {
		return ErrUnauthorized
	}

	l.Status = target
	l.LastActionByEmail = NormalizeEmail(actor)
	if target.Closes() {
		t := now
		l.ClosedAt = &t
	} else {
		l.ClosedAt = nil
	}
	return nil
}
