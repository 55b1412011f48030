package license

import (
	"log/slog"
	"time"

	"github.com/readium/kotlin-toolkit-sub011/pkg/statemachine"
)

// LoanState is the local model of the loan lifecycle. Renewing and
// Returning are in-flight states held while a state-changing request is out
// with the server; they keep concurrent interactions from racing each
// other.
type LoanState interface{ loanState() }

type (
	// LoanActive is a usable loan; End mirrors the rights window end.
	LoanActive struct{ End *time.Time }
	// LoanRenewing is a loan with a renew request in flight.
	LoanRenewing struct{}
	// LoanReturning is a loan with a return request in flight.
	LoanReturning struct{}
	// LoanReturned is a terminal state: the publication went back.
	LoanReturned struct{}
	// LoanExpired is a loan whose rights window has closed.
	LoanExpired struct{}
)

func (LoanActive) loanState()    {}
func (LoanRenewing) loanState()  {}
func (LoanReturning) loanState() {}
func (LoanReturned) loanState()  {}
func (LoanExpired) loanState()   {}

// LoanEvent drives the loan lifecycle.
type LoanEvent interface{ loanEvent() }

type (
	eventRenewRequested  struct{}
	eventRenewSucceeded  struct{ End *time.Time }
	eventRenewRejected   struct{}
	eventReturnRequested struct{}
	eventReturnSucceeded struct{}
	eventReturnRejected  struct{}
	eventExpired         struct{}
)

func (eventRenewRequested) loanEvent()  {}
func (eventRenewSucceeded) loanEvent()  {}
func (eventRenewRejected) loanEvent()   {}
func (eventReturnRequested) loanEvent() {}
func (eventReturnSucceeded) loanEvent() {}
func (eventReturnRejected) loanEvent()  {}
func (eventExpired) loanEvent()         {}

type loanMachine = statemachine.Machine[LoanState, LoanEvent]

// newLoanMachine declares the loan graph. Returned is terminal; every
// reachable state must be declared, the engine panics on an undeclared
// current state.
func newLoanMachine(initial LoanState, log *slog.Logger) *loanMachine {
	return statemachine.Create(initial, func(b *statemachine.GraphBuilder[LoanState, LoanEvent]) {
		b.State(statemachine.Any[LoanState, LoanActive](), func(s *statemachine.StateBuilder[LoanState, LoanEvent]) {
			s.On(statemachine.Any[LoanEvent, eventRenewRequested](), func(LoanState, LoanEvent) LoanState {
				return LoanRenewing{}
			})
			s.On(statemachine.Any[LoanEvent, eventReturnRequested](), func(LoanState, LoanEvent) LoanState {
				return LoanReturning{}
			})
			s.On(statemachine.Any[LoanEvent, eventReturnSucceeded](), func(LoanState, LoanEvent) LoanState {
				// The server can return a loan behind our back.
				return LoanReturned{}
			})
			s.On(statemachine.Any[LoanEvent, eventExpired](), func(LoanState, LoanEvent) LoanState {
				return LoanExpired{}
			})
			// A renewal confirmed by a status push refreshes the window.
			s.On(statemachine.Any[LoanEvent, eventRenewSucceeded](), func(_ LoanState, e LoanEvent) LoanState {
				return LoanActive{End: e.(eventRenewSucceeded).End}
			})
		})
		b.State(statemachine.Any[LoanState, LoanRenewing](), func(s *statemachine.StateBuilder[LoanState, LoanEvent]) {
			s.On(statemachine.Any[LoanEvent, eventRenewSucceeded](), func(_ LoanState, e LoanEvent) LoanState {
				return LoanActive{End: e.(eventRenewSucceeded).End}
			})
			s.On(statemachine.Any[LoanEvent, eventRenewRejected](), func(LoanState, LoanEvent) LoanState {
				return LoanActive{}
			})
			s.On(statemachine.Any[LoanEvent, eventExpired](), func(LoanState, LoanEvent) LoanState {
				return LoanExpired{}
			})
		})
		b.State(statemachine.Any[LoanState, LoanReturning](), func(s *statemachine.StateBuilder[LoanState, LoanEvent]) {
			s.On(statemachine.Any[LoanEvent, eventReturnSucceeded](), func(LoanState, LoanEvent) LoanState {
				return LoanReturned{}
			})
			s.On(statemachine.Any[LoanEvent, eventReturnRejected](), func(LoanState, LoanEvent) LoanState {
				return LoanActive{}
			})
		})
		b.State(statemachine.Any[LoanState, LoanExpired](), func(s *statemachine.StateBuilder[LoanState, LoanEvent]) {
			s.On(statemachine.Any[LoanEvent, eventRenewRequested](), func(LoanState, LoanEvent) LoanState {
				return LoanRenewing{}
			})
			s.On(statemachine.Any[LoanEvent, eventReturnSucceeded](), func(LoanState, LoanEvent) LoanState {
				return LoanReturned{}
			})
			s.OnEnter(func(state LoanState, e LoanEvent) {
				log.Info("loan expired")
			})
		})
		b.State(statemachine.Any[LoanState, LoanReturned](), func(s *statemachine.StateBuilder[LoanState, LoanEvent]) {
			s.OnEnter(func(state LoanState, e LoanEvent) {
				log.Info("loan returned")
			})
		})
		b.OnTransition(func(tr statemachine.Transition[LoanState, LoanEvent]) {
			if tr.Valid {
				log.Debug("loan state changed",
					slog.Any("from", tr.FromState),
					slog.Any("to", tr.ToState),
				)
			} else {
				log.Debug("loan event ignored",
					slog.Any("state", tr.FromState),
					slog.Any("event", tr.Event),
				)
			}
		})
	})
}

// loanStateForStatus maps a server-side status to the local state model,
// used to seed the machine from a validated snapshot.
func loanStateForStatus(status *StatusDocument, end *time.Time) LoanState {
	if status == nil {
		return LoanActive{End: end}
	}
	switch status.Status {
	case StatusReturned, StatusCancelled, StatusRevoked:
		return LoanReturned{}
	case StatusExpired:
		return LoanExpired{}
	default:
		return LoanActive{End: end}
	}
}
