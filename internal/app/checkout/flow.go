// Package checkout models one run of the order creation flow as a state machine.
package checkout

import (
	"errors"
	"fmt"

	"github.com/yigit/javamaster/internal/pkg/apperrors"
)

// State of a checkout attempt
type State string

const (
	Idle                        State = "Idle"
	AwaitingGatewayOrder        State = "AwaitingGatewayOrder"
	AwaitingPaymentConfirmation State = "AwaitingPaymentConfirmation"
	RecordingOrder              State = "RecordingOrder"
	Completed                   State = "Completed"
	Failed                      State = "Failed"
)

// Reason explains a Failed attempt
type Reason string

const (
	ReasonValidation          Reason = "ValidationError"
	ReasonCapacityExceeded    Reason = "CapacityExceeded"
	ReasonGatewayOrder        Reason = "GatewayOrderError"
	ReasonPaymentVerification Reason = "PaymentVerification"
	ReasonPersist             Reason = "PersistError"
	ReasonService             Reason = "ServiceError"
)

// next lists the forward transitions; Failed is reachable from every non-terminal state
var next = map[State]State{
	Idle:                        AwaitingGatewayOrder,
	AwaitingGatewayOrder:        AwaitingPaymentConfirmation,
	AwaitingPaymentConfirmation: RecordingOrder,
	RecordingOrder:              Completed,
}

// Flow tracks the state of a single attempt. It is not safe for concurrent use.
type Flow struct {
	state  State
	reason Reason
}

// NewFlow starts a flow in Idle
func NewFlow() *Flow {
	return &Flow{state: Idle}
}

// Restore rebuilds a flow from its persisted state
func Restore(state string, reason *string) (*Flow, error) {
	s := State(state)
	if _, ok := next[s]; !ok && s != Completed && s != Failed {
		return nil, fmt.Errorf("unknown checkout state %q", state)
	}
	f := &Flow{state: s}
	if s == Failed && reason != nil {
		f.reason = Reason(*reason)
	}
	return f, nil
}

// State returns the current state
func (f *Flow) State() State { return f.state }

// Reason returns why the flow failed, or "" when it has not
func (f *Flow) Reason() Reason { return f.reason }

// IsTerminal reports whether the flow is Completed or Failed
func (f *Flow) IsTerminal() bool {
	return f.state == Completed || f.state == Failed
}

// Advance moves to the next state. Any other target is illegal.
func (f *Flow) Advance(to State) error {
	if f.IsTerminal() {
		return fmt.Errorf("%w: %s is terminal", apperrors.ErrCheckoutAlreadyClosed, f.state)
	}
	if next[f.state] != to {
		return fmt.Errorf("%w: %s -> %s", apperrors.ErrIllegalTransition, f.state, to)
	}
	f.state = to
	return nil
}

// Fail moves the flow to Failed
func (f *Flow) Fail(reason Reason) error {
	if f.IsTerminal() {
		return fmt.Errorf("%w: %s is terminal", apperrors.ErrCheckoutAlreadyClosed, f.state)
	}
	f.state = Failed
	f.reason = reason
	return nil
}

// ReasonFor classifies err into a failure reason
func ReasonFor(err error) Reason {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		return ReasonValidation
	case errors.Is(err, apperrors.ErrCapacityExceeded):
		return ReasonCapacityExceeded
	case errors.Is(err, apperrors.ErrGatewayOrder):
		return ReasonGatewayOrder
	case errors.Is(err, apperrors.ErrPaymentVerification):
		return ReasonPaymentVerification
	case errors.Is(err, apperrors.ErrPersist):
		return ReasonPersist
	default:
		return ReasonService
	}
}
