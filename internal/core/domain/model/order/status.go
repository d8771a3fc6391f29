package order

import (
	"fmt"

	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It implements a small
// fixed state machine so that orders always move along permitted edges.
//
// State transitions:
//
//	pending ──┬──> preparing ──> completed
//	          │
//	          └──> cancelled
//
// completed and cancelled are terminal. Requesting the status an order is
// already in is accepted as a no-op, which absorbs duplicate clicks from
// staff UIs.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status assigned when an order is created.
	// Orders in this status are waiting for staff to start preparation.
	Pending

	// Preparing indicates staff have started making the order.
	Preparing

	// Completed indicates the order has been made and handed over.
	// This is a terminal state with no further transitions allowed.
	Completed

	// Cancelled indicates the order was cancelled before preparation began.
	// This is a terminal state with no further transitions allowed.
	Cancelled
)

// statusStrings maps every Status, including Unknown, to its canonical
// string form used in persistence and on the wire.
func statusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Preparing: "preparing",
		Completed: "completed",
		Cancelled: "cancelled",
	}
}

// validStatusStrings excludes Unknown to support validation.
func validStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		Preparing: "preparing",
		Completed: "completed",
		Cancelled: "cancelled",
	}
}

// transitions defines the permitted edges of the status machine.
// Terminal states have no outgoing edges.
func transitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:   {Preparing, Cancelled},
		Preparing: {Completed},
		Completed: {},
		Cancelled: {},
	}
}

// StatusFromString parses the canonical string form of a status. Used at
// the API boundary; display localization never feeds back into parsing.
func StatusFromString(s string) (Status, error) {
	for status, str := range validStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is a member of the fixed status set.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := validStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the canonical name of the status, or "unknown" for
// invalid values. Implements fmt.Stringer and is safe on any Status.
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// DisplayThai returns the Thai display name for the status. Localization
// lives only at the presentation boundary; internal comparisons and
// persistence always use the canonical enum.
func (s Status) DisplayThai() string {
	switch s {
	case Pending:
		return "รอดำเนินการ"
	case Preparing:
		return "กำลังเตรียม"
	case Completed:
		return "เสร็จสิ้น"
	case Cancelled:
		return "ยกเลิก"
	default:
		return "ไม่ทราบสถานะ"
	}
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// CanTransitionTo reports whether target is reachable from s via one
// permitted edge. A same-status request is not a transition and returns
// false; callers treat it as a no-op instead.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo applies the status machine to a requested target status.
//
// Returns:
//   - (s, nil) when target equals the current status (no-op success)
//   - (target, nil) when the edge s -> target is permitted
//   - (Unknown, *errs.IllegalTransitionError) for every other request
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}

	if s == target {
		return s, nil
	}

	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewIllegalTransitionError(s.String(), target.String())
	}

	return target, nil
}
