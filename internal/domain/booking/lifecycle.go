package booking

import "fmt"

// IllegalTransitionError reports a rejected status change. It carries both
// endpoints so handlers can surface them without re-fetching the booking.
type IllegalTransitionError struct {
	From Status
	To   Status
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal transition from %s to %s", e.From, e.To)
}

// CanTransition reports whether current → target is a legal edge.
//
//	pending   → confirmed | cancelled
//	confirmed → completed | cancelled
//	cancelled, completed are terminal
//
// No edge re-enters pending.
func CanTransition(current, target Status) bool {
	switch current {
	case StatusPending:
		return target == StatusConfirmed || target == StatusCancelled
	case StatusConfirmed:
		return target == StatusCompleted || target == StatusCancelled
	case StatusCancelled, StatusCompleted:
		return false
	default:
		return false
	}
}

// ApplyTransition validates current → target and returns the new status, or an
// IllegalTransitionError when the edge does not exist.
func ApplyTransition(current, target Status) (Status, error) {
	if !CanTransition(current, target) {
		return current, &IllegalTransitionError{From: current, To: target}
	}
	return target, nil
}
