package booking

// Status is the closed set of booking states. Transitions are governed by
// CanTransition; nothing outside this package should compare raw strings.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is permitted from s.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// IsBlocking reports whether a booking in this status occupies its slot for
// conflict purposes.
func (s Status) IsBlocking() bool {
	return s == StatusPending || s == StatusConfirmed
}

type ActorRole string

const (
	RoleCustomer ActorRole = "customer"
	RoleOwner    ActorRole = "owner"
	RoleAdmin    ActorRole = "admin"
)

func (r ActorRole) String() string {
	return string(r)
}

func (r ActorRole) IsValid() bool {
	switch r {
	case RoleCustomer, RoleOwner, RoleAdmin:
		return true
	default:
		return false
	}
}

// Elevated roles may act on bookings they do not own.
func (r ActorRole) IsElevated() bool {
	return r == RoleOwner || r == RoleAdmin
}
