package commands

import (
	"context"

	"fieldbook/internal/domain/booking"
	"fieldbook/internal/usecase/shared"

	"github.com/google/uuid"
)

// Actor is the already-authenticated caller. The engine never authenticates;
// it only checks role-appropriateness of an action.
type Actor struct {
	ID   uuid.UUID
	Role booking.ActorRole
}

// ResourceReader is the read-only resource catalog port. Production wires the
// Redis-fronted reader; tests use the plain command reads.
type ResourceReader interface {
	ResourceByID(ctx context.Context, id uuid.UUID) (*shared.ResourceSnapshot, error)
}
