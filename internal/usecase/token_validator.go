package usecase

import (
	"fieldbook/internal/domain/booking"
	"fieldbook/internal/pkg/errs"
	"fieldbook/internal/pkg/jwt"

	"github.com/google/uuid"
)

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (uuid.UUID, booking.ActorRole, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (uuid.UUID, booking.ActorRole, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, "", err
	}

	role := booking.ActorRole(claims.Role)
	if !role.IsValid() {
		return uuid.Nil, "", errs.New("unknown actor role in token")
	}

	return claims.ActorID, role, nil
}
