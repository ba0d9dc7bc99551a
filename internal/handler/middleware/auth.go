package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"fieldbook/internal/domain/booking"
	"fieldbook/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxActorIDKey   = "actor_id"
	ctxActorRoleKey = "actor_role"
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		actorID, role, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxActorIDKey, actorID)
		c.Set(ctxActorRoleKey, role)
		c.Set("jwt_claims", map[string]any{
			"actor_id": actorID.String(),
			"role":     role.String(),
		})
		c.Next()
	}
}

func GetActorID(c *gin.Context) (uuid.UUID, bool) {
	actorID, exists := c.Get(ctxActorIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := actorID.(uuid.UUID)
	return id, ok
}

func GetActorRole(c *gin.Context) (booking.ActorRole, bool) {
	actorRole, exists := c.Get(ctxActorRoleKey)
	if !exists {
		return "", false
	}

	role, ok := actorRole.(booking.ActorRole)
	return role, ok
}
