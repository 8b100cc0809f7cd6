package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/rfp-api/internal/domain/actor"
	"github.com/sangkips/rfp-api/internal/presentation/http/dto/response"
	"github.com/sangkips/rfp-api/pkg/utils"
)

const (
	// ContextUserID holds the caller's uuid.UUID
	ContextUserID = "user_id"
	// ContextActor holds the caller's actor.Actor
	ContextActor = "actor"
)

// ActorResolver turns token claims into an actor with its capabilities
type ActorResolver interface {
	Resolve(id uuid.UUID, name, role, department string) actor.Actor
}

// AuthMiddleware validates the bearer token and stores the resolved actor
func AuthMiddleware(jwtManager *utils.JWTManager, resolver ActorResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextActor, resolver.Resolve(claims.UserID, claims.Name, claims.Role, claims.DepartmentType))

		c.Next()
	}
}

// ActorFrom returns the authenticated actor, or the zero actor with no capabilities
func ActorFrom(c *gin.Context) actor.Actor {
	v, exists := c.Get(ContextActor)
	if !exists {
		return actor.Actor{}
	}
	a, _ := v.(actor.Actor)
	return a
}

// RequireCapability rejects callers lacking the capability before the handler runs
func RequireCapability(capability actor.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ActorFrom(c).Can(capability) {
			response.Forbidden(c, "You do not have permission to perform this action")
			c.Abort()
			return
		}
		c.Next()
	}
}
