package middleware

import (
	"strings"

	"github.com/adintl/catalog-api/internal/identity"
	"github.com/adintl/catalog-api/internal/types"
	"github.com/gofiber/fiber/v2"
)

// ClaimsKey is the context key under which validated token claims are stored
const ClaimsKey = "claims"

// Authenticate validates the bearer token and stores its claims in context
func Authenticate(ids *identity.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Authorization header is missing",
				Type:    "auth.token",
			}
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Authorization header must be 'Bearer <token>'",
				Type:    "auth.token",
			}
		}

		claims, err := ids.ValidateToken(parts[1])
		if err != nil {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Invalid or expired token",
				Type:    "auth.token",
			}
		}

		c.Locals(ClaimsKey, claims)
		return c.Next()
	}
}

// RequireRole gates a route on a role claim; it must run after Authenticate
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(ClaimsKey).(*identity.Claims)
		if !ok {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Authentication required",
				Type:    "auth.role",
			}
		}

		if !claims.HasRole(role) {
			return &types.CustomError{
				Code:    fiber.StatusForbidden,
				Message: "Insufficient role",
				Type:    "auth.role",
			}
		}

		return c.Next()
	}
}
