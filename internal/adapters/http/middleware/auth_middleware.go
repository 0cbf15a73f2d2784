package middleware

import (
	"errors"
	"strings"

	"lms-backend/internal/core/domain"
	"lms-backend/internal/pkg/response"
	"lms-backend/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
)

const principalKey = "principal"

// Protected creates bearer-token authentication middleware. It verifies the
// session token, builds an explicit principal value from its claims and
// stores it for handlers to pass into core operations. Expired, mis-signed
// and issuer/audience-mismatched tokens are rejected with 401.
func Protected(tokens *token.Issuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := extractToken(c)
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := tokens.Parse(accessToken)
		if err != nil {
			if errors.Is(err, token.ErrTokenExpired) {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		studentID, err := claims.StudentID()
		if err != nil {
			return response.Unauthorized(c, "Invalid access token")
		}

		c.Locals(principalKey, domain.Principal{
			StudentID: studentID,
			Email:     claims.Email,
			FullName:  claims.FullName,
			Role:      domain.Role(claims.Role),
		})

		return c.Next()
	}
}

// AdminOnly requires the admin role. Must run after Protected.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := c.Locals(principalKey).(domain.Principal)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}
		if !principal.IsAdmin() {
			return response.Forbidden(c, "You don't have permission to access this resource")
		}
		return c.Next()
	}
}

// PrincipalFrom returns the authenticated principal stored by Protected
func PrincipalFrom(c *fiber.Ctx) (domain.Principal, bool) {
	principal, ok := c.Locals(principalKey).(domain.Principal)
	return principal, ok
}

// extractToken reads the bearer token from the Authorization header or the
// access_token cookie
func extractToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return c.Cookies("access_token")
}
