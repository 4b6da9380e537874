package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/geosite/cms/internal/auth"
	"github.com/geosite/cms/internal/logger"
)

// ClaimsKey is the context key the auth middleware stores verified claims
// under.
const ClaimsKey = "claims"

// verify extracts and validates the bearer token, returning its claims or
// nil after writing a 401 response.
func verify(c *fiber.Ctx, svc *auth.Service) (*auth.Claims, error) {
	header := c.Get(fiber.HeaderAuthorization)
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" {
		return nil, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"detail": "Not authenticated",
		})
	}

	claims, err := svc.VerifyToken(token)
	if err != nil {
		logger.Get().Warn().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("ip", c.IP()).
			Err(err).
			Msg("Token verification failed")

		return nil, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"detail": "Invalid or expired token",
		})
	}

	return claims, nil
}

// RequireAuth verifies the bearer token and stores its claims in the
// request context. Missing, malformed or expired tokens yield 401.
func RequireAuth(svc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := verify(c, svc)
		if claims == nil {
			return err
		}
		c.Locals(ClaimsKey, claims)
		return c.Next()
	}
}

// RequireAdmin is the capability check gating every mutating handler:
// 401 without a valid token, 403 for a valid token lacking the admin flag.
func RequireAdmin(svc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := verify(c, svc)
		if claims == nil {
			return err
		}

		if !claims.IsAdmin {
			logger.Get().Warn().
				Str("method", c.Method()).
				Str("path", c.Path()).
				Str("username", claims.Username).
				Msg("Non-admin attempted admin operation")

			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"detail": "Admin access required",
			})
		}

		c.Locals(ClaimsKey, claims)
		return c.Next()
	}
}

// CurrentClaims returns the verified claims stored by RequireAuth, or nil.
func CurrentClaims(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(ClaimsKey).(*auth.Claims)
	return claims
}
