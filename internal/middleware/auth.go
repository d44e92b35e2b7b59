// Package middleware provides authentication, logging, and rate limiting
// middleware for the application.
package middleware

import (
	"context"
	"strconv"
	"strings"

	"quorum/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// SessionKey is the Fiber locals key holding the resolved *models.Session.
const SessionKey = "session"

// SessionAuth builds a models.Session from the bearer token on each request.
// The token's "sub" claim carries the profile id and the "role" claim the
// session role; the profile itself (with team memberships) is loaded through
// loadProfile so permission checks see current data, not token-time data.
type SessionAuth struct {
	secret      []byte
	loadProfile func(ctx context.Context, id uint) (*models.Profile, error)
}

func NewSessionAuth(secret string, loadProfile func(ctx context.Context, id uint) (*models.Profile, error)) *SessionAuth {
	return &SessionAuth{secret: []byte(secret), loadProfile: loadProfile}
}

// Optional resolves a session when a bearer token is present and valid, and
// lets the request through anonymously otherwise. Read endpoints use this:
// threads are publicly readable, but capability flags depend on who asks.
func (a *SessionAuth) Optional(c *fiber.Ctx) error {
	if session, err := a.sessionFromHeader(c); err == nil && session != nil {
		c.Locals(SessionKey, session)
		c.Locals("profileID", session.ProfileID())
	}
	return c.Next()
}

// Required enforces a valid bearer token for protected routes.
func (a *SessionAuth) Required(c *fiber.Ctx) error {
	session, err := a.sessionFromHeader(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	c.Locals(SessionKey, session)
	c.Locals("profileID", session.ProfileID())
	return c.Next()
}

// ModeratorRequired enforces the moderator role. Must run after Required.
func ModeratorRequired(c *fiber.Ctx) error {
	if !SessionFromCtx(c).IsModerator() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Moderator access required",
		})
	}
	return c.Next()
}

// SessionFromCtx returns the resolved session, or nil for anonymous requests.
func SessionFromCtx(c *fiber.Ctx) *models.Session {
	if s, ok := c.Locals(SessionKey).(*models.Session); ok {
		return s
	}
	return nil
}

func (a *SessionAuth) sessionFromHeader(c *fiber.Ctx) (*models.Session, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Authorization header required")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid authorization header format")
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
	}

	// Profile id travels in the "sub" claim (RFC 7519 subject).
	subStr, ok := claims["sub"].(string)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token structure - missing subject")
	}
	profileID, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid profile ID in token")
	}

	role := models.RoleMember
	if roleStr, ok := claims["role"].(string); ok && models.Role(roleStr) == models.RoleModerator {
		role = models.RoleModerator
	}

	profile, err := a.loadProfile(c.UserContext(), uint(profileID))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Unknown profile")
	}

	return &models.Session{Profile: profile, Role: role}, nil
}
