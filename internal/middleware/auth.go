// Package middleware provides authentication, logging, metrics and rate limiting middleware for the application.
package middleware

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// SessionCookieName is the cookie holding the signed session token.
	SessionCookieName = "session"
	// SessionTTL is how long a login stays valid.
	SessionTTL = 24 * time.Hour

	userIDLocal = "userID"
)

var (
	ErrInvalidSession = errors.New("invalid or expired session")
	ErrInvalidSubject = errors.New("invalid session subject")
)

// Sessions issues and verifies HS256-signed session tokens carried in a cookie.
type Sessions struct {
	secret []byte
	secure bool
	now    func() time.Time
}

// NewSessions creates a session manager. secure marks the cookie HTTPS-only.
func NewSessions(secret string, secure bool) *Sessions {
	return &Sessions{secret: []byte(secret), secure: secure, now: time.Now}
}

// Issue signs a token for the given user.
func (s *Sessions) Issue(userID uint) (string, time.Time, error) {
	now := s.now()
	expires := now.Add(SessionTTL)
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session: %w", err)
	}
	return token, expires, nil
}

// Parse validates a token and returns the user ID from its subject claim.
func (s *Sessions) Parse(tokenString string) (uint, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return 0, ErrInvalidSession
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil || userID == 0 {
		return 0, ErrInvalidSubject
	}
	return uint(userID), nil
}

// Login issues a token for the user and stores it in the session cookie.
func (s *Sessions) Login(c *fiber.Ctx, userID uint) error {
	token, expires, err := s.Issue(userID)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   s.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

// Logout clears the session cookie.
func (s *Sessions) Logout(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   s.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Authenticate reads the session cookie when present and stores the user ID in locals.
// Requests without a valid cookie continue anonymously.
func (s *Sessions) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if raw := c.Cookies(SessionCookieName); raw != "" {
			if userID, err := s.Parse(raw); err == nil {
				c.Locals(userIDLocal, userID)
			}
		}
		return c.Next()
	}
}

// UserID returns the authenticated user ID stored by Authenticate.
func UserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals(userIDLocal).(uint)
	return id, ok && id != 0
}

// SetUserID marks the request as authenticated. Used by tests and trusted front proxies.
func SetUserID(c *fiber.Ctx, userID uint) {
	c.Locals(userIDLocal, userID)
}

// LoginRequired redirects anonymous requests to loginPath with a next parameter
// pointing back at the requested path.
func LoginRequired(loginPath string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderCacheControl, "no-store, no-cache, must-revalidate, max-age=0")

		if _, ok := UserID(c); ok {
			return c.Next()
		}
		return c.Redirect(LoginURL(loginPath, c.Path()), fiber.StatusFound)
	}
}

// LoginURL builds the login redirect target for the given return path.
func LoginURL(loginPath, next string) string {
	return loginPath + "?next=" + (&url.URL{Path: next}).EscapedPath()
}

// SafeNext returns next if it is a local absolute path, otherwise fallback.
func SafeNext(next, fallback string) string {
	if next == "" || next[0] != '/' || len(next) > 1 && (next[1] == '/' || next[1] == '\\') {
		return fallback
	}
	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" {
		return fallback
	}
	return next
}
