package middleware

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-at-least-32-characters-long"

func TestSessions_IssueAndParse(t *testing.T) {
	s := NewSessions(testSecret, false)

	token, expires, err := s.Issue(42)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(SessionTTL), expires, time.Minute)

	userID, err := s.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestSessions_ParseRejects(t *testing.T) {
	s := NewSessions(testSecret, false)

	expired := NewSessions(testSecret, false)
	expired.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	expiredToken, _, err := expired.Issue(1)
	require.NoError(t, err)

	otherKey, _, err := NewSessions("another-secret-that-is-long-enough!!", false).Issue(1)
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "not-a-number",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"garbage", "not-a-token", ErrInvalidSession},
		{"expired", expiredToken, ErrInvalidSession},
		{"wrong key", otherKey, ErrInvalidSession},
		{"none algorithm", noneAlg, ErrInvalidSession},
		{"non numeric subject", badSubject, ErrInvalidSubject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Parse(tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthenticate(t *testing.T) {
	s := NewSessions(testSecret, false)
	app := fiber.New()
	app.Use(s.Authenticate())
	app.Get("/", func(c *fiber.Ctx) error {
		id, ok := UserID(c)
		return c.SendString(fmt.Sprintf("%d:%t", id, ok))
	})

	token, _, err := s.Issue(7)
	require.NoError(t, err)

	tests := []struct {
		name   string
		cookie string
		want   string
	}{
		{"anonymous", "", "0:false"},
		{"valid cookie", token, "7:true"},
		{"tampered cookie", token + "x", "0:false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tt.cookie})
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(body))
		})
	}
}

func TestLoginAndLogoutCookies(t *testing.T) {
	s := NewSessions(testSecret, true)
	app := fiber.New()
	app.Post("/login", func(c *fiber.Ctx) error { return s.Login(c, 3) })
	app.Post("/logout", func(c *fiber.Ctx) error { s.Logout(c); return nil })

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
	require.NoError(t, err)
	_ = resp.Body.Close()

	cookies := resp.Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
	userID, err := s.Parse(cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, uint(3), userID)

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/logout", nil))
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Len(t, resp.Cookies(), 1)
	assert.Empty(t, resp.Cookies()[0].Value)
}

func TestLoginRequired(t *testing.T) {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if c.Get("X-Test-User") != "" {
			SetUserID(c, 1)
		}
		return c.Next()
	})
	app.Get("/create/", LoginRequired("/auth/login/"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/create/", nil))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/login/?next=/create/", resp.Header.Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/create/", nil)
	req.Header.Set("X-Test-User", "1")
	resp, err = app.Test(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSafeNext(t *testing.T) {
	tests := []struct {
		next string
		want string
	}{
		{"/create/", "/create/"},
		{"/posts/1/edit/", "/posts/1/edit/"},
		{"", "/"},
		{"https://evil.example/", "/"},
		{"//evil.example/", "/"},
		{"/\\evil.example", "/"},
		{"relative/path", "/"},
	}
	for _, tt := range tests {
		t.Run(tt.next, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeNext(tt.next, "/"))
		})
	}
}
