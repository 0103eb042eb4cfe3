package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"skillsync/internal/domain/user"
	"skillsync/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type denylist map[string]bool

func (d denylist) IsRevoked(_ context.Context, id string) (bool, error) {
	return d[id], nil
}

func newApp(handlers ...fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(NewErrorMiddleware(log.New(io.Discard, "", 0)).Middleware())
	for _, h := range handlers {
		app.Use(h)
	}
	return app
}

func statusOf(t *testing.T, app *fiber.App, req *http.Request) (int, string) {
	t.Helper()
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	var env struct {
		Message string `json:"message"`
	}
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &env)
	return resp.StatusCode, env.Message
}

func TestAuthMiddleware(t *testing.T) {
	svc := jwt.NewHMACService("a", "r", time.Minute, time.Hour)
	uid := uuid.New()

	access, _ := svc.GenerateAccessToken(uid, "ana@example.com", "employer")
	refresh, _ := svc.GenerateRefreshToken(uid)
	revokedTok, _ := svc.GenerateAccessToken(uid, "", "student")
	revokedClaims, _ := svc.ValidateToken(revokedTok)

	mw := NewAuthMiddleware(svc, denylist{revokedClaims.ID: true})
	app := newApp(mw.Middleware())
	app.Get("/me", func(c fiber.Ctx) error {
		got, _ := c.Locals(CtxUserIDKey).(uuid.UUID)
		if got != uid {
			return errors.New("user id not set")
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", fiber.StatusUnauthorized},
		{"malformed", "Token abc", fiber.StatusUnauthorized},
		{"refresh token", "Bearer " + refresh, fiber.StatusUnauthorized},
		{"revoked", "Bearer " + revokedTok, fiber.StatusUnauthorized},
		{"ok", "Bearer " + access, fiber.StatusNoContent},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		if got, _ := statusOf(t, app, req); got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestRequireUserType(t *testing.T) {
	app := newApp(func(c fiber.Ctx) error {
		c.Locals(CtxUserTypeKey, c.Get("X-Type"))
		return c.Next()
	}, RequireUserType(user.TypeEmployer))
	app.Get("/", func(c fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Type", "student")
	if got, _ := statusOf(t, app, req); got != fiber.StatusForbidden {
		t.Fatalf("expected 403, got %d", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Type", "employer")
	if got, _ := statusOf(t, app, req); got != fiber.StatusNoContent {
		t.Fatalf("expected 204, got %d", got)
	}
}

func TestErrorMiddleware_Normalization(t *testing.T) {
	app := newApp()
	app.Get("/app", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusConflict, "Already applied", nil, nil)
	})
	app.Get("/internal", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusInternalServerError, "db password is hunter2", nil, nil)
	})
	app.Get("/gateway", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusBadGateway, "CV analysis failed", nil, errors.New("llm"))
	})
	app.Get("/plain", func(c fiber.Ctx) error {
		return errors.New("boom")
	})
	app.Get("/panic", func(c fiber.Ctx) error {
		panic("kaboom")
	})

	cases := []struct {
		path    string
		status  int
		message string
	}{
		{"/app", fiber.StatusConflict, "Already applied"},
		{"/internal", fiber.StatusInternalServerError, "internal server error"},
		{"/gateway", fiber.StatusBadGateway, "CV analysis failed"},
		{"/plain", fiber.StatusInternalServerError, "internal server error"},
		{"/panic", fiber.StatusInternalServerError, "internal server error"},
	}
	for _, tc := range cases {
		status, msg := statusOf(t, app, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if status != tc.status || msg != tc.message {
			t.Fatalf("%s: got %d %q", tc.path, status, msg)
		}
	}
}

func TestAccessLog_SetsRequestID(t *testing.T) {
	app := newApp(NewAccessLogMiddleware(log.New(io.Discard, "", 0)).Middleware())
	app.Get("/", func(c fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID")
	}
}

func TestBearerToken(t *testing.T) {
	if tok, ok := BearerToken("bearer  abc "); !ok || tok != "abc" {
		t.Fatalf("unexpected %q %v", tok, ok)
	}
	if _, ok := BearerToken("Bearer "); ok {
		t.Fatalf("expected empty token to fail")
	}
}
