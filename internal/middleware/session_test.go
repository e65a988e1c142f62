package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/roamio/tour-booking/internal/session"
	"github.com/roamio/tour-booking/internal/utils"
)

func getContextWithCookie(token string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/my-bookings", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func TestRequireSessionRedirectsGuests(t *testing.T) {
	store := session.NewMemoryStore()
	mw := RequireSession("secret", store)
	next := func(c echo.Context) error {
		t.Fatalf("handler must not run without a session")
		return nil
	}

	c, rec := getContextWithCookie("")
	if err := mw(next)(c); err != nil {
		t.Fatalf("middleware: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("unexpected redirect target %q", loc)
	}
}

func TestRequireSessionRejectsForgedToken(t *testing.T) {
	store := session.NewMemoryStore()
	sid, err := store.Create(context.Background(), session.Identity{UserID: 7}, time.Minute)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	forged, err := utils.NewSessionToken("other-secret", sid, time.Minute)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	mw := RequireSession("secret", store)
	next := func(c echo.Context) error {
		t.Fatalf("handler must not run with a forged cookie")
		return nil
	}

	c, rec := getContextWithCookie(forged)
	if err := mw(next)(c); err != nil {
		t.Fatalf("middleware: %v", err)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("unexpected redirect target %q", loc)
	}
}

func TestRequireSessionResolvesIdentity(t *testing.T) {
	store := session.NewMemoryStore()
	sid, err := store.Create(context.Background(), session.Identity{UserID: 7, Email: "a@b.c", Role: "admin"}, time.Minute)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	token, err := utils.NewSessionToken("secret", sid, time.Minute)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	mw := RequireSession("secret", store)
	var seen session.Identity
	next := func(c echo.Context) error {
		ident, ok := CurrentIdentity(c)
		if !ok {
			t.Fatalf("identity missing from context")
		}
		seen = ident
		return c.NoContent(http.StatusOK)
	}

	c, rec := getContextWithCookie(token)
	if err := mw(next)(c); err != nil {
		t.Fatalf("middleware: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if seen.UserID != 7 || seen.Role != "admin" {
		t.Fatalf("wrong identity resolved: %+v", seen)
	}
}

func TestRequireRoleBlocksNonAdmin(t *testing.T) {
	mw := RequireRole("admin")
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.Set("identity", session.Identity{UserID: 7, Role: "user"})

	if err := mw(next)(c); err != nil {
		t.Fatalf("middleware: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
