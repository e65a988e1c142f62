package handler

import (
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"

	"github.com/roamio/tour-booking/internal/config"
	"github.com/roamio/tour-booking/internal/middleware"
	"github.com/roamio/tour-booking/internal/repository"
	"github.com/roamio/tour-booking/internal/session"
	"github.com/roamio/tour-booking/internal/utils"
)

func testAuthConfig() config.Config {
	return config.Config{
		SessionSecret: "test-secret",
		SessionTTLMin: 60,
		BcryptCost:    bcrypt.MinCost,
	}
}

func userColumns() []string {
	return []string{"id", "name", "email", "phone", "password_hash", "role", "created_at"}
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'asha@example.com' for key 'users.email'"))

	h := NewAuthHandler(testAuthConfig(), repository.NewUserRepo(db), session.NewMemoryStore())
	form := url.Values{
		"name":     {"Asha"},
		"email":    {"asha@example.com"},
		"phone":    {"555-0101"},
		"password": {"secret"},
	}
	c, rec := postFormContext(t, "/register", form, nil)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", rec.Code)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	hash, err := utils.HashPassword("right", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	// Unknown email, then known email with the wrong password.
	mock.ExpectQuery("FROM users WHERE email").
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns()))
	mock.ExpectQuery("FROM users WHERE email").
		WithArgs("asha@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(7, "Asha", "asha@example.com", "555-0101", hash, "user", time.Now()))

	h := NewAuthHandler(testAuthConfig(), repository.NewUserRepo(db), session.NewMemoryStore())

	c, rec := postFormContext(t, "/login", url.Values{
		"email":    {"nobody@example.com"},
		"password": {"whatever"},
	}, nil)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unknown email: expected 401, got %d", rec.Code)
	}

	c, rec = postFormContext(t, "/login", url.Values{
		"email":    {"asha@example.com"},
		"password": {"wrong"},
	}, nil)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: expected 401, got %d", rec.Code)
	}
}

func TestLoginOpensSessionAndSetsCookie(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	hash, err := utils.HashPassword("secret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	mock.ExpectQuery("FROM users WHERE email").
		WithArgs("asha@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(7, "Asha", "asha@example.com", "555-0101", hash, "user", time.Now()))

	store := session.NewMemoryStore()
	cfg := testAuthConfig()
	h := NewAuthHandler(cfg, repository.NewUserRepo(db), store)

	c, rec := postFormContext(t, "/login", url.Values{
		"email":    {"Asha@Example.com"},
		"password": {"secret"},
	}, nil)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Fatalf("unexpected redirect target %q", loc)
	}

	res := rec.Result()
	var cookieValue string
	for _, ck := range res.Cookies() {
		if ck.Name == middleware.CookieName {
			cookieValue = ck.Value
			if !ck.HttpOnly {
				t.Fatalf("session cookie must be HttpOnly")
			}
		}
	}
	if cookieValue == "" {
		t.Fatalf("session cookie not set")
	}

	// The cookie resolves to a live server-side session.
	sid, err := utils.ParseSessionToken(cfg.SessionSecret, cookieValue)
	if err != nil {
		t.Fatalf("cookie token invalid: %v", err)
	}
	ident, err := store.Get(c.Request().Context(), sid)
	if err != nil {
		t.Fatalf("session record missing: %v", err)
	}
	if ident.UserID != 7 || ident.Role != "user" {
		t.Fatalf("session identity wrong: %+v", ident)
	}
}
