package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/roamio/tour-booking/internal/repository"
	"github.com/roamio/tour-booking/internal/session"
)

func getContext(target string, ident *session.Identity) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	if ident != nil {
		c.Set("identity", *ident)
	}
	return c, rec
}

func TestHomeDegradesWhenReviewsFail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM reviews r").
		WillReturnError(errors.New("table scan failed"))

	h := NewCatalogHandler(repository.NewPackageRepo(db), repository.NewDestinationRepo(db), repository.NewReviewRepo(db))
	c, rec := getContext("/", &session.Identity{UserID: 7, Email: "a@b.c", Role: "user"})

	if err := h.Home(c); err != nil {
		t.Fatalf("Home: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("home must stay up when reviews fail, got %d", rec.Code)
	}

	var doc struct {
		RecentReviews []repository.ReviewView `json:"recent_reviews"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(doc.RecentReviews) != 0 {
		t.Fatalf("expected empty review list, got %d entries", len(doc.RecentReviews))
	}
}

func TestListToursNormalizesSortAndFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// A bogus sort key falls back to price descending; a bogus filter
	// falls back to "all" and must not add the availability clause.
	mock.ExpectQuery("ORDER BY tp.price DESC").
		WillReturnRows(sqlmock.NewRows(availabilityTestColumns()))

	h := NewCatalogHandler(repository.NewPackageRepo(db), repository.NewDestinationRepo(db), repository.NewReviewRepo(db))
	c, rec := getContext("/tours?sort=sneaky&filter=everything", nil)

	if err := h.ListTours(c); err != nil {
		t.Fatalf("ListTours: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var doc struct {
		Sort   string `json:"sort"`
		Filter string `json:"filter"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Sort != repository.SortPriceDesc || doc.Filter != "all" {
		t.Fatalf("inputs not normalized: sort=%q filter=%q", doc.Sort, doc.Filter)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetPackageNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("JOIN destinations d").
		WithArgs(44).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	h := NewCatalogHandler(repository.NewPackageRepo(db), repository.NewDestinationRepo(db), repository.NewReviewRepo(db))
	c, rec := getContext("/package/44", nil)
	c.SetParamNames("id")
	c.SetParamValues("44")

	if err := h.GetPackage(c); err != nil {
		t.Fatalf("GetPackage: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func availabilityTestColumns() []string {
	return []string{
		"id", "destination_id", "name", "description", "duration_days",
		"price", "max_participants", "image_url",
		"destination_name", "country", "destination_description", "destination_image",
		"available_seats",
	}
}
