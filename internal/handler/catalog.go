package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/roamio/tour-booking/internal/repository"
)

// CatalogHandler serves the public browsing pages: home, tour listing,
// package listing and detail, and destination overview.
type CatalogHandler struct {
	Packages     *repository.PackageRepo
	Destinations *repository.DestinationRepo
	Reviews      *repository.ReviewRepo
}

func NewCatalogHandler(packages *repository.PackageRepo, destinations *repository.DestinationRepo, reviews *repository.ReviewRepo) *CatalogHandler {
	return &CatalogHandler{Packages: packages, Destinations: destinations, Reviews: reviews}
}

// Home serves the landing page document with the three most recent reviews.
// A failing review query degrades to an empty list rather than a 500.
func (h *CatalogHandler) Home(c echo.Context) error {
	ident, _ := currentUser(c)
	reviews, err := h.Reviews.ListRecent(c.Request().Context(), 3)
	if err != nil {
		c.Logger().Errorf("home: recent reviews: %v", err)
		reviews = nil
	}
	if reviews == nil {
		reviews = []repository.ReviewView{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"page":           "home",
		"user":           ident,
		"recent_reviews": reviews,
	})
}

// ListTours serves the sortable, filterable catalog of active packages with
// derived seat availability.
func (h *CatalogHandler) ListTours(c echo.Context) error {
	sortKey := c.QueryParam("sort")
	if _, ok := map[string]bool{
		repository.SortPriceDesc:    true,
		repository.SortDurationDesc: true,
		repository.SortSeatsDesc:    true,
		repository.SortPriceAsc:     true,
	}[sortKey]; !ok {
		sortKey = repository.SortPriceDesc
	}
	filter := c.QueryParam("filter")
	if filter != "available" {
		filter = "all"
	}

	items, err := h.Packages.ListAvailable(c.Request().Context(), sortKey, filter == "available")
	if err != nil {
		c.Logger().Errorf("tours: list: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load tours"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"page":   "tours",
		"sort":   sortKey,
		"filter": filter,
		"items":  items,
	})
}

// ListPackages serves the plain package listing with destination info.
func (h *CatalogHandler) ListPackages(c echo.Context) error {
	items, err := h.Packages.ListWithDestination(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("packages: list: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load packages"})
	}
	return c.JSON(http.StatusOK, echo.Map{"page": "packages", "items": items})
}

// GetPackage serves a single package page: package with destination, its
// reviews newest-first, and any flash hint from a redirect.
func (h *CatalogHandler) GetPackage(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid package id"})
	}
	ctx := c.Request().Context()

	detail, err := h.Packages.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPackageNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "package not found"})
		}
		c.Logger().Errorf("package %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load package"})
	}

	reviews, err := h.Reviews.ListByPackage(ctx, id)
	if err != nil {
		c.Logger().Errorf("package %d: reviews: %v", id, err)
		reviews = []repository.ReviewView{}
	}

	doc := echo.Map{
		"page":    "package",
		"package": detail,
		"reviews": reviews,
	}
	if flash := c.QueryParam("flash"); flash != "" {
		doc["flash"] = flash
	}
	return c.JSON(http.StatusOK, doc)
}

// ListDestinations serves the destination overview with per-destination
// aggregates derived from active packages and confirmed future bookings.
func (h *CatalogHandler) ListDestinations(c echo.Context) error {
	items, err := h.Destinations.ListWithAvailability(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("destinations: list: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load destinations"})
	}
	return c.JSON(http.StatusOK, echo.Map{"page": "destinations", "items": items})
}
