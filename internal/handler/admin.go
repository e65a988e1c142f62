package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/roamio/tour-booking/internal/repository"
)

// AdminHandler serves the back-office listings. Role enforcement happens
// in middleware; these handlers only read.
type AdminHandler struct {
	Bookings    *repository.BookingRepo
	PackageRepo *repository.PackageRepo
}

func NewAdminHandler(bookings *repository.BookingRepo, packages *repository.PackageRepo) *AdminHandler {
	return &AdminHandler{Bookings: bookings, PackageRepo: packages}
}

// Dashboard lists every booking in the system, newest first.
func (h *AdminHandler) Dashboard(c echo.Context) error {
	items, err := h.Bookings.ListAll(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("admin dashboard: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"page": "admin_dashboard", "items": items})
}

// Packages lists every package regardless of status.
func (h *AdminHandler) Packages(c echo.Context) error {
	items, err := h.PackageRepo.ListWithDestination(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("admin packages: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load packages"})
	}
	return c.JSON(http.StatusOK, echo.Map{"page": "admin_packages", "items": items})
}
