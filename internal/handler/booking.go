package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/roamio/tour-booking/internal/model"
	"github.com/roamio/tour-booking/internal/repository"
	"github.com/roamio/tour-booking/internal/voucher"
)

// BookingHandler owns the booking flow: the booking form, creating a
// pending booking with its payment row, the confirmation page, the
// traveller's booking history and the PDF voucher.
type BookingHandler struct {
	Packages *repository.PackageRepo
	Bookings *repository.BookingRepo
	Payments *repository.PaymentRepo
}

func NewBookingHandler(packages *repository.PackageRepo, bookings *repository.BookingRepo, payments *repository.PaymentRepo) *BookingHandler {
	return &BookingHandler{Packages: packages, Bookings: bookings, Payments: payments}
}

// BookingForm serves the booking page for one package. A request without a
// package reference goes back to the catalog.
func (h *BookingHandler) BookingForm(c echo.Context) error {
	raw := c.QueryParam("package")
	if raw == "" {
		return c.Redirect(http.StatusSeeOther, "/tours")
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid package id"})
	}

	detail, err := h.Packages.GetDetail(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrPackageNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "package not found"})
		}
		c.Logger().Errorf("booking form %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load package"})
	}
	return c.JSON(http.StatusOK, echo.Map{"page": "booking", "package": detail})
}

// Numeric fields arrive as strings so the same struct binds form posts and
// JSON bodies alike; parsing happens in the handler.
type createBookingRequest struct {
	PackageID      string `json:"package_id" form:"package_id"`
	TravelDate     string `json:"travel_date" form:"travel_date"`
	NumberOfPeople string `json:"number_of_people" form:"number_of_people"`
}

// CreateBooking creates a pending booking plus its pending payment row in
// one transaction and sends the traveller to the payment page. The group
// size is validated against the package capacity only; overlapping requests
// can still overbook a date, which surfaces as zero availability in the
// catalog rather than an error here.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	ident, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.PackageID == "" || req.TravelDate == "" || req.NumberOfPeople == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "please provide all required fields"})
	}

	packageID, err := strconv.ParseUint(req.PackageID, 10, 64)
	if err != nil || packageID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid package id"})
	}
	travelDate, err := time.Parse("2006-01-02", req.TravelDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid travel date"})
	}
	people, err := strconv.ParseUint(req.NumberOfPeople, 10, 32)
	if err != nil || people == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "number of people must be at least 1"})
	}

	ctx := c.Request().Context()
	pkg, err := h.Packages.GetByID(ctx, packageID)
	if err != nil {
		if errors.Is(err, repository.ErrPackageNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "package not found"})
		}
		c.Logger().Errorf("create booking: load package %d: %v", packageID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create booking"})
	}
	if pkg.Status != model.PackageActive {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "package not found"})
	}
	if uint32(people) > pkg.MaxParticipants {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": fmt.Sprintf("maximum %d participants allowed for this package", pkg.MaxParticipants),
		})
	}

	total := pkg.Price * float64(people)

	tx, err := h.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		c.Logger().Errorf("create booking: begin tx: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create booking"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	rec := repository.BookingRecord{
		UserID:         ident.UserID,
		PackageID:      packageID,
		TravelDate:     travelDate,
		NumberOfPeople: uint32(people),
		TotalAmount:    total,
	}
	if err := h.Bookings.CreateTx(ctx, tx, &rec); err != nil {
		c.Logger().Errorf("create booking: insert: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create booking"})
	}
	if _, err := h.Payments.CreatePendingTx(ctx, tx, rec.ID, total); err != nil {
		c.Logger().Errorf("create booking: payment row: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create booking"})
	}
	if err := tx.Commit(); err != nil {
		c.Logger().Errorf("create booking: commit: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create booking"})
	}
	committed = true

	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/payment/%d", rec.ID))
}

// Confirmation serves the booking confirmation page, scoped to the owner.
func (h *BookingHandler) Confirmation(c echo.Context) error {
	ident, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	det, err := h.Bookings.GetByIDForUser(c.Request().Context(), id, ident.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		c.Logger().Errorf("confirmation %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load booking"})
	}
	return c.JSON(http.StatusOK, echo.Map{"page": "booking_confirmation", "booking": det})
}

// MyBookings lists the traveller's own bookings, newest first.
func (h *BookingHandler) MyBookings(c echo.Context) error {
	ident, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Bookings.ListByUser(c.Request().Context(), ident.UserID)
	if err != nil {
		c.Logger().Errorf("my bookings: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"page": "my_bookings", "items": items})
}

// Voucher streams a PDF voucher for a confirmed booking owned by the
// requesting user.
func (h *BookingHandler) Voucher(c echo.Context) error {
	ident, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	det, err := h.Bookings.GetForUserInStatus(c.Request().Context(), id, ident.UserID, model.BookingConfirmed)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		c.Logger().Errorf("voucher %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load booking"})
	}

	pdf, name, err := voucher.Build(det)
	if err != nil {
		c.Logger().Errorf("voucher %d: render: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not render voucher"})
	}
	c.Response().Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, name))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}
