package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/labstack/echo/v4"

	"github.com/roamio/tour-booking/internal/model"
	"github.com/roamio/tour-booking/internal/queue"
	"github.com/roamio/tour-booking/internal/repository"
	queue_publisher "github.com/roamio/tour-booking/internal/service"
)

// PaymentHandler drives the simulated payment capture. Card details are
// accepted on the form, reduced to the last four digits, and discarded; the
// full number is never persisted or logged.
type PaymentHandler struct {
	Bookings *repository.BookingRepo

	// PublishConfirmed is swappable in tests. Defaults to the RabbitMQ
	// publisher; failures are logged and ignored.
	PublishConfirmed func(ctx context.Context, ev queue.BookingConfirmedEvent) error
}

func NewPaymentHandler(bookings *repository.BookingRepo) *PaymentHandler {
	return &PaymentHandler{
		Bookings:         bookings,
		PublishConfirmed: queue_publisher.PublishBookingConfirmed,
	}
}

// PaymentPage serves the payment form for one of the user's pending
// bookings.  An already-captured booking has no payment page.
func (h *PaymentHandler) PaymentPage(c echo.Context) error {
	ident, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "booking_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	det, err := h.Bookings.GetForUserInStatus(c.Request().Context(), id, ident.UserID, model.BookingPending)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		c.Logger().Errorf("payment page %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load booking"})
	}
	return c.JSON(http.StatusOK, echo.Map{"page": "payment", "booking": det})
}

// processPaymentRequest carries the simulated card form.  Only the booking
// reference and the card number are acted on; the rest is accepted and
// dropped without ever being stored or logged.
type processPaymentRequest struct {
	BookingID  string `json:"booking_id" form:"booking_id"`
	CardNumber string `json:"card_number" form:"card_number"`
	CardName   string `json:"card_name" form:"card_name"`
	Expiry     string `json:"expiry" form:"expiry"`
	CVV        string `json:"cvv" form:"cvv"`
}

// ProcessPayment captures a pending payment: inside one transaction the
// pending booking is loaded (scoped to the owner) and flipped to confirmed
// with the payment date and card last-four stamped on it. Any failure in
// the flow lands on the payment error page. On success a confirmation
// event is published best-effort and the traveller is redirected to the
// success page.
func (h *PaymentHandler) ProcessPayment(c echo.Context) error {
	ident, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req processPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.Redirect(http.StatusSeeOther, "/payment-error")
	}
	if req.BookingID == "" || req.CardNumber == "" {
		return c.Redirect(http.StatusSeeOther, "/payment-error")
	}
	bookingID, err := strconv.ParseUint(req.BookingID, 10, 64)
	if err != nil || bookingID == 0 {
		return c.Redirect(http.StatusSeeOther, "/payment-error")
	}

	lastFour := cardLastFour(req.CardNumber)
	if lastFour == "" {
		return c.Redirect(http.StatusSeeOther, "/payment-error")
	}

	ctx := c.Request().Context()
	tx, err := h.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		c.Logger().Errorf("process payment: begin tx: %v", err)
		return c.Redirect(http.StatusSeeOther, "/payment-error")
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	det, err := h.Bookings.GetPendingForUserTx(ctx, tx, bookingID, ident.UserID)
	if err != nil {
		if !errors.Is(err, repository.ErrBookingNotFound) {
			c.Logger().Errorf("process payment %d: load: %v", bookingID, err)
		}
		return c.Redirect(http.StatusSeeOther, "/payment-error")
	}
	if err := h.Bookings.ConfirmTx(ctx, tx, bookingID, lastFour); err != nil {
		if !errors.Is(err, repository.ErrBookingNotFound) {
			c.Logger().Errorf("process payment %d: confirm: %v", bookingID, err)
		}
		return c.Redirect(http.StatusSeeOther, "/payment-error")
	}
	if err := tx.Commit(); err != nil {
		c.Logger().Errorf("process payment %d: commit: %v", bookingID, err)
		return c.Redirect(http.StatusSeeOther, "/payment-error")
	}
	committed = true

	if h.PublishConfirmed != nil {
		pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = h.PublishConfirmed(pubCtx, queue.BookingConfirmedEvent{
			BookingID:       det.ID,
			UserID:          det.UserID,
			PackageID:       det.PackageID,
			PackageName:     det.PackageName,
			DestinationName: det.DestinationName,
			Country:         det.Country,
			TravelDate:      det.TravelDate.Format("2006-01-02"),
			NumberOfPeople:  det.NumberOfPeople,
			TotalAmount:     det.TotalAmount,
			ConfirmedAt:     time.Now().UTC().Format(time.RFC3339),
		})
	}

	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/payment-success/%d", bookingID))
}

// PaymentSuccess serves the success page for a confirmed booking. Anything
// not confirmed and owned by the user lands on the error page instead.
func (h *PaymentHandler) PaymentSuccess(c echo.Context) error {
	ident, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "booking_id")
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/payment-error")
	}

	det, err := h.Bookings.GetForUserInStatus(c.Request().Context(), id, ident.UserID, model.BookingConfirmed)
	if err != nil {
		if !errors.Is(err, repository.ErrBookingNotFound) {
			c.Logger().Errorf("payment success %d: %v", id, err)
		}
		return c.Redirect(http.StatusSeeOther, "/payment-error")
	}
	return c.JSON(http.StatusOK, echo.Map{"page": "payment_success", "booking": det})
}

// PaymentError serves the generic payment failure page.
func (h *PaymentHandler) PaymentError(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"page":  "payment_error",
		"error": "payment could not be processed",
	})
}

// cardLastFour strips non-digits from a card number and returns the last
// four digits, or "" when fewer than four digits were entered. The full
// number never leaves this function.
func cardLastFour(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	s := digits.String()
	if len(s) < 4 {
		return ""
	}
	return s[len(s)-4:]
}
