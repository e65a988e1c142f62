package router

import (
	"github.com/labstack/echo/v4"

	"github.com/roamio/tour-booking/internal/handler"
	"github.com/roamio/tour-booking/internal/middleware"
	"github.com/roamio/tour-booking/internal/session"
)

// RegisterUser registers every page that needs a logged-in traveller: the
// home page, the catalog, the booking and payment flows, booking history,
// vouchers and review submission.  RequireSession redirects guests to
// /login before any handler runs.
func RegisterUser(e *echo.Echo, secret string, sessions session.Store, cacheMW echo.MiddlewareFunc,
	cat *handler.CatalogHandler, book *handler.BookingHandler,
	pay *handler.PaymentHandler, rev *handler.ReviewHandler) {

	g := e.Group("", middleware.RequireSession(secret, sessions))

	g.GET("/", cat.Home)

	// Catalog pages.  The listings are identical for every logged-in
	// visitor, so they sit behind the response cache.
	g.GET("/tours", cat.ListTours, cacheMW)
	g.GET("/packages", cat.ListPackages, cacheMW)
	g.GET("/destination", cat.ListDestinations, cacheMW)
	g.GET("/package/:id", cat.GetPackage)

	// Booking flow: form, creation, confirmation, history, voucher.
	g.GET("/booking", book.BookingForm)
	g.POST("/book-package", book.CreateBooking)
	g.GET("/booking-confirmation/:id", book.Confirmation)
	g.GET("/my-bookings", book.MyBookings)
	g.GET("/bookings/:id/voucher", book.Voucher)

	// Payment flow: form, capture, success page.
	g.GET("/payment/:booking_id", pay.PaymentPage)
	g.POST("/process-payment", pay.ProcessPayment)
	g.GET("/payment-success/:booking_id", pay.PaymentSuccess)

	g.POST("/submit-review", rev.SubmitReview)
}
