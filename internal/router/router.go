package router // package router defines how HTTP routes are registered for the app

import (
	"github.com/labstack/echo/v4"

	"github.com/roamio/tour-booking/internal/handler"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Used by load balancers or monitoring systems to verify that the
	// service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the registration and login pages and their form
// submissions.  None of these routes carry the session middleware: a user
// arrives here precisely because they have no session yet.  Logout is also
// registered here since it must work for half-expired sessions.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	e.GET("/register", a.RegisterForm)
	e.POST("/register", a.Register)
	e.GET("/login", a.LoginForm)
	e.POST("/login", a.Login)
	e.GET("/logout", a.Logout)
}

// RegisterPublic registers the pages that stay reachable without a session:
// the review feed and the payment error page (a traveller whose session
// expired mid-payment still needs somewhere to land).
func RegisterPublic(e *echo.Echo, rev *handler.ReviewHandler, pay *handler.PaymentHandler) {
	e.GET("/reviews", rev.ListReviews)
	e.GET("/payment-error", pay.PaymentError)
}
