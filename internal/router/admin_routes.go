package router

import (
	"github.com/labstack/echo/v4"

	"github.com/roamio/tour-booking/internal/handler"
	"github.com/roamio/tour-booking/internal/middleware"
	"github.com/roamio/tour-booking/internal/model"
	"github.com/roamio/tour-booking/internal/session"
)

// RegisterAdmin registers the back-office listings under /admin.  The
// group first resolves the session, then rejects anyone without the admin
// role with 403.
func RegisterAdmin(e *echo.Echo, secret string, sessions session.Store, adm *handler.AdminHandler) {
	g := e.Group("/admin",
		middleware.RequireSession(secret, sessions),
		middleware.RequireRole(model.RoleAdmin),
	)
	g.GET("/dashboard", adm.Dashboard)
	g.GET("/packages", adm.Packages)
}
