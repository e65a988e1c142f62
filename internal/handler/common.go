package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/roamio/tour-booking/internal/middleware"
	"github.com/roamio/tour-booking/internal/session"
)

// currentUser pulls the authenticated identity out of the context.  Routes
// using these handlers sit behind RequireSession, so a missing identity is
// a wiring bug rather than a client error; callers still handle it.
func currentUser(c echo.Context) (session.Identity, bool) {
	return middleware.CurrentIdentity(c)
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
