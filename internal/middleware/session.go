package middleware // middleware provides shared request processing for handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/roamio/tour-booking/internal/session"
	"github.com/roamio/tour-booking/internal/utils"
)

// CookieName is the session cookie set at login.  Its value is a signed
// token carrying the server-side session ID.
const CookieName = "session_id"

const identityKey = "identity"

// RequireSession returns an Echo middleware that resolves the session
// cookie into an authenticated identity and stores it in the request
// context.  Requests without a valid, live session are redirected to the
// login page.  The secret must match the one used when issuing cookies.
func RequireSession(secret string, store session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusFound, "/login")
			}
			// Verify the cookie signature before touching the store; a
			// forged or expired token never produces a store lookup.
			sid, err := utils.ParseSessionToken(secret, cookie.Value)
			if err != nil {
				return c.Redirect(http.StatusFound, "/login")
			}
			ident, err := store.Get(c.Request().Context(), sid)
			if err != nil {
				// Both a dead session and a store failure end at the login
				// page; the distinction is not actionable for the client.
				return c.Redirect(http.StatusFound, "/login")
			}
			c.Set(identityKey, ident)
			c.Set("session_id", sid)
			return next(c)
		}
	}
}

// CurrentIdentity extracts the identity placed in the context by
// RequireSession.
func CurrentIdentity(c echo.Context) (session.Identity, bool) {
	ident, ok := c.Get(identityKey).(session.Identity)
	return ident, ok
}

// CurrentSessionID returns the session ID placed in the context by
// RequireSession.
func CurrentSessionID(c echo.Context) string {
	sid, _ := c.Get("session_id").(string)
	return sid
}
