package session

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "londonhealth/internal/errors"
)

// CookieName carries the opaque session id across requests.
const CookieName = "lh_session"

const contextKey = "session"

// Middleware resolves the session cookie into a *Session stored on the echo
// context. Requests without a valid session proceed unauthenticated; guard
// middleware decides whether that is acceptable.
func Middleware(m *Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}
			sess, err := m.Current(c.Request().Context(), cookie.Value)
			if err != nil {
				httpErr := apperrors.MapErrorToHTTP(err)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			if sess != nil {
				c.Set(contextKey, sess)
			}
			return next(c)
		}
	}
}

// FromContext returns the authenticated session, or nil.
func FromContext(c echo.Context) *Session {
	sess, _ := c.Get(contextKey).(*Session)
	return sess
}

// SetCookie marks the session durable across the browser session by giving
// the cookie an explicit MaxAge matching the server-side TTL.
func SetCookie(c echo.Context, sid string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    sid,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie immediately.
func ClearCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
