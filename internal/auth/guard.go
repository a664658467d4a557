package auth

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	apperrors "londonhealth/internal/errors"
	"londonhealth/internal/model"
	"londonhealth/internal/session"
)

// Requirement is the role predicate a route demands.
type Requirement int

const (
	// Authenticated accepts any logged-in user.
	Authenticated Requirement = iota
	// AdminOnly accepts only admins.
	AdminOnly
	// DoctorOnly accepts only doctors.
	DoctorOnly
	// AdminOrDoctor accepts either role.
	AdminOrDoctor
)

// Check verifies that the current session satisfies the requirement. It is a
// pure function: callers are responsible for acting on the result.
func Check(req Requirement, sess *session.Session) error {
	if sess == nil {
		return apperrors.ErrNotAuthenticated
	}
	switch req {
	case Authenticated:
		return nil
	case AdminOnly:
		if sess.Role == model.RoleAdmin {
			return nil
		}
	case DoctorOnly:
		if sess.Role == model.RoleDoctor {
			return nil
		}
	case AdminOrDoctor:
		if sess.Role == model.RoleAdmin || sess.Role == model.RoleDoctor {
			return nil
		}
	}
	return apperrors.ErrPermissionDenied
}

// Guard wraps handlers with session checks backed by a session manager so
// denials can invalidate state.
type Guard struct {
	sessions *session.Manager
	logger   zerolog.Logger
}

// NewGuard creates a guard bound to a session manager.
func NewGuard(sessions *session.Manager, logger zerolog.Logger) *Guard {
	return &Guard{sessions: sessions, logger: logger}
}

// Require returns middleware enforcing the requirement. A missing session
// yields 401. A role failure clears the session and its cookie before
// yielding 403, so a stale role claim cannot be retried.
func (g *Guard) Require(req Requirement) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := session.FromContext(c)
			err := Check(req, sess)
			if err == nil {
				return next(c)
			}

			if sess != nil {
				// Defensive invalidation on insufficient role.
				if cookie, cerr := c.Cookie(session.CookieName); cerr == nil && cookie.Value != "" {
					if derr := g.sessions.End(c.Request().Context(), cookie.Value); derr != nil {
						g.logger.Error().Err(derr).Msg("end session after denial")
					}
				}
				session.ClearCookie(c)
				g.logger.Warn().
					Uint("user_id", sess.UserID).
					Str("role", sess.Role).
					Str("path", c.Request().URL.Path).
					Msg("permission denied, session cleared")
			}

			httpErr := apperrors.MapErrorToHTTP(err)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
	}
}
