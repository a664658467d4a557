package router

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"londonhealth/internal/auth"
	"londonhealth/internal/handler"
	"londonhealth/internal/session"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	logger zerolog.Logger,
	sessions *session.Manager,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	patientHandler *handler.PatientHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api", session.Middleware(sessions))
	guard := auth.NewGuard(sessions, logger)

	// Public routes
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)

	// Any authenticated user
	api.GET("/me", authHandler.Me, guard.Require(auth.Authenticated))

	// User management is admin-only; registration is an admin action.
	users := api.Group("/users", guard.Require(auth.AdminOnly))
	users.POST("", userHandler.Register)
	users.GET("", userHandler.ListUsers)
	users.GET("/:id", userHandler.GetUser)
	users.PUT("/:id", userHandler.UpdateUser)
	users.PUT("/:id/password", userHandler.UpdatePassword)
	users.DELETE("/:id", userHandler.DeleteUser)

	// Patient reads and updates are shared between roles; create and
	// delete stay admin-only.
	patients := api.Group("/patients")
	patients.POST("", patientHandler.CreatePatient, guard.Require(auth.AdminOnly))
	patients.GET("", patientHandler.ListPatients, guard.Require(auth.AdminOrDoctor))
	patients.GET("/records/:oid", patientHandler.GetPatientRecord, guard.Require(auth.AdminOrDoctor))
	patients.GET("/:id", patientHandler.GetPatient, guard.Require(auth.AdminOrDoctor))
	patients.PUT("/:id", patientHandler.UpdatePatient, guard.Require(auth.AdminOrDoctor))
	patients.DELETE("/:id", patientHandler.DeletePatient, guard.Require(auth.AdminOnly))
}

// requestLogger emits one structured line per request.
func requestLogger(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			rid := c.Response().Header().Get(echo.HeaderXRequestID)

			err := next(c)

			evt := logger.Info()
			if err != nil {
				evt = logger.Error().Err(err)
			}
			evt.
				Str("request_id", rid).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", c.Response().Status).
				Dur("latency", time.Since(start)).
				Str("remote_ip", c.RealIP()).
				Msg("request")

			return err
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
