package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"weighttrack/internal/handler"
	"weighttrack/internal/repository"
	"weighttrack/internal/session"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	sessions *session.Manager,
	users repository.UserRepository,
	authHandler *handler.AuthHandler,
	weightHandler *handler.WeightHandler,
	metricsHandler *handler.MetricsHandler,
	chartHandler *handler.ChartHandler,
	pagesHandler *handler.PagesHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	// Public routes
	e.GET("/login", authHandler.LoginPage)
	e.POST("/login", authHandler.Login)
	e.GET("/register", authHandler.RegisterPage)
	e.POST("/register", authHandler.Register)
	e.GET("/about", pagesHandler.About)
	e.GET("/contact", pagesHandler.Contact)

	// Protected pages: session cookie verified by the JWT middleware, then
	// the user row is loaded and stored on the context. Any failure redirects
	// to the login page instead of answering 401.
	secured := e.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  sessions.Secret(),
		TokenLookup: "cookie:" + session.CookieName,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(session.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return redirectToLogin(c)
		},
	}), loadCurrentUser(sessions, users))

	secured.GET("/", weightHandler.Home)
	secured.POST("/", weightHandler.Home)
	secured.GET("/hw", weightHandler.InitialCapture)
	secured.POST("/hw", weightHandler.InitialCapture)
	secured.GET("/eer", metricsHandler.EER)
	secured.POST("/eer", metricsHandler.EER)
	secured.GET("/chart", chartHandler.Chart)
	secured.POST("/chart", chartHandler.Chart)
	secured.GET("/logout", authHandler.Logout)
}

// loadCurrentUser rejects revoked sessions and attaches the user record to
// the request context for the page handlers.
func loadCurrentUser(sessions *session.Manager, users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return redirectToLogin(c)
			}
			claims, ok := token.Claims.(*session.Claims)
			if !ok {
				return redirectToLogin(c)
			}
			if sessions.Revoked(c.Request().Context(), claims) {
				return redirectToLogin(c)
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return redirectToLogin(c)
			}
			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				return redirectToLogin(c)
			}

			handler.SetCurrentUser(c, user)
			return next(c)
		}
	}
}

func redirectToLogin(c echo.Context) error {
	c.SetCookie(session.ClearCookie())
	return c.Redirect(http.StatusFound, "/login")
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
