package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "weighttrack/internal/errors"
	"weighttrack/internal/model"
	"weighttrack/internal/service"
	"weighttrack/internal/session"
)

// AuthHandler serves the login, registration and logout pages.
type AuthHandler struct {
	authService service.AuthService
	sessions    *session.Manager
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions}
}

// LoginForm mirrors the login page fields.
type LoginForm struct {
	Username string `form:"username" validate:"required,min=4,max=15"`
	Password string `form:"password" validate:"required,min=6,max=20"`
	Remember bool   `form:"remember"`
}

// RegisterForm mirrors the registration page fields.
type RegisterForm struct {
	Email     string `form:"email" validate:"required,email,max=30"`
	Username  string `form:"username" validate:"required,min=4,max=15"`
	Password  string `form:"password" validate:"required,min=6,max=20"`
	Password2 string `form:"password2" validate:"required,eqfield=Password"`
	FirstName string `form:"first_name" validate:"required,max=25"`
	LastName  string `form:"last_name" validate:"required,max=25"`
	Birthday  string `form:"birthday" validate:"required,datetime=2006-01-02"`
	Gender    string `form:"gender" validate:"required,oneof=male female"`
}

// LoginPage renders the login form.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", echo.Map{})
}

// Login verifies credentials and establishes a session. A fresh account that
// has not captured its baseline height/weight lands on the capture page.
func (h *AuthHandler) Login(c echo.Context) error {
	var form LoginForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusBadRequest, "login.html", echo.Map{"Error": "invalid form submission"})
	}
	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusOK, "login.html", echo.Map{"Error": apperrors.ErrInvalidCredentials.Error()})
	}

	user, err := h.authService.Login(c.Request().Context(), form.Username, form.Password)
	if err != nil {
		return c.Render(http.StatusOK, "login.html", echo.Map{"Error": apperrors.ErrInvalidCredentials.Error()})
	}

	cookie, err := h.sessions.Issue(user, form.Remember)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to establish session")
	}
	c.SetCookie(cookie)

	if !user.InitialHW {
		return c.Redirect(http.StatusFound, "/hw")
	}
	return c.Redirect(http.StatusFound, "/")
}

// RegisterPage renders the registration form.
func (h *AuthHandler) RegisterPage(c echo.Context) error {
	return c.Render(http.StatusOK, "register.html", echo.Map{})
}

// Register creates the account, sends the welcome email and logs the new
// user straight in. Duplicate username or email re-renders the form with an
// inline error and leaves the existing account untouched.
func (h *AuthHandler) Register(c echo.Context) error {
	var form RegisterForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusBadRequest, "register.html", echo.Map{"Error": "invalid form submission"})
	}
	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusOK, "register.html", echo.Map{"Error": err.Error(), "Form": form})
	}

	birthday, err := time.Parse("2006-01-02", form.Birthday)
	if err != nil {
		return c.Render(http.StatusOK, "register.html", echo.Map{"Error": "invalid birthday", "Form": form})
	}

	user, err := h.authService.Register(c.Request().Context(), service.RegisterInput{
		Username:  form.Username,
		Password:  form.Password,
		Email:     form.Email,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Birthday:  birthday,
		Gender:    model.Gender(form.Gender),
	})
	if err != nil {
		switch err {
		case apperrors.ErrUsernameTaken, apperrors.ErrEmailTaken:
			return c.Render(http.StatusConflict, "register.html", echo.Map{"Error": err.Error(), "Form": form})
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to register")
		}
	}

	cookie, err := h.sessions.Issue(user, false)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to establish session")
	}
	c.SetCookie(cookie)

	return c.Redirect(http.StatusFound, "/hw")
}

// Logout revokes the session and clears the cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(session.CookieName); err == nil {
		_ = h.sessions.Revoke(c.Request().Context(), cookie.Value)
	}
	c.SetCookie(session.ClearCookie())
	return c.Redirect(http.StatusFound, "/login")
}
