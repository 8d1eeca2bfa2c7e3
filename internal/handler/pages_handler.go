package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// PagesHandler serves the static informational pages.
type PagesHandler struct{}

// NewPagesHandler creates a new pages handler.
func NewPagesHandler() *PagesHandler {
	return &PagesHandler{}
}

func (h *PagesHandler) About(c echo.Context) error {
	return c.Render(http.StatusOK, "about.html", echo.Map{})
}

func (h *PagesHandler) Contact(c echo.Context) error {
	return c.Render(http.StatusOK, "contact.html", echo.Map{})
}
