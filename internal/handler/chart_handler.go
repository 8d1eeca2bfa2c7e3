package handler

import (
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "weighttrack/internal/errors"
	"weighttrack/internal/service"
)

// ChartHandler serves the weight history chart page.
type ChartHandler struct {
	chartService service.ChartService
}

// NewChartHandler creates a new chart handler.
func NewChartHandler(chartService service.ChartService) *ChartHandler {
	return &ChartHandler{chartService: chartService}
}

// Chart renders the weight series for the requested window. The series is
// embedded in the page as JSON for the client-side plot.
func (h *ChartHandler) Chart(c echo.Context) error {
	window := c.FormValue("time")
	if window == "" {
		window = service.WindowAllTime
	}

	user := CurrentUser(c)
	data, err := h.chartService.Series(c.Request().Context(), user, window, time.Now())
	if err != nil {
		if err == apperrors.ErrInvalidWindow {
			return c.Render(http.StatusBadRequest, "chart.html", echo.Map{
				"Error":   "please select a valid time range",
				"Window":  service.WindowAllTime,
				"Days":    template.JS("[]"),
				"Weights": template.JS("[]"),
				"Min":     0,
				"Max":     0,
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load chart data")
	}

	days, err := json.Marshal(data.Days)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to encode chart data")
	}
	weights, err := json.Marshal(data.Weights)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to encode chart data")
	}

	return c.Render(http.StatusOK, "chart.html", echo.Map{
		"Window":  data.Window,
		"Days":    template.JS(days),
		"Weights": template.JS(weights),
		"Min":     data.Min,
		"Max":     data.Max,
	})
}
