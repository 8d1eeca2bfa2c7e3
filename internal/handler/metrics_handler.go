package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "weighttrack/internal/errors"
	"weighttrack/internal/metrics"
	"weighttrack/internal/service"
)

// MetricsHandler serves the EER calculator page.
type MetricsHandler struct {
	weightService service.WeightService
}

// NewMetricsHandler creates a new metrics handler.
func NewMetricsHandler(weightService service.WeightService) *MetricsHandler {
	return &MetricsHandler{weightService: weightService}
}

// EER renders the estimated energy requirement for the selected activity
// level. A missing or unknown selection re-renders the prompt.
func (h *MetricsHandler) EER(c echo.Context) error {
	activity := metrics.Activity(c.FormValue("active"))
	if activity == "" {
		return c.Render(http.StatusOK, "eer.html", echo.Map{"Prompt": true})
	}

	user := CurrentUser(c)
	eer, err := h.weightService.EstimateEER(c.Request().Context(), user, activity, time.Now())
	if err != nil {
		switch err {
		case apperrors.ErrUnknownActivity:
			return c.Render(http.StatusOK, "eer.html", echo.Map{"Prompt": true})
		case apperrors.ErrNoWeightSamples, apperrors.ErrInvalidHeight:
			return c.Render(http.StatusOK, "eer.html", echo.Map{"Error": "record your height and weight first"})
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to compute EER")
		}
	}

	return c.Render(http.StatusOK, "eer.html", echo.Map{"EER": eer, "Activity": string(activity)})
}
