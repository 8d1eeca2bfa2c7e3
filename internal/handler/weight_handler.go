package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "weighttrack/internal/errors"
	"weighttrack/internal/service"
)

// WeightHandler serves the home page and the initial height/weight capture.
type WeightHandler struct {
	weightService service.WeightService
}

// NewWeightHandler creates a new weight handler.
func NewWeightHandler(weightService service.WeightService) *WeightHandler {
	return &WeightHandler{weightService: weightService}
}

// WeightForm mirrors the daily weight entry field.
type WeightForm struct {
	Weight int `form:"weight" validate:"required,min=40,max=800"`
}

// HWForm mirrors the initial capture fields. Inches may legitimately be zero.
type HWForm struct {
	Feet   int `form:"foot" validate:"required,min=2,max=7"`
	Inches int `form:"inches" validate:"min=0,max=11"`
	Weight int `form:"weight" validate:"required,min=40,max=800"`
}

// Home renders the daily entry page and, on POST, records today's weight.
// Users who have not completed the initial capture are sent there first.
func (h *WeightHandler) Home(c echo.Context) error {
	user := CurrentUser(c)
	if !user.InitialHW {
		return c.Redirect(http.StatusFound, "/hw")
	}

	data := echo.Map{"User": user}

	if c.Request().Method == http.MethodPost {
		var form WeightForm
		if err := c.Bind(&form); err != nil {
			data["Error"] = "invalid form submission"
		} else if err := c.Validate(&form); err != nil {
			data["Error"] = "weight must be between 40 and 800 lbs"
		} else {
			result, err := h.weightService.RecordToday(c.Request().Context(), user, form.Weight, time.Now())
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "failed to record weight")
			}
			if result.Updated {
				data["Message"] = "Weight has been updated for today"
			} else {
				data["Message"] = "Weight has been recorded"
			}
			data["Comparison"] = result.Comparison
		}
	}

	snap, err := h.weightService.Snapshot(c.Request().Context(), user, time.Now())
	switch {
	case err == nil:
		data["Metrics"] = snap
	case errors.Is(err, apperrors.ErrNoWeightSamples), errors.Is(err, apperrors.ErrInvalidHeight):
		// metrics block omitted until a sample and height exist
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to compute metrics")
	}

	return c.Render(http.StatusOK, "index.html", data)
}

// InitialCapture renders and processes the one-time onboarding step.
func (h *WeightHandler) InitialCapture(c echo.Context) error {
	if c.Request().Method != http.MethodPost {
		return c.Render(http.StatusOK, "hw.html", echo.Map{})
	}

	var form HWForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusBadRequest, "hw.html", echo.Map{"Error": "invalid form submission"})
	}
	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusOK, "hw.html", echo.Map{"Error": "please enter a valid height and weight"})
	}

	user := CurrentUser(c)
	if err := h.weightService.CaptureInitial(c.Request().Context(), user, form.Feet, form.Inches, form.Weight, time.Now()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save height and weight")
	}
	return c.Redirect(http.StatusFound, "/")
}
