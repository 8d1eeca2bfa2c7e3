package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	apperrors "weighttrack/internal/errors"
	"weighttrack/internal/model"
	"weighttrack/internal/repository"
)

// WindowAllTime is the selector value meaning the full history.
const WindowAllTime = "13"

// Axis scaling sentinels, overwritten by the first sample in the window.
const (
	minWeightSentinel = 1000
	maxWeightSentinel = 0
)

// ChartData is the plot-ready series for a requested time window: parallel
// day/weight sequences in ascending date order plus axis bounds.
type ChartData struct {
	Window  string
	Days    []string
	Weights []int
	Min     int
	Max     int
}

// ChartService produces weight time-series for client-side plotting.
type ChartService interface {
	Series(ctx context.Context, user *model.User, window string, now time.Time) (*ChartData, error)
}

type chartService struct {
	weights repository.WeightRepository
}

// NewChartService creates a new chart service.
func NewChartService(weights repository.WeightRepository) ChartService {
	return &chartService{weights: weights}
}

// Series returns the samples inside the window, ascending by date. Window is
// a month count of "3", "6", "9" or "12", or WindowAllTime for everything.
func (s *chartService) Series(ctx context.Context, user *model.User, window string, now time.Time) (*ChartData, error) {
	var (
		samples []model.WeightSample
		err     error
	)
	switch window {
	case WindowAllTime:
		samples, err = s.weights.ListAllForUser(ctx, user.ID)
	case "3", "6", "9", "12":
		months, _ := strconv.Atoi(window)
		since := now.AddDate(0, 0, -30*months)
		samples, err = s.weights.ListForUserSince(ctx, user.ID, since)
	default:
		return nil, apperrors.ErrInvalidWindow
	}
	if err != nil {
		return nil, fmt.Errorf("list samples: %w", err)
	}

	data := &ChartData{
		Window:  window,
		Days:    make([]string, 0, len(samples)),
		Weights: make([]int, 0, len(samples)),
		Min:     minWeightSentinel,
		Max:     maxWeightSentinel,
	}
	for _, sample := range samples {
		data.Days = append(data.Days, sample.Date.Format("2006-01-02"))
		data.Weights = append(data.Weights, sample.WeightLbs)
		if sample.WeightLbs < data.Min {
			data.Min = sample.WeightLbs
		}
		if sample.WeightLbs > data.Max {
			data.Max = sample.WeightLbs
		}
	}
	return data, nil
}
