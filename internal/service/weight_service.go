package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "weighttrack/internal/errors"
	"weighttrack/internal/metrics"
	"weighttrack/internal/model"
	"weighttrack/internal/repository"
)

// EntryResult describes the outcome of a daily weight entry.
type EntryResult struct {
	Updated    bool   // an existing row for today was overwritten
	Comparison string // progress message against the first-ever sample
}

// MetricsSnapshot holds the derived metrics for the latest sample.
type MetricsSnapshot struct {
	WeightLbs int
	BMI       float64
	BMR       int
}

// WeightService records weight samples and derives metrics for a user. The
// user is always passed in explicitly; nothing here reads ambient session
// state.
type WeightService interface {
	CaptureInitial(ctx context.Context, user *model.User, feet, inches, weightLbs int, now time.Time) error
	RecordToday(ctx context.Context, user *model.User, weightLbs int, now time.Time) (*EntryResult, error)
	Snapshot(ctx context.Context, user *model.User, now time.Time) (*MetricsSnapshot, error)
	EstimateEER(ctx context.Context, user *model.User, activity metrics.Activity, now time.Time) (int, error)
}

type weightService struct {
	users   repository.UserRepository
	weights repository.WeightRepository
}

// NewWeightService creates a new weight service.
func NewWeightService(users repository.UserRepository, weights repository.WeightRepository) WeightService {
	return &weightService{users: users, weights: weights}
}

// CaptureInitial performs the one-time onboarding step: total height in
// inches onto the profile, a baseline sample for today, and the capture flag.
func (s *weightService) CaptureInitial(ctx context.Context, user *model.User, feet, inches, weightLbs int, now time.Time) error {
	heightIn := feet*12 + inches
	if err := s.users.SetInitialProfile(ctx, user.ID, heightIn); err != nil {
		return fmt.Errorf("set initial profile: %w", err)
	}

	sample := &model.WeightSample{
		UserID:    user.ID,
		WeightLbs: weightLbs,
		Date:      model.DayOf(now),
	}
	if err := s.weights.Upsert(ctx, sample); err != nil {
		return fmt.Errorf("record baseline weight: %w", err)
	}

	user.HeightIn = heightIn
	user.InitialHW = true
	return nil
}

// RecordToday writes the weight for the current calendar day, overwriting an
// existing entry, and reports progress against the first-ever sample.
func (s *weightService) RecordToday(ctx context.Context, user *model.User, weightLbs int, now time.Time) (*EntryResult, error) {
	day := model.DayOf(now)

	// Existence check is for messaging only; the unique index plus upsert
	// keeps the one-row-per-day invariant under concurrent entries.
	existing, err := s.weights.FindForUserOnDate(ctx, user.ID, day)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup today's sample: %w", err)
	}

	sample := &model.WeightSample{
		UserID:    user.ID,
		WeightLbs: weightLbs,
		Date:      day,
	}
	if err := s.weights.Upsert(ctx, sample); err != nil {
		return nil, fmt.Errorf("record weight: %w", err)
	}

	first, err := s.weights.FindFirstForUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("lookup first sample: %w", err)
	}

	return &EntryResult{
		Updated:    existing != nil,
		Comparison: compareWeight(first.WeightLbs, weightLbs),
	}, nil
}

// compareWeight phrases progress against the very first recorded weight.
func compareWeight(first, current int) string {
	switch {
	case current < first:
		return fmt.Sprintf("You have lost %d lbs so far!", first-current)
	case current > first:
		return fmt.Sprintf("You have gained %d lbs so far!", current-first)
	default:
		return "You weigh the same as when you first started!"
	}
}

// Snapshot computes BMI and BMR from the latest sample and the profile.
func (s *weightService) Snapshot(ctx context.Context, user *model.User, now time.Time) (*MetricsSnapshot, error) {
	latest, err := s.weights.FindLatestForUser(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNoWeightSamples
		}
		return nil, fmt.Errorf("lookup latest sample: %w", err)
	}

	bmi, err := metrics.BMI(latest.WeightLbs, user.HeightIn)
	if err != nil {
		return nil, err
	}
	age := metrics.Age(user.Birthday, now)
	bmr, err := metrics.BMR(user.Gender, latest.WeightLbs, user.HeightIn, age)
	if err != nil {
		return nil, err
	}

	return &MetricsSnapshot{WeightLbs: latest.WeightLbs, BMI: bmi, BMR: bmr}, nil
}

// EstimateEER applies the activity multiplier to the user's current BMR.
func (s *weightService) EstimateEER(ctx context.Context, user *model.User, activity metrics.Activity, now time.Time) (int, error) {
	snap, err := s.Snapshot(ctx, user, now)
	if err != nil {
		return 0, err
	}
	return metrics.EER(user.Gender, snap.BMR, activity)
}
