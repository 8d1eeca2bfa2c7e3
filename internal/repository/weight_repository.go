package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"weighttrack/internal/model"
)

// WeightRepository defines weight-sample persistence operations.
type WeightRepository interface {
	// Upsert writes the sample, overwriting the weight of an existing row
	// for the same (user, day) instead of inserting a duplicate.
	Upsert(ctx context.Context, sample *model.WeightSample) error
	FindForUserOnDate(ctx context.Context, userID uuid.UUID, day time.Time) (*model.WeightSample, error)
	FindLatestForUser(ctx context.Context, userID uuid.UUID) (*model.WeightSample, error)
	FindFirstForUser(ctx context.Context, userID uuid.UUID) (*model.WeightSample, error)
	ListForUserSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]model.WeightSample, error)
	ListAllForUser(ctx context.Context, userID uuid.UUID) ([]model.WeightSample, error)
}

type weightRepository struct {
	db *gorm.DB
}

// NewWeightRepository builds a GORM-backed repository.
func NewWeightRepository(db *gorm.DB) WeightRepository {
	return &weightRepository{db: db}
}

func (r *weightRepository) Upsert(ctx context.Context, sample *model.WeightSample) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"weight_lbs", "updated_at"}),
	}).Create(sample).Error
}

func (r *weightRepository) FindForUserOnDate(ctx context.Context, userID uuid.UUID, day time.Time) (*model.WeightSample, error) {
	var sample model.WeightSample
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, day).
		First(&sample).Error; err != nil {
		return nil, err
	}
	return &sample, nil
}

func (r *weightRepository) FindLatestForUser(ctx context.Context, userID uuid.UUID) (*model.WeightSample, error) {
	var sample model.WeightSample
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		First(&sample).Error; err != nil {
		return nil, err
	}
	return &sample, nil
}

func (r *weightRepository) FindFirstForUser(ctx context.Context, userID uuid.UUID) (*model.WeightSample, error) {
	var sample model.WeightSample
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date ASC").
		First(&sample).Error; err != nil {
		return nil, err
	}
	return &sample, nil
}

func (r *weightRepository) ListForUserSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]model.WeightSample, error) {
	var samples []model.WeightSample
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date > ?", userID, since).
		Order("date ASC").
		Find(&samples).Error; err != nil {
		return nil, err
	}
	return samples, nil
}

func (r *weightRepository) ListAllForUser(ctx context.Context, userID uuid.UUID) ([]model.WeightSample, error) {
	var samples []model.WeightSample
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date ASC").
		Find(&samples).Error; err != nil {
		return nil, err
	}
	return samples, nil
}
