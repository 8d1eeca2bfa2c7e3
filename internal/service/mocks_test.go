package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"weighttrack/internal/model"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) SetInitialProfile(ctx context.Context, id uuid.UUID, heightIn int) error {
	args := m.Called(ctx, id, heightIn)
	return args.Error(0)
}

// MockWeightRepository is a mock implementation of repository.WeightRepository.
type MockWeightRepository struct {
	mock.Mock
}

func (m *MockWeightRepository) Upsert(ctx context.Context, sample *model.WeightSample) error {
	args := m.Called(ctx, sample)
	return args.Error(0)
}

func (m *MockWeightRepository) FindForUserOnDate(ctx context.Context, userID uuid.UUID, day time.Time) (*model.WeightSample, error) {
	args := m.Called(ctx, userID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WeightSample), args.Error(1)
}

func (m *MockWeightRepository) FindLatestForUser(ctx context.Context, userID uuid.UUID) (*model.WeightSample, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WeightSample), args.Error(1)
}

func (m *MockWeightRepository) FindFirstForUser(ctx context.Context, userID uuid.UUID) (*model.WeightSample, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WeightSample), args.Error(1)
}

func (m *MockWeightRepository) ListForUserSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]model.WeightSample, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WeightSample), args.Error(1)
}

func (m *MockWeightRepository) ListAllForUser(ctx context.Context, userID uuid.UUID) ([]model.WeightSample, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WeightSample), args.Error(1)
}

// MockMailer is a mock implementation of mail.Mailer.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendWelcome(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}
