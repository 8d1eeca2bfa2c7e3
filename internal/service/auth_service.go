package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "weighttrack/internal/errors"
	"weighttrack/internal/mail"
	"weighttrack/internal/model"
	"weighttrack/internal/repository"
)

const bcryptCost = 10

// RegisterInput carries the validated registration form fields.
type RegisterInput struct {
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
	Birthday  time.Time
	Gender    model.Gender
}

// AuthService handles account creation and credential verification.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*model.User, error)
	Login(ctx context.Context, username, password string) (*model.User, error)
}

type authService struct {
	users  repository.UserRepository
	mailer mail.Mailer
	log    *logrus.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, mailer mail.Mailer, log *logrus.Logger) AuthService {
	return &authService{users: users, mailer: mailer, log: log}
}

// Register creates a new user with a hashed password and sends the welcome
// email. Mail failures are logged and never block the registration.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	if _, err := s.users.FindByUsername(ctx, input.Username); err == nil {
		return nil, apperrors.ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     input.Username,
		PasswordHash: string(hashed),
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Birthday:     input.Birthday,
		Gender:       input.Gender,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.mailer.SendWelcome(user); err != nil {
		var composeErr *mail.ComposeError
		var deliveryErr *mail.DeliveryError
		entry := s.log.WithField("user", user.Username)
		switch {
		case errors.As(err, &composeErr):
			entry.WithError(err).Warn("welcome email not composed")
		case errors.As(err, &deliveryErr):
			entry.WithError(err).Warn("welcome email delivery failed")
		default:
			entry.WithError(err).Warn("welcome email failed")
		}
	}

	return user, nil
}

// Login verifies the credentials and returns the user on success.
func (s *authService) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}
