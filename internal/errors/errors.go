package errors

import "errors"

var (
	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUsernameTaken is returned when registering an already used username.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrEmailTaken is returned when registering an already used email.
	ErrEmailTaken = errors.New("email already exists")
	// ErrNoWeightSamples is returned when a metric needs at least one sample.
	ErrNoWeightSamples = errors.New("no weight samples recorded")
	// ErrInvalidHeight is returned when a metric needs a positive height.
	ErrInvalidHeight = errors.New("height must be positive")
	// ErrUnknownActivity is returned for an unrecognized activity level.
	ErrUnknownActivity = errors.New("unknown activity level")
	// ErrInvalidWindow is returned for an unrecognized chart window.
	ErrInvalidWindow = errors.New("invalid chart window")
)
