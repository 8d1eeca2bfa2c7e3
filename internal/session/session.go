// Package session implements cookie-based login sessions. The cookie carries
// a short signed JWT; logout places the token's jti on a redis revocation
// list until the token would have expired, so sessions end server-side while
// a redis outage degrades to trusting the signed cookie alone.
package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"weighttrack/internal/model"
)

const (
	// CookieName is the session cookie set on login and cleared on logout.
	CookieName = "wt_session"

	// RememberTTL is the session lifetime when "remember me" is checked.
	RememberTTL = 30 * 24 * time.Hour
	// DefaultTTL bounds a plain browser-session login.
	DefaultTTL = 24 * time.Hour
)

// Claims represents the JWT claims inside the session cookie.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Manager mints and validates session tokens.
type Manager struct {
	secret []byte
	store  *Store
}

// NewManager creates a session manager signing with the given secret.
func NewManager(secret string, store *Store) *Manager {
	return &Manager{secret: []byte(secret), store: store}
}

// Secret exposes the signing key for middleware configuration.
func (m *Manager) Secret() []byte {
	return m.secret
}

// Revoked reports whether the session behind the claims has been logged out.
func (m *Manager) Revoked(ctx context.Context, claims *Claims) bool {
	return m.store.Revoked(ctx, claims.ID)
}

// Issue creates a session cookie for the user. The cookie is persistent when
// remember is set, otherwise it lasts for the browser session only.
func (m *Manager) Issue(user *model.User, remember bool) (*http.Cookie, error) {
	ttl := DefaultTTL
	if remember {
		ttl = RememberTTL
	}

	now := time.Now()
	claims := &Claims{
		UserID:   user.ID.String(),
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return nil, err
	}

	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if remember {
		cookie.MaxAge = int(ttl.Seconds())
	}
	return cookie, nil
}

// Validate parses and verifies a session token.
func (m *Manager) Validate(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}

// Revoke ends the session behind the token, ignoring parse failures so a
// mangled cookie still logs out cleanly.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	claims, err := m.Validate(token)
	if err != nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return m.store.Revoke(ctx, claims.ID, ttl)
}

// ClearCookie returns an expired session cookie.
func ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
