package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// SessionCookie is the name of the admin session cookie.
const SessionCookie = "serenity_session"

// ErrInvalidCredentials is returned for a wrong email/password pair. The
// same error covers both fields so the response leaks nothing.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service authenticates the studio admin and issues HMAC-signed session
// tokens. There is a single admin identity, configured via environment.
type Service struct {
	email        string
	passwordHash string
	secret       []byte
	ttl          time.Duration
}

// NewService constructs an auth service. An empty secret disables login.
func NewService(email, passwordHash, secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Service{
		email:        strings.ToLower(strings.TrimSpace(email)),
		passwordHash: passwordHash,
		secret:       []byte(secret),
		ttl:          ttl,
	}
}

// Enabled reports whether admin login is configured.
func (s *Service) Enabled() bool {
	return len(s.secret) > 0 && s.email != "" && s.passwordHash != ""
}

// Authenticate verifies the admin credential pair.
func (s *Service) Authenticate(email, password string) error {
	if !s.Enabled() {
		return ErrInvalidCredentials
	}
	if strings.ToLower(strings.TrimSpace(email)) != s.email {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// IssueToken returns a signed session JWT for the admin.
func (s *Service) IssueToken(now time.Time) (string, time.Time, error) {
	expires := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   s.email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// TTL exposes the configured session duration.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// HashPassword produces a bcrypt hash for provisioning the admin account.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
