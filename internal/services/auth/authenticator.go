package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/louisbranch/toolatlas/internal/platform/errors"
)

const (
	// DefaultTTL is the admin session lifetime.
	DefaultTTL = 12 * time.Hour
	issuer     = "toolatlas"
	minSecret  = 32
)

// ErrNotConfigured is returned when no admin credentials are configured.
var ErrNotConfigured = errors.New("admin authentication is not configured")

// Authenticator verifies admin credentials and session tokens.
type Authenticator struct {
	Email        string
	PasswordHash string
	Secret       []byte
	TTL          time.Duration
	Now          func() time.Time
}

// Claims are the validated contents of a session token.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// New validates configuration and returns an Authenticator.
func New(email, passwordHash, secret string) (*Authenticator, error) {
	email = strings.TrimSpace(email)
	passwordHash = strings.TrimSpace(passwordHash)
	if email == "" || passwordHash == "" {
		return nil, ErrNotConfigured
	}
	if len(secret) < minSecret {
		return nil, fmt.Errorf("session secret must be at least %d bytes", minSecret)
	}
	if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return nil, fmt.Errorf("admin password hash: %w", err)
	}
	return &Authenticator{
		Email:        email,
		PasswordHash: passwordHash,
		Secret:       []byte(secret),
		TTL:          DefaultTTL,
		Now:          time.Now,
	}, nil
}

// HashPassword returns a bcrypt hash suitable for the admin password setting.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Login checks credentials and returns a signed session token.
func (a *Authenticator) Login(email, password string) (string, error) {
	if a == nil {
		return "", ErrNotConfigured
	}
	emailMatches := subtle.ConstantTimeCompare(
		[]byte(strings.ToLower(strings.TrimSpace(email))),
		[]byte(strings.ToLower(a.Email)),
	) == 1
	passwordErr := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password))
	if !emailMatches || passwordErr != nil {
		return "", apperrors.New(apperrors.CodeAuthInvalidCredentials, "invalid admin credentials")
	}

	now := a.now()
	ttl := a.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   a.Email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.Secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}

// Verify parses token, enforcing HS256, issuer, subject and expiry.
func (a *Authenticator) Verify(token string) (Claims, error) {
	if a == nil {
		return Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return Claims{}, apperrors.New(apperrors.CodeAuthSessionInvalid, "session token is required")
	}

	var parsed jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return a.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return Claims{}, apperrors.Wrap(apperrors.CodeAuthSessionInvalid, "session token is invalid", err)
	}
	if parsed.Issuer != issuer || parsed.Subject != a.Email {
		return Claims{}, apperrors.New(apperrors.CodeAuthSessionInvalid, "session token subject mismatch")
	}
	if parsed.ExpiresAt == nil || parsed.IssuedAt == nil {
		return Claims{}, apperrors.New(apperrors.CodeAuthSessionInvalid, "session token is missing timestamps")
	}
	if !parsed.ExpiresAt.Time.After(a.now()) {
		return Claims{}, apperrors.New(apperrors.CodeAuthSessionExpired, "session token is expired")
	}
	return Claims{
		Subject:   parsed.Subject,
		IssuedAt:  parsed.IssuedAt.Time.UTC(),
		ExpiresAt: parsed.ExpiresAt.Time.UTC(),
	}, nil
}

func (a *Authenticator) now() time.Time {
	if a.Now == nil {
		return time.Now().UTC()
	}
	return a.Now().UTC()
}
