package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	autolisterrors "github.com/autolist/autolist/internal/errors"
)

// Claims are the token claims autolist reads and issues.
type Claims struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Session is a signed-in user.
type Session struct {
	Token     string
	UserID    string
	Name      string
	Email     string
	ExpiresAt time.Time
}

// Expired reports whether the session has expired at now. A session without
// an expiry never expires.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// DisplayName returns the name, falling back to the email.
func (s *Session) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Email
}

// ParseToken reads a token issued by the API without verifying its
// signature, which only the server can do. Expired tokens are rejected.
func ParseToken(token string, now time.Time) (*Session, error) {
	var claims Claims
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return nil, &autolisterrors.AppError{
			Kind:    autolisterrors.ErrAuth,
			Message: "malformed session token",
			Cause:   err,
		}
	}

	s := newSession(token, &claims)
	if s.Expired(now) {
		return nil, autolisterrors.SessionExpired(s.ExpiresAt)
	}
	return s, nil
}

func newSession(token string, claims *Claims) *Session {
	s := &Session{
		Token:  token,
		UserID: claims.Subject,
		Name:   claims.Name,
		Email:  claims.Email,
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s
}

// Issue signs an HS512 token for the user, valid for ttl.
func Issue(secret []byte, userID, name, email string, ttl time.Duration, now time.Time) (string, error) {
	claims := Claims{
		Name:  name,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    "autolist",
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of an HS512 token.
func Verify(token string, secret []byte) (*Session, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS512.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) && claims.ExpiresAt != nil {
			return nil, autolisterrors.SessionExpired(claims.ExpiresAt.Time)
		}
		return nil, &autolisterrors.AppError{
			Kind:    autolisterrors.ErrAuth,
			Message: "invalid session token",
			Cause:   err,
		}
	}
	if !parsed.Valid {
		return nil, &autolisterrors.AppError{Kind: autolisterrors.ErrAuth, Message: "invalid session token"}
	}
	return newSession(token, &claims), nil
}
