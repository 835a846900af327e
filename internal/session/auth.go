package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	autolisterrors "github.com/autolist/autolist/internal/errors"
)

// Credentials are what the login modal collects.
type Credentials struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

var validate = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("binding")
	v.RegisterTagNameFunc(func(sf reflect.StructField) string {
		name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		return name
	})
	return v
}()

// Validate checks the credentials are filled in before a request is made.
func (c Credentials) Validate() map[string]string {
	c.Email = strings.TrimSpace(c.Email)
	err := validate.Struct(c)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	errs := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		switch {
		case fe.Tag() == "required":
			errs[fe.Field()] = strings.ToUpper(fe.Field()[:1]) + fe.Field()[1:] + " is required"
		case fe.Tag() == "email":
			errs[fe.Field()] = "Enter a valid email"
		}
	}
	return errs
}

// Authenticator exchanges credentials for a session.
type Authenticator interface {
	Login(ctx context.Context, creds Credentials) (*Session, error)
}

// LoginResponse is the body returned by the login endpoint.
type LoginResponse struct {
	Token string `json:"token"`
}

// HTTPAuthenticator posts credentials to URL/login.
type HTTPAuthenticator struct {
	URL        string
	HTTPClient *http.Client
	now        func() time.Time
}

// NewHTTPAuthenticator creates an authenticator for the auth API at url.
func NewHTTPAuthenticator(url string, timeout time.Duration) *HTTPAuthenticator {
	return &HTTPAuthenticator{
		URL:        strings.TrimRight(url, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
		now:        time.Now,
	}
}

// Login posts creds and parses the returned token.
func (a *HTTPAuthenticator) Login(ctx context.Context, creds Credentials) (*Session, error) {
	body, err := json.Marshal(creds)
	if err != nil {
		return nil, fmt.Errorf("failed to encode credentials: %w", err)
	}

	endpoint := a.URL + "/login"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "autolist")

	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, autolisterrors.ContextCancelled("login")
		}
		return nil, autolisterrors.NetworkUnavailable(req.URL.Host, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, autolisterrors.InvalidCredentials(creds.Email)
	case resp.StatusCode != http.StatusOK:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, autolisterrors.UnexpectedStatus(endpoint, resp.StatusCode, string(bytes.TrimSpace(msg)))
	}

	var lr LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}
	if lr.Token == "" {
		return nil, &autolisterrors.AppError{Kind: autolisterrors.ErrAuth, Message: "login response carried no token"}
	}

	now := time.Now
	if a.now != nil {
		now = a.now
	}
	return ParseToken(lr.Token, now())
}

// Store holds the current session.
type Store struct {
	mu      sync.RWMutex
	current *Session
	now     func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{now: time.Now}
}

// Set replaces the current session.
func (s *Store) Set(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = sess
}

// Clear signs out.
func (s *Store) Clear() {
	s.Set(nil)
}

// Current returns the session if one is set and not expired.
func (s *Store) Current() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil || s.current.Expired(s.now()) {
		return nil
	}
	return s.current
}

// Token returns the current bearer token, or "".
func (s *Store) Token() string {
	if sess := s.Current(); sess != nil {
		return sess.Token
	}
	return ""
}
