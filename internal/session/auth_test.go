package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autolist/autolist/internal/config"
	autolisterrors "github.com/autolist/autolist/internal/errors"
)

func newAuthServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/login" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var creds Credentials
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds.Email != "jane@example.com" || creds.Password != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		token, err := Issue(testSecret, "u1", "Jane", creds.Email, time.Hour, time.Now())
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(LoginResponse{Token: token})
	}))
	t.Cleanup(server.Close)
	return server
}

func TestHTTPAuthenticator_Login(t *testing.T) {
	server := newAuthServer(t)
	auth := NewHTTPAuthenticator(server.URL+"/", time.Second)

	sess, err := auth.Login(context.Background(), Credentials{Email: "jane@example.com", Password: "hunter2"})
	require.NoError(t, err)
	assert.Equal(t, "Jane", sess.Name)
	assert.NotEmpty(t, sess.Token)
}

func TestHTTPAuthenticator_BadCredentials(t *testing.T) {
	server := newAuthServer(t)
	auth := NewHTTPAuthenticator(server.URL, time.Second)

	_, err := auth.Login(context.Background(), Credentials{Email: "jane@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, autolisterrors.ErrAuth))
	assert.Equal(t, "invalid email or password", err.Error())
}

func TestHTTPAuthenticator_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := NewHTTPAuthenticator(server.URL, time.Second).Login(context.Background(), Credentials{Email: "a@b.c", Password: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, autolisterrors.ErrNetwork))
}

func TestCredentials_Validate(t *testing.T) {
	assert.Nil(t, Credentials{Email: " ada@example.com ", Password: "x"}.Validate())
	assert.Equal(t, map[string]string{
		"email":    "Email is required",
		"password": "Password is required",
	}, Credentials{}.Validate())
	assert.Equal(t, map[string]string{"email": "Enter a valid email"}, Credentials{Email: "nope", Password: "x"}.Validate())
	assert.Equal(t, "Enter a valid email", Credentials{Email: "ada@", Password: "x"}.Validate()["email"])
}

func TestStore(t *testing.T) {
	s := NewStore()
	assert.Nil(t, s.Current())
	assert.Equal(t, "", s.Token())

	s.Set(&Session{Token: "abc", ExpiresAt: time.Now().Add(time.Hour)})
	assert.Equal(t, "abc", s.Token())

	s.Set(&Session{Token: "old", ExpiresAt: time.Now().Add(-time.Hour)})
	assert.Nil(t, s.Current(), "expired sessions are not returned")

	s.Set(&Session{Token: "abc"})
	s.Clear()
	assert.Equal(t, "", s.Token())
}

func TestProviders(t *testing.T) {
	providers := ProvidersFromConfig(config.DefaultProviders())
	require.Len(t, providers, 1)
	assert.Equal(t, "Sign in with Google", providers[0].Label)

	providers = ProvidersFromConfig([]config.ProviderConfig{{Name: "github", AuthURL: "https://github.com/login/oauth/authorize"}})
	assert.Equal(t, "Sign in with Github", providers[0].Label)

	_, err := FindProvider(providers, "apple")
	assert.True(t, errors.Is(err, autolisterrors.ErrAuth))

	p, err := FindProvider(providers, "GitHub")
	require.NoError(t, err)
	assert.Equal(t, "github", p.Name)
}

func TestProvider_AuthorizeURL(t *testing.T) {
	p := Provider{
		Name:        "google",
		AuthURL:     "https://accounts.google.com/o/oauth2/v2/auth",
		ClientID:    "client-1",
		RedirectURL: "http://localhost:8080/cb",
		Scopes:      []string{"openid", "email"},
	}

	raw, err := p.AuthorizeURL("xyz")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "accounts.google.com", u.Host)
	q := u.Query()
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "client-1", q.Get("client_id"))
	assert.Equal(t, "http://localhost:8080/cb", q.Get("redirect_uri"))
	assert.Equal(t, "openid email", q.Get("scope"))
	assert.Equal(t, "xyz", q.Get("state"))

	_, err = Provider{Name: "bad", AuthURL: "://nope"}.AuthorizeURL("")
	assert.True(t, errors.Is(err, autolisterrors.ErrConfig))
}
