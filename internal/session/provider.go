package session

import (
	"net/url"
	"strings"

	"github.com/autolist/autolist/internal/config"
	autolisterrors "github.com/autolist/autolist/internal/errors"
)

// Provider is a social sign-in option.
type Provider struct {
	Name        string
	Label       string
	AuthURL     string
	ClientID    string
	RedirectURL string
	Scopes      []string
}

// ProvidersFromConfig converts configured providers. A provider without a
// label gets "Sign in with <Name>".
func ProvidersFromConfig(cfgs []config.ProviderConfig) []Provider {
	out := make([]Provider, 0, len(cfgs))
	for _, c := range cfgs {
		p := Provider{
			Name:        c.Name,
			Label:       c.Label,
			AuthURL:     c.AuthURL,
			ClientID:    c.ClientID,
			RedirectURL: c.RedirectURL,
			Scopes:      c.Scopes,
		}
		if p.Label == "" && p.Name != "" {
			p.Label = "Sign in with " + strings.ToUpper(p.Name[:1]) + p.Name[1:]
		}
		out = append(out, p)
	}
	return out
}

// FindProvider looks up a provider by name.
func FindProvider(providers []Provider, name string) (Provider, error) {
	for _, p := range providers {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Provider{}, autolisterrors.ProviderUnknown(name)
}

// AuthorizeURL builds the OAuth authorization-code URL the user opens in a
// browser. state is echoed back to the redirect URL.
func (p Provider) AuthorizeURL(state string) (string, error) {
	u, err := url.Parse(p.AuthURL)
	if err != nil {
		return "", &autolisterrors.AppError{
			Kind:    autolisterrors.ErrConfig,
			Message: "invalid auth_url for provider " + p.Name,
			Cause:   err,
		}
	}
	q := u.Query()
	q.Set("response_type", "code")
	q.Set("client_id", p.ClientID)
	if p.RedirectURL != "" {
		q.Set("redirect_uri", p.RedirectURL)
	}
	if len(p.Scopes) > 0 {
		q.Set("scope", strings.Join(p.Scopes, " "))
	}
	if state != "" {
		q.Set("state", state)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
