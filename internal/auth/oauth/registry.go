package oauth

import (
	"net/url"
	"sort"
	"strings"

	"github.com/kanenguyen264/library-management-sub008/config"
	autherror "github.com/kanenguyen264/library-management-sub008/internal/errors"
)

// Provider is the static configuration for one OAuth2 provider. The field
// names (IDField, EmailField, NameField) describe where the provider's
// userinfo response keeps each claim.
type Provider struct {
	Name         string
	ClientID     string
	ClientSecret string
	AuthorizeURL string
	TokenURL     string
	UserInfoURL  string
	// EmailsURL is set for providers whose primary userinfo response may
	// omit the email (GitHub). Empty means no fallback endpoint exists.
	EmailsURL   string
	RedirectURI string
	Scope       string
	IDField     string
	EmailField  string
	NameField   string
	Active      bool
}

// Registry holds provider configuration loaded once at startup. Providers
// with missing credentials are simply absent; that is a normal runtime
// state, not a startup error.
type Registry struct {
	providers map[string]Provider
}

func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		r.providers[strings.ToLower(p.Name)] = p
	}
	return r
}

// NewRegistryFromConfig builds the registry for the providers whose
// credentials are present in the configuration.
func NewRegistryFromConfig(cfg *config.Config) *Registry {
	var providers []Provider

	callback := func(name string) string {
		return cfg.APIURL + "/api/v1/auth/oauth/" + name + "/callback"
	}

	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		providers = append(providers, Provider{
			Name:         "google",
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			AuthorizeURL: "https://accounts.google.com/o/oauth2/auth",
			TokenURL:     "https://oauth2.googleapis.com/token",
			UserInfoURL:  "https://www.googleapis.com/oauth2/v3/userinfo",
			RedirectURI:  callback("google"),
			Scope:        "openid email profile",
			IDField:      "sub",
			EmailField:   "email",
			NameField:    "name",
			Active:       true,
		})
	}

	if cfg.FacebookClientID != "" && cfg.FacebookClientSecret != "" {
		providers = append(providers, Provider{
			Name:         "facebook",
			ClientID:     cfg.FacebookClientID,
			ClientSecret: cfg.FacebookClientSecret,
			AuthorizeURL: "https://www.facebook.com/v13.0/dialog/oauth",
			TokenURL:     "https://graph.facebook.com/v13.0/oauth/access_token",
			UserInfoURL:  "https://graph.facebook.com/me?fields=id,name,email,picture",
			RedirectURI:  callback("facebook"),
			Scope:        "email public_profile",
			IDField:      "id",
			EmailField:   "email",
			NameField:    "name",
			Active:       true,
		})
	}

	if cfg.GithubClientID != "" && cfg.GithubClientSecret != "" {
		providers = append(providers, Provider{
			Name:         "github",
			ClientID:     cfg.GithubClientID,
			ClientSecret: cfg.GithubClientSecret,
			AuthorizeURL: "https://github.com/login/oauth/authorize",
			TokenURL:     "https://github.com/login/oauth/access_token",
			UserInfoURL:  "https://api.github.com/user",
			EmailsURL:    "https://api.github.com/user/emails",
			RedirectURI:  callback("github"),
			Scope:        "read:user user:email",
			IDField:      "id",
			EmailField:   "email",
			NameField:    "name",
			Active:       true,
		})
	}

	if cfg.MicrosoftClientID != "" && cfg.MicrosoftClientSecret != "" {
		providers = append(providers, Provider{
			Name:         "microsoft",
			ClientID:     cfg.MicrosoftClientID,
			ClientSecret: cfg.MicrosoftClientSecret,
			AuthorizeURL: "https://login.microsoftonline.com/common/oauth2/v2.0/authorize",
			TokenURL:     "https://login.microsoftonline.com/common/oauth2/v2.0/token",
			UserInfoURL:  "https://graph.microsoft.com/v1.0/me",
			RedirectURI:  callback("microsoft"),
			Scope:        "openid email profile User.Read",
			IDField:      "id",
			EmailField:   "userPrincipalName",
			NameField:    "displayName",
			Active:       true,
		})
	}

	return NewRegistry(providers...)
}

func (r *Registry) Get(name string) (Provider, error) {
	p, ok := r.providers[strings.ToLower(name)]
	if !ok {
		return Provider{}, autherror.ErrProviderNotConfigured
	}
	if !p.Active {
		return Provider{}, autherror.ErrProviderInactive
	}
	return p, nil
}

// Names returns the configured provider names, sorted for stable logging.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AuthorizationURL builds the provider authorize URL. An empty state omits
// the parameter.
func (r *Registry) AuthorizationURL(name, state string) (string, error) {
	p, err := r.Get(name)
	if err != nil {
		return "", err
	}

	params := url.Values{}
	params.Set("response_type", "code")
	params.Set("client_id", p.ClientID)
	params.Set("redirect_uri", p.RedirectURI)
	params.Set("scope", p.Scope)
	if state != "" {
		params.Set("state", state)
	}

	return p.AuthorizeURL + "?" + params.Encode(), nil
}
