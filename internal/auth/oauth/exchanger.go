package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kanenguyen264/library-management-sub008/internal/auth/domain"
	autherror "github.com/kanenguyen264/library-management-sub008/internal/errors"
)

// Outbound calls to providers fail hard after this timeout; there are no
// retries, the whole callback fails instead.
const requestTimeout = 10 * time.Second

// TokenResponse is the normalized result of a code exchange.
type TokenResponse struct {
	AccessToken string
	TokenType   string
}

// Exchanger completes the authorization-code flow against the configured
// providers. It is stateless and safe for concurrent use.
type Exchanger struct {
	registry *Registry
	client   *http.Client
}

func NewExchanger(registry *Registry) *Exchanger {
	return &Exchanger{
		registry: registry,
		client:   &http.Client{Timeout: requestTimeout},
	}
}

// ExchangeCode posts the authorization code to the provider's token
// endpoint. GitHub answers with form-encoded pairs instead of JSON; the
// response Content-Type decides how the body is parsed.
func (e *Exchanger) ExchangeCode(ctx context.Context, providerName, code string) (*TokenResponse, error) {
	p, err := e.registry.Get(providerName)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", p.ClientID)
	form.Set("client_secret", p.ClientSecret)
	form.Set("code", code)
	form.Set("redirect_uri", p.RedirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &autherror.TokenExchangeError{Provider: p.Name, Detail: err.Error()}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, &autherror.TokenExchangeError{Provider: p.Name, Detail: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &autherror.TokenExchangeError{Provider: p.Name, Detail: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &autherror.TokenExchangeError{
			Provider: p.Name,
			Detail:   fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	token := &TokenResponse{}
	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		var parsed struct {
			AccessToken string `json:"access_token"`
			TokenType   string `json:"token_type"`
		}
		if err := json.Unmarshal(body, &parsed); err != nil {
			return nil, &autherror.TokenExchangeError{Provider: p.Name, Detail: "malformed token response: " + err.Error()}
		}
		token.AccessToken = parsed.AccessToken
		token.TokenType = parsed.TokenType
	} else {
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return nil, &autherror.TokenExchangeError{Provider: p.Name, Detail: "malformed token response: " + err.Error()}
		}
		token.AccessToken = values.Get("access_token")
		token.TokenType = values.Get("token_type")
	}

	if token.AccessToken == "" {
		return nil, &autherror.TokenExchangeError{Provider: p.Name, Detail: "token response missing access_token"}
	}
	if token.TokenType == "" {
		token.TokenType = "Bearer"
	}

	return token, nil
}

// FetchUserInfo calls the provider's userinfo endpoint and normalizes the
// response using the provider's configured field names.
func (e *Exchanger) FetchUserInfo(ctx context.Context, providerName string, token *TokenResponse) (*domain.OAuthUserInfo, error) {
	p, err := e.registry.Get(providerName)
	if err != nil {
		return nil, err
	}

	data, err := e.getJSON(ctx, p, p.UserInfoURL, token)
	if err != nil {
		return nil, err
	}

	// GitHub hides private emails from /user; ask the emails endpoint for
	// the primary one instead.
	if p.EmailsURL != "" && stringField(data, p.EmailField) == "" {
		if email := e.fetchPrimaryEmail(ctx, p, token); email != "" {
			data[p.EmailField] = email
		}
	}

	id := stringField(data, p.IDField)
	if id == "" {
		return nil, &autherror.UserInfoError{Provider: p.Name, Detail: "response missing " + p.IDField}
	}

	return &domain.OAuthUserInfo{
		Provider:       p.Name,
		ProviderUserID: id,
		Email:          stringField(data, p.EmailField),
		Name:           stringField(data, p.NameField),
		Picture:        extractPicture(p.Name, data),
		Raw:            data,
	}, nil
}

func (e *Exchanger) getJSON(ctx context.Context, p Provider, endpoint string, token *TokenResponse) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &autherror.UserInfoError{Provider: p.Name, Detail: err.Error()}
	}
	req.Header.Set("Authorization", token.TokenType+" "+token.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, &autherror.UserInfoError{Provider: p.Name, Detail: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &autherror.UserInfoError{Provider: p.Name, Detail: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &autherror.UserInfoError{
			Provider: p.Name,
			Detail:   fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, &autherror.UserInfoError{Provider: p.Name, Detail: "malformed userinfo response: " + err.Error()}
	}

	return data, nil
}

// fetchPrimaryEmail is best-effort: any failure just leaves the email
// empty.
func (e *Exchanger) fetchPrimaryEmail(ctx context.Context, p Provider, token *TokenResponse) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.EmailsURL, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("Authorization", token.TokenType+" "+token.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	var emails []struct {
		Email   string `json:"email"`
		Primary bool   `json:"primary"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&emails); err != nil {
		return ""
	}

	for _, entry := range emails {
		if entry.Primary {
			return entry.Email
		}
	}
	return ""
}

// stringField tolerates numeric identifiers (GitHub returns ids as JSON
// numbers).
func stringField(data map[string]any, key string) string {
	switch v := data[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

// extractPicture knows where each provider keeps the avatar. Unknown
// providers or missing fields yield an empty string, never an error.
func extractPicture(provider string, data map[string]any) string {
	switch provider {
	case "google":
		s, _ := data["picture"].(string)
		return s
	case "facebook":
		picture, ok := data["picture"].(map[string]any)
		if !ok {
			return ""
		}
		inner, ok := picture["data"].(map[string]any)
		if !ok {
			return ""
		}
		s, _ := inner["url"].(string)
		return s
	case "github":
		s, _ := data["avatar_url"].(string)
		return s
	default:
		// Microsoft Graph needs a separate photo API call, skip it.
		return ""
	}
}
