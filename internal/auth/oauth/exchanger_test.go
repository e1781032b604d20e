package oauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	autherror "github.com/kanenguyen264/library-management-sub008/internal/errors"
)

func testProvider(name, tokenURL, userInfoURL, emailsURL string) Provider {
	p := Provider{
		Name:         name,
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		TokenURL:     tokenURL,
		UserInfoURL:  userInfoURL,
		EmailsURL:    emailsURL,
		RedirectURI:  "https://api.example.com/cb",
		IDField:      "id",
		EmailField:   "email",
		NameField:    "name",
		Active:       true,
	}
	if name == "google" {
		p.IDField = "sub"
	}
	return p
}

func TestExchanger_ExchangeCode_JSONResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "client-id", r.PostForm.Get("client_id"))
		assert.Equal(t, "client-secret", r.PostForm.Get("client_secret"))
		assert.Equal(t, "the-code", r.PostForm.Get("code"))
		assert.Equal(t, "https://api.example.com/cb", r.PostForm.Get("redirect_uri"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"access_token": "at-123",
			"token_type":   "Bearer",
		})
	}))
	defer srv.Close()

	e := NewExchanger(NewRegistry(testProvider("google", srv.URL, "", "")))

	token, err := e.ExchangeCode(context.Background(), "google", "the-code")

	require.NoError(t, err)
	assert.Equal(t, "at-123", token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)
}

func TestExchanger_ExchangeCode_FormEncodedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/x-www-form-urlencoded")
		w.Write([]byte("access_token=gh-token&scope=read%3Auser&token_type=bearer"))
	}))
	defer srv.Close()

	e := NewExchanger(NewRegistry(testProvider("github", srv.URL, "", "")))

	token, err := e.ExchangeCode(context.Background(), "github", "the-code")

	require.NoError(t, err)
	assert.Equal(t, "gh-token", token.AccessToken)
	assert.Equal(t, "bearer", token.TokenType)
}

func TestExchanger_ExchangeCode_DefaultsTokenType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"at-123"}`))
	}))
	defer srv.Close()

	e := NewExchanger(NewRegistry(testProvider("google", srv.URL, "", "")))

	token, err := e.ExchangeCode(context.Background(), "google", "the-code")

	require.NoError(t, err)
	assert.Equal(t, "Bearer", token.TokenType)
}

func TestExchanger_ExchangeCode_ProviderRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	e := NewExchanger(NewRegistry(testProvider("google", srv.URL, "", "")))

	_, err := e.ExchangeCode(context.Background(), "google", "expired-code")

	var exchangeErr *autherror.TokenExchangeError
	require.ErrorAs(t, err, &exchangeErr)
	assert.Equal(t, "google", exchangeErr.Provider)
	assert.Contains(t, exchangeErr.Detail, "status 400")
	assert.Contains(t, exchangeErr.Detail, "invalid_grant")
}

func TestExchanger_ExchangeCode_MissingAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token_type":"Bearer"}`))
	}))
	defer srv.Close()

	e := NewExchanger(NewRegistry(testProvider("google", srv.URL, "", "")))

	_, err := e.ExchangeCode(context.Background(), "google", "the-code")

	var exchangeErr *autherror.TokenExchangeError
	require.ErrorAs(t, err, &exchangeErr)
	assert.Contains(t, exchangeErr.Detail, "missing access_token")
}

func TestExchanger_ExchangeCode_UnknownProvider(t *testing.T) {
	e := NewExchanger(NewRegistry())

	_, err := e.ExchangeCode(context.Background(), "google", "the-code")
	assert.ErrorIs(t, err, autherror.ErrProviderNotConfigured)
}

func TestExchanger_FetchUserInfo_Normalizes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer at-123", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"sub":"g-1","email":"alice@example.com","name":"Alice","picture":"https://lh3.example/a.png"}`))
	}))
	defer srv.Close()

	e := NewExchanger(NewRegistry(testProvider("google", "", srv.URL, "")))

	info, err := e.FetchUserInfo(context.Background(), "google", &TokenResponse{AccessToken: "at-123", TokenType: "Bearer"})

	require.NoError(t, err)
	assert.Equal(t, "google", info.Provider)
	assert.Equal(t, "g-1", info.ProviderUserID)
	assert.Equal(t, "alice@example.com", info.Email)
	assert.Equal(t, "Alice", info.Name)
	assert.Equal(t, "https://lh3.example/a.png", info.Picture)
}

func TestExchanger_FetchUserInfo_NumericID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":583231,"email":"octo@example.com","name":"Octo Cat","avatar_url":"https://avatars.example/583231"}`))
	}))
	defer srv.Close()

	e := NewExchanger(NewRegistry(testProvider("github", "", srv.URL, "")))

	info, err := e.FetchUserInfo(context.Background(), "github", &TokenResponse{AccessToken: "at", TokenType: "Bearer"})

	require.NoError(t, err)
	assert.Equal(t, "583231", info.ProviderUserID)
	assert.Equal(t, "https://avatars.example/583231", info.Picture)
}

func TestExchanger_FetchUserInfo_EmailsFallback(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":42,"email":null,"name":"Octo Cat"}`))
	})
	mux.HandleFunc("/user/emails", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"email":"secondary@example.com","primary":false},{"email":"primary@example.com","primary":true}]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	e := NewExchanger(NewRegistry(testProvider("github", "", srv.URL+"/user", srv.URL+"/user/emails")))

	info, err := e.FetchUserInfo(context.Background(), "github", &TokenResponse{AccessToken: "at", TokenType: "Bearer"})

	require.NoError(t, err)
	assert.Equal(t, "primary@example.com", info.Email)
}

func TestExchanger_FetchUserInfo_EmailsFallbackFailureIsSoft(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":42,"name":"Octo Cat"}`))
	})
	mux.HandleFunc("/user/emails", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	e := NewExchanger(NewRegistry(testProvider("github", "", srv.URL+"/user", srv.URL+"/user/emails")))

	info, err := e.FetchUserInfo(context.Background(), "github", &TokenResponse{AccessToken: "at", TokenType: "Bearer"})

	require.NoError(t, err)
	assert.Empty(t, info.Email)
}

func TestExchanger_FetchUserInfo_MissingID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"email":"alice@example.com"}`))
	}))
	defer srv.Close()

	e := NewExchanger(NewRegistry(testProvider("google", "", srv.URL, "")))

	_, err := e.FetchUserInfo(context.Background(), "google", &TokenResponse{AccessToken: "at", TokenType: "Bearer"})

	var infoErr *autherror.UserInfoError
	require.ErrorAs(t, err, &infoErr)
	assert.Contains(t, infoErr.Detail, "missing sub")
}

func TestExtractPicture(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		data     map[string]any
		want     string
	}{
		{
			name:     "facebook nested url",
			provider: "facebook",
			data: map[string]any{
				"picture": map[string]any{
					"data": map[string]any{"url": "https://graph.example/pic.jpg"},
				},
			},
			want: "https://graph.example/pic.jpg",
		},
		{
			name:     "facebook malformed shape",
			provider: "facebook",
			data:     map[string]any{"picture": "not-an-object"},
			want:     "",
		},
		{
			name:     "microsoft has no inline avatar",
			provider: "microsoft",
			data:     map[string]any{"picture": "ignored"},
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractPicture(tt.provider, tt.data))
		})
	}
}
