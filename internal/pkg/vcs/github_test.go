package vcs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizeURL(t *testing.T) {
	client := NewGitHubClient("client-id", "client-secret", "http://localhost:8080/callback")

	raw := client.AuthorizeURL("random-state")
	parsed, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "github.com", parsed.Host)
	assert.Equal(t, "/login/oauth/authorize", parsed.Path)
	assert.Equal(t, "client-id", parsed.Query().Get("client_id"))
	assert.Equal(t, "http://localhost:8080/callback", parsed.Query().Get("redirect_uri"))
	assert.Equal(t, "random-state", parsed.Query().Get("state"))
	assert.Equal(t, "read:user public_repo", parsed.Query().Get("scope"))
}

func TestExchangeCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/login/oauth/access_token", r.URL.Path)
		assert.Equal(t, "oauth-code", r.URL.Query().Get("code"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token": "gho_testtoken"}`)
	}))
	defer server.Close()

	client := NewGitHubClient("client-id", "client-secret", "http://localhost/callback").
		WithBaseURLs(server.URL, server.URL)

	token, err := client.ExchangeCode(context.Background(), "oauth-code")
	require.NoError(t, err)
	assert.Equal(t, "gho_testtoken", token)
}

func TestExchangeCodeRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"error": "bad_verification_code"}`)
	}))
	defer server.Close()

	client := NewGitHubClient("client-id", "client-secret", "http://localhost/callback").
		WithBaseURLs(server.URL, server.URL)

	_, err := client.ExchangeCode(context.Background(), "expired-code")
	assert.ErrorContains(t, err, "bad_verification_code")
}

func TestGetUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user", r.URL.Path)
		assert.Equal(t, "Bearer gho_testtoken", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"login": "janedoe", "name": "Jane Doe", "avatar_url": "https://example.com/a.png"}`)
	}))
	defer server.Close()

	client := NewGitHubClient("client-id", "client-secret", "http://localhost/callback").
		WithBaseURLs(server.URL, server.URL)

	user, err := client.GetUser(context.Background(), "gho_testtoken")
	require.NoError(t, err)
	assert.Equal(t, "janedoe", user.Login)
	assert.Equal(t, "Jane Doe", user.Name)
}

func TestGetUserUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewGitHubClient("client-id", "client-secret", "http://localhost/callback").
		WithBaseURLs(server.URL, server.URL)

	_, err := client.GetUser(context.Background(), "revoked-token")
	assert.ErrorContains(t, err, "token rejected")
}

func TestListReposPaginates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/repos", r.URL.Path)

		page := r.URL.Query().Get("page")
		w.Header().Set("Content-Type", "application/json")

		if page == "1" {
			repos := make([]Repo, 100)
			for i := range repos {
				repos[i] = Repo{ID: int64(i + 1), Name: fmt.Sprintf("repo-%d", i+1)}
			}
			require.NoError(t, json.NewEncoder(w).Encode(repos))
			return
		}

		fmt.Fprint(w, `[{"id": 101, "name": "last-repo", "stargazers_count": 7, "language": "Go"}]`)
	}))
	defer server.Close()

	client := NewGitHubClient("client-id", "client-secret", "http://localhost/callback").
		WithBaseURLs(server.URL, server.URL)

	repos, err := client.ListRepos(context.Background(), "gho_testtoken")
	require.NoError(t, err)
	require.Len(t, repos, 101)
	assert.Equal(t, "last-repo", repos[100].Name)
	assert.Equal(t, 7, repos[100].Stars)
	assert.Equal(t, "Go", repos[100].Language)
}
