// Package vcs implements the GitHub API client used for portfolio syncing.
package vcs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultAPIBaseURL   = "https://api.github.com"
	defaultOAuthBaseURL = "https://github.com"
)

// Repo is a repository as returned by the GitHub API
type Repo struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	FullName    string   `json:"full_name"`
	Description string   `json:"description"`
	HTMLURL     string   `json:"html_url"`
	Stars       int      `json:"stargazers_count"`
	Forks       int      `json:"forks_count"`
	Language    string   `json:"language"`
	Topics      []string `json:"topics"`
	Fork        bool     `json:"fork"`
}

// User is the authenticated GitHub user
type User struct {
	Login     string `json:"login"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// GitHubClient talks to the GitHub REST and OAuth APIs
type GitHubClient struct {
	clientID     string
	clientSecret string
	callbackURL  string
	apiBaseURL   string
	oauthBaseURL string
	httpClient   *http.Client
}

// NewGitHubClient creates a client with the given OAuth application credentials
func NewGitHubClient(clientID, clientSecret, callbackURL string) *GitHubClient {
	return &GitHubClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		callbackURL:  callbackURL,
		apiBaseURL:   defaultAPIBaseURL,
		oauthBaseURL: defaultOAuthBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithBaseURLs overrides the API endpoints. Used in tests.
func (c *GitHubClient) WithBaseURLs(apiBaseURL, oauthBaseURL string) *GitHubClient {
	c.apiBaseURL = apiBaseURL
	c.oauthBaseURL = oauthBaseURL
	return c
}

// AuthorizeURL builds the OAuth authorization redirect URL
func (c *GitHubClient) AuthorizeURL(state string) string {
	params := url.Values{}
	params.Set("client_id", c.clientID)
	params.Set("redirect_uri", c.callbackURL)
	params.Set("scope", "read:user public_repo")
	params.Set("state", state)
	return c.oauthBaseURL + "/login/oauth/authorize?" + params.Encode()
}

// ExchangeCode trades an OAuth callback code for an access token
func (c *GitHubClient) ExchangeCode(ctx context.Context, code string) (string, error) {
	params := url.Values{}
	params.Set("client_id", c.clientID)
	params.Set("client_secret", c.clientSecret)
	params.Set("code", code)
	params.Set("redirect_uri", c.callbackURL)

	fullURL := c.oauthBaseURL + "/login/oauth/access_token?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token exchange failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var tokenResponse struct {
		AccessToken string `json:"access_token"`
		Error       string `json:"error"`
	}
	if err := json.Unmarshal(respBody, &tokenResponse); err != nil {
		return "", fmt.Errorf("parse token response: %w", err)
	}
	if tokenResponse.Error != "" {
		return "", fmt.Errorf("token exchange rejected: %s", tokenResponse.Error)
	}
	if tokenResponse.AccessToken == "" {
		return "", fmt.Errorf("token exchange returned no access token")
	}

	return tokenResponse.AccessToken, nil
}

// GetUser fetches the authenticated user
func (c *GitHubClient) GetUser(ctx context.Context, token string) (*User, error) {
	var user User
	if err := c.doRequest(ctx, token, "/user", &user); err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// ListRepos fetches the authenticated user's repositories, most starred
// first, across pages
func (c *GitHubClient) ListRepos(ctx context.Context, token string) ([]Repo, error) {
	var allRepos []Repo
	page := 1
	perPage := 100

	for {
		path := fmt.Sprintf("/user/repos?type=owner&sort=updated&per_page=%d&page=%d", perPage, page)
		var repos []Repo
		if err := c.doRequest(ctx, token, path, &repos); err != nil {
			return nil, fmt.Errorf("list repos page %d: %w", page, err)
		}

		allRepos = append(allRepos, repos...)
		if len(repos) < perPage {
			break
		}
		page++
	}

	return allRepos, nil
}

func (c *GitHubClient) doRequest(ctx context.Context, token, path string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("github token rejected")
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("api error: status %d", resp.StatusCode)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}

	return nil
}
