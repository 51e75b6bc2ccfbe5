// Package commercetools wraps the CommerceTools project REST API for carts,
// payments, categories and products. It owns URL construction, OAuth token
// handling and the translation of HTTP statuses into domain error codes.
// Mutations carry the version-based optimistic concurrency token; a stale
// version is surfaced as a conflict, never retried here.
package commercetools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dhindle/commerce-cif-commercetools/internal/domain"
)

// Config holds the CommerceTools project credentials and hosts.
type Config struct {
	APIHost      string
	AuthHost     string
	ProjectKey   string
	ClientID     string
	ClientSecret string

	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// Client is a JSON-over-HTTPS client for one CommerceTools project.
type Client struct {
	apiHost    string
	authHost   string
	projectKey string
	clientID   string
	secret     string
	httpClient *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewClient creates a CommerceTools client for the configured project.
func NewClient(cfg Config) (*Client, error) {
	if cfg.ProjectKey == "" {
		return nil, fmt.Errorf("commercetools project key is required")
	}
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("commercetools client credentials are required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		apiHost:    strings.TrimSuffix(cfg.APIHost, "/"),
		authHost:   strings.TrimSuffix(cfg.AuthHost, "/"),
		projectKey: cfg.ProjectKey,
		clientID:   cfg.ClientID,
		secret:     cfg.ClientSecret,
		httpClient: httpClient,
	}, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// token returns a cached bearer token, fetching a fresh one via the client
// credentials flow when the cached token is absent or about to expire.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", "manage_project:"+c.projectKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.authHost+"/oauth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.SetBasicAuth(c.clientID, c.secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch auth token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("auth token request failed (status %d): %s", resp.StatusCode, string(body))
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", fmt.Errorf("failed to parse token response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("auth token response contained no access token")
	}

	c.accessToken = tok.AccessToken
	// Refresh one minute early so in-flight requests never carry a dead token.
	c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - time.Minute)

	return c.accessToken, nil
}

// endpoint builds a project-scoped API url.
func (c *Client) endpoint(path string, query url.Values) string {
	u := c.apiHost + "/" + c.projectKey + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// ctError is the CommerceTools error response body.
type ctError struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// do performs one API call and decodes the JSON response into out (when out
// is non-nil). Non-2xx statuses are translated into domain errors: 404 to
// not found, 409 to conflict, 4xx to invalid, everything else to internal.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, payload, out any) error {
	token, err := c.token(ctx)
	if err != nil {
		return domain.Internal(err, op, "commercetools authentication failed")
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return domain.Internal(err, op, "failed to marshal request payload")
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return domain.Internal(err, op, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Internal(err, op, "commercetools request failed")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Internal(err, op, "failed to read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.translateError(op, resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return domain.Internal(err, op, "failed to parse commercetools response")
		}
	}
	return nil
}

func (c *Client) translateError(op string, status int, body []byte) error {
	var ce ctError
	message := string(body)
	if err := json.Unmarshal(body, &ce); err == nil && ce.Message != "" {
		message = ce.Message
	}

	switch status {
	case http.StatusNotFound:
		return &domain.Error{Code: domain.ENOTFOUND, Op: op, Message: message}
	case http.StatusConflict:
		return domain.Conflict(op, message)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.Invalid(op, message)
	default:
		return domain.Internal(fmt.Errorf("commercetools status %d: %s", status, message), op,
			"unexpected commercetools response")
	}
}

func (c *Client) get(ctx context.Context, op, path string, query url.Values, out any) error {
	return c.do(ctx, op, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, op, path string, query url.Values, payload, out any) error {
	return c.do(ctx, op, http.MethodPost, path, query, payload, out)
}

func (c *Client) delete(ctx context.Context, op, path string, query url.Values, out any) error {
	return c.do(ctx, op, http.MethodDelete, path, query, nil, out)
}
