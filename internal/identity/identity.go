package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// ErrUnauthenticated is returned when the provider rejects a session
// token or no token was supplied.
var ErrUnauthenticated = errors.New("identity: unauthenticated")

// Provider resolves a caller's session token to the external user id
// issued by the identity provider, or reports that there is none.
type Provider interface {
	Identify(ctx context.Context, token string) (string, error)
}

// Client verifies session tokens against a remote identity provider.
type Client struct {
	verifyURL  string
	apiKey     string
	httpClient *http.Client
	logger     *log.Logger
}

func NewClient(verifyURL, apiKey string, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Client{
		verifyURL: verifyURL,
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		logger: logger,
	}
}

func (c *Client) Identify(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrUnauthenticated
	}

	body, err := json.Marshal(map[string]string{"token": token})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Printf("identity client: verify error=%v", err)
		return "", fmt.Errorf("identity: verify token: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusNotFound:
		return "", ErrUnauthenticated
	default:
		c.logger.Printf("identity client: verify status=%d", resp.StatusCode)
		return "", fmt.Errorf("identity: verify token: unexpected status %d", resp.StatusCode)
	}

	var out struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("identity: decode verify response: %w", err)
	}
	if out.UserID == "" {
		return "", ErrUnauthenticated
	}
	return out.UserID, nil
}
