package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/Ponloe/postboard/internal/apperrors"
)

// UserInfo is the verified attribute map returned by a provider.
type UserInfo struct {
	Attributes        map[string]any
	UserNameAttribute string
}

// Client runs the authorization code exchange and the userinfo fetch.
type Client struct {
	providers  map[string]*Provider
	httpClient *http.Client
}

func NewClient(providers ...*Provider) *Client {
	c := &Client{
		providers: make(map[string]*Provider),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, p := range providers {
		if p != nil {
			c.providers[p.Key] = p
		}
	}
	return c
}

func (c *Client) provider(key string) (*Provider, error) {
	p, ok := c.providers[key]
	if !ok {
		return nil, &apperrors.UnsupportedProviderError{Provider: key}
	}
	return p, nil
}

// Providers lists the configured provider keys.
func (c *Client) Providers() []string {
	keys := make([]string, 0, len(c.providers))
	for k := range c.providers {
		keys = append(keys, k)
	}
	return keys
}

// AuthCodeURL is where the browser is sent to start a login.
func (c *Client) AuthCodeURL(key, state string) (string, error) {
	p, err := c.provider(key)
	if err != nil {
		return "", err
	}
	return p.OAuth2.AuthCodeURL(state), nil
}

// LoadUser exchanges code for a token and fetches the user's attributes.
func (c *Client) LoadUser(ctx context.Context, key, code string) (*UserInfo, error) {
	p, err := c.provider(key)
	if err != nil {
		return nil, err
	}

	// oauth2.Config.Client drops httpClient.Timeout; the deadline bounds both calls.
	ctx, cancel := context.WithTimeout(ctx, c.httpClient.Timeout)
	defer cancel()
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	tok, err := p.OAuth2.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("token exchange: %w", err)
	}

	body, err := c.get(ctx, p.OAuth2.Client(ctx, tok), p.UserInfoURL)
	if err != nil {
		return nil, err
	}

	var attrs map[string]any
	if err := json.Unmarshal(body, &attrs); err != nil {
		log.Printf("Failed to unmarshal userinfo: %v", err)
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	return &UserInfo{Attributes: attrs, UserNameAttribute: p.UserNameAttribute}, nil
}

func (c *Client) get(ctx context.Context, hc *http.Client, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	log.Printf("userinfo request: %s", endpoint)

	resp, err := hc.Do(req)
	if err != nil {
		log.Printf("HTTP request failed: %v", err)
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("Failed to read response body: %v", err)
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("userinfo error: status %d, body: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("userinfo error: status %d", resp.StatusCode)
	}

	return body, nil
}
