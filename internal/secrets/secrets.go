// Package secrets resolves startup secrets such as TOKEN_KEY and
// DATABASE_URL. Resolution order: process environment, local JSON config
// file, remote secret server. Environment values always win.
package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// DefaultConfigPath is the local config file consulted when no explicit
// path is given.
const DefaultConfigPath = "secrets-config.json"

type Config struct {
	ServerURL   string            `json:"server_url"`
	ServerToken string            `json:"server_token"`
	Secrets     map[string]string `json:"secrets"`
}

// Load reads the config file at path (DefaultConfigPath if empty) and
// merges it under any environment overrides. A missing file is not an
// error; the environment alone may be enough.
func Load(path string) (*Config, error) {
	cfg := &Config{
		ServerURL:   os.Getenv("SECRETS_SERVER_URL"),
		ServerToken: os.Getenv("SECRETS_SERVER_TOKEN"),
	}
	if path == "" {
		path = DefaultConfigPath
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var fcfg Config
	if err := json.Unmarshal(b, &fcfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = fcfg.ServerURL
	}
	if cfg.ServerToken == "" {
		cfg.ServerToken = fcfg.ServerToken
	}
	cfg.Secrets = fcfg.Secrets
	return cfg, nil
}

type Client struct {
	cfg  *Config
	http *http.Client
}

func NewClient(cfg *Config) *Client {
	return &Client{cfg: cfg, http: &http.Client{Timeout: 5 * time.Second}}
}

// Get resolves one named secret: environment first, then the local file's
// secrets map, then the remote server.
func (c *Client) Get(ctx context.Context, name string) (string, error) {
	if v := os.Getenv(name); v != "" {
		return v, nil
	}
	if v, ok := c.cfg.Secrets[name]; ok && v != "" {
		return v, nil
	}
	return c.fetch(ctx, name)
}

func (c *Client) fetch(ctx context.Context, name string) (string, error) {
	token, err := c.exchangeToken(ctx)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		strings.TrimRight(c.cfg.ServerURL, "/")+"/secrets/"+url.PathEscape(name), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("secret %s: server returned %d: %s", name, resp.StatusCode, string(b))
	}
	var out struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return "", err
	}
	if out.Value == "" {
		return "", fmt.Errorf("secret %s: empty value", name)
	}
	return out.Value, nil
}

// exchangeToken trades the static server token for a short-lived JWT via
// POST /token.
func (c *Client) exchangeToken(ctx context.Context) (string, error) {
	if c.cfg.ServerURL == "" {
		return "", errors.New("no secret server configured")
	}
	if c.cfg.ServerToken == "" {
		return "", errors.New("no secret server token configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(c.cfg.ServerURL, "/")+"/token", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.ServerToken)
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("token exchange failed %d: %s", resp.StatusCode, string(b))
	}
	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.AccessToken == "" {
		return "", errors.New("token exchange returned no access_token")
	}
	return body.AccessToken, nil
}
