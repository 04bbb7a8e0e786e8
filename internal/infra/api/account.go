package api

import (
	"context"
	"net/http"

	"github.com/runoshun/taskline/internal/domain"
)

// Settings returns the user settings.
func (c *Client) Settings(ctx context.Context) (*domain.UserSettings, error) {
	var s domain.UserSettings
	if err := c.do(ctx, http.MethodGet, "/api/settings", nil, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateSettings applies a partial settings update.
func (c *Client) UpdateSettings(ctx context.Context, patch domain.SettingsPatch) (*domain.UserSettings, error) {
	var s domain.UserSettings
	if err := c.do(ctx, http.MethodPut, "/api/settings", nil, patch, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

type userResponse struct {
	User    domain.User `json:"user"`
	Message string      `json:"message"`
}

// Setup creates the first account and starts a session.
func (c *Client) Setup(ctx context.Context, in domain.SetupInput) (*domain.User, error) {
	var resp userResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/setup", nil, in, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Login starts a session. The session cookie is kept in the jar.
func (c *Client) Login(ctx context.Context, username, pin string) (*domain.User, error) {
	body := map[string]string{"username": username, "pin": pin}
	var resp userResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Logout ends the session and clears the jar, even when the request fails.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, &message{})
	if clearErr := c.jar.Clear(); clearErr != nil && err == nil {
		err = clearErr
	}
	return err
}

// ChangePIN replaces the account PIN.
func (c *Client) ChangePIN(ctx context.Context, currentPIN, newPIN string) error {
	body := map[string]string{"current_pin": currentPIN, "new_pin": newPIN}
	return c.do(ctx, http.MethodPut, "/api/auth/pin", nil, body, &message{})
}

// Health checks API and database status.
func (c *Client) Health(ctx context.Context) (*domain.Health, error) {
	var h domain.Health
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}
