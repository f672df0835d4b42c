package client

import (
	"context"
	"net/http"

	"detailing/models"
)

// Session is the login response.
type Session struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

// Login authenticates and keeps the session cookie the server sets.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var out Session
	body := models.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, "login", http.MethodPost, "/api/users/login", body, &out, http.StatusOK); err != nil {
		return nil, err
	}
	if out.Token != "" && c.SessionToken() == "" {
		c.SetSessionToken(out.Token)
	}
	return &out, nil
}

// Register creates a customer account and keeps the session cookie.
func (c *Client) Register(ctx context.Context, name, email, password string) (*Session, error) {
	var out Session
	body := models.RegisterRequest{Name: name, Email: email, Password: password}
	if err := c.do(ctx, "register", http.MethodPost, "/api/users/register", body, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	if out.Token != "" && c.SessionToken() == "" {
		c.SetSessionToken(out.Token)
	}
	return &out, nil
}

// LoggedIn reports whether the held session is accepted by the server.
func (c *Client) LoggedIn(ctx context.Context) (bool, error) {
	var out struct {
		LoggedIn bool `json:"loggedIn"`
	}
	if err := c.do(ctx, "logged in", http.MethodGet, "/api/users/loggedIn", nil, &out, http.StatusOK); err != nil {
		return false, err
	}
	return out.LoggedIn, nil
}
