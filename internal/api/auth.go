package api

import "context"

// Register creates an account in the primary backend, the source of truth
// for roles and suspension.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.post(ctx, "/api/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates against the primary backend. The returned user may
// carry suspension state even when credentials were valid.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.post(ctx, "/api/auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// meResponse is the /api/auth/me shape: the user object with an optional
// refreshed token embedded alongside it.
type meResponse struct {
	User
	Token string `json:"token,omitempty"`
}

// Me returns the current user for the held credential, plus a refreshed token
// when the backend issues one. A 401 here is an expected state (not logged
// in), never routed through the unauthorized hook.
func (c *Client) Me(ctx context.Context) (*User, string, error) {
	var resp meResponse
	if err := c.get(ctx, "/api/auth/me", nil, &resp); err != nil {
		return nil, "", err
	}
	user := resp.User
	return &user, resp.Token, nil
}

// Logout tells the backend to discard the server-side session. Callers treat
// failures as best-effort.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/api/auth/logout", struct{}{}, nil)
}
