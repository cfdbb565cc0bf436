package api

import "context"

// Users lists all portal users (admin role).
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.get(ctx, "/api/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

type roleUpdate struct {
	Role string `json:"role"`
}

// UpdateUserRole changes a user's role (admin role).
func (c *Client) UpdateUserRole(ctx context.Context, id, role string) error {
	return c.put(ctx, "/api/users/"+id+"/role", roleUpdate{Role: role}, nil)
}

type suspendRequest struct {
	Reason string `json:"reason"`
}

// SuspendUser suspends a user with a reason (admin role).
func (c *Client) SuspendUser(ctx context.Context, id, reason string) error {
	return c.put(ctx, "/api/users/"+id+"/suspend", suspendRequest{Reason: reason}, nil)
}

// UnsuspendUser lifts a suspension (admin role).
func (c *Client) UnsuspendUser(ctx context.Context, id string) error {
	return c.put(ctx, "/api/users/"+id+"/unsuspend", struct{}{}, nil)
}
