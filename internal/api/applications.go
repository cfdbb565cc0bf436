package api

import (
	"context"
	"net/url"
)

// ApplicationFilter narrows application listings (admin/manager views).
type ApplicationFilter struct {
	Status string
}

// Applications lists loan applications visible to the caller's role.
func (c *Client) Applications(ctx context.Context, filter ApplicationFilter) ([]Application, error) {
	var query url.Values
	if filter.Status != "" {
		query = url.Values{"status": {filter.Status}}
	}
	var apps []Application
	if err := c.get(ctx, "/api/applications", query, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// MyApplications lists the current borrower's applications.
func (c *Client) MyApplications(ctx context.Context) ([]Application, error) {
	var apps []Application
	if err := c.get(ctx, "/api/applications/my-loans", nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// SubmitApplication files a new loan application.
func (c *Client) SubmitApplication(ctx context.Context, input ApplicationInput) (*Application, error) {
	var app Application
	if err := c.post(ctx, "/api/applications", input, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

type statusUpdate struct {
	Status string `json:"status"`
}

// UpdateApplicationStatus approves or rejects an application (manager role).
func (c *Client) UpdateApplicationStatus(ctx context.Context, id, status string) error {
	return c.patch(ctx, "/api/applications/"+id+"/status", statusUpdate{Status: status}, nil)
}

// DeleteApplication withdraws an application.
func (c *Client) DeleteApplication(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/applications/"+id)
}
