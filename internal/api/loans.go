package api

import (
	"context"
	"net/url"
)

// LoanFilter narrows loan listings.
type LoanFilter struct {
	ShowOnHome bool
}

// Loans lists loan products. With ShowOnHome set, only featured products are
// returned (the home-page carousel query).
func (c *Client) Loans(ctx context.Context, filter LoanFilter) ([]Loan, error) {
	var query url.Values
	if filter.ShowOnHome {
		query = url.Values{"showOnHome": {"true"}}
	}
	var loans []Loan
	if err := c.get(ctx, "/api/loans", query, &loans); err != nil {
		return nil, err
	}
	return loans, nil
}

// Loan fetches a single loan product by id.
func (c *Client) Loan(ctx context.Context, id string) (*Loan, error) {
	var loan Loan
	if err := c.get(ctx, "/api/loans/"+id, nil, &loan); err != nil {
		return nil, err
	}
	return &loan, nil
}

// CreateLoan adds a loan product (manager role).
func (c *Client) CreateLoan(ctx context.Context, input LoanInput) (*Loan, error) {
	var loan Loan
	if err := c.post(ctx, "/api/loans", input, &loan); err != nil {
		return nil, err
	}
	return &loan, nil
}

// UpdateLoan replaces a loan product (manager role).
func (c *Client) UpdateLoan(ctx context.Context, id string, input LoanInput) (*Loan, error) {
	var loan Loan
	if err := c.put(ctx, "/api/loans/"+id, input, &loan); err != nil {
		return nil, err
	}
	return &loan, nil
}

// DeleteLoan removes a loan product (manager role).
func (c *Client) DeleteLoan(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/loans/"+id)
}
