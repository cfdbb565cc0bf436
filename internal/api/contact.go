package api

import "context"

// ContactInput submits a message through the contact form. It is the one
// operation that works unauthenticated.
type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// SendContactMessage submits a contact-form message.
func (c *Client) SendContactMessage(ctx context.Context, input ContactInput) (*ContactMessage, error) {
	var msg ContactMessage
	if err := c.post(ctx, "/api/contact", input, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ContactMessages lists all contact messages (admin role).
func (c *Client) ContactMessages(ctx context.Context) ([]ContactMessage, error) {
	var msgs []ContactMessage
	if err := c.get(ctx, "/api/contact", nil, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// MyContactMessages lists the current user's own messages.
func (c *Client) MyContactMessages(ctx context.Context) ([]ContactMessage, error) {
	var msgs []ContactMessage
	if err := c.get(ctx, "/api/contact/my-messages", nil, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// ContactMessage fetches a single message by id.
func (c *Client) ContactMessage(ctx context.Context, id string) (*ContactMessage, error) {
	var msg ContactMessage
	if err := c.get(ctx, "/api/contact/"+id, nil, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// UpdateContactMessageStatus marks a message read/replied (admin role).
func (c *Client) UpdateContactMessageStatus(ctx context.Context, id, status string) error {
	return c.patch(ctx, "/api/contact/"+id+"/status", statusUpdate{Status: status}, nil)
}

// DeleteContactMessage removes a message (admin role).
func (c *Client) DeleteContactMessage(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/contact/"+id)
}
