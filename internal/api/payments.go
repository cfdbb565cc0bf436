package api

import "context"

type paymentIntentRequest struct {
	ApplicationID string  `json:"applicationId"`
	Amount        float64 `json:"amount"`
}

// CreateApplicationFeeIntent starts a payment for an application fee. The
// returned client secret is an opaque handle for the payment processor's UI,
// which lives outside this client.
func (c *Client) CreateApplicationFeeIntent(ctx context.Context, applicationID string, amount float64) (*PaymentIntent, error) {
	var intent PaymentIntent
	req := paymentIntentRequest{ApplicationID: applicationID, Amount: amount}
	if err := c.post(ctx, "/api/payments/create-intent", req, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

// CreateRepaymentIntent starts a payment for a repayment installment.
func (c *Client) CreateRepaymentIntent(ctx context.Context, applicationID string, amount float64) (*PaymentIntent, error) {
	var intent PaymentIntent
	req := paymentIntentRequest{ApplicationID: applicationID, Amount: amount}
	if err := c.post(ctx, "/api/payments/create-repayment-intent", req, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

type confirmPaymentRequest struct {
	PaymentIntentID string `json:"paymentIntentId"`
}

// ConfirmPayment reports a completed processor payment back to the backend.
func (c *Client) ConfirmPayment(ctx context.Context, paymentIntentID string) error {
	return c.post(ctx, "/api/payments/confirm", confirmPaymentRequest{PaymentIntentID: paymentIntentID}, nil)
}
