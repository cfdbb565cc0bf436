package api

import "context"

// Repayments lists installments paid against an application.
func (c *Client) Repayments(ctx context.Context, applicationID string) ([]Repayment, error) {
	var reps []Repayment
	if err := c.get(ctx, "/api/repayments/"+applicationID, nil, &reps); err != nil {
		return nil, err
	}
	return reps, nil
}

type repaymentInput struct {
	Amount          float64 `json:"amount"`
	PaymentIntentID string  `json:"paymentIntentId,omitempty"`
}

// RecordRepayment records an installment against an application, optionally
// referencing a confirmed payment intent.
func (c *Client) RecordRepayment(ctx context.Context, applicationID string, amount float64, paymentIntentID string) (*Repayment, error) {
	var rep Repayment
	input := repaymentInput{Amount: amount, PaymentIntentID: paymentIntentID}
	if err := c.post(ctx, "/api/repayments/"+applicationID, input, &rep); err != nil {
		return nil, err
	}
	return &rep, nil
}
