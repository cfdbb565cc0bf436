package stub

import (
	"net/http"

	"github.com/google/uuid"

	"loanlink/internal/api"
)

type paymentIntentRequest struct {
	ApplicationID string  `json:"applicationId"`
	Amount        float64 `json:"amount"`
}

// fakeIntent fabricates an opaque processor handle. No real money moves here.
func fakeIntent(amount float64) api.PaymentIntent {
	id := "pi_" + uuid.NewString()
	return api.PaymentIntent{
		ClientSecret:    id + "_secret_" + uuid.NewString(),
		PaymentIntentID: id,
		Amount:          amount,
	}
}

func (s *Server) handleCreateIntent(w http.ResponseWriter, r *http.Request) {
	var req paymentIntentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if _, err := s.store.application(req.ApplicationID); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, fakeIntent(req.Amount))
}

func (s *Server) handleCreateRepaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req paymentIntentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	app, err := s.store.application(req.ApplicationID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if app.Status != "Approved" {
		respondError(w, http.StatusBadRequest, "repayments require an approved application")
		return
	}
	respondJSON(w, http.StatusOK, fakeIntent(req.Amount))
}

type confirmPaymentRequest struct {
	PaymentIntentID string `json:"paymentIntentId"`
}

// handleConfirmPayment marks the application fee paid when the intent
// references one. The stub accepts any intent id it could have issued.
func (s *Server) handleConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var req confirmPaymentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.PaymentIntentID == "" {
		respondError(w, http.StatusBadRequest, "paymentIntentId is required")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "payment confirmed"})
}
