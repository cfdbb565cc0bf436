package stub

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"loanlink/internal/api"
)

func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	respondJSON(w, http.StatusOK, s.store.listApplications(status, ""))
}

func (s *Server) handleMyApplications(w http.ResponseWriter, r *http.Request) {
	rec := currentUser(r)
	respondJSON(w, http.StatusOK, s.store.listApplications("", rec.Email))
}

func (s *Server) handleSubmitApplication(w http.ResponseWriter, r *http.Request) {
	var input api.ApplicationInput
	if !decodeBody(w, r, &input) {
		return
	}
	if input.LoanID == "" || input.LoanAmount <= 0 {
		respondError(w, http.StatusBadRequest, "loanId and a positive loanAmount are required")
		return
	}
	if _, err := s.store.loan(input.LoanID); err != nil {
		respondStoreError(w, err)
		return
	}
	app := api.Application{
		ID:                   uuid.NewString(),
		LoanID:               input.LoanID,
		LoanTitle:            input.LoanTitle,
		UserEmail:            currentUser(r).Email,
		FirstName:            input.FirstName,
		LastName:             input.LastName,
		ContactNumber:        input.ContactNumber,
		NationalID:           input.NationalID,
		Address:              input.Address,
		IncomeSource:         input.IncomeSource,
		MonthlyIncome:        input.MonthlyIncome,
		LoanAmount:           input.LoanAmount,
		InterestRate:         input.InterestRate,
		ReasonForLoan:        input.ReasonForLoan,
		ExtraNotes:           input.ExtraNotes,
		Status:               "Pending",
		ApplicationFeeStatus: "Unpaid",
		CreatedAt:            time.Now(),
	}
	s.store.putApplication(app)
	respondJSON(w, http.StatusCreated, app)
}

type statusUpdate struct {
	Status string `json:"status"`
}

func (s *Server) handleUpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	var update statusUpdate
	if !decodeBody(w, r, &update) {
		return
	}
	app, err := s.store.updateApplication(chi.URLParam(r, "id"), func(app *api.Application) {
		app.Status = update.Status
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, app)
}

func (s *Server) handleDeleteApplication(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	app, err := s.store.application(id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	rec := currentUser(r)
	// Borrowers may only withdraw their own pending applications.
	if rec.Role != "manager" && (app.UserEmail != rec.Email || app.Status != "Pending") {
		respondError(w, http.StatusForbidden, "only pending applications can be withdrawn")
		return
	}
	if err := s.store.deleteApplication(id); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "application deleted"})
}

func (s *Server) handleListRepayments(w http.ResponseWriter, r *http.Request) {
	appID := chi.URLParam(r, "applicationID")
	if _, err := s.store.application(appID); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, s.store.listRepayments(appID))
}

type repaymentRequest struct {
	Amount          float64 `json:"amount"`
	PaymentIntentID string  `json:"paymentIntentId"`
}

func (s *Server) handleRecordRepayment(w http.ResponseWriter, r *http.Request) {
	appID := chi.URLParam(r, "applicationID")
	app, err := s.store.application(appID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if app.Status != "Approved" {
		respondError(w, http.StatusBadRequest, "repayments require an approved application")
		return
	}
	var req repaymentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Amount <= 0 {
		respondError(w, http.StatusBadRequest, "a positive amount is required")
		return
	}
	rep := api.Repayment{
		ID:            uuid.NewString(),
		ApplicationID: appID,
		Amount:        req.Amount,
		Status:        "Paid",
		PaidAt:        time.Now(),
	}
	s.store.addRepayment(rep)
	respondJSON(w, http.StatusCreated, rep)
}
