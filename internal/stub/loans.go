package stub

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"loanlink/internal/api"
)

func (s *Server) handleListLoans(w http.ResponseWriter, r *http.Request) {
	showOnHome := r.URL.Query().Get("showOnHome") == "true"
	respondJSON(w, http.StatusOK, s.store.listLoans(showOnHome))
}

func (s *Server) handleGetLoan(w http.ResponseWriter, r *http.Request) {
	loan, err := s.store.loan(chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, loan)
}

func (s *Server) handleCreateLoan(w http.ResponseWriter, r *http.Request) {
	var input api.LoanInput
	if !decodeBody(w, r, &input) {
		return
	}
	if input.Title == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}
	loan := api.Loan{
		ID:           uuid.NewString(),
		Title:        input.Title,
		Category:     input.Category,
		Description:  input.Description,
		InterestRate: input.InterestRate,
		MaxLoanLimit: input.MaxLoanLimit,
		Images:       input.Images,
		ShowOnHome:   input.ShowOnHome,
		EMIPlans:     input.EMIPlans,
		CreatedAt:    time.Now(),
	}
	s.store.putLoan(loan)
	respondJSON(w, http.StatusCreated, loan)
}

func (s *Server) handleUpdateLoan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := s.store.loan(id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	var input api.LoanInput
	if !decodeBody(w, r, &input) {
		return
	}
	existing.Title = input.Title
	existing.Category = input.Category
	existing.Description = input.Description
	existing.InterestRate = input.InterestRate
	existing.MaxLoanLimit = input.MaxLoanLimit
	existing.Images = input.Images
	existing.ShowOnHome = input.ShowOnHome
	existing.EMIPlans = input.EMIPlans
	s.store.putLoan(existing)
	respondJSON(w, http.StatusOK, existing)
}

func (s *Server) handleDeleteLoan(w http.ResponseWriter, r *http.Request) {
	if err := s.store.deleteLoan(chi.URLParam(r, "id")); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "loan deleted"})
}
