package stub

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"loanlink/internal/api"
)

func (s *Server) handleSendContact(w http.ResponseWriter, r *http.Request) {
	var input api.ContactInput
	if !decodeBody(w, r, &input) {
		return
	}
	if input.Email == "" || input.Message == "" {
		respondError(w, http.StatusBadRequest, "email and message are required")
		return
	}
	msg := api.ContactMessage{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Email:     input.Email,
		Subject:   input.Subject,
		Message:   input.Message,
		Status:    "Unread",
		CreatedAt: time.Now(),
	}
	s.store.putContact(msg)
	respondJSON(w, http.StatusCreated, msg)
}

func (s *Server) handleListContacts(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.store.listContacts(""))
}

func (s *Server) handleMyContacts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.store.listContacts(currentUser(r).Email))
}

func (s *Server) handleGetContact(w http.ResponseWriter, r *http.Request) {
	msg, err := s.store.contact(chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	rec := currentUser(r)
	if rec.Role != "admin" && msg.Email != rec.Email {
		respondError(w, http.StatusForbidden, "not your message")
		return
	}
	respondJSON(w, http.StatusOK, msg)
}

func (s *Server) handleUpdateContactStatus(w http.ResponseWriter, r *http.Request) {
	var update statusUpdate
	if !decodeBody(w, r, &update) {
		return
	}
	msg, err := s.store.updateContact(chi.URLParam(r, "id"), func(msg *api.ContactMessage) {
		msg.Status = update.Status
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, msg)
}

func (s *Server) handleDeleteContact(w http.ResponseWriter, r *http.Request) {
	if err := s.store.deleteContact(chi.URLParam(r, "id")); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "message deleted"})
}
