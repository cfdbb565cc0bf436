package stub

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListUsers(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.store.listUsers())
}

type roleUpdate struct {
	Role string `json:"role"`
}

func (s *Server) handleUpdateUserRole(w http.ResponseWriter, r *http.Request) {
	var update roleUpdate
	if !decodeBody(w, r, &update) {
		return
	}
	if update.Role == "" {
		respondError(w, http.StatusBadRequest, "role is required")
		return
	}
	rec, err := s.store.updateUser(chi.URLParam(r, "id"), func(rec *userRecord) {
		rec.Role = update.Role
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rec.User)
}

type suspendRequest struct {
	Reason string `json:"reason"`
}

func (s *Server) handleSuspendUser(w http.ResponseWriter, r *http.Request) {
	var req suspendRequest
	if !decodeBody(w, r, &req) {
		return
	}
	rec, err := s.store.updateUser(chi.URLParam(r, "id"), func(rec *userRecord) {
		rec.IsSuspended = true
		rec.SuspendReason = req.Reason
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rec.User)
}

func (s *Server) handleUnsuspendUser(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.updateUser(chi.URLParam(r, "id"), func(rec *userRecord) {
		rec.IsSuspended = false
		rec.SuspendReason = ""
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rec.User)
}
