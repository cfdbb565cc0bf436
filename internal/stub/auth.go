package stub

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mssola/useragent"
	"golang.org/x/crypto/bcrypt"

	"loanlink/internal/api"
)

// socialCredential is the fixed password the real backend accepts for
// accounts provisioned through the social sign-in flow. Password accounts
// must never authenticate with it.
const socialCredential = "google-auth"

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "name, email and password are required")
		return
	}
	if req.Role == "" {
		req.Role = "borrower"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	rec := &userRecord{
		User: api.User{
			ID:       uuid.NewString(),
			Name:     req.Name,
			Email:    req.Email,
			PhotoURL: req.PhotoURL,
			Role:     req.Role,
		},
		passwordHash: hash,
		social:       strings.HasPrefix(req.Password, socialCredential),
		createdAt:    time.Now(),
	}
	if err := s.store.createUser(rec); err != nil {
		respondStoreError(w, err)
		return
	}

	token, err := s.tokens.Issue(rec.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	s.logger.Info("account registered", "user_id", rec.ID, "role", rec.Role, "device", deviceName(r))
	respondJSON(w, http.StatusCreated, api.AuthResponse{User: rec.User, Token: token})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rec, err := s.store.userByEmail(req.Email)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if !s.checkCredential(rec, req.Password) {
		respondError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	// Suspension rides along in a 200 response; the client decides how to
	// present it.
	token, err := s.tokens.Issue(rec.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	s.logger.Info("login", "user_id", rec.ID, "suspended", rec.IsSuspended, "device", deviceName(r))
	respondJSON(w, http.StatusOK, api.AuthResponse{User: rec.User, Token: token})
}

// checkCredential validates a password against the stored hash. The social
// sentinel only authenticates accounts provisioned through the social flow.
func (s *Server) checkCredential(rec *userRecord, password string) bool {
	if password == socialCredential {
		return rec.social
	}
	return bcrypt.CompareHashAndPassword(rec.passwordHash, []byte(password)) == nil
}

type meResponse struct {
	api.User
	Token string `json:"token,omitempty"`
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	rec := currentUser(r)
	// Refresh the token on every check so long-lived clients keep a valid
	// credential.
	token, err := s.tokens.Issue(rec.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondJSON(w, http.StatusOK, meResponse{User: rec.User, Token: token})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	// Tokens are stateless; there is nothing to revoke server-side.
	s.logger.Info("logout", "user_id", currentUser(r).ID)
	respondJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// deviceName summarizes the caller's user agent for audit logs.
func deviceName(r *http.Request) string {
	ua := useragent.New(r.UserAgent())
	browser, version := ua.Browser()
	if browser == "" {
		return "unknown"
	}
	return fmt.Sprintf("%s %s on %s", browser, version, ua.OSInfo().Name)
}
