// Package stub is an in-memory LoanLink backend for local development and
// integration tests. It mirrors the wire contract the client consumes,
// including the social sign-in sentinel credential, duplicate-account
// conflicts, and suspension flags. It is a test double, not a product
// backend.
package stub

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"loanlink/internal/platform/config"
)

// Server holds the stub backend's state and configuration.
type Server struct {
	store  *store
	tokens *tokenIssuer
	logger *slog.Logger
}

// ServerOption configures optional Server dependencies.
type ServerOption func(*Server)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a stub backend from config.
func NewServer(cfg config.Stub, opts ...ServerOption) *Server {
	s := &Server{
		store:  newStore(),
		tokens: newTokenIssuer(cfg.JWTSigningKey, cfg.TokenTTL),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Handler builds the HTTP router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		// The contact form accepts submissions from visitors too.
		r.Post("/contact", s.handleSendContact)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)
			r.Get("/auth/me", s.handleMe)
			r.Post("/auth/logout", s.handleLogout)

			r.Route("/loans", func(r chi.Router) {
				r.Get("/", s.handleListLoans)
				r.Post("/", s.requireRole("manager", s.handleCreateLoan))
				r.Get("/{id}", s.handleGetLoan)
				r.Put("/{id}", s.requireRole("manager", s.handleUpdateLoan))
				r.Delete("/{id}", s.requireRole("manager", s.handleDeleteLoan))
			})

			r.Route("/applications", func(r chi.Router) {
				r.Get("/", s.requireRole("manager", s.handleListApplications))
				r.Get("/my-loans", s.handleMyApplications)
				r.Post("/", s.handleSubmitApplication)
				r.Patch("/{id}/status", s.requireRole("manager", s.handleUpdateApplicationStatus))
				r.Delete("/{id}", s.handleDeleteApplication)
			})

			r.Route("/repayments", func(r chi.Router) {
				r.Get("/{applicationID}", s.handleListRepayments)
				r.Post("/{applicationID}", s.handleRecordRepayment)
			})

			r.Get("/contact", s.requireRole("admin", s.handleListContacts))
			r.Get("/contact/my-messages", s.handleMyContacts)
			r.Get("/contact/{id}", s.handleGetContact)
			r.Patch("/contact/{id}/status", s.requireRole("admin", s.handleUpdateContactStatus))
			r.Delete("/contact/{id}", s.requireRole("admin", s.handleDeleteContact))

			r.Route("/users", func(r chi.Router) {
				r.Get("/", s.requireRole("admin", s.handleListUsers))
				r.Put("/{id}/role", s.requireRole("admin", s.handleUpdateUserRole))
				r.Put("/{id}/suspend", s.requireRole("admin", s.handleSuspendUser))
				r.Put("/{id}/unsuspend", s.requireRole("admin", s.handleUnsuspendUser))
			})

			r.Route("/payments", func(r chi.Router) {
				r.Post("/create-intent", s.handleCreateIntent)
				r.Post("/create-repayment-intent", s.handleCreateRepaymentIntent)
				r.Post("/confirm", s.handleConfirmPayment)
			})
		})
	})
	return r
}

type contextKey string

const userKey contextKey = "stub.user"

// authenticate verifies the bearer token and loads the caller's user record.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || raw == "" {
			respondError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		userID, err := s.tokens.Verify(raw)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		rec, err := s.store.userByID(userID)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "unknown user")
			return
		}
		if rec.IsSuspended {
			respondError(w, http.StatusForbidden, "account is suspended")
			return
		}
		ctx := context.WithValue(r.Context(), userKey, rec)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// currentUser returns the authenticated caller. Only valid behind authenticate.
func currentUser(r *http.Request) *userRecord {
	rec, _ := r.Context().Value(userKey).(*userRecord)
	return rec
}

// requireRole gates a handler on the caller's role.
func (s *Server) requireRole(role string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if rec := currentUser(r); rec == nil || rec.Role != role {
			respondError(w, http.StatusForbidden, "insufficient role")
			return
		}
		next(w, r)
	}
}
