package stub

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"loanlink/internal/api"
)

// SeedUser creates an account directly in the store, bypassing the HTTP
// surface. Development setups and tests use it to bootstrap admin and
// manager accounts that the public register endpoint cannot create.
func (s *Server) SeedUser(name, email, password, role string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	rec := &userRecord{
		User: api.User{
			ID:    uuid.NewString(),
			Name:  name,
			Email: email,
			Role:  role,
		},
		passwordHash: hash,
		createdAt:    time.Now(),
	}
	if err := s.store.createUser(rec); err != nil {
		return "", err
	}
	return rec.ID, nil
}

// SeedLoan inserts a loan product directly, for development fixtures.
func (s *Server) SeedLoan(loan api.Loan) api.Loan {
	if loan.ID == "" {
		loan.ID = uuid.NewString()
	}
	if loan.CreatedAt.IsZero() {
		loan.CreatedAt = time.Now()
	}
	s.store.putLoan(loan)
	return loan
}
