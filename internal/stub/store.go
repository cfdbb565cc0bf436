package stub

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"loanlink/internal/api"
	"loanlink/internal/sentinel"
)

// userRecord is the stub's user row: the wire shape plus server-only fields.
type userRecord struct {
	api.User
	passwordHash []byte
	social       bool
	createdAt    time.Time
}

// store is the stub's in-memory database. All access goes through the mutex.
type store struct {
	mu           sync.RWMutex
	users        map[string]*userRecord // keyed by id
	emails       map[string]string      // email -> id
	loans        map[string]api.Loan
	applications map[string]api.Application
	repayments   map[string][]api.Repayment // keyed by application id
	contacts     map[string]api.ContactMessage
}

func newStore() *store {
	return &store{
		users:        make(map[string]*userRecord),
		emails:       make(map[string]string),
		loans:        make(map[string]api.Loan),
		applications: make(map[string]api.Application),
		repayments:   make(map[string][]api.Repayment),
		contacts:     make(map[string]api.ContactMessage),
	}
}

func (s *store) createUser(rec *userRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.emails[rec.Email]; taken {
		return fmt.Errorf("user %s: %w", rec.Email, sentinel.ErrConflict)
	}
	s.users[rec.ID] = rec
	s.emails[rec.Email] = rec.ID
	return nil
}

func (s *store) userByEmail(email string) (*userRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emails[email]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", email, sentinel.ErrNotFound)
	}
	rec := *s.users[id]
	return &rec, nil
}

func (s *store) userByID(id string) (*userRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, sentinel.ErrNotFound)
	}
	copied := *rec
	return &copied, nil
}

func (s *store) updateUser(id string, apply func(*userRecord)) (*userRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, sentinel.ErrNotFound)
	}
	apply(rec)
	copied := *rec
	return &copied, nil
}

func (s *store) listUsers() []api.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]api.User, 0, len(s.users))
	for _, rec := range s.users {
		out = append(out, rec.User)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out
}

func (s *store) putLoan(loan api.Loan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loans[loan.ID] = loan
}

func (s *store) loan(id string) (api.Loan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	loan, ok := s.loans[id]
	if !ok {
		return api.Loan{}, fmt.Errorf("loan %s: %w", id, sentinel.ErrNotFound)
	}
	return loan, nil
}

func (s *store) deleteLoan(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.loans[id]; !ok {
		return fmt.Errorf("loan %s: %w", id, sentinel.ErrNotFound)
	}
	delete(s.loans, id)
	return nil
}

func (s *store) listLoans(showOnHome bool) []api.Loan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]api.Loan, 0, len(s.loans))
	for _, loan := range s.loans {
		if showOnHome && !loan.ShowOnHome {
			continue
		}
		out = append(out, loan)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *store) putApplication(app api.Application) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applications[app.ID] = app
}

func (s *store) application(id string) (api.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	app, ok := s.applications[id]
	if !ok {
		return api.Application{}, fmt.Errorf("application %s: %w", id, sentinel.ErrNotFound)
	}
	return app, nil
}

func (s *store) updateApplication(id string, apply func(*api.Application)) (api.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	app, ok := s.applications[id]
	if !ok {
		return api.Application{}, fmt.Errorf("application %s: %w", id, sentinel.ErrNotFound)
	}
	apply(&app)
	s.applications[id] = app
	return app, nil
}

func (s *store) deleteApplication(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.applications[id]; !ok {
		return fmt.Errorf("application %s: %w", id, sentinel.ErrNotFound)
	}
	delete(s.applications, id)
	delete(s.repayments, id)
	return nil
}

func (s *store) listApplications(status, userEmail string) []api.Application {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]api.Application, 0, len(s.applications))
	for _, app := range s.applications {
		if status != "" && app.Status != status {
			continue
		}
		if userEmail != "" && app.UserEmail != userEmail {
			continue
		}
		out = append(out, app)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *store) addRepayment(rep api.Repayment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repayments[rep.ApplicationID] = append(s.repayments[rep.ApplicationID], rep)
}

func (s *store) listRepayments(applicationID string) []api.Repayment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]api.Repayment, len(s.repayments[applicationID]))
	copy(out, s.repayments[applicationID])
	return out
}

func (s *store) putContact(msg api.ContactMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contacts[msg.ID] = msg
}

func (s *store) contact(id string) (api.ContactMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msg, ok := s.contacts[id]
	if !ok {
		return api.ContactMessage{}, fmt.Errorf("contact message %s: %w", id, sentinel.ErrNotFound)
	}
	return msg, nil
}

func (s *store) updateContact(id string, apply func(*api.ContactMessage)) (api.ContactMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg, ok := s.contacts[id]
	if !ok {
		return api.ContactMessage{}, fmt.Errorf("contact message %s: %w", id, sentinel.ErrNotFound)
	}
	apply(&msg)
	s.contacts[id] = msg
	return msg, nil
}

func (s *store) deleteContact(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contacts[id]; !ok {
		return fmt.Errorf("contact message %s: %w", id, sentinel.ErrNotFound)
	}
	delete(s.contacts, id)
	return nil
}

func (s *store) listContacts(email string) []api.ContactMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]api.ContactMessage, 0, len(s.contacts))
	for _, msg := range s.contacts {
		if email != "" && msg.Email != email {
			continue
		}
		out = append(out, msg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
