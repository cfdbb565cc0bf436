package api

import "time"

// This file mirrors the wire shapes of the LoanLink backend, which is
// consumed as a black box. Field names follow its JSON contract.

// User is the authoritative user record as returned by the primary backend.
// All role and suspension decisions originate there.
type User struct {
	ID            string `json:"_id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	PhotoURL      string `json:"photoURL"`
	Role          string `json:"role"`
	IsSuspended   bool   `json:"isSuspended"`
	SuspendReason string `json:"suspendReason,omitempty"`
}

// AuthResponse is returned by register and login. The token is optional: it is
// persisted locally for environments where cross-origin cookies are unreliable.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token,omitempty"`
}

// RegisterRequest creates an account in the primary backend.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhotoURL string `json:"photoURL"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// Loan is a loan product offered on the portal.
type Loan struct {
	ID           string    `json:"_id"`
	Title        string    `json:"title"`
	Category     string    `json:"category"`
	Description  string    `json:"description"`
	InterestRate float64   `json:"interestRate"`
	MaxLoanLimit float64   `json:"maxLoanLimit"`
	Images       []string  `json:"images,omitempty"`
	ShowOnHome   bool      `json:"showOnHome"`
	EMIPlans     []int     `json:"emiPlans,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}

// LoanInput creates or updates a loan product (manager role).
type LoanInput struct {
	Title        string   `json:"title"`
	Category     string   `json:"category"`
	Description  string   `json:"description"`
	InterestRate float64  `json:"interestRate"`
	MaxLoanLimit float64  `json:"maxLoanLimit"`
	Images       []string `json:"images,omitempty"`
	ShowOnHome   bool     `json:"showOnHome"`
	EMIPlans     []int    `json:"emiPlans,omitempty"`
}

// Application is a borrower's loan application.
type Application struct {
	ID                   string    `json:"_id"`
	LoanID               string    `json:"loanId"`
	LoanTitle            string    `json:"loanTitle"`
	UserEmail            string    `json:"userEmail"`
	FirstName            string    `json:"firstName"`
	LastName             string    `json:"lastName"`
	ContactNumber        string    `json:"contactNumber"`
	NationalID           string    `json:"nationalId"`
	Address              string    `json:"address"`
	IncomeSource         string    `json:"incomeSource"`
	MonthlyIncome        float64   `json:"monthlyIncome"`
	LoanAmount           float64   `json:"loanAmount"`
	InterestRate         float64   `json:"interestRate"`
	ReasonForLoan        string    `json:"reasonForLoan"`
	ExtraNotes           string    `json:"extraNotes,omitempty"`
	Status               string    `json:"status"`
	ApplicationFeeStatus string    `json:"applicationFeeStatus"`
	CreatedAt            time.Time `json:"createdAt,omitempty"`
}

// ApplicationInput submits a new loan application.
type ApplicationInput struct {
	LoanID        string  `json:"loanId"`
	LoanTitle     string  `json:"loanTitle"`
	UserEmail     string  `json:"userEmail"`
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	ContactNumber string  `json:"contactNumber"`
	NationalID    string  `json:"nationalId"`
	Address       string  `json:"address"`
	IncomeSource  string  `json:"incomeSource"`
	MonthlyIncome float64 `json:"monthlyIncome"`
	LoanAmount    float64 `json:"loanAmount"`
	InterestRate  float64 `json:"interestRate"`
	ReasonForLoan string  `json:"reasonForLoan"`
	ExtraNotes    string  `json:"extraNotes,omitempty"`
}

// Repayment is one installment paid against an approved application.
type Repayment struct {
	ID            string    `json:"_id"`
	ApplicationID string    `json:"applicationId"`
	Amount        float64   `json:"amount"`
	Status        string    `json:"status"`
	PaidAt        time.Time `json:"paidAt,omitempty"`
}

// ContactMessage is a message submitted through the contact form.
type ContactMessage struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// PaymentIntent is the opaque handle returned by the payment endpoints.
// The processor SDK and its UI live outside this client.
type PaymentIntent struct {
	ClientSecret    string  `json:"clientSecret"`
	PaymentIntentID string  `json:"paymentIntentId"`
	Amount          float64 `json:"amount"`
}
