package session

import (
	"time"

	"loanlink/internal/api"
	"loanlink/internal/identity"
)

// Session is the in-memory record of an established session.
type Session struct {
	User         api.User
	Token        string
	IssuedAt     time.Time
	LastActivity time.Time
}

// RegisterParams carries the fields of a new account. Role defaults to the
// configured default when empty.
type RegisterParams struct {
	Name     string
	Email    string
	PhotoURL string
	Role     string
	Password string
}

// LoginResult reports how a login concluded beyond plain success.
//
// NeedsRoleSelection is set when a social sign-in found no account and had no
// role to provision one with: no session was established, Identity carries
// the bootstrap record, and the caller should ask for a role and call again.
// WasAlreadyRegistered is set when a registration-flow social sign-in
// discovered the account already existed; the session is established, but
// the caller should route to sign-in rather than continue sign-up.
type LoginResult struct {
	User                 *api.User
	Identity             *identity.Identity
	NeedsRoleSelection   bool
	WasAlreadyRegistered bool
}
