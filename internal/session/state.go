package session

// State is the session lifecycle state.
//
// Transitions:
//
//	Unauthenticated -> Authenticating  (login/register started)
//	Authenticating  -> Authenticated   (backend accepted)
//	Authenticating  -> Unauthenticated (backend rejected)
//	Authenticated   -> IdleWarning     (idle threshold approaching)
//	IdleWarning     -> Authenticated   (activity observed)
//	IdleWarning     -> Expired         (idle timeout reached)
//	Authenticated   -> Expired         (mid-session 401)
//	Authenticated   -> Unauthenticated (explicit logout)
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticating  State = "authenticating"
	StateAuthenticated   State = "authenticated"
	StateIdleWarning     State = "idle_warning"
	StateExpired         State = "expired"
)

// active reports whether the state represents a live session (one that the
// idle monitor should track and a 401 can expire).
func (s State) active() bool {
	return s == StateAuthenticated || s == StateIdleWarning
}
