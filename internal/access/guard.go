package access

import (
	"context"
	"sync"
)

// GuardState is the route-guard decision for one (route, session) pair.
type GuardState int

const (
	// Loading means the session provider has not resolved yet; the caller
	// shows a pending indicator and must not redirect.
	Loading GuardState = iota
	// Unauthenticated redirects to login.
	Unauthenticated
	// AuthenticatedAllowed renders the guarded content.
	AuthenticatedAllowed
	// AuthenticatedDenied redirects to root.
	AuthenticatedDenied
)

func (s GuardState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Unauthenticated:
		return "unauthenticated"
	case AuthenticatedAllowed:
		return "allowed"
	case AuthenticatedDenied:
		return "denied"
	default:
		return "unknown"
	}
}

// Session is the resolved identity consumed by the guard.
type Session struct {
	UserID                string
	Roles                 []Role
	PasswordResetRequired bool
}

// SessionProvider resolves the current session asynchronously. A nil session
// with a nil error means "no one is logged in".
type SessionProvider interface {
	Resolve(ctx context.Context) (*Session, error)
}

// Guard evaluates route entry against an async session resolution. It starts
// in Loading and transitions exactly once per Evaluate call; a Guard that has
// been closed suppresses late resolutions so a stale response can never
// overwrite the decision of a newer evaluation.
type Guard struct {
	provider SessionProvider

	mu     sync.Mutex
	seq    uint64
	state  GuardState
	closed bool
}

func NewGuard(provider SessionProvider) *Guard {
	return &Guard{provider: provider, state: Loading}
}

// State returns the most recent guard decision.
func (g *Guard) State() GuardState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Close marks the guard as unmounted; resolutions that complete afterwards
// are discarded.
func (g *Guard) Close() {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()
}

// Evaluate resolves the session and decides entry for a route requiring any
// of required. Resolution failures count as unauthenticated rather than
// propagating — the guard's job is a rendering decision, not error reporting.
//
// Precedence override: while the session carries PasswordResetRequired, only
// the login route is allowed, so an authenticated user is still shown the
// login surface until the forced password change completes.
func (g *Guard) Evaluate(ctx context.Context, route Route, required []Role) GuardState {
	g.mu.Lock()
	g.seq++
	mySeq := g.seq
	g.state = Loading
	g.mu.Unlock()

	session, err := g.provider.Resolve(ctx)

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed || g.seq != mySeq {
		// A newer evaluation superseded this one, or the guard unmounted.
		return g.state
	}

	switch {
	case err != nil || session == nil:
		g.state = Unauthenticated
	case session.PasswordResetRequired:
		if route == RouteLogin {
			g.state = AuthenticatedAllowed
		} else {
			g.state = AuthenticatedDenied
		}
	case CanEnter(required, session.Roles):
		g.state = AuthenticatedAllowed
	default:
		g.state = AuthenticatedDenied
	}
	return g.state
}
