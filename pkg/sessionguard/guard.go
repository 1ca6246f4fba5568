package sessionguard

import (
	"context"
	"errors"
	"sync"

	"github.com/Bini-2002/campuscraft/pkg/campusclient"
)

// Session errors with distinct client behavior.
var (
	// ErrNotVerified is raised when credentials check out but the account has
	// not completed email verification. No session state is touched.
	ErrNotVerified = errors.New("Account not verified. Please verify your email before logging in.")

	// ErrSessionSuperseded is returned to a login whose response arrived after
	// a newer logout or login already changed the session.
	ErrSessionSuperseded = errors.New("session changed while the login was in flight")
)

// API is the backend surface the guard depends on. *campusclient.Client
// satisfies it.
type API interface {
	Login(ctx context.Context, req campusclient.LoginRequest) (*campusclient.LoginResult, error)
	Register(ctx context.Context, req campusclient.RegisterRequest) (*campusclient.RegisterResult, error)
	VerifyCode(ctx context.Context, req campusclient.VerifyCodeRequest) (*campusclient.VerifyResult, error)
	ResendCode(ctx context.Context, email, userType string) error
	SetToken(token string)
	ClearToken()
}

// Guard owns the in-memory session and is the single source of truth for
// auth state. Construct with New; the zero value is not usable.
type Guard struct {
	api   API
	store CredentialStore
	nav   Navigator

	mu sync.Mutex

	// generation increments on every session change. In-flight logins
	// snapshot it and abandon their result if it moved.
	generation uint64

	initialized bool
	token       string
	identity    *campusclient.User
}

// New constructs a Guard. Navigator may be nil when no navigation surface
// exists (e.g. headless tools); redirects are then dropped.
func New(api API, store CredentialStore, nav Navigator) *Guard {
	if nav == nil {
		nav = NavigatorFunc(func(Route) {})
	}
	return &Guard{
		api:   api,
		store: store,
		nav:   nav,
	}
}

// Initialize restores any persisted session. Until it runs, Authorize
// answers Loading. A corrupt or unreadable store surfaces as an error but
// still leaves the guard initialized and logged out.
func (g *Guard) Initialize() error {
	creds, err := g.store.Load()

	g.mu.Lock()
	defer g.mu.Unlock()

	g.initialized = true

	if err != nil {
		return err
	}
	if creds == nil {
		return nil
	}

	g.token = creds.Token
	g.identity = creds.User
	g.api.SetToken(creds.Token)
	return nil
}

// Identity returns the logged-in user, or nil.
func (g *Guard) Identity() *campusclient.User {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.identity
}

// Login authenticates and, on success, stores the session and navigates to
// the role's landing route. An unverified account yields ErrNotVerified
// before any state changes. If the session changed while the request was in
// flight, the result is discarded and ErrSessionSuperseded returned.
func (g *Guard) Login(ctx context.Context, email, password, userType string) (*campusclient.User, error) {
	g.mu.Lock()
	snapshot := g.generation
	g.mu.Unlock()

	result, err := g.api.Login(ctx, campusclient.LoginRequest{
		Email:    email,
		Password: password,
		UserType: userType,
	})
	if err != nil {
		if apiErr := campusclient.AsAPIError(err); apiErr != nil && apiErr.Code == campusclient.CodeAccountNotVerified {
			return nil, ErrNotVerified
		}
		return nil, err
	}

	// The verification gate holds even against a backend that answers 2xx
	// for an unverified account. Checked before any state changes.
	if result == nil || result.User == nil || !result.User.IsVerified {
		return nil, ErrNotVerified
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.generation != snapshot {
		return nil, ErrSessionSuperseded
	}

	g.generation++
	g.token = result.Token
	g.identity = result.User
	g.api.SetToken(result.Token)

	if err := g.store.Save(&Credentials{Token: result.Token, User: result.User}); err != nil {
		// The in-memory session stands; persistence failure only costs the
		// session across restarts.
		g.nav.Navigate(LandingRoute(result.User.UserType))
		return result.User, err
	}

	g.nav.Navigate(LandingRoute(result.User.UserType))
	return result.User, nil
}

// Register validates the payload locally and creates the account. No session
// is established; the account must verify and then log in.
func (g *Guard) Register(ctx context.Context, reg Registration) (*campusclient.RegisterResult, error) {
	if err := reg.validate(); err != nil {
		return nil, err
	}
	return g.api.Register(ctx, reg.request())
}

// VerifyAccount redeems an emailed verification code. Failures carry the
// server's message when it sent one.
func (g *Guard) VerifyAccount(ctx context.Context, email, userType, code string) (*campusclient.User, error) {
	result, err := g.api.VerifyCode(ctx, campusclient.VerifyCodeRequest{
		Email:    email,
		UserType: userType,
		Code:     code,
	})
	if err != nil {
		return nil, err
	}
	return result.User, nil
}

// ResendVerification asks the server for a fresh verification code.
func (g *Guard) ResendVerification(ctx context.Context, email, userType string) error {
	return g.api.ResendCode(ctx, email, userType)
}

// Logout clears the session locally and navigates to the public home page.
// It never calls the backend and is safe to call when already logged out.
func (g *Guard) Logout() {
	g.mu.Lock()

	g.generation++
	g.token = ""
	g.identity = nil
	g.api.ClearToken()
	// A failed file removal leaves stale credentials on disk but the
	// in-memory logout always succeeds.
	_ = g.store.Clear()

	g.mu.Unlock()

	g.nav.Navigate(RouteHome)
}

// UpdateUser replaces the in-memory identity and persists it alongside the
// existing token. With no active session it is a no-op.
func (g *Guard) UpdateUser(user *campusclient.User) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.identity == nil || g.token == "" || user == nil {
		return nil
	}

	g.identity = user
	return g.store.Save(&Credentials{Token: g.token, User: user})
}

// Authorize checks access to a view. requiredRole is the role the view
// belongs to, or empty for any authenticated user. Denials carry the
// redirect the caller should perform: login when nobody is signed in, the
// viewer's own landing route when the role does not match.
func (g *Guard) Authorize(requiredRole string) Decision {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.initialized {
		return Decision{State: DecisionLoading}
	}

	if g.identity == nil {
		return Decision{State: DecisionDeniedNoSession, Redirect: RouteLogin}
	}

	if requiredRole != "" && g.identity.UserType != requiredRole {
		return Decision{
			State:    DecisionDeniedWrongRole,
			Redirect: LandingRoute(g.identity.UserType),
		}
	}

	return Decision{State: DecisionGranted}
}
