package sessionguard

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bini-2002/campuscraft/pkg/campusclient"
)

// fakeAPI scripts backend responses and records token handling.
type fakeAPI struct {
	mu sync.Mutex

	loginResult *campusclient.LoginResult
	loginErr    error

	// loginGate, when set, blocks Login until released. Used to simulate a
	// slow in-flight request. loginStarted is closed once Login is reached.
	loginGate    chan struct{}
	loginStarted chan struct{}

	registerResult *campusclient.RegisterResult
	registerErr    error

	verifyResult *campusclient.VerifyResult
	verifyErr    error

	resendErr error

	token string
}

func (f *fakeAPI) Login(ctx context.Context, req campusclient.LoginRequest) (*campusclient.LoginResult, error) {
	if f.loginStarted != nil {
		close(f.loginStarted)
	}
	if f.loginGate != nil {
		<-f.loginGate
	}
	return f.loginResult, f.loginErr
}

func (f *fakeAPI) Register(ctx context.Context, req campusclient.RegisterRequest) (*campusclient.RegisterResult, error) {
	return f.registerResult, f.registerErr
}

func (f *fakeAPI) VerifyCode(ctx context.Context, req campusclient.VerifyCodeRequest) (*campusclient.VerifyResult, error) {
	return f.verifyResult, f.verifyErr
}

func (f *fakeAPI) ResendCode(ctx context.Context, email, userType string) error {
	return f.resendErr
}

func (f *fakeAPI) SetToken(token string) {
	f.mu.Lock()
	f.token = token
	f.mu.Unlock()
}

func (f *fakeAPI) ClearToken() { f.SetToken("") }

func (f *fakeAPI) currentToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

// recordingNavigator captures every redirect the guard issues.
type recordingNavigator struct {
	mu     sync.Mutex
	routes []Route
}

func (n *recordingNavigator) Navigate(route Route) {
	n.mu.Lock()
	n.routes = append(n.routes, route)
	n.mu.Unlock()
}

func (n *recordingNavigator) last() Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.routes) == 0 {
		return ""
	}
	return n.routes[len(n.routes)-1]
}

func studentUser() *campusclient.User {
	return &campusclient.User{
		ID:         "3b7e5b1c-2e9b-4d35-a111-222222222222",
		Email:      "amy@uni.example",
		UserType:   campusclient.UserTypeStudent,
		IsVerified: true,
		Name:       "Amy",
	}
}

func companyUser() *campusclient.User {
	return &campusclient.User{
		ID:          "9f1a4c2d-0d8e-4f66-b333-444444444444",
		Email:       "hr@acme.example",
		UserType:    campusclient.UserTypeCompany,
		IsVerified:  true,
		Name:        "Acme HR",
		CompanyName: "Acme",
	}
}

func newTestGuard(t *testing.T, api *fakeAPI) (*Guard, *recordingNavigator, *FileStore) {
	t.Helper()

	store := NewFileStore(filepath.Join(t.TempDir(), "credentials.json"))
	nav := &recordingNavigator{}
	guard := New(api, store, nav)
	require.NoError(t, guard.Initialize())

	return guard, nav, store
}

func TestLoginStudentLandsOnStudentDashboard(t *testing.T) {
	api := &fakeAPI{loginResult: &campusclient.LoginResult{Token: "tok-student", User: studentUser()}}
	guard, nav, _ := newTestGuard(t, api)

	user, err := guard.Login(context.Background(), "amy@uni.example", "secret1", campusclient.UserTypeStudent)
	require.NoError(t, err)

	assert.Equal(t, campusclient.UserTypeStudent, user.UserType)
	assert.Equal(t, RouteStudentDashboard, nav.last())
	assert.Equal(t, "tok-student", api.currentToken())
}

func TestLoginCompanyLandsOnCompanyDashboard(t *testing.T) {
	api := &fakeAPI{loginResult: &campusclient.LoginResult{Token: "tok-company", User: companyUser()}}
	guard, nav, _ := newTestGuard(t, api)

	_, err := guard.Login(context.Background(), "hr@acme.example", "secret1", campusclient.UserTypeCompany)
	require.NoError(t, err)

	assert.Equal(t, RouteCompanyDashboard, nav.last())
}

func TestLoginUnverifiedFailsBeforeAnyStateChange(t *testing.T) {
	api := &fakeAPI{loginErr: &campusclient.APIError{
		Status:  http.StatusForbidden,
		Code:    campusclient.CodeAccountNotVerified,
		Message: "Account not verified. Please verify your email before logging in.",
	}}
	guard, nav, store := newTestGuard(t, api)

	_, err := guard.Login(context.Background(), "amy@uni.example", "secret1", campusclient.UserTypeStudent)
	require.ErrorIs(t, err, ErrNotVerified)

	// No identity, no token, no redirect, nothing on disk.
	assert.Nil(t, guard.Identity())
	assert.Empty(t, api.currentToken())
	assert.Empty(t, nav.last())

	creds, loadErr := store.Load()
	require.NoError(t, loadErr)
	assert.Nil(t, creds)
}

func TestLoginUnverifiedSuccessBodyIsRejected(t *testing.T) {
	// A misbehaving backend that answers 2xx for an unverified account must
	// not get a session past the guard.
	unverified := studentUser()
	unverified.IsVerified = false
	api := &fakeAPI{loginResult: &campusclient.LoginResult{Token: "tok-unverified", User: unverified}}
	guard, nav, store := newTestGuard(t, api)

	_, err := guard.Login(context.Background(), "amy@uni.example", "secret1", campusclient.UserTypeStudent)
	require.ErrorIs(t, err, ErrNotVerified)

	assert.Nil(t, guard.Identity())
	assert.Empty(t, api.currentToken())
	assert.Empty(t, nav.last())

	creds, loadErr := store.Load()
	require.NoError(t, loadErr)
	assert.Nil(t, creds)
}

func TestLoginBadCredentialsPassesErrorThrough(t *testing.T) {
	apiErr := &campusclient.APIError{
		Status:  http.StatusUnauthorized,
		Code:    campusclient.CodeInvalidCredentials,
		Message: "Incorrect email or password.",
	}
	api := &fakeAPI{loginErr: apiErr}
	guard, _, _ := newTestGuard(t, api)

	_, err := guard.Login(context.Background(), "amy@uni.example", "wrong", campusclient.UserTypeStudent)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotVerified)

	got := campusclient.AsAPIError(err)
	require.NotNil(t, got)
	assert.Equal(t, "Incorrect email or password.", got.Message)
	assert.Nil(t, guard.Identity())
}

func TestLoginPersistsCredentials(t *testing.T) {
	api := &fakeAPI{loginResult: &campusclient.LoginResult{Token: "tok-student", User: studentUser()}}
	guard, _, store := newTestGuard(t, api)

	_, err := guard.Login(context.Background(), "amy@uni.example", "secret1", campusclient.UserTypeStudent)
	require.NoError(t, err)

	creds, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, creds)
	assert.Equal(t, "tok-student", creds.Token)
	assert.Equal(t, guard.Identity().ID, creds.User.ID)
}

func TestInitializeRestoresPersistedSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	store := NewFileStore(path)
	require.NoError(t, store.Save(&Credentials{Token: "tok-old", User: studentUser()}))

	api := &fakeAPI{}
	guard := New(api, store, nil)
	require.NoError(t, guard.Initialize())

	require.NotNil(t, guard.Identity())
	assert.Equal(t, "tok-old", api.currentToken())
	assert.True(t, guard.Authorize(campusclient.UserTypeStudent).Granted())
}

func TestLogoutIsLocalAndIdempotent(t *testing.T) {
	api := &fakeAPI{loginResult: &campusclient.LoginResult{Token: "tok-student", User: studentUser()}}
	guard, nav, store := newTestGuard(t, api)

	_, err := guard.Login(context.Background(), "amy@uni.example", "secret1", campusclient.UserTypeStudent)
	require.NoError(t, err)

	guard.Logout()
	assert.Nil(t, guard.Identity())
	assert.Empty(t, api.currentToken())
	assert.Equal(t, RouteHome, nav.last())

	creds, loadErr := store.Load()
	require.NoError(t, loadErr)
	assert.Nil(t, creds)

	// Logging out again must not panic or error.
	guard.Logout()
	assert.Nil(t, guard.Identity())
	assert.Equal(t, RouteHome, nav.last())
}

func TestStaleLoginIsDiscardedAfterLogout(t *testing.T) {
	gate := make(chan struct{})
	started := make(chan struct{})
	api := &fakeAPI{
		loginResult:  &campusclient.LoginResult{Token: "tok-stale", User: studentUser()},
		loginGate:    gate,
		loginStarted: started,
	}
	guard, _, _ := newTestGuard(t, api)

	type loginOutcome struct {
		user *campusclient.User
		err  error
	}
	done := make(chan loginOutcome, 1)
	go func() {
		user, err := guard.Login(context.Background(), "amy@uni.example", "secret1", campusclient.UserTypeStudent)
		done <- loginOutcome{user, err}
	}()

	// Logout happens while the login request is still in flight.
	<-started
	guard.Logout()
	close(gate)

	outcome := <-done
	require.ErrorIs(t, outcome.err, ErrSessionSuperseded)
	assert.Nil(t, guard.Identity())
	assert.Empty(t, api.currentToken())
}

func TestAuthorizeLoadingBeforeInitialize(t *testing.T) {
	guard := New(&fakeAPI{}, NewFileStore(filepath.Join(t.TempDir(), "c.json")), nil)

	decision := guard.Authorize(campusclient.UserTypeStudent)
	assert.Equal(t, DecisionLoading, decision.State)
	assert.False(t, decision.Granted())
}

func TestAuthorizeNoSessionRedirectsToLogin(t *testing.T) {
	guard, _, _ := newTestGuard(t, &fakeAPI{})

	decision := guard.Authorize(campusclient.UserTypeStudent)
	assert.Equal(t, DecisionDeniedNoSession, decision.State)
	assert.Equal(t, RouteLogin, decision.Redirect)
}

func TestAuthorizeWrongRoleRedirectsToOwnDashboard(t *testing.T) {
	api := &fakeAPI{loginResult: &campusclient.LoginResult{Token: "tok-student", User: studentUser()}}
	guard, _, _ := newTestGuard(t, api)

	_, err := guard.Login(context.Background(), "amy@uni.example", "secret1", campusclient.UserTypeStudent)
	require.NoError(t, err)

	// A student probing the company dashboard goes to their own landing
	// route, never back to login.
	decision := guard.Authorize(campusclient.UserTypeCompany)
	assert.Equal(t, DecisionDeniedWrongRole, decision.State)
	assert.Equal(t, RouteStudentDashboard, decision.Redirect)
}

func TestAuthorizeMatchingRoleGranted(t *testing.T) {
	api := &fakeAPI{loginResult: &campusclient.LoginResult{Token: "tok-company", User: companyUser()}}
	guard, _, _ := newTestGuard(t, api)

	_, err := guard.Login(context.Background(), "hr@acme.example", "secret1", campusclient.UserTypeCompany)
	require.NoError(t, err)

	assert.True(t, guard.Authorize(campusclient.UserTypeCompany).Granted())
	assert.True(t, guard.Authorize("").Granted())
}

func TestUpdateUserWithoutSessionIsNoOp(t *testing.T) {
	guard, _, store := newTestGuard(t, &fakeAPI{})

	require.NoError(t, guard.UpdateUser(studentUser()))
	assert.Nil(t, guard.Identity())

	creds, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, creds)
}

func TestUpdateUserKeepsMemoryAndDiskInSync(t *testing.T) {
	api := &fakeAPI{loginResult: &campusclient.LoginResult{Token: "tok-student", User: studentUser()}}
	guard, _, store := newTestGuard(t, api)

	_, err := guard.Login(context.Background(), "amy@uni.example", "secret1", campusclient.UserTypeStudent)
	require.NoError(t, err)

	updated := studentUser()
	updated.Name = "Amy Chen"
	updated.University = "State University"
	require.NoError(t, guard.UpdateUser(updated))

	assert.Equal(t, "Amy Chen", guard.Identity().Name)

	creds, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, creds)
	assert.Equal(t, "Amy Chen", creds.User.Name)
	assert.Equal(t, "tok-student", creds.Token)
}

func TestVerifyAccountSurfacesServerMessage(t *testing.T) {
	api := &fakeAPI{verifyErr: &campusclient.APIError{
		Status:  http.StatusBadRequest,
		Code:    campusclient.CodeVerificationCodeInvalid,
		Message: "Invalid code",
	}}
	guard, _, _ := newTestGuard(t, api)

	_, err := guard.VerifyAccount(context.Background(), "amy@uni.example", campusclient.UserTypeStudent, "000000")
	require.Error(t, err)

	apiErr := campusclient.AsAPIError(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, "Invalid code", apiErr.Message)
}

func TestVerifyAccountSuccessReturnsUser(t *testing.T) {
	verified := studentUser()
	api := &fakeAPI{verifyResult: &campusclient.VerifyResult{User: verified}}
	guard, _, _ := newTestGuard(t, api)

	user, err := guard.VerifyAccount(context.Background(), "amy@uni.example", campusclient.UserTypeStudent, "123456")
	require.NoError(t, err)
	assert.True(t, user.IsVerified)

	// Verification alone does not establish a session.
	assert.Nil(t, guard.Identity())
}

func TestRegisterValidatesBeforeHittingTheWire(t *testing.T) {
	api := &fakeAPI{registerErr: errors.New("should never be called")}
	guard, _, _ := newTestGuard(t, api)

	_, err := guard.Register(context.Background(), StudentRegistration{
		Email:    "not-an-email",
		Password: "secret1",
		Name:     "Amy",
	})
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = guard.Register(context.Background(), StudentRegistration{
		Email:    "amy@uni.example",
		Password: "short",
		Name:     "Amy",
	})
	assert.ErrorIs(t, err, ErrInvalidPassword)

	_, err = guard.Register(context.Background(), CompanyRegistration{
		Email:    "hr@acme.example",
		Password: "secret1",
	})
	assert.ErrorIs(t, err, ErrMissingName)
}

func TestRegisterSendsRoleFixedRequest(t *testing.T) {
	api := &fakeAPI{registerResult: &campusclient.RegisterResult{
		User:              studentUser(),
		VerificationToken: "verify-tok",
	}}
	guard, _, _ := newTestGuard(t, api)

	result, err := guard.Register(context.Background(), StudentRegistration{
		Email:      "amy@uni.example",
		Password:   "secret1",
		Name:       "Amy",
		University: "State University",
	})
	require.NoError(t, err)
	assert.Equal(t, "verify-tok", result.VerificationToken)

	// Registration never logs the account in.
	assert.Nil(t, guard.Identity())
	assert.Empty(t, api.currentToken())
}

func TestLandingRoute(t *testing.T) {
	assert.Equal(t, RouteStudentDashboard, LandingRoute(campusclient.UserTypeStudent))
	assert.Equal(t, RouteCompanyDashboard, LandingRoute(campusclient.UserTypeCompany))
	assert.Equal(t, RouteHome, LandingRoute("admin"))
}
