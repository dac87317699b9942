// Package session owns the identity lifecycle: registration, login, email
// verification, password changes, token refresh and logout. It is the only
// writer of the token store. UI layers read state through Snapshot and never
// mutate it.
package session

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Rafid13iit/BS23-Assignment-01-Blog-Project/internal/errs"
	"github.com/Rafid13iit/BS23-Assignment-01-Blog-Project/internal/httpapi"
	"github.com/Rafid13iit/BS23-Assignment-01-Blog-Project/internal/model"
	"github.com/Rafid13iit/BS23-Assignment-01-Blog-Project/internal/notify"
	"github.com/Rafid13iit/BS23-Assignment-01-Blog-Project/internal/tokenstore"
)

const (
	pathRegister       = "/users/register/"
	pathLogin          = "/users/login/"
	pathVerifyEmail    = "/users/verify/"
	pathChangePassword = "/users/changepassword/"
	pathTokenVerify    = "/users/token/verify/"
	pathTokenRefresh   = "/users/token/refresh/"
	pathDashboard      = "/users/dashboard/"
)

// State of the session machine. Authenticating and Refreshing are transient
// and only observable as a loading indicator.
type State int32

const (
	Anonymous State = iota
	Authenticating
	Authenticated
	Refreshing
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	case Refreshing:
		return "refreshing"
	}
	return "unknown"
}

// Snapshot is the read-only view handed to UI consumers.
type Snapshot struct {
	LoggedIn    bool
	User        *model.User
	Initialized bool
}

// Manager is the session state machine. It registers itself as the
// executor's refresh hook, so any authenticated call hitting a 401 funnels
// through Refresh exactly once.
type Manager struct {
	api    *httpapi.Client
	store  *tokenstore.Store
	notify notify.Notifier
	log    *zap.Logger

	mu          sync.Mutex
	state       State
	user        *model.User
	initialized bool

	sf singleflight.Group
}

func NewManager(api *httpapi.Client, store *tokenstore.Store, n notify.Notifier, log *zap.Logger) *Manager {
	m := &Manager{api: api, store: store, notify: n, log: log}
	api.SetRefresher(m)
	return m
}

// authResponse is the login/registration success shape.
type authResponse struct {
	Token model.TokenPair `json:"token"`
	Data  model.User      `json:"data"`
}

// Snapshot returns the current read-only session view.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	var u *model.User
	if m.user != nil {
		cp := *m.user
		u = &cp
	}
	return Snapshot{
		LoggedIn:    m.state == Authenticated && m.user != nil,
		User:        u,
		Initialized: m.initialized,
	}
}

// State returns the current machine state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Register creates an account. On success the returned token pair and user
// snapshot are persisted and the session becomes authenticated; the caller
// should proceed to email verification.
func (m *Manager) Register(ctx context.Context, username, email, password, password2 string) bool {
	m.setState(Authenticating)
	env := m.api.Post(ctx, pathRegister, map[string]string{
		"username":  username,
		"email":     email,
		"password":  password,
		"password2": password2,
	}, false)
	if !env.Success {
		m.setState(Anonymous)
		return false
	}

	var resp authResponse
	if err := env.Decode(&resp); err != nil || resp.Token.Access == "" {
		m.log.Error("register: unexpected response", zap.Error(err))
		m.setState(Anonymous)
		return false
	}
	if err := m.persist(resp.Token, resp.Data); err != nil {
		m.log.Error("register: persist session", zap.Error(err))
		m.dropSession()
		return false
	}
	m.setSession(resp.Data)
	m.notify.Success("Registration successful! Please verify your email.")
	return true
}

// Login authenticates with email/password. The login response may omit the
// full profile, so a follow-up authenticated dashboard fetch refreshes the
// cached snapshot before the session is declared authenticated.
func (m *Manager) Login(ctx context.Context, email, password string) bool {
	m.setState(Authenticating)
	env := m.api.Post(ctx, pathLogin, map[string]string{
		"email":    email,
		"password": password,
	}, false)
	if !env.Success {
		m.setState(Anonymous)
		return false
	}

	var resp authResponse
	if err := env.Decode(&resp); err != nil || resp.Token.Access == "" {
		m.log.Error("login: unexpected response", zap.Error(err))
		m.setState(Anonymous)
		return false
	}
	if err := m.persist(resp.Token, resp.Data); err != nil {
		m.log.Error("login: persist session", zap.Error(err))
		m.dropSession()
		return false
	}

	user := resp.Data
	if prof, ok := m.Profile(ctx); ok {
		user = *prof
		_ = m.store.SaveUser(user)
	} else if _, alive := m.store.Get(tokenstore.KeyAccessToken); !alive {
		// The profile fetch may have cascaded into a failed refresh that
		// cleared the whole session; declaring authentication on top of
		// that would leave LoggedIn true with no tokens behind it.
		m.setState(Anonymous)
		return false
	}
	m.setSession(user)
	m.notify.Success("Login successful!")
	return true
}

// Profile fetches the full user record from the dashboard endpoint.
func (m *Manager) Profile(ctx context.Context) (*model.User, bool) {
	env := m.api.Get(ctx, pathDashboard, true)
	if !env.Success {
		return nil, false
	}
	var resp struct {
		Data model.User `json:"data"`
	}
	if err := env.Decode(&resp); err != nil {
		m.log.Error("profile: unexpected response", zap.Error(err))
		return nil, false
	}
	return &resp.Data, true
}

// VerifyEmail confirms the one-time code. Verification is independent of
// session validity and never alters token state.
func (m *Manager) VerifyEmail(ctx context.Context, email, code string) bool {
	env := m.api.Post(ctx, pathVerifyEmail, map[string]string{
		"email":     email,
		"email_otp": code,
	}, false)
	if !env.Success {
		return false
	}
	m.notify.Success("Email verified successfully!")
	return true
}

// ChangePassword sets a new password for the authenticated user. No
// re-login is forced.
func (m *Manager) ChangePassword(ctx context.Context, password, password2 string) bool {
	env := m.api.Post(ctx, pathChangePassword, map[string]string{
		"password":  password,
		"password2": password2,
	}, true)
	if !env.Success {
		return false
	}
	m.notify.Success("Password changed successfully!")
	return true
}

// RequestPasswordReset asks the server to start a reset for the given email.
// Unauthenticated on purpose: it is the forgot-password path.
func (m *Manager) RequestPasswordReset(ctx context.Context, email string) bool {
	env := m.api.Post(ctx, pathChangePassword, map[string]string{"email": email}, false)
	if !env.Success {
		return false
	}
	m.notify.Success("Password reset instructions sent!")
	return true
}

// Refresh exchanges the stored refresh token for a new access token.
// Concurrent 401-triggered refreshes collapse into one flight; late callers
// reuse its result. On any failure the whole session is cleared.
func (m *Manager) Refresh(ctx context.Context) error {
	_, err, _ := m.sf.Do("refresh", func() (any, error) {
		return nil, m.doRefresh(ctx)
	})
	return err
}

func (m *Manager) doRefresh(ctx context.Context) error {
	refresh, ok := m.store.Get(tokenstore.KeyRefreshToken)
	if !ok {
		m.dropSession()
		return errs.ErrNoSession
	}

	m.setState(Refreshing)
	env := m.api.Do(ctx, http.MethodPost, pathTokenRefresh,
		map[string]string{"refresh": refresh}, httpapi.Options{Silent: true})
	if !env.Success {
		m.dropSession()
		return errs.ErrRefreshFailed
	}

	var resp struct {
		Access string `json:"access"`
	}
	if err := env.Decode(&resp); err != nil || resp.Access == "" {
		m.dropSession()
		return errs.ErrRefreshFailed
	}
	if err := m.store.Set(tokenstore.KeyAccessToken, resp.Access); err != nil {
		m.dropSession()
		return fmt.Errorf("persist access token: %w", err)
	}
	m.setState(Authenticated)
	return nil
}

// Bootstrap restores the session at startup. A cached user snapshot is
// trusted without a round-trip; otherwise the stored tokens are verified,
// with the executor's single refresh-and-retry covering an expired access
// token. Initialized becomes true on every exit path.
func (m *Manager) Bootstrap(ctx context.Context) {
	defer func() {
		m.mu.Lock()
		m.initialized = true
		m.mu.Unlock()
	}()

	if u, ok := m.store.LoadUser(); ok {
		m.setSession(u)
		return
	}

	_, okA := m.store.Get(tokenstore.KeyAccessToken)
	_, okR := m.store.Get(tokenstore.KeyRefreshToken)
	if !okA || !okR {
		m.setState(Anonymous)
		return
	}

	env := m.api.Do(ctx, http.MethodGet, pathTokenVerify, nil,
		httpapi.Options{Auth: true, Silent: true})
	if !env.Success {
		m.dropSession()
		return
	}
	var u model.User
	if err := env.Decode(&u); err != nil {
		m.log.Error("bootstrap: unexpected verify response", zap.Error(err))
		m.dropSession()
		return
	}
	_ = m.store.SaveUser(u)
	m.setSession(u)
}

// Logout clears all persisted state. Synchronous, cannot fail from the
// caller's perspective.
func (m *Manager) Logout() {
	if err := m.store.Clear(); err != nil {
		m.log.Error("logout: clear store", zap.Error(err))
	}
	m.mu.Lock()
	m.user = nil
	m.state = Anonymous
	m.mu.Unlock()
	m.notify.Success("Logout successful!")
}

func (m *Manager) persist(t model.TokenPair, u model.User) error {
	if err := m.store.SaveTokens(t); err != nil {
		return err
	}
	return m.store.SaveUser(u)
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

func (m *Manager) setSession(u model.User) {
	m.mu.Lock()
	cp := u
	m.user = &cp
	m.state = Authenticated
	m.mu.Unlock()
}

func (m *Manager) dropSession() {
	_ = m.store.Clear()
	m.mu.Lock()
	m.user = nil
	m.state = Anonymous
	m.mu.Unlock()
}
