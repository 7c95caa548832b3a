// Package session owns the client's notion of "who is logged in".
//
// A Session holds the current user snapshot; the token pair lives in a
// tokens.Store so it survives restarts. The transport's 401 hook drops the
// snapshot, which keeps IsAuthenticated and CurrentUser consistent with the
// stored tokens without any caller involvement.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/AllanOcung/Group-BSE25-1/internal/client/apiclient"
	"github.com/AllanOcung/Group-BSE25-1/internal/client/models"
	"github.com/AllanOcung/Group-BSE25-1/internal/client/tokens"
	"github.com/AllanOcung/Group-BSE25-1/internal/common"
	"github.com/AllanOcung/Group-BSE25-1/internal/logging"
)

var ErrNotAuthenticated = errors.New("not logged in")

// API is the subset of *apiclient.Client the session uses.
type API interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body apiclient.Body, out any) error
	PostPublic(ctx context.Context, path string, body apiclient.Body, out any) error
	Patch(ctx context.Context, path string, body apiclient.Body, out any) error
	OnUnauthorized(fn func(ctx context.Context))
}

// FormInput is anything that renders itself as a request form.
type FormInput interface {
	Form() *apiclient.Form
}

// profileURLFields are normalised before a profile update is sent.
var profileURLFields = []string{"linkedin_url", "github_url", "personal_website"}

type Session struct {
	api    API
	tokens tokens.Store
	log    logging.Logger

	mu   sync.RWMutex
	user *models.User
}

func New(api API, store tokens.Store, log logging.Logger) *Session {
	if log == nil {
		log = logging.Nop{}
	}
	s := &Session{api: api, tokens: store, log: log}
	api.OnUnauthorized(func(ctx context.Context) {
		s.setUser(nil)
		s.log.Info(ctx, "session expired, identity cleared")
	})
	return s
}

func (s *Session) setUser(u *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// CurrentUser returns a copy of the user snapshot, or nil.
func (s *Session) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.Role == common.RoleAdmin
}

// Login authenticates with email and password. On failure the server's
// error is returned as is and nothing is persisted.
func (s *Session) Login(ctx context.Context, email, password string) (*models.User, error) {
	req := map[string]string{"email": strings.TrimSpace(email), "password": password}

	var resp models.LoginResponse
	if err := s.api.PostPublic(ctx, "/auth/login/", apiclient.JSON(req), &resp); err != nil {
		return nil, err
	}
	if resp.Access == "" {
		return nil, fmt.Errorf("%w: login response without access token", apiclient.ErrDecode)
	}

	if err := s.tokens.Save(ctx, resp.Tokens()); err != nil {
		return nil, fmt.Errorf("persist tokens: %w", err)
	}

	u := resp.User
	s.setUser(&u)
	s.log.Info(ctx, "logged in", "user_id", u.ID, "role", u.Role)
	return s.CurrentUser(), nil
}

// Register validates in locally, creates the account and logs in with the
// same credentials. A local validation failure sends nothing.
func (s *Session) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if err := s.api.PostPublic(ctx, "/auth/register/", apiclient.JSON(in.payload()), nil); err != nil {
		return nil, err
	}
	return s.Login(ctx, in.Email, in.Password)
}

// Logout tells the server to revoke the refresh token and then clears local
// state unconditionally. Only a failure to clear the local store is
// returned.
func (s *Session) Logout(ctx context.Context) error {
	refresh, err := s.tokens.Refresh(ctx)
	if err != nil {
		s.log.Warn(ctx, "reading refresh token failed", "error", err)
	}

	if refresh != "" {
		body := apiclient.JSON(map[string]string{"refresh": refresh})
		if err := s.api.Post(ctx, "/auth/logout/", body, nil); err != nil {
			s.log.Warn(ctx, "server logout failed, clearing local session anyway", "error", err)
		}
	}

	s.setUser(nil)
	if err := s.tokens.Clear(ctx); err != nil {
		return fmt.Errorf("clear tokens: %w", err)
	}
	return nil
}

// Restore rebuilds the session from stored tokens. It returns nil when
// there is nothing to restore. When the profile cannot be fetched the
// stored tokens are discarded and the cause is returned.
func (s *Session) Restore(ctx context.Context) error {
	access, err := s.tokens.Access(ctx)
	if err != nil {
		return fmt.Errorf("read tokens: %w", err)
	}
	if access == "" {
		return nil
	}

	var u models.User
	if err := s.api.Get(ctx, "/profile/", nil, &u); err != nil {
		s.setUser(nil)
		if clearErr := s.tokens.Clear(ctx); clearErr != nil {
			s.log.Error(ctx, "clearing tokens failed", "error", clearErr)
		}
		return fmt.Errorf("restore session: %w", err)
	}

	s.setUser(&u)
	return nil
}

// Refresh exchanges the stored refresh token for a new pair. It is never
// called implicitly.
func (s *Session) Refresh(ctx context.Context) error {
	refresh, err := s.tokens.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("read tokens: %w", err)
	}
	if refresh == "" {
		return ErrNotAuthenticated
	}

	var pair models.TokenPair
	body := apiclient.JSON(map[string]string{"refresh": refresh})
	if err := s.api.PostPublic(ctx, "/auth/token/refresh/", body, &pair); err != nil {
		return err
	}
	if pair.Refresh == "" {
		pair.Refresh = refresh
	}
	return s.tokens.Save(ctx, pair)
}

// UpdateProfile patches the caller's own profile and replaces the snapshot
// with the server's answer.
func (s *Session) UpdateProfile(ctx context.Context, in FormInput) (*models.User, error) {
	if !s.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}

	form := in.Form()
	if err := form.NormalizeURLs(profileURLFields...); err != nil {
		return nil, err
	}

	var u models.User
	if err := s.api.Patch(ctx, "/profile/", form, &u); err != nil {
		return nil, err
	}
	s.setUser(&u)
	return s.CurrentUser(), nil
}

// ApplyUser replaces the snapshot when u is the logged-in user, e.g. after
// an admin changed their own role. Other users are ignored.
func (s *Session) ApplyUser(u *models.User) bool {
	if u == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil || s.user.ID != u.ID {
		return false
	}
	cp := *u
	s.user = &cp
	return true
}

func (s *Session) RequestPasswordReset(ctx context.Context, email string) (*models.PasswordResetResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, &apiclient.ValidationError{Field: "email", Message: "Email is required"}
	}

	var resp models.PasswordResetResponse
	body := apiclient.JSON(map[string]string{"email": email})
	if err := s.api.PostPublic(ctx, "/auth/password-reset/", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *Session) ConfirmPasswordReset(ctx context.Context, uid, token, newPassword string) error {
	if len(newPassword) < common.MinPasswordLength {
		return &apiclient.ValidationError{Field: "new_password", Message: msgPasswordTooShort}
	}

	body := apiclient.JSON(map[string]string{
		"uid":          uid,
		"token":        token,
		"new_password": newPassword,
	})
	return s.api.PostPublic(ctx, "/auth/password-reset-confirm/", body, nil)
}
