package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AllanOcung/Group-BSE25-1/internal/common"
	"github.com/AllanOcung/Group-BSE25-1/internal/cryptox"
	"github.com/AllanOcung/Group-BSE25-1/internal/logging"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/auth"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/config"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/models"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/repositories/repomanager"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/repositories/users"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/revocation"
)

// resetTokenValidity is how long a password reset link stays usable.
const resetTokenValidity = 24 * time.Hour

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// ResetTicket is what a password reset request yields for a known account.
type ResetTicket struct {
	UID   string
	Token string
}

// AuthService handles registration, login, logout, token refresh, password
// reset and bearer authentication.
type AuthService struct {
	repos                        repomanager.RepositoryManager
	revoker                      revocation.Revoker
	logger                       logging.Logger
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	now                          func() time.Time
}

func NewAuthService(m repomanager.RepositoryManager, rv revocation.Revoker, cfg *config.Config, l logging.Logger) *AuthService {
	return &AuthService{
		repos:                        m,
		revoker:                      rv,
		logger:                       l.With("service", "auth"),
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		now:                          time.Now,
	}
}

type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
	FirstName       string
	LastName        string
	Bio             string
	Skills          string
}

func (in *RegisterInput) normalize() {
	in.Email = strings.TrimSpace(in.Email)
	in.Username = strings.TrimSpace(in.Username)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	if in.Username == "" {
		in.Username, _, _ = strings.Cut(in.Email, "@")
	}
}

func (in *RegisterInput) validate() common.FieldErrors {
	fe := common.FieldErrors{}

	switch {
	case in.Email == "":
		fe.Add("email", msgRequired)
	case !validEmail(in.Email):
		fe.Add("email", msgInvalidEmail)
	}
	if in.Username == "" {
		fe.Add("username", msgRequired)
	}
	checkLen(fe, "username", in.Username, maxUsername)
	if in.FirstName == "" {
		fe.Add("first_name", msgRequired)
	}
	if in.LastName == "" {
		fe.Add("last_name", msgRequired)
	}
	checkLen(fe, "first_name", in.FirstName, maxName)
	checkLen(fe, "last_name", in.LastName, maxName)
	checkLen(fe, "bio", in.Bio, maxLongText)
	checkLen(fe, "skills", in.Skills, maxLongText)
	checkPassword(fe, "password", in.Password)
	if in.Password != in.PasswordConfirm {
		fe.Add("password_confirm", "Passwords don't match")
	}
	return fe
}

// uniqueFieldError turns a repository uniqueness error into field errors.
func uniqueFieldError(err error) error {
	switch {
	case errors.Is(err, users.ErrEmailTaken):
		return common.FieldErrors{"email": {"user with this email already exists."}}
	case errors.Is(err, users.ErrUsernameTaken):
		return common.FieldErrors{"username": {"A user with that username already exists."}}
	}
	return err
}

// Register creates a member account and signs it in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, *TokenPair, error) {
	in.normalize()
	if fe := in.validate(); !fe.Empty() {
		return nil, nil, fe
	}

	hash, err := hashPassword([]byte(in.Password))
	if err != nil {
		return nil, nil, common.ErrorInternal
	}

	var (
		user *models.User
		pair *TokenPair
	)
	err = s.repos.WithTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		var err error
		user, err = r.Users().Create(ctx, &models.User{
			Username:     in.Username,
			Email:        in.Email,
			PasswordHash: hash,
			FirstName:    in.FirstName,
			LastName:     in.LastName,
			Bio:          in.Bio,
			Skills:       in.Skills,
			Role:         common.RoleMember,
			IsActive:     true,
		})
		if err != nil {
			return uniqueFieldError(err)
		}
		pair, err = s.generateTokenPair(ctx, r, user)
		if err != nil {
			// the memory backend has no rollback
			if delErr := r.Users().Delete(ctx, user.ID); delErr != nil {
				s.logger.Error(ctx, "removing half-registered user failed", "user_id", user.ID, "error", delErr)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return user, pair, nil
}

func nonFieldError(msg string) common.FieldErrors {
	return common.FieldErrors{"non_field_errors": {msg}}
}

// Login checks email and password. Failures are reported as non-field
// validation errors.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, nil, nonFieldError("Email and password are required")
	}

	user, err := s.repos.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, nonFieldError("Invalid credentials")
		}
		return nil, nil, fmt.Errorf("login: %w", err)
	}
	if !cryptox.CheckPassword(user.PasswordHash, []byte(password)) {
		return nil, nil, nonFieldError("Invalid credentials")
	}
	if !user.IsActive {
		return nil, nil, nonFieldError("User account is disabled")
	}

	pair, err := s.generateTokenPair(ctx, s.repos, user)
	if err != nil {
		return nil, nil, err
	}

	at := s.now()
	if err := s.repos.Users().TouchLogin(ctx, user.ID, at); err != nil {
		s.logger.Warn(ctx, "touch last login failed", "user_id", user.ID, "error", err)
	} else {
		user.LastLogin = &at
	}
	return user, pair, nil
}

// Logout revokes the caller's access token and deletes the refresh token.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims, refreshToken string) error {
	if refreshToken == "" {
		return ErrRefreshRequired
	}

	tok, err := s.repos.RefreshTokens().Consume(ctx, cryptox.HashToken(refreshToken))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrInvalidToken
		}
		return fmt.Errorf("logout: %w", err)
	}
	if tok.UserID != claims.UserID {
		return common.ErrInvalidToken
	}

	if claims.ExpiresAt != nil {
		if err := s.revoker.Revoke(ctx, claims.ID, claims.ExpiresAt.Sub(s.now())); err != nil {
			return fmt.Errorf("revoke access token: %w", err)
		}
	}
	return nil
}

// Refresh rotates a refresh token: the old one is consumed and a new pair
// is issued in the same transaction.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, ErrRefreshRequired
	}

	var pair *TokenPair
	err := s.repos.WithTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		tok, err := r.RefreshTokens().Consume(ctx, cryptox.HashToken(refreshToken))
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrInvalidToken
			}
			return err
		}
		if tok.Expires.Before(s.now()) {
			return common.ErrRefreshTokenExpired
		}

		user, err := r.Users().GetByID(ctx, tok.UserID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrInvalidToken
			}
			return err
		}
		if !user.IsActive {
			return common.ErrorUserDisabled
		}

		pair, err = s.generateTokenPair(ctx, r, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

// RequestPasswordReset returns a ticket for an active account and nil for
// unknown emails, so callers cannot tell the two apart by status.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (*ResetTicket, error) {
	email = strings.TrimSpace(email)
	if !validEmail(email) {
		return nil, common.FieldErrors{"email": {msgInvalidEmail}}
	}

	user, err := s.repos.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("password reset: %w", err)
	}
	if !user.IsActive {
		return nil, nil
	}

	token, err := auth.GenerateResetToken(user.ID, cryptox.Fingerprint(user.PasswordHash), s.jwtSecret, resetTokenValidity)
	if err != nil {
		return nil, common.ErrorInternal
	}
	s.logger.Info(ctx, "password reset requested", "user_id", user.ID)
	return &ResetTicket{UID: auth.EncodeUID(user.ID), Token: token}, nil
}

type ResetConfirmInput struct {
	UID                string
	Token              string
	NewPassword        string
	NewPasswordConfirm string
}

// ConfirmPasswordReset sets a new password and signs the account out
// everywhere. A ticket works once: the new hash changes its fingerprint.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, in ResetConfirmInput) error {
	fe := common.FieldErrors{}
	checkPassword(fe, "new_password", in.NewPassword)
	if in.NewPasswordConfirm != "" && in.NewPasswordConfirm != in.NewPassword {
		fe.Add("new_password_confirm", "Passwords don't match")
	}
	if !fe.Empty() {
		return fe
	}

	id, err := auth.DecodeUID(in.UID)
	if err != nil {
		return ErrInvalidResetLink
	}
	user, err := s.repos.Users().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return ErrInvalidResetLink
		}
		return fmt.Errorf("password reset: %w", err)
	}

	claims, err := auth.ParseResetToken(in.Token, s.jwtSecret)
	if err != nil || claims.UserID != user.ID || claims.Fingerprint != cryptox.Fingerprint(user.PasswordHash) {
		return ErrInvalidResetToken
	}

	hash, err := hashPassword([]byte(in.NewPassword))
	if err != nil {
		return common.ErrorInternal
	}
	err = s.repos.WithTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		if err := r.Users().SetPassword(ctx, user.ID, hash); err != nil {
			return err
		}
		return r.RefreshTokens().DeleteByUser(ctx, user.ID)
	})
	if err != nil {
		return fmt.Errorf("password reset: %w", err)
	}
	s.logger.Info(ctx, "password reset", "user_id", user.ID)
	return nil
}

// Authenticate resolves a bearer token to an active user.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*models.User, *auth.Claims, error) {
	claims, err := auth.ParseToken(accessToken, s.jwtSecret)
	if err != nil {
		return nil, nil, err
	}

	revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("revocation check: %w", err)
	}
	if revoked {
		return nil, nil, common.ErrTokenRevoked
	}

	user, err := s.repos.Users().GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrInvalidToken
		}
		return nil, nil, err
	}
	if !user.IsActive {
		return nil, nil, common.ErrorUserDisabled
	}
	return user, claims, nil
}

func (s *AuthService) generateTokenPair(ctx context.Context, r repomanager.Repositories, user *models.User) (*TokenPair, error) {
	access, err := auth.GenerateToken(user.ID, user.Role, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := newRefreshToken()
	if err != nil {
		return nil, common.ErrorInternal
	}
	if err := r.RefreshTokens().Create(ctx, user.ID, cryptox.HashToken(refresh), s.refreshTokenValidityDuration); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
