package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/parksujin/lifeshare/internal/common"
	"github.com/parksujin/lifeshare/internal/logging"
	"github.com/parksujin/lifeshare/internal/server/auth"
	"github.com/parksujin/lifeshare/internal/server/config"
	"github.com/parksujin/lifeshare/internal/server/models"
	"github.com/parksujin/lifeshare/internal/server/repositories/users"
)

// Boundary-visible login messages. The failure message is identical for an
// unknown identifier and a wrong password so the endpoint cannot be used to
// enumerate accounts; logs distinguish the two internally.
const (
	MsgLoginFailed = "아이디 또는 비밀번호가 일치하지 않습니다."
	MsgServerError = "서버 오류가 발생했습니다. 관리자에게 문의하세요."
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// LoginResult is the normalized outcome of a login attempt.
type LoginResult struct {
	Success bool
	Message string
	User    *models.User
	Tokens  *TokenPair
}

// AuthService orchestrates login, logout, and silent renewal. It owns no
// mutable state beyond the injected singletons (codec, keypair, cipher), all
// read-only after construction and safe for concurrent use.
type AuthService struct {
	repo       users.Repository
	userSvc    *UserService
	codec      *auth.Codec
	keys       *auth.KeyProvider
	logger     logging.Logger
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(repo users.Repository, userSvc *UserService, codec *auth.Codec,
	keys *auth.KeyProvider, cfg *config.Config, logger logging.Logger) *AuthService {
	return &AuthService{
		repo:       repo,
		userSvc:    userSvc,
		codec:      codec,
		keys:       keys,
		logger:     logger,
		accessTTL:  cfg.AccessTokenValidityDuration,
		refreshTTL: cfg.RefreshTokenValidityDuration,
	}
}

// Login validates the identifier and the RSA-encrypted password and, on
// success, mints a fresh token pair. Every credential-related failure yields
// the same generic message; only an identity-store failure yields the server
// error message.
func (s *AuthService) Login(ctx context.Context, userID, encryptedPwd string) *LoginResult {
	pwd, err := s.keys.Decrypt(encryptedPwd)
	if err != nil {
		s.logger.Warn(ctx, "login password decrypt failed", "userId", userID)
		return &LoginResult{Success: false, Message: MsgLoginFailed}
	}

	record, err := s.findByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Warn(ctx, "login with unknown identifier", "userId", userID)
			return &LoginResult{Success: false, Message: MsgLoginFailed}
		}
		s.logger.Error(ctx, "identity lookup failed", "userId", userID, "error", err.Error())
		return &LoginResult{Success: false, Message: MsgServerError}
	}

	if !record.Enabled {
		s.logger.Warn(ctx, "login with disabled identity", "userId", userID)
		return &LoginResult{Success: false, Message: MsgLoginFailed}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(pwd)); err != nil {
		s.logger.Warn(ctx, "login password mismatch", "userId", userID)
		return &LoginResult{Success: false, Message: MsgLoginFailed}
	}

	// Last-login stamping is best-effort and must not delay or fail the login.
	go s.stampLastLogin(userID)

	tokens, err := s.mintPair(record.ID)
	if err != nil {
		s.logger.Error(ctx, "token minting failed", "userId", userID, "error", err.Error())
		return &LoginResult{Success: false, Message: MsgServerError}
	}

	user, err := s.userSvc.Get(ctx, record.ID)
	if err != nil {
		s.logger.Error(ctx, "identity reload failed", "userId", userID, "error", err.Error())
		return &LoginResult{Success: false, Message: MsgServerError}
	}

	s.logger.Info(ctx, "login succeeded", "userId", userID)
	return &LoginResult{Success: true, User: user, Tokens: tokens}
}

// Logout stamps the last-logout time for the given subject. Returns false
// when there is no resolvable subject or the update affected zero rows; it
// never faults, so a repeated logout is safe.
func (s *AuthService) Logout(ctx context.Context, subject string) bool {
	if subject == "" {
		return false
	}

	n, err := s.repo.UpdateLastLogoutAt(ctx, subject)
	if err != nil {
		s.logger.Error(ctx, "last-logout update failed", "userId", subject, "error", err.Error())
		return false
	}
	if n == 0 {
		s.logger.Warn(ctx, "last-logout update affected no rows", "userId", subject)
		return false
	}

	s.logger.Info(ctx, "logout succeeded", "userId", subject)
	return true
}

// Renew mints a fresh access/refresh pair for the subject of a still-valid
// refresh token, after re-validating that the identity exists and is enabled.
// The superseded refresh token is not revoked server-side; rotation only
// replaces the cookie.
func (s *AuthService) Renew(ctx context.Context, subject string) (*TokenPair, *models.User, error) {
	record, err := s.findByID(ctx, subject)
	if err != nil {
		return nil, nil, err
	}
	if !record.Enabled {
		return nil, nil, common.ErrorUnauthorized
	}

	tokens, err := s.mintPair(record.ID)
	if err != nil {
		return nil, nil, err
	}
	return tokens, record, nil
}

// Identity resolves the identity record for an authenticated subject. Used by
// the request gate after a successful token parse.
func (s *AuthService) Identity(ctx context.Context, subject string) (*models.User, error) {
	record, err := s.findByID(ctx, subject)
	if err != nil {
		return nil, err
	}
	if !record.Enabled {
		return nil, common.ErrorUnauthorized
	}
	return record, nil
}

// findByID reads the identity record, folding every identity-store fault
// other than a missing record into common.ErrCollaboratorFailure.
func (s *AuthService) findByID(ctx context.Context, subject string) (*models.User, error) {
	record, err := s.repo.FindByID(ctx, subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", common.ErrCollaboratorFailure, err)
	}
	return record, nil
}

func (s *AuthService) mintPair(subject string) (*TokenPair, error) {
	access, err := s.codec.Mint(subject, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.codec.Mint(subject, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) stampLastLogin(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	n, err := s.repo.UpdateLastLoginAt(ctx, userID)
	if err != nil {
		s.logger.Error(ctx, "last-login update failed", "userId", userID, "error", err.Error())
		return
	}
	if n == 0 {
		s.logger.Warn(ctx, "last-login update affected no rows", "userId", userID)
	}
}
