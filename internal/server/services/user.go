// Package services contains server-side business logic. This file implements
// UserService, which verifies credentials, issues session tokens and resolves
// the caller behind a token.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/todoapp/internal/common"
	"github.com/dmitrijs2005/todoapp/internal/server/auth"
	"github.com/dmitrijs2005/todoapp/internal/server/config"
	"github.com/dmitrijs2005/todoapp/internal/server/models"
	"github.com/dmitrijs2005/todoapp/internal/server/repositories/repomanager"
)

// LoginResult is a freshly issued session token and the public view of the
// user it belongs to.
type LoginResult struct {
	Token string
	User  models.User
}

// UserService provides authentication-related operations:
// - Login: verify credentials and mint a session token
// - Authenticate: turn a presented token into a Principal
// - CurrentUser: resolve the user for the "me" endpoint
type UserService struct {
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	defaultUserID               int
	now                         func() time.Time
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	s := &UserService{
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		now:                         time.Now,
	}
	if len(cfg.Users) > 0 {
		s.defaultUserID = cfg.Users[0].ID
	}
	return s
}

// Login validates input, checks the password and mints a token.
// Unknown users and wrong passwords both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, userName, password string) (*LoginResult, error) {
	v := &common.ValidationError{}
	if strings.TrimSpace(userName) == "" {
		v.Add("username", "Username is required", userName)
	}
	if strings.TrimSpace(password) == "" {
		v.Add("password", "Password is required", password)
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users().GetUserByLogin(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			auth.BurnPasswordCheck(password)
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	token, err := auth.GenerateToken(auth.Principal{UserID: user.ID, UserName: user.UserName},
		s.jwtSecret, s.accessTokenValidityDuration, s.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	return &LoginResult{Token: token, User: user.Public()}, nil
}

// Authenticate verifies token as of the current time. It fails with
// common.ErrMissingToken or common.ErrInvalidToken; an expired token is an
// invalid one (the expiry cause stays matchable with errors.Is).
func (s *UserService) Authenticate(token string) (auth.Principal, error) {
	p, err := auth.ParseToken(token, s.jwtSecret, s.now())
	switch {
	case err == nil:
		return p, nil
	case errors.Is(err, common.ErrMissingToken), errors.Is(err, common.ErrInvalidToken):
		return auth.Principal{}, err
	default:
		return auth.Principal{}, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}
}

// CurrentUser returns the user behind token. Without a usable token it falls
// back to the first configured user.
func (s *UserService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	repo := s.repomanager.Users()

	if p, err := s.Authenticate(token); err == nil {
		u, err := repo.GetUserByID(ctx, p.UserID)
		if err == nil {
			public := u.Public()
			return &public, nil
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
		}
	}

	u, err := repo.GetUserByID(ctx, s.defaultUserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	public := u.Public()
	return &public, nil
}
