// Package services contains server-side business logic. This file implements
// AuthService, which checks credentials against the account store, issues
// access/refresh JWT pairs and rotates passwords.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
)

// LoginResult is returned by a successful Login.
type LoginResult struct {
	AccessToken         string
	RefreshToken        string
	NeedsPasswordChange bool
}

// ChangePasswordInput carries the old and new plaintext passwords.
type ChangePasswordInput struct {
	OldPassword string
	NewPassword string
}

type tokenSigner interface {
	Sign(claims auth.Claims, secretKey []byte, validity time.Duration) (string, error)
}

type passwordHasher interface {
	Hash(password string) (string, error)
}

// AuthService provides the credential operations:
// - Login: verify credentials and mint an access/refresh token pair
// - ChangePassword: verify the old password and store a new hash
type AuthService struct {
	db                           dbx.DBTX
	repomanager                  repomanager.RepositoryManager
	signer                       tokenSigner
	hasher                       passwordHasher
	accessTokenSecret            []byte
	refreshTokenSecret           []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	now                          func() time.Time
}

// NewAuthService constructs an AuthService using repositories and server config.
func NewAuthService(db dbx.DBTX, m repomanager.RepositoryManager, cfg *config.Config) *AuthService {
	return &AuthService{
		db:                           db,
		repomanager:                  m,
		signer:                       auth.NewSigner(),
		hasher:                       auth.NewHasher(cfg.BcryptCost),
		accessTokenSecret:            []byte(cfg.AccessTokenSecret),
		refreshTokenSecret:           []byte(cfg.RefreshTokenSecret),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		now:                          time.Now,
	}
}

// Login checks the account identified by id and, if it is active and the
// password matches, returns a fresh token pair. The account is not modified.
func (s *AuthService) Login(ctx context.Context, id, password string) (*LoginResult, error) {
	account, err := s.validateActiveAccount(ctx, id, password)
	if err != nil {
		return nil, err
	}

	claims := auth.NewClaims(account.ID, account.Role)

	accessToken, err := s.signer.Sign(claims, s.accessTokenSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, &common.Error{Kind: common.KindInternal, Err: err}
	}

	refreshToken, err := s.signer.Sign(claims, s.refreshTokenSecret, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, &common.Error{Kind: common.KindInternal, Err: err}
	}

	return &LoginResult{
		AccessToken:         accessToken,
		RefreshToken:        refreshToken,
		NeedsPasswordChange: account.NeedsPasswordChange,
	}, nil
}

// ChangePassword re-checks the caller's account with the old password and
// stores a hash of the new one. The account is taken from the verified
// claims, never from client input.
func (s *AuthService) ChangePassword(ctx context.Context, claims *auth.Claims, in ChangePasswordInput) error {
	if claims == nil {
		return common.NewError(common.KindUnauthorized, "You are not authorized")
	}

	if _, err := s.validateActiveAccount(ctx, claims.UserID, in.OldPassword); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(in.NewPassword)
	if err != nil {
		return &common.Error{Kind: common.KindInternal, Err: err}
	}

	err = s.repomanager.Accounts(s.db).Update(ctx, claims.UserID, claims.Role, models.AccountUpdate{
		Password:            hash,
		NeedsPasswordChange: false,
		PasswordChangedAt:   s.now(),
	})
	if err != nil {
		return storeError(err)
	}

	return nil
}

// validateActiveAccount runs the account guards in order: existence,
// deletion, block status, then the password comparison.
func (s *AuthService) validateActiveAccount(ctx context.Context, id, password string) (*models.Account, error) {
	repo := s.repomanager.Accounts(s.db)

	account, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}

	if account.IsDeleted {
		return nil, common.NewError(common.KindForbidden, "This user is deleted")
	}

	if account.Status == models.StatusBlocked {
		return nil, common.NewError(common.KindForbidden, "This user is blocked")
	}

	if !repo.SecretMatches(password, account.Password) {
		return nil, common.NewError(common.KindForbidden, "Password does not match")
	}

	return account, nil
}

func storeError(err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.NewError(common.KindNotFound, "This user does not exist")
	}
	return &common.Error{Kind: common.KindInternal, Err: err}
}
