package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/amity-app/amity-service/internal/auth"
	"github.com/amity-app/amity-service/internal/config"
	"github.com/amity-app/amity-service/internal/domain"
	"github.com/amity-app/amity-service/internal/repository"
	apperrors "github.com/amity-app/amity-service/pkg/util/errorutil"
)

// SessionService authenticates members and issues signed session tokens.
type SessionService struct {
	identities repository.IdentityRepository
	profiles   repository.ProfileRepository
	tokenMgr   *auth.TokenManager
}

// SessionDependencies encapsulates repo requirements for sign-in.
type SessionDependencies struct {
	IdentityRepo repository.IdentityRepository
	ProfileRepo  repository.ProfileRepository
}

// NewSessionService builds the service.
func NewSessionService(cfg config.Config, deps SessionDependencies) *SessionService {
	return &SessionService{
		identities: deps.IdentityRepo,
		profiles:   deps.ProfileRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
	}
}

// Login authenticates by email and password and pins one profile for the
// session. Without an explicit profile id the identity's most senior
// profile is pinned.
func (s *SessionService) Login(ctx context.Context, email, password string, profileID *string) (*domain.Identity, *domain.Profile, string, time.Time, error) {
	identity, err := s.identities.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, nil, "", time.Time{}, apperrors.MapError(err)
	}
	if !identity.Active {
		return nil, nil, "", time.Time{}, apperrors.NewUnauthorized("account inactive")
	}
	if err := auth.ComparePassword(identity.PasswordHash, password); err != nil {
		return nil, nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	profile, err := s.resolveProfile(ctx, identity.ID, profileID)
	if err != nil {
		return nil, nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(identity.ID, profile.ID, profile.Role)
	if err != nil {
		return nil, nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return identity, profile, token, exp, nil
}

func (s *SessionService) resolveProfile(ctx context.Context, identityID string, profileID *string) (*domain.Profile, error) {
	if profileID != nil && *profileID != "" {
		profile, err := s.profiles.GetByID(ctx, *profileID)
		if err != nil || profile.IdentityID != identityID {
			return nil, apperrors.NewValidationError("there is no such profile", nil)
		}
		return profile, nil
	}

	profiles, err := s.profiles.ListByIdentity(ctx, identityID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if len(profiles) == 0 {
		return nil, apperrors.NewUnauthorized("no profile for account")
	}
	return &profiles[0], nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *SessionService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
