package service

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/amity-app/amity-service/internal/auth"
	"github.com/amity-app/amity-service/internal/config"
	"github.com/amity-app/amity-service/internal/domain"
	"github.com/amity-app/amity-service/internal/events"
	"github.com/amity-app/amity-service/internal/repository"
	apperrors "github.com/amity-app/amity-service/pkg/util/errorutil"
)

// CredentialService owns the password-reset and invitation token flows:
// security codes, single-use token issuance and redemption.
type CredentialService struct {
	identities repository.IdentityRepository
	tokens     repository.TokenRepository
	dispatcher events.Dispatcher
	bcryptCost int
	codeLength int
}

// CredentialDependencies encapsulates repo requirements.
type CredentialDependencies struct {
	IdentityRepo repository.IdentityRepository
	TokenRepo    repository.TokenRepository
	Dispatcher   events.Dispatcher
}

// NewCredentialService builds the service.
func NewCredentialService(cfg config.Config, deps CredentialDependencies) *CredentialService {
	codeLength := cfg.Auth.SecurityCodeLength
	if codeLength <= 0 {
		codeLength = 6
	}
	return &CredentialService{
		identities: deps.IdentityRepo,
		tokens:     deps.TokenRepo,
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
		codeLength: codeLength,
	}
}

// RequestPasswordReset regenerates the identity's security code and
// dispatches it out-of-band. The code never appears in the response. Every
// call produces a fresh code; only the latest one verifies.
func (s *CredentialService) RequestPasswordReset(ctx context.Context, email string) error {
	identity, err := s.identities.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("account", map[string]any{"email": email})
		}
		return apperrors.MapError(err)
	}

	code, err := generateSecurityCode(s.codeLength)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := s.identities.SetSecurityCode(ctx, identity.ID, code); err != nil {
		return apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		ID:         uuid.NewString(),
		Type:       events.EventSecurityCodeIssued,
		IdentityID: identity.ID,
		Timestamp:  time.Now(),
		Payload: events.SecurityCodeIssuedPayload{
			Email:        identity.Email,
			FirstName:    identity.FirstName,
			SecurityCode: code,
		},
	})
	return nil
}

// VerifySecurityCode compares the supplied code against the latest stored
// one and, on match, returns a password-reset token. Verification is
// get-or-create: verifying twice before redemption yields the same token.
func (s *CredentialService) VerifySecurityCode(ctx context.Context, email, code string) (string, error) {
	identity, err := s.identities.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", apperrors.NewNotFound("account", map[string]any{"email": email})
		}
		return "", apperrors.MapError(err)
	}

	if identity.SecurityCode == nil || *identity.SecurityCode != code {
		return "", apperrors.NewForbidden("incorrect security code")
	}

	token, err := s.tokens.GetOrCreate(ctx, identity.ID, domain.TokenKindPasswordReset)
	if err != nil {
		return "", apperrors.MapError(err)
	}
	return token.Value, nil
}

// RedeemToken consumes a credential token and sets a new password. The
// token kind does not matter at redemption: invitations and resets redeem
// identically. All strength violations are reported together. A successful
// redemption deletes every token bound to the identity.
func (s *CredentialService) RedeemToken(ctx context.Context, tokenValue, password, confirmPassword string) error {
	if password != confirmPassword {
		return apperrors.NewValidationError("passwords do not match", nil)
	}

	token, err := s.tokens.GetByValue(ctx, tokenValue)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewValidationError("invalid token", nil)
		}
		return apperrors.MapError(err)
	}

	if violations := auth.ValidatePasswordStrength(password); len(violations) > 0 {
		return apperrors.NewValidationError("password does not meet requirements", map[string]any{"password": violations})
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := s.identities.SetPasswordHash(ctx, token.IdentityID, hash); err != nil {
		return apperrors.MapError(err)
	}
	if err := s.tokens.DeleteAllForIdentity(ctx, token.IdentityID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// ChangePassword verifies the current password before setting a new one.
// Self-service only; the caller is the target.
func (s *CredentialService) ChangePassword(ctx context.Context, identityID, currentPassword, newPassword string) error {
	identity, err := s.identities.GetByID(ctx, identityID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("account", nil)
		}
		return apperrors.MapError(err)
	}
	if err := auth.ComparePassword(identity.PasswordHash, currentPassword); err != nil {
		return apperrors.NewForbidden("invalid credentials")
	}
	if violations := auth.ValidatePasswordStrength(newPassword); len(violations) > 0 {
		return apperrors.NewValidationError("password does not meet requirements", map[string]any{"password": violations})
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return apperrors.MapError(s.identities.SetPasswordHash(ctx, identity.ID, hash))
}

// IssueInvitation creates (or returns) the invitation token for a freshly
// created member and dispatches it out-of-band.
func (s *CredentialService) IssueInvitation(ctx context.Context, identity *domain.Identity, role domain.Role) error {
	token, err := s.tokens.GetOrCreate(ctx, identity.ID, domain.TokenKindInvitation)
	if err != nil {
		return apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		ID:         uuid.NewString(),
		Type:       events.EventMemberInvited,
		IdentityID: identity.ID,
		Timestamp:  time.Now(),
		Payload: events.MemberInvitedPayload{
			Email:      identity.Email,
			FirstName:  identity.FirstName,
			TokenValue: token.Value,
			Role:       role.String(),
		},
	})
	return nil
}

func (s *CredentialService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}

// generateSecurityCode draws a uniformly random decimal code of the given
// length.
func generateSecurityCode(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
