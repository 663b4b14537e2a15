package service

import (
	"context"
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

// MemberService manages member identities and their lifecycle: invitation,
// activation, deactivation and the cascading contact-person changes.
type MemberService struct {
	identities  repository.IdentityRepository
	profiles    repository.ProfileRepository
	credentials *CredentialService
	binding     *BindingService
	dispatcher  events.Dispatcher
	bcryptCost  int
}

// MemberDependencies encapsulates requirements for the member service.
type MemberDependencies struct {
	IdentityRepo repository.IdentityRepository
	ProfileRepo  repository.ProfileRepository
	Credentials  *CredentialService
	Binding      *BindingService
	Dispatcher   events.Dispatcher
}

// NewMemberService constructs the service.
func NewMemberService(cfg config.Config, deps MemberDependencies) *MemberService {
	return &MemberService{
		identities:  deps.IdentityRepo,
		profiles:    deps.ProfileRepo,
		credentials: deps.Credentials,
		binding:     deps.Binding,
		dispatcher:  deps.Dispatcher,
		bcryptCost:  cfg.Auth.BcryptCost,
	}
}

// CreateMemberInput carries member creation fields.
type CreateMemberInput struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber *string
	Role        domain.Role
	ResourceID  *string
}

// CreateMember creates an invited member below the actor's rank. Validation
// runs fully before any identity is created: a supervisor or coordinator
// target without a resource id fails without side effects.
func (s *MemberService) CreateMember(ctx context.Context, actor *auth.Principal, input CreateMemberInput) (*domain.Identity, error) {
	if err := auth.RequireSeniorTo(actor, input.Role); err != nil {
		return nil, err
	}
	if !input.Role.Valid() {
		return nil, apperrors.NewValidationError("role does not exist", nil)
	}
	if input.Email == "" {
		return nil, apperrors.NewValidationError("email required", nil)
	}

	kind := domain.ResourceKindForRole(input.Role)
	if kind != domain.KindNone && (input.ResourceID == nil || *input.ResourceID == "") {
		return nil, apperrors.NewValidationError("a property id is required for this role", map[string]any{"role": input.Role.String()})
	}

	if _, err := s.identities.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": input.Email})
	} else if err != pgx.ErrNoRows {
		return nil, apperrors.MapError(err)
	}

	identity := &domain.Identity{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		Active:      false,
	}
	if err := s.identities.Create(ctx, identity); err != nil {
		return nil, apperrors.MapError(err)
	}

	profile := &domain.Profile{IdentityID: identity.ID, Role: input.Role}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, apperrors.MapError(err)
	}

	if err := s.credentials.IssueInvitation(ctx, identity, input.Role); err != nil {
		return nil, err
	}

	if kind != domain.KindNone {
		if err := s.binding.BindContactPerson(ctx, kind, *input.ResourceID, identity.ID); err != nil {
			return nil, err
		}
	}
	return identity, nil
}

// BootstrapAdministrator seeds the configured administrator account. The
// identity is auto-active and no invitation is dispatched. Safe to run on
// every start; an existing account is left alone.
func (s *MemberService) BootstrapAdministrator(ctx context.Context, cfg config.BootstrapConfig) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}
	if _, err := s.identities.GetByEmail(ctx, cfg.AdminEmail); err == nil {
		return nil
	} else if err != pgx.ErrNoRows {
		return apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(cfg.AdminPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	identity := &domain.Identity{
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		Active:       true,
	}
	if err := s.identities.Create(ctx, identity); err != nil {
		return apperrors.MapError(err)
	}
	profile := &domain.Profile{IdentityID: identity.ID, Role: domain.RoleAdministrator}
	return apperrors.MapError(s.profiles.Create(ctx, profile))
}

// DeactivateMember marks the identity inactive and unbinds every resource
// referencing it. Idempotent: repeating it re-runs the harmless unbind.
func (s *MemberService) DeactivateMember(ctx context.Context, actor *auth.Principal, identityID string) error {
	if err := auth.RequireRole(actor, domain.RoleAdministrator, domain.RoleSupervisor); err != nil {
		return err
	}
	identity, err := s.identities.GetByID(ctx, identityID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("member", nil)
		}
		return apperrors.MapError(err)
	}

	if err := s.identities.SetActive(ctx, identity.ID, false); err != nil {
		return apperrors.MapError(err)
	}
	if err := s.binding.UnbindAll(ctx, identity.ID); err != nil {
		return err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:         uuid.NewString(),
			Type:       events.EventMemberDeactivated,
			IdentityID: identity.ID,
			Timestamp:  time.Now(),
			Payload:    events.MemberDeactivatedPayload{Email: identity.Email},
		})
	}
	return nil
}

// ActivateMember re-activates the identity. Resources deliberately stay
// unbound; rebinding is a separate administrative action.
func (s *MemberService) ActivateMember(ctx context.Context, actor *auth.Principal, identityID string) error {
	if err := auth.RequireRole(actor, domain.RoleAdministrator, domain.RoleSupervisor, domain.RoleCoordinator); err != nil {
		return err
	}
	if err := s.identities.SetActive(ctx, identityID, true); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("member", nil)
		}
		return apperrors.MapError(err)
	}
	return nil
}

// MembersByRole lists identities holding the given role. Actors may only
// list roles strictly below their own rank.
func (s *MemberService) MembersByRole(ctx context.Context, actor *auth.Principal, role domain.Role) ([]domain.Identity, error) {
	if err := auth.RequireSeniorTo(actor, role); err != nil {
		return nil, err
	}
	result, err := s.identities.ListByRole(ctx, role)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// RolesBelow returns the roles the actor may assign to subordinates.
func (s *MemberService) RolesBelow(actor *auth.Principal) ([]domain.Role, error) {
	if err := auth.RequireRole(actor, domain.RoleAdministrator, domain.RoleSupervisor, domain.RoleCoordinator); err != nil {
		return nil, err
	}
	return domain.RolesBelow(actor.Role), nil
}

// GetProfileInfo returns the identity for self-service viewing.
func (s *MemberService) GetProfileInfo(ctx context.Context, actor *auth.Principal, identityID string) (*domain.Identity, error) {
	if err := s.requireSelfNotResident(ctx, actor, identityID); err != nil {
		return nil, err
	}
	identity, err := s.identities.GetByID(ctx, identityID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return identity, nil
}

// ProfileInfoUpdate carries editable contact fields.
type ProfileInfoUpdate struct {
	FirstName   string
	LastName    string
	PhoneNumber *string
}

// UpdateProfileInfo edits the caller's own contact fields.
func (s *MemberService) UpdateProfileInfo(ctx context.Context, actor *auth.Principal, identityID string, update ProfileInfoUpdate) (*domain.Identity, error) {
	if err := s.requireSelfNotResident(ctx, actor, identityID); err != nil {
		return nil, err
	}
	identity, err := s.identities.GetByID(ctx, identityID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	identity.FirstName = update.FirstName
	identity.LastName = update.LastName
	identity.PhoneNumber = update.PhoneNumber
	if err := s.identities.Update(ctx, identity); err != nil {
		return nil, apperrors.MapError(err)
	}
	return identity, nil
}

func (s *MemberService) requireSelfNotResident(ctx context.Context, actor *auth.Principal, identityID string) error {
	if err := auth.RequireAuthenticated(actor); err != nil {
		return err
	}
	profiles, err := s.profiles.ListByIdentity(ctx, actor.Identity.ID)
	if err != nil {
		return apperrors.MapError(err)
	}
	return auth.RequireSelfNotResident(actor, identityID, profiles)
}
