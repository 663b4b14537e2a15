package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/amity-app/amity-service/internal/auth"
	"github.com/amity-app/amity-service/internal/domain"
	"github.com/amity-app/amity-service/internal/repository"
	apperrors "github.com/amity-app/amity-service/pkg/util/errorutil"
)

// CommunityService manages community entities.
type CommunityService struct {
	communities repository.CommunityRepository
}

// NewCommunityService constructs the service.
func NewCommunityService(communities repository.CommunityRepository) *CommunityService {
	return &CommunityService{communities: communities}
}

// CommunityInput carries editable community fields.
type CommunityInput struct {
	Name        string
	State       string
	ZipCode     string
	Address     string
	PhoneNumber string
	Description *string
}

// CreateCommunity registers a new community.
func (s *CommunityService) CreateCommunity(ctx context.Context, actor *auth.Principal, input CommunityInput) (*domain.Community, error) {
	if err := auth.RequireRole(actor, domain.RoleAdministrator, domain.RoleSupervisor); err != nil {
		return nil, err
	}
	if input.Name == "" || input.Address == "" {
		return nil, apperrors.NewValidationError("name and address required", nil)
	}
	community := &domain.Community{
		Name:         input.Name,
		State:        input.State,
		ZipCode:      input.ZipCode,
		Address:      input.Address,
		PhoneNumber:  input.PhoneNumber,
		Description:  input.Description,
		SafetyStatus: true,
	}
	if err := s.communities.Create(ctx, community); err != nil {
		return nil, apperrors.MapError(err)
	}
	return community, nil
}

// ListCommunities lists communities. Supervisors only see communities they
// are contact person of; administrators see all.
func (s *CommunityService) ListCommunities(ctx context.Context, actor *auth.Principal, safetyStatus *bool, limit, offset int) ([]domain.Community, error) {
	if err := auth.RequireRole(actor, domain.RoleAdministrator, domain.RoleSupervisor); err != nil {
		return nil, err
	}
	filter := repository.CommunityFilter{SafetyStatus: safetyStatus, Limit: limit, Offset: offset}
	if actor.HasRole(domain.RoleSupervisor) {
		filter.ContactPerson = &actor.Identity.ID
	}
	result, err := s.communities.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// GetCommunity returns one community, visible to its owner or an
// administrator.
func (s *CommunityService) GetCommunity(ctx context.Context, actor *auth.Principal, id string) (*domain.Community, error) {
	community, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireOwnerOrAdmin(actor, community); err != nil {
		return nil, err
	}
	return community, nil
}

// UpdateCommunity edits community fields, owner-or-admin only.
func (s *CommunityService) UpdateCommunity(ctx context.Context, actor *auth.Principal, id string, input CommunityInput) (*domain.Community, error) {
	community, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireOwnerOrAdmin(actor, community); err != nil {
		return nil, err
	}

	community.Name = input.Name
	community.State = input.State
	community.ZipCode = input.ZipCode
	community.Address = input.Address
	community.PhoneNumber = input.PhoneNumber
	community.Description = input.Description
	if err := s.communities.Update(ctx, community); err != nil {
		return nil, apperrors.MapError(err)
	}
	return community, nil
}

// SwitchSafetyLock toggles the community safety status.
func (s *CommunityService) SwitchSafetyLock(ctx context.Context, actor *auth.Principal, id string) (*domain.Community, error) {
	community, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireOwnerOrAdmin(actor, community); err != nil {
		return nil, err
	}
	if err := s.communities.SetSafetyStatus(ctx, id, !community.SafetyStatus); err != nil {
		return nil, apperrors.MapError(err)
	}
	community.SafetyStatus = !community.SafetyStatus
	return community, nil
}

// SearchPredictions returns distinct names, states and contact person names
// for the global search box. Administrator only.
func (s *CommunityService) SearchPredictions(ctx context.Context, actor *auth.Principal) ([]string, error) {
	if err := auth.RequireRole(actor, domain.RoleAdministrator); err != nil {
		return nil, err
	}
	result, err := s.communities.SearchTerms(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

func (s *CommunityService) fetch(ctx context.Context, id string) (*domain.Community, error) {
	community, err := s.communities.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("community", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return community, nil
}
