package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/amity-app/amity-service/internal/auth"
	"github.com/amity-app/amity-service/internal/domain"
	"github.com/amity-app/amity-service/internal/repository"
	apperrors "github.com/amity-app/amity-service/pkg/util/errorutil"
)

// BuildingService manages buildings under their parent communities.
type BuildingService struct {
	buildings   repository.BuildingRepository
	communities repository.CommunityRepository
}

// NewBuildingService constructs the service.
func NewBuildingService(buildings repository.BuildingRepository, communities repository.CommunityRepository) *BuildingService {
	return &BuildingService{buildings: buildings, communities: communities}
}

// BuildingInput carries editable building fields.
type BuildingInput struct {
	Name        string
	State       string
	Address     string
	PhoneNumber *string
}

// CreateBuilding adds a building under a community. Administrators may act
// anywhere; supervisors only within communities they own.
func (s *BuildingService) CreateBuilding(ctx context.Context, actor *auth.Principal, communityID string, input BuildingInput) (*domain.Building, error) {
	parent, err := s.fetchCommunity(ctx, communityID)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireBuildingManager(actor, parent); err != nil {
		return nil, err
	}
	if input.Name == "" || input.Address == "" {
		return nil, apperrors.NewValidationError("name and address required", nil)
	}

	building := &domain.Building{
		CommunityID:  parent.ID,
		Name:         input.Name,
		State:        input.State,
		Address:      input.Address,
		PhoneNumber:  input.PhoneNumber,
		SafetyStatus: true,
	}
	if err := s.buildings.Create(ctx, building); err != nil {
		return nil, apperrors.MapError(err)
	}
	return building, nil
}

// GetBuilding returns one building; management policy of its parent applies,
// and the building's own contact person may view it.
func (s *BuildingService) GetBuilding(ctx context.Context, actor *auth.Principal, id string) (*domain.Building, error) {
	building, err := s.fetchBuilding(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if actor.OwnsResource(building) {
		return building, nil
	}
	parent, err := s.fetchCommunity(ctx, building.CommunityID)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireBuildingManager(actor, parent); err != nil {
		return nil, err
	}
	return building, nil
}

// UpdateBuilding edits building fields under the parent-community policy.
func (s *BuildingService) UpdateBuilding(ctx context.Context, actor *auth.Principal, id string, input BuildingInput) (*domain.Building, error) {
	building, err := s.fetchBuilding(ctx, id)
	if err != nil {
		return nil, err
	}
	parent, err := s.fetchCommunity(ctx, building.CommunityID)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireBuildingManager(actor, parent); err != nil {
		return nil, err
	}

	building.Name = input.Name
	building.State = input.State
	building.Address = input.Address
	building.PhoneNumber = input.PhoneNumber
	if err := s.buildings.Update(ctx, building); err != nil {
		return nil, apperrors.MapError(err)
	}
	return building, nil
}

// SwitchSafetyLock toggles the building safety status.
func (s *BuildingService) SwitchSafetyLock(ctx context.Context, actor *auth.Principal, id string) (*domain.Building, error) {
	building, err := s.fetchBuilding(ctx, id)
	if err != nil {
		return nil, err
	}
	parent, err := s.fetchCommunity(ctx, building.CommunityID)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireBuildingManager(actor, parent); err != nil {
		return nil, err
	}
	if err := s.buildings.SetSafetyStatus(ctx, id, !building.SafetyStatus); err != nil {
		return nil, apperrors.MapError(err)
	}
	building.SafetyStatus = !building.SafetyStatus
	return building, nil
}

// ListBuildings lists buildings in a community. Administrators and the
// community owner see all of them; coordinators see the ones they are
// contact person of.
func (s *BuildingService) ListBuildings(ctx context.Context, actor *auth.Principal, communityID string, limit, offset int) ([]domain.Building, error) {
	parent, err := s.fetchCommunity(ctx, communityID)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	filter := repository.BuildingFilter{CommunityID: &parent.ID, Limit: limit, Offset: offset}
	if err := auth.RequireBuildingManager(actor, parent); err != nil {
		if !actor.HasRole(domain.RoleCoordinator) {
			return nil, err
		}
		filter.ContactPerson = &actor.Identity.ID
	}
	result, err := s.buildings.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

func (s *BuildingService) fetchBuilding(ctx context.Context, id string) (*domain.Building, error) {
	building, err := s.buildings.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("building", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return building, nil
}

func (s *BuildingService) fetchCommunity(ctx context.Context, id string) (*domain.Community, error) {
	community, err := s.communities.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("community", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return community, nil
}
