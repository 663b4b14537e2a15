package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/amity-app/amity-service/internal/auth"
	"github.com/amity-app/amity-service/internal/domain"
	"github.com/amity-app/amity-service/internal/repository"
	apperrors "github.com/amity-app/amity-service/pkg/util/errorutil"
)

// BindingService resolves which resource kind a role is responsible for and
// maintains contact-person bindings on communities and buildings.
type BindingService struct {
	bindings repository.BindingRepository
	logger   *zap.Logger
}

// NewBindingService constructs the service.
func NewBindingService(bindings repository.BindingRepository, logger *zap.Logger) *BindingService {
	return &BindingService{bindings: bindings, logger: logger}
}

// UnassignedResources lists (id, name) pairs of resources matching the
// role's resource kind whose contact person is unset. The community scope
// narrows building listings to one parent community.
func (s *BindingService) UnassignedResources(ctx context.Context, actor *auth.Principal, role domain.Role, communityScope *string) ([]domain.ResourceRef, error) {
	if err := auth.RequireRole(actor, domain.RoleAdministrator, domain.RoleSupervisor, domain.RoleCoordinator); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError("role does not exist", nil)
	}

	switch domain.ResourceKindForRole(role) {
	case domain.KindCommunity:
		return s.bindings.UnassignedCommunities(ctx)
	case domain.KindBuilding:
		return s.bindings.UnassignedBuildings(ctx, communityScope)
	default:
		return nil, apperrors.NewValidationError("role has no bindable property", map[string]any{"role": role.String()})
	}
}

// BindContactPerson sets the contact person on exactly one resource of the
// given kind. A missing resource is a silent no-op so member creation stays
// idempotent under races; an already-bound resource is overwritten,
// last-writer-wins.
func (s *BindingService) BindContactPerson(ctx context.Context, kind domain.ResourceKind, resourceID, identityID string) error {
	var (
		bound bool
		err   error
	)
	switch kind {
	case domain.KindCommunity:
		bound, err = s.bindings.BindCommunityContact(ctx, resourceID, identityID)
	case domain.KindBuilding:
		bound, err = s.bindings.BindBuildingContact(ctx, resourceID, identityID)
	default:
		return nil
	}
	if err != nil {
		return apperrors.MapError(err)
	}
	if !bound {
		s.logger.Warn("bind target missing, skipping",
			zap.String("kind", string(kind)),
			zap.String("resource_id", resourceID))
	}
	return nil
}

// UnbindAll clears the contact person on every community and building
// referencing the identity, as one logical operation.
func (s *BindingService) UnbindAll(ctx context.Context, identityID string) error {
	if err := s.bindings.UnbindAll(ctx, identityID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}
