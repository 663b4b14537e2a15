package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amity-app/amity-service/internal/auth"
	"github.com/amity-app/amity-service/internal/domain"
	apperrors "github.com/amity-app/amity-service/pkg/util/errorutil"
)

type communityFixture struct {
	service     *CommunityService
	communities *fakeCommunityRepo
}

func newCommunityFixture() *communityFixture {
	communities := newFakeCommunityRepo()
	return &communityFixture{
		service:     NewCommunityService(communities),
		communities: communities,
	}
}

func ownerOf(community *domain.Community, role domain.Role) *auth.Principal {
	identity := &domain.Identity{ID: *community.ContactPerson, Active: true}
	return &auth.Principal{
		Identity: identity,
		Profile:  &domain.Profile{ID: identity.ID + "-profile", IdentityID: identity.ID, Role: role},
		Role:     role,
	}
}

func TestCreateCommunity(t *testing.T) {
	ctx := context.Background()

	t.Run("created with safety lock engaged", func(t *testing.T) {
		fx := newCommunityFixture()
		community, err := fx.service.CreateCommunity(ctx, principal(domain.RoleAdministrator), CommunityInput{
			Name:    "Maple Grove",
			State:   "WA",
			ZipCode: "98101",
			Address: "1 Grove Way",
		})
		require.NoError(t, err)
		assert.True(t, community.SafetyStatus)
		assert.Nil(t, community.ContactPerson)
	})

	t.Run("requires name and address", func(t *testing.T) {
		fx := newCommunityFixture()
		_, err := fx.service.CreateCommunity(ctx, principal(domain.RoleAdministrator), CommunityInput{Name: "Maple Grove"})
		assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
	})

	t.Run("coordinator may not create", func(t *testing.T) {
		fx := newCommunityFixture()
		_, err := fx.service.CreateCommunity(ctx, principal(domain.RoleCoordinator), CommunityInput{
			Name:    "Maple Grove",
			Address: "1 Grove Way",
		})
		assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))
	})
}

func TestListCommunities(t *testing.T) {
	ctx := context.Background()

	fx := newCommunityFixture()
	supervisorID := "sup-1"
	fx.communities.seed(domain.Community{Name: "Maple Grove", ContactPerson: &supervisorID})
	fx.communities.seed(domain.Community{Name: "Oak Park"})

	t.Run("administrator sees all", func(t *testing.T) {
		result, err := fx.service.ListCommunities(ctx, principal(domain.RoleAdministrator), nil, 0, 0)
		require.NoError(t, err)
		assert.Len(t, result, 2)
	})

	t.Run("supervisor is scoped to owned communities", func(t *testing.T) {
		actor := &auth.Principal{
			Identity: &domain.Identity{ID: supervisorID, Active: true},
			Profile:  &domain.Profile{IdentityID: supervisorID, Role: domain.RoleSupervisor},
			Role:     domain.RoleSupervisor,
		}
		result, err := fx.service.ListCommunities(ctx, actor, nil, 0, 0)
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "Maple Grove", result[0].Name)
	})

	t.Run("coordinator may not list", func(t *testing.T) {
		_, err := fx.service.ListCommunities(ctx, principal(domain.RoleCoordinator), nil, 0, 0)
		assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))
	})
}

func TestCommunityManagement(t *testing.T) {
	ctx := context.Background()

	t.Run("owner updates fields", func(t *testing.T) {
		fx := newCommunityFixture()
		owner := "sup-1"
		community := fx.communities.seed(domain.Community{Name: "Maple Grove", Address: "1 Grove Way", ContactPerson: &owner})

		updated, err := fx.service.UpdateCommunity(ctx, ownerOf(community, domain.RoleSupervisor), community.ID, CommunityInput{
			Name:    "Maple Grove East",
			Address: "1 Grove Way",
		})
		require.NoError(t, err)
		assert.Equal(t, "Maple Grove East", updated.Name)
	})

	t.Run("non-owner supervisor is denied", func(t *testing.T) {
		fx := newCommunityFixture()
		owner := "sup-1"
		community := fx.communities.seed(domain.Community{Name: "Maple Grove", ContactPerson: &owner})

		_, err := fx.service.GetCommunity(ctx, principal(domain.RoleSupervisor), community.ID)
		assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))
	})

	t.Run("safety lock toggles each call", func(t *testing.T) {
		fx := newCommunityFixture()
		community := fx.communities.seed(domain.Community{Name: "Maple Grove", SafetyStatus: true})

		toggled, err := fx.service.SwitchSafetyLock(ctx, principal(domain.RoleAdministrator), community.ID)
		require.NoError(t, err)
		assert.False(t, toggled.SafetyStatus)

		toggled, err = fx.service.SwitchSafetyLock(ctx, principal(domain.RoleAdministrator), community.ID)
		require.NoError(t, err)
		assert.True(t, toggled.SafetyStatus)
	})

	t.Run("unknown community reports not found", func(t *testing.T) {
		fx := newCommunityFixture()
		_, err := fx.service.GetCommunity(ctx, principal(domain.RoleAdministrator), "missing")
		assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
	})
}

func TestSearchPredictions(t *testing.T) {
	ctx := context.Background()
	fx := newCommunityFixture()
	fx.communities.searchTerms = []string{"Maple Grove", "WA", "Ada Holt"}

	terms, err := fx.service.SearchPredictions(ctx, principal(domain.RoleAdministrator))
	require.NoError(t, err)
	assert.Equal(t, []string{"Maple Grove", "WA", "Ada Holt"}, terms)

	_, err = fx.service.SearchPredictions(ctx, principal(domain.RoleSupervisor))
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))
}
