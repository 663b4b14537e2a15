package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amity-app/amity-service/internal/domain"
	apperrors "github.com/amity-app/amity-service/pkg/util/errorutil"
)

func testPrincipal(id string, role domain.Role) *Principal {
	return &Principal{
		Identity: &domain.Identity{ID: id, Active: true},
		Profile:  &domain.Profile{ID: id + "-profile", IdentityID: id, Role: role},
		Role:     role,
	}
}

func strPtr(s string) *string { return &s }

func TestPrincipalPredicates(t *testing.T) {
	supervisor := testPrincipal("sup-1", domain.RoleSupervisor)

	t.Run("HasRole", func(t *testing.T) {
		assert.True(t, supervisor.HasRole(domain.RoleAdministrator, domain.RoleSupervisor))
		assert.False(t, supervisor.HasRole(domain.RoleAdministrator, domain.RoleCoordinator))
	})

	t.Run("HasMinimumRank", func(t *testing.T) {
		assert.True(t, supervisor.HasMinimumRank(domain.RoleSupervisor))
		assert.True(t, supervisor.HasMinimumRank(domain.RoleCoordinator))
		assert.False(t, supervisor.HasMinimumRank(domain.RoleAdministrator))
	})

	t.Run("OwnsResource", func(t *testing.T) {
		owned := &domain.Community{ID: "c1", ContactPerson: strPtr("sup-1")}
		foreign := &domain.Community{ID: "c2", ContactPerson: strPtr("sup-2")}
		orphan := &domain.Community{ID: "c3"}

		assert.True(t, supervisor.OwnsResource(owned))
		assert.False(t, supervisor.OwnsResource(foreign))
		assert.False(t, supervisor.OwnsResource(orphan))
		assert.False(t, supervisor.OwnsResource(nil))
	})

	t.Run("IsSelf", func(t *testing.T) {
		assert.True(t, supervisor.IsSelf("sup-1"))
		assert.False(t, supervisor.IsSelf("sup-2"))
	})

	t.Run("CanActOn", func(t *testing.T) {
		assert.True(t, supervisor.CanActOn(domain.RoleCoordinator))
		assert.True(t, supervisor.CanActOn(domain.RoleResident))
		assert.False(t, supervisor.CanActOn(domain.RoleSupervisor))
		assert.False(t, supervisor.CanActOn(domain.RoleAdministrator))
	})
}

func TestRequireAuthenticated(t *testing.T) {
	assert.NoError(t, RequireAuthenticated(testPrincipal("p1", domain.RoleResident)))

	assert.True(t, apperrors.IsCode(RequireAuthenticated(nil), "UNAUTHORIZED"))
	assert.True(t, apperrors.IsCode(RequireAuthenticated(&Principal{}), "UNAUTHORIZED"))
}

func TestRequireRole(t *testing.T) {
	coordinator := testPrincipal("coor-1", domain.RoleCoordinator)

	assert.NoError(t, RequireRole(coordinator, domain.RoleCoordinator, domain.RoleSupervisor))
	assert.True(t, apperrors.IsCode(RequireRole(coordinator, domain.RoleAdministrator), "FORBIDDEN"))
	assert.True(t, apperrors.IsCode(RequireRole(nil, domain.RoleCoordinator), "UNAUTHORIZED"))
}

func TestRequireOwnerOrAdmin(t *testing.T) {
	community := &domain.Community{ID: "c1", ContactPerson: strPtr("sup-1")}

	assert.NoError(t, RequireOwnerOrAdmin(testPrincipal("admin-1", domain.RoleAdministrator), community))
	assert.NoError(t, RequireOwnerOrAdmin(testPrincipal("sup-1", domain.RoleSupervisor), community))

	err := RequireOwnerOrAdmin(testPrincipal("sup-2", domain.RoleSupervisor), community)
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))
}

func TestRequireBuildingManager(t *testing.T) {
	parent := &domain.Community{ID: "c1", ContactPerson: strPtr("sup-1")}

	assert.NoError(t, RequireBuildingManager(testPrincipal("admin-1", domain.RoleAdministrator), parent))
	assert.NoError(t, RequireBuildingManager(testPrincipal("sup-1", domain.RoleSupervisor), parent))

	// Owning the parent is not enough without the supervisor role.
	coordinatorOwner := testPrincipal("sup-1", domain.RoleCoordinator)
	assert.True(t, apperrors.IsCode(RequireBuildingManager(coordinatorOwner, parent), "FORBIDDEN"))

	foreignSupervisor := testPrincipal("sup-2", domain.RoleSupervisor)
	assert.True(t, apperrors.IsCode(RequireBuildingManager(foreignSupervisor, parent), "FORBIDDEN"))
}

func TestRequireSelfNotResident(t *testing.T) {
	staffProfiles := []domain.Profile{{IdentityID: "p1", Role: domain.RoleCoordinator}}
	residentProfiles := []domain.Profile{{IdentityID: "p1", Role: domain.RoleResident}}
	mixedProfiles := []domain.Profile{
		{IdentityID: "p1", Role: domain.RoleResident},
		{IdentityID: "p1", Role: domain.RoleObserver},
	}

	actor := testPrincipal("p1", domain.RoleCoordinator)

	assert.NoError(t, RequireSelfNotResident(actor, "p1", staffProfiles))
	assert.NoError(t, RequireSelfNotResident(actor, "p1", mixedProfiles))

	// Not the caller's own account.
	assert.True(t, apperrors.IsCode(RequireSelfNotResident(actor, "p2", staffProfiles), "FORBIDDEN"))

	// Resident-only accounts have no self-service surface.
	resident := testPrincipal("p1", domain.RoleResident)
	assert.True(t, apperrors.IsCode(RequireSelfNotResident(resident, "p1", residentProfiles), "FORBIDDEN"))
	assert.True(t, apperrors.IsCode(RequireSelfNotResident(resident, "p1", nil), "FORBIDDEN"))
}

func TestRequireSeniorTo(t *testing.T) {
	admin := testPrincipal("admin-1", domain.RoleAdministrator)
	supervisor := testPrincipal("sup-1", domain.RoleSupervisor)

	assert.NoError(t, RequireSeniorTo(admin, domain.RoleSupervisor))
	assert.NoError(t, RequireSeniorTo(admin, domain.RoleResident))
	assert.NoError(t, RequireSeniorTo(supervisor, domain.RoleCoordinator))

	assert.True(t, apperrors.IsCode(RequireSeniorTo(supervisor, domain.RoleSupervisor), "FORBIDDEN"))
	assert.True(t, apperrors.IsCode(RequireSeniorTo(supervisor, domain.RoleAdministrator), "FORBIDDEN"))
	assert.True(t, apperrors.IsCode(RequireSeniorTo(nil, domain.RoleResident), "UNAUTHORIZED"))
}
