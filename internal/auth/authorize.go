package auth

import (
	"github.com/amity-app/amity-service/internal/domain"
	apperrors "github.com/amity-app/amity-service/pkg/util/errorutil"
)

// Principal represents the authenticated caller: the identity plus the one
// profile pinned by the session token. A request moves Unauthenticated ->
// Authenticated -> Authorized or Denied; every predicate here is evaluated
// before any mutation begins and denials are terminal for the request.
type Principal struct {
	Identity *domain.Identity
	Profile  *domain.Profile
	Role     domain.Role
}

// HasRole reports whether the pinned role is in the allowed set.
func (p *Principal) HasRole(allowed ...domain.Role) bool {
	for _, role := range allowed {
		if p.Role == role {
			return true
		}
	}
	return false
}

// HasMinimumRank reports whether the pinned role is at least as senior as
// the threshold.
func (p *Principal) HasMinimumRank(threshold domain.Role) bool {
	return p.Role <= threshold
}

// OwnsResource reports whether the caller is the resource's contact person.
func (p *Principal) OwnsResource(resource domain.BindableResource) bool {
	if resource == nil {
		return false
	}
	contact := resource.ContactPersonID()
	return contact != nil && p.Identity != nil && *contact == p.Identity.ID
}

// IsSelf reports whether the target identity is the caller itself.
func (p *Principal) IsSelf(identityID string) bool {
	return p.Identity != nil && p.Identity.ID == identityID
}

// CanActOn reports whether the caller may create or manage members holding
// the target role, which must rank strictly below the caller's own.
func (p *Principal) CanActOn(target domain.Role) bool {
	return target.Below(p.Role)
}

// RequireAuthenticated is the Authenticated gate.
func RequireAuthenticated(p *Principal) error {
	if p == nil || p.Identity == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	return nil
}

// RequireRole denies unless the pinned role is in the allowed set.
func RequireRole(p *Principal, allowed ...domain.Role) error {
	if err := RequireAuthenticated(p); err != nil {
		return err
	}
	if !p.HasRole(allowed...) {
		return apperrors.NewForbidden("operation not permitted")
	}
	return nil
}

// RequireOwnerOrAdmin guards resource management: administrators pass, and
// so does the resource's contact person.
func RequireOwnerOrAdmin(p *Principal, resource domain.BindableResource) error {
	if err := RequireAuthenticated(p); err != nil {
		return err
	}
	if p.HasRole(domain.RoleAdministrator) || p.OwnsResource(resource) {
		return nil
	}
	return apperrors.NewForbidden("operation not permitted")
}

// RequireBuildingManager guards buildings under a community: administrators
// pass, and so does a supervisor owning the parent community.
func RequireBuildingManager(p *Principal, parent *domain.Community) error {
	if err := RequireAuthenticated(p); err != nil {
		return err
	}
	if p.HasRole(domain.RoleAdministrator) {
		return nil
	}
	if p.HasRole(domain.RoleSupervisor) && p.OwnsResource(parent) {
		return nil
	}
	return apperrors.NewForbidden("operation not permitted")
}

// RequireSelfNotResident guards profile self-service: the target must be the
// caller, and the caller must hold at least one non-resident profile.
func RequireSelfNotResident(p *Principal, targetIdentityID string, profiles []domain.Profile) error {
	if err := RequireAuthenticated(p); err != nil {
		return err
	}
	if !p.IsSelf(targetIdentityID) {
		return apperrors.NewForbidden("operation not permitted")
	}
	for _, profile := range profiles {
		if profile.Role != domain.RoleResident {
			return nil
		}
	}
	return apperrors.NewForbidden("operation not permitted")
}

// RequireSeniorTo guards member creation and deactivation: the target role
// must rank strictly below the caller's.
func RequireSeniorTo(p *Principal, target domain.Role) error {
	if err := RequireAuthenticated(p); err != nil {
		return err
	}
	if !p.CanActOn(target) {
		return apperrors.NewForbidden("target role must be below your own")
	}
	return nil
}
