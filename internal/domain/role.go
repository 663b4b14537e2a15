package domain

// Role is an ordinal rank in the fixed staff hierarchy. A lower ordinal
// carries more authority.
type Role int16

const (
	RoleAdministrator Role = 1
	RoleSupervisor    Role = 2
	RoleCoordinator   Role = 3
	RoleObserver      Role = 4
	RoleResident      Role = 5
)

var roleNames = map[Role]string{
	RoleAdministrator: "administrator",
	RoleSupervisor:    "supervisor",
	RoleCoordinator:   "coordinator",
	RoleObserver:      "observer",
	RoleResident:      "resident",
}

// AllRoles lists every role in rank order.
var AllRoles = []Role{
	RoleAdministrator,
	RoleSupervisor,
	RoleCoordinator,
	RoleObserver,
	RoleResident,
}

// String returns the canonical lowercase role name.
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether r belongs to the closed role set.
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// Below reports whether r ranks strictly below other.
func (r Role) Below(other Role) bool {
	return r > other
}

// RoleByName resolves the canonical name back to a role.
func RoleByName(name string) (Role, bool) {
	for role, roleName := range roleNames {
		if roleName == name {
			return role, true
		}
	}
	return 0, false
}

// RolesBelow returns every role ranking strictly below r, most senior first.
// An actor may only create or list profiles for these roles.
func RolesBelow(r Role) []Role {
	below := make([]Role, 0, len(AllRoles))
	for _, candidate := range AllRoles {
		if candidate.Below(r) {
			below = append(below, candidate)
		}
	}
	return below
}

// ResourceKind identifies which kind of property a role is responsible for.
type ResourceKind string

const (
	KindNone      ResourceKind = "NONE"
	KindCommunity ResourceKind = "COMMUNITY"
	KindBuilding  ResourceKind = "BUILDING"
)

// ResourceKindForRole maps a role to the resource kind it may be bound to as
// contact person. Total over the role set: roles without a property
// responsibility map to KindNone.
func ResourceKindForRole(r Role) ResourceKind {
	switch r {
	case RoleSupervisor:
		return KindCommunity
	case RoleCoordinator:
		return KindBuilding
	default:
		return KindNone
	}
}
