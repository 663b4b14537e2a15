package domain

import "time"

// BindableResource is the capability shared by properties that can carry a
// contact person. The Role to ResourceKind mapping selects the concrete
// implementation instead of conditional dispatch on role ids.
type BindableResource interface {
	ResourceID() string
	Kind() ResourceKind
	ContactPersonID() *string
}

// Community is an organization-level property. Its contact person is
// expected to hold a SUPERVISOR profile.
type Community struct {
	ID            string
	Name          string
	State         string
	ZipCode       string
	Address       string
	PhoneNumber   string
	Description   *string
	ContactPerson *string
	SafetyStatus  bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (c *Community) ResourceID() string       { return c.ID }
func (c *Community) Kind() ResourceKind       { return KindCommunity }
func (c *Community) ContactPersonID() *string { return c.ContactPerson }

// Building is a site-level property belonging to exactly one community. Its
// contact person is expected to hold a COORDINATOR profile.
type Building struct {
	ID            string
	CommunityID   string
	Name          string
	State         string
	Address       string
	PhoneNumber   *string
	ContactPerson *string
	SafetyStatus  bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (b *Building) ResourceID() string       { return b.ID }
func (b *Building) Kind() ResourceKind       { return KindBuilding }
func (b *Building) ContactPersonID() *string { return b.ContactPerson }

// ResourceRef is the (id, name) projection used by unassigned-property
// listings.
type ResourceRef struct {
	ID   string
	Name string
}
