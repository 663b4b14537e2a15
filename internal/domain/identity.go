package domain

import "time"

// Identity is the domain model for a person account. Identities are never
// hard-deleted; deactivation is the terminal lifecycle state.
type Identity struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PhoneNumber  *string
	PasswordHash string
	SecurityCode *string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName joins first and last name for listing views.
func (i *Identity) FullName() string {
	switch {
	case i.FirstName == "":
		return i.LastName
	case i.LastName == "":
		return i.FirstName
	default:
		return i.FirstName + " " + i.LastName
	}
}

// Profile binds an identity to a role. An identity may hold several
// profiles, but at most one per role.
type Profile struct {
	ID         string
	IdentityID string
	Role       Role
	CreatedAt  time.Time
}
