package dto

// CreateMemberRequest payload for inviting a new member.
type CreateMemberRequest struct {
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Role        string  `json:"role"`
	PropertyID  *string `json:"property_id,omitempty"`
}

// MemberResponse describes a member identity.
type MemberResponse struct {
	ID          string  `json:"id"`
	FullName    string  `json:"full_name"`
	Email       string  `json:"email"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Active      bool    `json:"is_active"`
}

// ProfileInfoRequest payload for self-service profile edits.
type ProfileInfoRequest struct {
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

// RoleResponse is one entry of a roles listing.
type RoleResponse struct {
	ID   int16  `json:"id"`
	Name string `json:"name"`
}

// ResourceRefResponse is one entry of an unassigned-property listing.
type ResourceRefResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
