package dto

// CommunityRequest payload for creating or editing a community.
type CommunityRequest struct {
	Name        string  `json:"name"`
	State       string  `json:"state"`
	ZipCode     string  `json:"zip_code"`
	Address     string  `json:"address"`
	PhoneNumber string  `json:"phone_number"`
	Description *string `json:"description,omitempty"`
}

// CommunityResponse describes a community.
type CommunityResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	State         string  `json:"state"`
	ZipCode       string  `json:"zip_code"`
	Address       string  `json:"address"`
	PhoneNumber   string  `json:"phone_number"`
	Description   *string `json:"description,omitempty"`
	ContactPerson *string `json:"contact_person,omitempty"`
	SafetyStatus  bool    `json:"safety_status"`
}

// BuildingRequest payload for creating or editing a building.
type BuildingRequest struct {
	Name        string  `json:"name"`
	State       string  `json:"state"`
	Address     string  `json:"address"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

// BuildingResponse describes a building.
type BuildingResponse struct {
	ID            string  `json:"id"`
	CommunityID   string  `json:"community_id"`
	Name          string  `json:"name"`
	State         string  `json:"state"`
	Address       string  `json:"address"`
	PhoneNumber   *string `json:"phone_number,omitempty"`
	ContactPerson *string `json:"contact_person,omitempty"`
	SafetyStatus  bool    `json:"safety_status"`
}
