package dto

import "time"

// LoginRequest payload for sign-in. ProfileID optionally pins a specific
// profile; the first profile is used otherwise.
type LoginRequest struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	ProfileID *string `json:"profile_id,omitempty"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PasswordResetRequest payload for requesting a security code.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// SecurityCodeRequest payload for confirming a security code.
type SecurityCodeRequest struct {
	Email        string `json:"email"`
	SecurityCode string `json:"security_code"`
}

// RedeemTokenRequest payload for creating a new password from an invitation
// or reset token.
type RedeemTokenRequest struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// PasswordChangeRequest payload for authenticated password changes.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}
