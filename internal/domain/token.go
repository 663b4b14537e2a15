package domain

import "time"

// TokenKind differentiates invitation and password-reset tokens. Both kinds
// are redeemed through the same flow.
type TokenKind string

const (
	TokenKindInvitation    TokenKind = "INVITATION"
	TokenKindPasswordReset TokenKind = "PASSWORD_RESET"
)

// CredentialToken is a single-use opaque value bound to one identity. It is
// invalidated only by consumption, never by elapsed time.
type CredentialToken struct {
	ID         string
	IdentityID string
	Kind       TokenKind
	Value      string
	CreatedAt  time.Time
}
