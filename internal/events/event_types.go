package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventMemberInvited      EventType = "member_invited"
	EventSecurityCodeIssued EventType = "security_code_issued"
	EventMemberDeactivated  EventType = "member_deactivated"
)

// Event represents a domain event emitted by services. Out-of-band message
// dispatch hangs off these events so its failures never reach the caller.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	IdentityID string      `json:"identity_id"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// MemberInvitedPayload carries the invitation token for mail dispatch.
type MemberInvitedPayload struct {
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	TokenValue string `json:"token_value"`
	Role       string `json:"role"`
}

// SecurityCodeIssuedPayload carries the freshly generated reset code.
type SecurityCodeIssuedPayload struct {
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	SecurityCode string `json:"security_code"`
}

// MemberDeactivatedPayload notes a terminal lifecycle change.
type MemberDeactivatedPayload struct {
	Email string `json:"email"`
}
