package events

import "time"

const UserProvisionedTopic = "identity.user.provisioned.v1"

// UserProvisionedEvent feeds the welcome-email consumer. It carries the
// temporary plaintext password and the raw reset token; neither is ever
// persisted in this form, the event is the only place they exist after
// the provisioning transaction commits.
type UserProvisionedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	UserID       string    `json:"user_id"`
	CompanyID    string    `json:"company_id"`
	CompanyName  string    `json:"company_name"`
	Email        string    `json:"email"`
	UserName     string    `json:"user_name"`
	TempPassword string    `json:"temp_password"`
	ResetToken   string    `json:"reset_token"`
	OccurredAt   time.Time `json:"occurred_at"`
}
