package events

import "time"

const CompanyRegisteredTopic = "identity.company.lifecycle.v1"

type CompanyRegisteredEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	CompanyID  string    `json:"company_id"`
	Subdomain  string    `json:"subdomain"`
	OwnerID    string    `json:"owner_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
