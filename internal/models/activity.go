package models

import "time"

// Activity event types.
const (
	ActivityCampaignCreated = "CAMPAIGN_CREATED"
	ActivityCampaignUpdated = "CAMPAIGN_UPDATED"
	ActivityCampaignDeleted = "CAMPAIGN_DELETED"
	ActivityUserRegistered  = "USER_REGISTERED"
	ActivityProfileUpdated  = "PROFILE_UPDATED"
	ActivityPasswordChanged = "PASSWORD_CHANGED"
)

// ActivityEvent is a single audit log entry.
type ActivityEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`
	ActorID     int       `json:"actor_id"`
	Subject     string    `json:"subject,omitempty"` // campaign id or username
	Description string    `json:"description"`       // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
