package service

import "time"

// LogFilter supports history filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "CAMPAIGN_CREATED", "CAMPAIGN_UPDATED", ...

	ActorID int    // 0 means any user
	Subject string // campaign id or username; "" means any
}
