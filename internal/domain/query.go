package domain

import "time"

// PendingQuery selects recent campaigns that are not ready yet.
type PendingQuery struct {
	SourceKey string
	Now       time.Time
	MinAge    time.Duration
	Horizon   time.Duration
	Limit     int
}

// DiscoveryQuery selects campaigns whose last sync is older than Stale.
type DiscoveryQuery struct {
	SourceKey string
	Now       time.Time
	Stale     time.Duration
	Limit     int
}

// StatsWindow carries the policy knobs dashboard aggregation depends on.
type StatsWindow struct {
	Now     time.Time
	MinAge  time.Duration
	Horizon time.Duration
	TopN    int
}
