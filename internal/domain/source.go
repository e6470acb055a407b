package domain

import "time"

// EntityType names an upstream collection and a sync cursor dimension.
type EntityType string

const (
	EntityCampaign EntityType = "campaign"
	EntityPost     EntityType = "post"
)

type AgencySource struct {
	ID           int64     `db:"id"`
	Key          string    `db:"key"`
	Name         string    `db:"name"`
	BaseEndpoint string    `db:"base_endpoint"`
	Active       bool      `db:"active"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// RawRecord is an upstream item as decoded from JSON, before normalization.
type RawRecord map[string]any

// Page is one cursor page of an upstream list endpoint.
type Page struct {
	Results    []RawRecord
	Remaining  int
	NextCursor int64
	Count      int
}
