package domain

import (
	"time"

	"github.com/google/uuid"
)

// SearchEvent records one completed search for analytics.
type SearchEvent struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Query           string    `json:"query" db:"query"`
	NormalizedQuery string    `json:"normalized_query" db:"normalized_query"`
	Kind            Kind      `json:"kind" db:"kind"`
	Route           string    `json:"route" db:"route"`
	URL             string    `json:"url" db:"url"`
	ProductCount    int       `json:"product_count" db:"product_count"`
	Degraded        bool      `json:"degraded" db:"degraded"` // product fetch failed
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// QueryStat is an aggregate over stored search events.
type QueryStat struct {
	NormalizedQuery string    `json:"query"`
	Count           int64     `json:"count"`
	LastKind        Kind      `json:"lastKind"`
	LastSeenAt      time.Time `json:"lastSeenAt"`
}
