package repository

import (
	"context"
	"fmt"

	"storefront/search/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SearchEventRepository interface {
	SaveSearchEvent(ctx context.Context, event *domain.SearchEvent) error
	TopQueries(ctx context.Context, limit int) ([]domain.QueryStat, error)
}

type searchEventRepository struct {
	db *pgxpool.Pool
}

func NewSearchEventRepository(db *pgxpool.Pool) SearchEventRepository {
	return &searchEventRepository{
		db: db,
	}
}

// Schema creates the search_events table if it is missing.
const Schema = `
CREATE TABLE IF NOT EXISTS search_events (
	id               UUID PRIMARY KEY,
	query            TEXT        NOT NULL,
	normalized_query TEXT        NOT NULL,
	kind             TEXT        NOT NULL,
	route            TEXT        NOT NULL,
	url              TEXT        NOT NULL,
	product_count    INTEGER     NOT NULL DEFAULT 0,
	degraded         BOOLEAN     NOT NULL DEFAULT FALSE,
	created_at       TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS search_events_normalized_query_idx ON search_events (normalized_query);`

// Migrate applies Schema.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to migrate search_events: %w", err)
	}
	return nil
}

// SaveSearchEvent is idempotent: redelivered stream messages carry the same id.
func (r *searchEventRepository) SaveSearchEvent(ctx context.Context, event *domain.SearchEvent) error {
	query := `
	INSERT INTO search_events (id, query, normalized_query, kind, route, url, product_count, degraded, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (id) DO NOTHING`
	_, err := r.db.Exec(ctx, query,
		event.ID,
		event.Query,
		event.NormalizedQuery,
		event.Kind.String(),
		event.Route,
		event.URL,
		event.ProductCount,
		event.Degraded,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save search event: %w", err)
	}

	return nil
}

func (r *searchEventRepository) TopQueries(ctx context.Context, limit int) ([]domain.QueryStat, error) {
	query := `
	SELECT normalized_query,
	       COUNT(*) AS hits,
	       (ARRAY_AGG(kind ORDER BY created_at DESC))[1] AS last_kind,
	       MAX(created_at) AS last_seen_at
	FROM search_events
	WHERE normalized_query <> ''
	GROUP BY normalized_query
	ORDER BY hits DESC, last_seen_at DESC
	LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top searches: %w", err)
	}

	stats, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.QueryStat, error) {
		var s domain.QueryStat
		var kind string
		err := row.Scan(&s.NormalizedQuery, &s.Count, &kind, &s.LastSeenAt)
		s.LastKind = domain.Kind(kind)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan top searches: %w", err)
	}

	return stats, nil
}
