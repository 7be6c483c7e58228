// Package event implements the event, category and segment repositories
// using PostgreSQL.
package event

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/figskate/results-backend/internal/adapter/postgres"
	"github.com/figskate/results-backend/internal/domain"
)

// Repo provides event-tree persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new event repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const existsByNameAndDateSQL = `
SELECT EXISTS(
  SELECT 1 FROM events
  WHERE name = $1 AND begin_date IS NOT DISTINCT FROM $2
)`

// ExistsByNameAndDate reports whether an event with the same name and begin
// date was already imported.
func (r *Repo) ExistsByNameAndDate(ctx context.Context, name string, beginDate *time.Time) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	if err := querier.QueryRow(ctx, existsByNameAndDateSQL, name, beginDate).Scan(&exists); err != nil {
		return false, fmt.Errorf("check event exists: %w", err)
	}
	return exists, nil
}

const createEventSQL = `
INSERT INTO events (id, external_id, name, long_name, place, begin_date, end_date,
                    venue, language, event_type, competition_type, status,
                    calculation_time, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

// Create inserts a new event. The generated ID and creation time are written
// back onto the passed struct.
func (r *Repo) Create(ctx context.Context, event *domain.Event) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	event.ID = uuid.New()
	event.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)

	_, err := querier.Exec(ctx, createEventSQL,
		event.ID, event.ExternalID, event.Name, event.LongName, event.Place,
		event.BeginDate, event.EndDate, event.Venue, event.Language,
		event.EventType, event.CompetitionType, event.Status,
		event.CalculationTime, event.CreatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "event", event.Name)
	}
	return nil
}

const createCategorySQL = `
INSERT INTO categories (id, event_id, external_id, name, tv_name, normalized_name,
                        level, gender, category_type, status, num_entries, num_participants)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

// CreateCategory inserts a new category under an event.
func (r *Repo) CreateCategory(ctx context.Context, category *domain.Category) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	category.ID = uuid.New()

	_, err := querier.Exec(ctx, createCategorySQL,
		category.ID, category.EventID, category.ExternalID, category.Name,
		category.TVName, category.NormalizedName, category.Level, category.Gender,
		category.CategoryType, category.Status, category.NumEntries, category.NumParticipants,
	)
	if err != nil {
		return postgres.MapError(err, "category", category.Name)
	}
	return nil
}

const createSegmentSQL = `
INSERT INTO segments (id, category_id, external_id, name, tv_name, short_name,
                      segment_type, factor, status, component_factors)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

// CreateSegment inserts a new segment under a category. ComponentFactors is
// stored as a jsonb map keyed by component slot.
func (r *Repo) CreateSegment(ctx context.Context, segment *domain.Segment) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	segment.ID = uuid.New()

	factors := segment.ComponentFactors
	if factors == nil {
		factors = map[int]float64{}
	}

	_, err := querier.Exec(ctx, createSegmentSQL,
		segment.ID, segment.CategoryID, segment.ExternalID, segment.Name,
		segment.TVName, segment.ShortName, segment.SegmentType, segment.Factor,
		segment.Status, factors,
	)
	if err != nil {
		return postgres.MapError(err, "segment", segment.Name)
	}
	return nil
}

const getEventByIDSQL = `
SELECT id, external_id, name, long_name, place, begin_date, end_date, venue,
       language, event_type, competition_type, status, calculation_time, created_at
FROM events WHERE id = $1`

// GetByID returns an event by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var e domain.Event
	err := querier.QueryRow(ctx, getEventByIDSQL, id).Scan(
		&e.ID, &e.ExternalID, &e.Name, &e.LongName, &e.Place,
		&e.BeginDate, &e.EndDate, &e.Venue, &e.Language,
		&e.EventType, &e.CompetitionType, &e.Status,
		&e.CalculationTime, &e.CreatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "event", id.String())
	}
	return &e, nil
}

const listEventsSQL = `
SELECT id, external_id, name, long_name, place, begin_date, end_date, venue,
       language, event_type, competition_type, status, calculation_time, created_at
FROM events
ORDER BY begin_date DESC NULLS LAST, name`

// List returns all imported events, newest first.
func (r *Repo) List(ctx context.Context) ([]*domain.Event, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listEventsSQL)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(
			&e.ID, &e.ExternalID, &e.Name, &e.LongName, &e.Place,
			&e.BeginDate, &e.EndDate, &e.Venue, &e.Language,
			&e.EventType, &e.CompetitionType, &e.Status,
			&e.CalculationTime, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

const deleteEventSQL = `DELETE FROM events WHERE id = $1`

// Delete removes an event and, via cascades, its categories, segments,
// participants, performances, scores and panel seats.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteEventSQL, id)
	if err != nil {
		return postgres.MapError(err, "event", id.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
