// Package club implements the club repository using PostgreSQL.
package club

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/figskate/results-backend/internal/adapter/postgres"
	"github.com/figskate/results-backend/internal/domain"
)

// Repo provides club persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new club repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const listSQL = `
SELECT id, external_id, name, short_name, country, city
FROM clubs
ORDER BY name`

// List returns every known club.
func (r *Repo) List(ctx context.Context) ([]*domain.Club, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listSQL)
	if err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}
	defer rows.Close()

	var clubs []*domain.Club
	for rows.Next() {
		var c domain.Club
		if err := rows.Scan(&c.ID, &c.ExternalID, &c.Name, &c.ShortName, &c.Country, &c.City); err != nil {
			return nil, fmt.Errorf("scan club: %w", err)
		}
		clubs = append(clubs, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clubs: %w", err)
	}
	return clubs, nil
}

const createSQL = `
INSERT INTO clubs (id, external_id, name, short_name, country, city)
VALUES ($1, $2, $3, $4, $5, $6)`

// Create inserts a new club. The generated ID is written back onto the
// passed struct.
func (r *Repo) Create(ctx context.Context, club *domain.Club) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	club.ID = uuid.New()

	_, err := querier.Exec(ctx, createSQL,
		club.ID, club.ExternalID, club.Name, club.ShortName, club.Country, club.City,
	)
	if err != nil {
		return postgres.MapError(err, "club", club.Name)
	}
	return nil
}

const updateSQL = `
UPDATE clubs
SET external_id = $2, name = $3, short_name = $4, country = $5, city = $6
WHERE id = $1`

// Update rewrites all mutable attributes of a club.
func (r *Repo) Update(ctx context.Context, club *domain.Club) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateSQL,
		club.ID, club.ExternalID, club.Name, club.ShortName, club.Country, club.City,
	)
	if err != nil {
		return postgres.MapError(err, "club", club.ID.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("club %s: %w", club.ID, domain.ErrNotFound)
	}
	return nil
}

const deleteSQL = `DELETE FROM clubs WHERE id = $1`

// Delete removes a club. Athletes referencing it are left with a null club
// by the schema, so callers must move members first when merging.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "club", id.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("club %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

const countAthletesSQL = `SELECT count(*) FROM athletes WHERE club_id = $1`

// CountAthletes returns the number of athletes currently linked to the club.
func (r *Repo) CountAthletes(ctx context.Context, clubID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countAthletesSQL, clubID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count club athletes: %w", err)
	}
	return count, nil
}

const moveAthletesSQL = `UPDATE athletes SET club_id = $2 WHERE club_id = $1`

// MoveAthletes relinks every athlete of one club to another and returns the
// number of athletes moved.
func (r *Repo) MoveAthletes(ctx context.Context, from, to uuid.UUID) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, moveAthletesSQL, from, to)
	if err != nil {
		return 0, fmt.Errorf("move club athletes: %w", err)
	}
	return tag.RowsAffected(), nil
}
