// Package athlete implements the athlete repository using PostgreSQL.
// Point lookups use raw SQL; the search surface builds its query with
// squirrel because the filter combinations are dynamic.
package athlete

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/figskate/results-backend/internal/adapter/postgres"
	"github.com/figskate/results-backend/internal/domain"
)

// Repo provides athlete persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new athlete repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const athleteColumns = `id, external_id, first_name, last_name, patronymic, full_name,
       lookup_key, birth_date, gender, country, club_id`

const getByLookupKeySQL = `
SELECT ` + athleteColumns + `
FROM athletes WHERE lookup_key = $1`

// GetByLookupKey returns the athlete with the given deduplication key.
// Empty keys are never stored as matchable, so an empty argument resolves to
// domain.ErrNotFound without touching the database.
func (r *Repo) GetByLookupKey(ctx context.Context, key string) (*domain.Athlete, error) {
	if key == "" {
		return nil, fmt.Errorf("athlete: empty lookup key: %w", domain.ErrNotFound)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	a, err := scanAthlete(querier.QueryRow(ctx, getByLookupKeySQL, key))
	if err != nil {
		return nil, postgres.MapError(err, "athlete", key)
	}
	return a, nil
}

const getByIDSQL = `
SELECT ` + athleteColumns + `
FROM athletes WHERE id = $1`

// GetByID returns an athlete by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Athlete, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	a, err := scanAthlete(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "athlete", id.String())
	}
	return a, nil
}

const createSQL = `
INSERT INTO athletes (id, external_id, first_name, last_name, patronymic, full_name,
                      lookup_key, birth_date, gender, country, club_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

// Create inserts a new athlete. The generated ID is written back onto the
// passed struct.
func (r *Repo) Create(ctx context.Context, athlete *domain.Athlete) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	athlete.ID = uuid.New()

	_, err := querier.Exec(ctx, createSQL,
		athlete.ID, athlete.ExternalID, athlete.FirstName, athlete.LastName,
		athlete.Patronymic, athlete.FullName, athlete.LookupKey,
		athlete.BirthDate, athlete.Gender, athlete.Country, athlete.ClubID,
	)
	if err != nil {
		return postgres.MapError(err, "athlete", athlete.LookupKey)
	}
	return nil
}

const updateSQL = `
UPDATE athletes
SET external_id = $2, first_name = $3, last_name = $4, patronymic = $5,
    full_name = $6, lookup_key = $7, birth_date = $8, gender = $9,
    country = $10, club_id = $11
WHERE id = $1`

// Update rewrites all mutable attributes of an athlete.
func (r *Repo) Update(ctx context.Context, athlete *domain.Athlete) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateSQL,
		athlete.ID, athlete.ExternalID, athlete.FirstName, athlete.LastName,
		athlete.Patronymic, athlete.FullName, athlete.LookupKey,
		athlete.BirthDate, athlete.Gender, athlete.Country, athlete.ClubID,
	)
	if err != nil {
		return postgres.MapError(err, "athlete", athlete.ID.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("athlete %s: %w", athlete.ID, domain.ErrNotFound)
	}
	return nil
}

// Search returns athletes matching the filter, with pagination.
func (r *Repo) Search(ctx context.Context, filter Filter) ([]*domain.Athlete, error) {
	filter.normalize()

	q := squirrel.Select(
		"id", "external_id", "first_name", "last_name", "patronymic",
		"full_name", "lookup_key", "birth_date", "gender", "country", "club_id",
	).
		From("athletes").
		PlaceholderFormat(squirrel.Dollar)

	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"last_name": pattern},
			squirrel.ILike{"full_name": pattern},
			squirrel.ILike{"lookup_key": pattern},
		})
	}
	if filter.ClubID != nil {
		q = q.Where(squirrel.Eq{"club_id": *filter.ClubID})
	}
	if filter.Gender != nil && *filter.Gender != "" {
		q = q.Where(squirrel.Eq{"gender": *filter.Gender})
	}
	if filter.BirthYearFrom > 0 {
		q = q.Where(squirrel.GtOrEq{"birth_date": time.Date(filter.BirthYearFrom, 1, 1, 0, 0, 0, 0, time.UTC)})
	}
	if filter.BirthYearTo > 0 {
		q = q.Where(squirrel.Lt{"birth_date": time.Date(filter.BirthYearTo+1, 1, 1, 0, 0, 0, 0, time.UTC)})
	}

	q = q.OrderBy(fmt.Sprintf("%s %s, id", filter.sortColumn(), filter.SortOrder)).
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build athlete search query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("search athletes: %w", err)
	}
	defer rows.Close()

	var athletes []*domain.Athlete
	for rows.Next() {
		a, err := scanAthlete(rows)
		if err != nil {
			return nil, fmt.Errorf("scan athlete: %w", err)
		}
		athletes = append(athletes, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate athletes: %w", err)
	}
	return athletes, nil
}

func scanAthlete(row pgx.Row) (*domain.Athlete, error) {
	var a domain.Athlete
	err := row.Scan(
		&a.ID, &a.ExternalID, &a.FirstName, &a.LastName, &a.Patronymic,
		&a.FullName, &a.LookupKey, &a.BirthDate, &a.Gender, &a.Country, &a.ClubID,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
