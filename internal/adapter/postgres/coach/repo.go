// Package coach implements the coach and coach-assignment repositories
// using PostgreSQL.
package coach

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/figskate/results-backend/internal/adapter/postgres"
	"github.com/figskate/results-backend/internal/domain"
)

// Repo provides coach persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new coach repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getByNormalizedNameSQL = `
SELECT id, name, normalized_name, created_at
FROM coaches WHERE normalized_name = $1`

// GetByNormalizedName returns the coach with the given normalized full name.
func (r *Repo) GetByNormalizedName(ctx context.Context, normalizedName string) (*domain.Coach, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var c domain.Coach
	err := querier.QueryRow(ctx, getByNormalizedNameSQL, normalizedName).
		Scan(&c.ID, &c.Name, &c.NormalizedName, &c.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "coach", normalizedName)
	}
	return &c, nil
}

const createCoachSQL = `
INSERT INTO coaches (id, name, normalized_name, created_at)
VALUES ($1, $2, $3, $4)`

// Create inserts a new coach. The generated ID and creation time are written
// back onto the passed struct.
func (r *Repo) Create(ctx context.Context, coach *domain.Coach) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	coach.ID = uuid.New()
	coach.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)

	_, err := querier.Exec(ctx, createCoachSQL,
		coach.ID, coach.Name, coach.NormalizedName, coach.CreatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "coach", coach.NormalizedName)
	}
	return nil
}

// AssignmentRepo provides coach-assignment history persistence.
type AssignmentRepo struct {
	pool *pgxpool.Pool
}

// NewAssignmentRepo creates a new coach-assignment repository.
func NewAssignmentRepo(pool *pgxpool.Pool) *AssignmentRepo {
	return &AssignmentRepo{pool: pool}
}

const assignmentExistsSQL = `
SELECT EXISTS(
  SELECT 1 FROM coach_assignments
  WHERE athlete_id = $1 AND coach_id = $2 AND event_id = $3
)`

// Exists reports whether the coach/athlete pairing was already recorded for
// the event.
func (r *AssignmentRepo) Exists(ctx context.Context, athleteID, coachID, eventID uuid.UUID) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	if err := querier.QueryRow(ctx, assignmentExistsSQL, athleteID, coachID, eventID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check coach assignment exists: %w", err)
	}
	return exists, nil
}

const getCurrentSQL = `
SELECT id, coach_id, athlete_id, participant_id, event_id, start_date, end_date, is_current
FROM coach_assignments
WHERE athlete_id = $1 AND is_current`

// GetCurrent returns the athlete's current coach assignment.
func (r *AssignmentRepo) GetCurrent(ctx context.Context, athleteID uuid.UUID) (*domain.CoachAssignment, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	a, err := scanAssignment(querier.QueryRow(ctx, getCurrentSQL, athleteID))
	if err != nil {
		return nil, postgres.MapError(err, "coach_assignment", athleteID.String())
	}
	return a, nil
}

const listByAthleteSQL = `
SELECT id, coach_id, athlete_id, participant_id, event_id, start_date, end_date, is_current
FROM coach_assignments
WHERE athlete_id = $1
ORDER BY start_date, id`

// ListByAthlete returns the athlete's full assignment history, oldest first.
func (r *AssignmentRepo) ListByAthlete(ctx context.Context, athleteID uuid.UUID) ([]*domain.CoachAssignment, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByAthleteSQL, athleteID)
	if err != nil {
		return nil, fmt.Errorf("list coach assignments: %w", err)
	}
	defer rows.Close()

	var assignments []*domain.CoachAssignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan coach assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate coach assignments: %w", err)
	}
	return assignments, nil
}

const closeAssignmentSQL = `
UPDATE coach_assignments
SET end_date = $2, is_current = FALSE
WHERE id = $1`

// Close ends an assignment at the given date and clears its current flag.
func (r *AssignmentRepo) Close(ctx context.Context, id uuid.UUID, endDate time.Time) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, closeAssignmentSQL, id, endDate)
	if err != nil {
		return postgres.MapError(err, "coach_assignment", id.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("coach_assignment %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

const createAssignmentSQL = `
INSERT INTO coach_assignments (id, coach_id, athlete_id, participant_id, event_id,
                               start_date, end_date, is_current)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

// Create inserts a new assignment. The generated ID is written back onto the
// passed struct.
func (r *AssignmentRepo) Create(ctx context.Context, assignment *domain.CoachAssignment) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	assignment.ID = uuid.New()

	var participantID *uuid.UUID
	if assignment.ParticipantID != uuid.Nil {
		participantID = &assignment.ParticipantID
	}

	_, err := querier.Exec(ctx, createAssignmentSQL,
		assignment.ID, assignment.CoachID, assignment.AthleteID, participantID,
		assignment.EventID, assignment.StartDate, assignment.EndDate, assignment.IsCurrent,
	)
	if err != nil {
		return postgres.MapError(err, "coach_assignment", assignment.ID.String())
	}
	return nil
}

func scanAssignment(row pgx.Row) (*domain.CoachAssignment, error) {
	var (
		a             domain.CoachAssignment
		participantID *uuid.UUID
	)
	err := row.Scan(
		&a.ID, &a.CoachID, &a.AthleteID, &participantID, &a.EventID,
		&a.StartDate, &a.EndDate, &a.IsCurrent,
	)
	if err != nil {
		return nil, err
	}
	if participantID != nil {
		a.ParticipantID = *participantID
	}
	return &a, nil
}
