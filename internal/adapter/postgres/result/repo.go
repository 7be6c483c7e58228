// Package result implements the participant, performance and score
// repositories using PostgreSQL. Per-judge marks are stored as jsonb maps
// keyed by seat ("J01"…); element and component rows are written with a
// single batch per performance.
package result

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/figskate/results-backend/internal/adapter/postgres"
	"github.com/figskate/results-backend/internal/domain"
)

// Repo provides result persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new result repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getParticipantSQL = `
SELECT id, external_id, event_id, category_id, athlete_id, bib_number,
       total_place, total_points, status, segment_statuses, entry_marker, coach_name
FROM participants
WHERE event_id = $1 AND category_id = $2 AND athlete_id = $3`

// GetParticipant returns the participant row for the (event, category,
// athlete) triple.
func (r *Repo) GetParticipant(ctx context.Context, eventID, categoryID, athleteID uuid.UUID) (*domain.Participant, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var p domain.Participant
	err := querier.QueryRow(ctx, getParticipantSQL, eventID, categoryID, athleteID).Scan(
		&p.ID, &p.ExternalID, &p.EventID, &p.CategoryID, &p.AthleteID,
		&p.BibNumber, &p.TotalPlace, &p.TotalPoints, &p.Status,
		&p.SegmentStatuses, &p.EntryMarker, &p.CoachName,
	)
	if err != nil {
		return nil, postgres.MapError(err, "participant", athleteID.String())
	}
	return &p, nil
}

const createParticipantSQL = `
INSERT INTO participants (id, external_id, event_id, category_id, athlete_id,
                          bib_number, total_place, total_points, status,
                          segment_statuses, entry_marker, coach_name)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

// CreateParticipant inserts a new participant. The generated ID is written
// back onto the passed struct.
func (r *Repo) CreateParticipant(ctx context.Context, participant *domain.Participant) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	participant.ID = uuid.New()

	statuses := participant.SegmentStatuses
	if statuses == nil {
		statuses = []string{}
	}

	_, err := querier.Exec(ctx, createParticipantSQL,
		participant.ID, participant.ExternalID, participant.EventID,
		participant.CategoryID, participant.AthleteID, participant.BibNumber,
		participant.TotalPlace, participant.TotalPoints, participant.Status,
		statuses, participant.EntryMarker, participant.CoachName,
	)
	if err != nil {
		return postgres.MapError(err, "participant", participant.ExternalID)
	}
	return nil
}

const updateParticipantSQL = `
UPDATE participants
SET bib_number = $2, total_place = $3, total_points = $4, status = $5,
    segment_statuses = $6, entry_marker = $7, coach_name = $8
WHERE id = $1`

// UpdateParticipant rewrites the mutable result fields of a participant.
func (r *Repo) UpdateParticipant(ctx context.Context, participant *domain.Participant) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	statuses := participant.SegmentStatuses
	if statuses == nil {
		statuses = []string{}
	}

	tag, err := querier.Exec(ctx, updateParticipantSQL,
		participant.ID, participant.BibNumber, participant.TotalPlace,
		participant.TotalPoints, participant.Status, statuses,
		participant.EntryMarker, participant.CoachName,
	)
	if err != nil {
		return postgres.MapError(err, "participant", participant.ID.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("participant %s: %w", participant.ID, domain.ErrNotFound)
	}
	return nil
}

const getPerformanceSQL = `
SELECT id, participant_id, segment_id, start_number, start_group, status,
       qualification, place, points, tes_total, pcs_total, deductions, bonus
FROM performances
WHERE participant_id = $1 AND segment_id = $2`

// GetPerformance returns the performance row for the (participant, segment)
// pair.
func (r *Repo) GetPerformance(ctx context.Context, participantID, segmentID uuid.UUID) (*domain.Performance, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var p domain.Performance
	err := querier.QueryRow(ctx, getPerformanceSQL, participantID, segmentID).Scan(
		&p.ID, &p.ParticipantID, &p.SegmentID, &p.StartNumber, &p.StartGroup,
		&p.Status, &p.Qualification, &p.Place, &p.Points,
		&p.TESTotal, &p.PCSTotal, &p.Deductions, &p.Bonus,
	)
	if err != nil {
		return nil, postgres.MapError(err, "performance", participantID.String())
	}
	return &p, nil
}

const createPerformanceSQL = `
INSERT INTO performances (id, participant_id, segment_id, start_number, start_group,
                          status, qualification, place, points, tes_total, pcs_total,
                          deductions, bonus)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

// CreatePerformance inserts a new performance. The generated ID is written
// back onto the passed struct.
func (r *Repo) CreatePerformance(ctx context.Context, performance *domain.Performance) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	performance.ID = uuid.New()

	_, err := querier.Exec(ctx, createPerformanceSQL,
		performance.ID, performance.ParticipantID, performance.SegmentID,
		performance.StartNumber, performance.StartGroup, performance.Status,
		performance.Qualification, performance.Place, performance.Points,
		performance.TESTotal, performance.PCSTotal, performance.Deductions,
		performance.Bonus,
	)
	if err != nil {
		return postgres.MapError(err, "performance", performance.ID.String())
	}
	return nil
}

const updatePerformanceSQL = `
UPDATE performances
SET status = $2, qualification = $3, place = $4, points = $5,
    tes_total = $6, pcs_total = $7, deductions = $8, bonus = $9
WHERE id = $1`

// UpdatePerformance rewrites the mutable score fields of a performance.
func (r *Repo) UpdatePerformance(ctx context.Context, performance *domain.Performance) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updatePerformanceSQL,
		performance.ID, performance.Status, performance.Qualification,
		performance.Place, performance.Points, performance.TESTotal,
		performance.PCSTotal, performance.Deductions, performance.Bonus,
	)
	if err != nil {
		return postgres.MapError(err, "performance", performance.ID.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("performance %s: %w", performance.ID, domain.ErrNotFound)
	}
	return nil
}

const createElementSQL = `
INSERT INTO elements (id, performance_id, order_num, planned_code, executed_code,
                      info_code, base_value, goe_result, penalty, result, judge_marks)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

// CreateElements inserts all scored elements of a performance in one batch.
func (r *Repo) CreateElements(ctx context.Context, elements []domain.Element) error {
	if len(elements) == 0 {
		return nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	for i := range elements {
		el := &elements[i]
		el.ID = uuid.New()
		batch.Queue(createElementSQL,
			el.ID, el.PerformanceID, el.OrderNum, el.PlannedCode,
			el.ExecutedCode, el.InfoCode, el.BaseValue, el.GOEResult,
			el.Penalty, el.Result, marksOrEmpty(el.JudgeMarks),
		)
	}

	results := querier.SendBatch(ctx, batch)
	defer results.Close()

	for range elements {
		if _, err := results.Exec(); err != nil {
			return postgres.MapError(err, "element", "batch")
		}
	}
	return nil
}

const createComponentSQL = `
INSERT INTO component_scores (id, performance_id, component_type, factor, penalty,
                              result, judge_marks)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

// CreateComponents inserts all program-component scores of a performance in
// one batch.
func (r *Repo) CreateComponents(ctx context.Context, components []domain.ComponentScore) error {
	if len(components) == 0 {
		return nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	for i := range components {
		comp := &components[i]
		comp.ID = uuid.New()
		batch.Queue(createComponentSQL,
			comp.ID, comp.PerformanceID, comp.ComponentType, comp.Factor,
			comp.Penalty, comp.Result, marksOrEmpty(comp.JudgeMarks),
		)
	}

	results := querier.SendBatch(ctx, batch)
	defer results.Close()

	for range components {
		if _, err := results.Exec(); err != nil {
			return postgres.MapError(err, "component_score", "batch")
		}
	}
	return nil
}

const getElementsSQL = `
SELECT id, performance_id, order_num, planned_code, executed_code, info_code,
       base_value, goe_result, penalty, result, judge_marks
FROM elements
WHERE performance_id = $1
ORDER BY order_num`

// GetElements returns a performance's elements in skate order.
func (r *Repo) GetElements(ctx context.Context, performanceID uuid.UUID) ([]domain.Element, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, getElementsSQL, performanceID)
	if err != nil {
		return nil, fmt.Errorf("get elements: %w", err)
	}
	defer rows.Close()

	var elements []domain.Element
	for rows.Next() {
		var el domain.Element
		if err := rows.Scan(
			&el.ID, &el.PerformanceID, &el.OrderNum, &el.PlannedCode,
			&el.ExecutedCode, &el.InfoCode, &el.BaseValue, &el.GOEResult,
			&el.Penalty, &el.Result, &el.JudgeMarks,
		); err != nil {
			return nil, fmt.Errorf("scan element: %w", err)
		}
		elements = append(elements, el)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate elements: %w", err)
	}
	return elements, nil
}

const getComponentsSQL = `
SELECT id, performance_id, component_type, factor, penalty, result, judge_marks
FROM component_scores
WHERE performance_id = $1
ORDER BY component_type`

// GetComponents returns a performance's program-component scores.
func (r *Repo) GetComponents(ctx context.Context, performanceID uuid.UUID) ([]domain.ComponentScore, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, getComponentsSQL, performanceID)
	if err != nil {
		return nil, fmt.Errorf("get component scores: %w", err)
	}
	defer rows.Close()

	var components []domain.ComponentScore
	for rows.Next() {
		var comp domain.ComponentScore
		if err := rows.Scan(
			&comp.ID, &comp.PerformanceID, &comp.ComponentType, &comp.Factor,
			&comp.Penalty, &comp.Result, &comp.JudgeMarks,
		); err != nil {
			return nil, fmt.Errorf("scan component score: %w", err)
		}
		components = append(components, comp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate component scores: %w", err)
	}
	return components, nil
}

func marksOrEmpty(marks map[string]float64) map[string]float64 {
	if marks == nil {
		return map[string]float64{}
	}
	return marks
}
