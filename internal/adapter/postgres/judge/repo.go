// Package judge implements the judge and panel-seat repositories using
// PostgreSQL.
package judge

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/figskate/results-backend/internal/adapter/postgres"
	"github.com/figskate/results-backend/internal/domain"
)

// Repo provides judge persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new judge repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const findByNameSQL = `
SELECT id, external_id, first_name, last_name, full_name, short_name,
       gender, country, city, qualification
FROM judges
WHERE (first_name = $1 AND last_name = $2)
   OR (full_name <> '' AND full_name = $3)
ORDER BY last_name, first_name
LIMIT 1`

// FindByName returns a judge matched by first/last name or by full name.
func (r *Repo) FindByName(ctx context.Context, firstName, lastName, fullName string) (*domain.Judge, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var j domain.Judge
	err := querier.QueryRow(ctx, findByNameSQL, firstName, lastName, fullName).Scan(
		&j.ID, &j.ExternalID, &j.FirstName, &j.LastName, &j.FullName,
		&j.ShortName, &j.Gender, &j.Country, &j.City, &j.Qualification,
	)
	if err != nil {
		return nil, postgres.MapError(err, "judge", lastName)
	}
	return &j, nil
}

const createJudgeSQL = `
INSERT INTO judges (id, external_id, first_name, last_name, full_name, short_name,
                    gender, country, city, qualification)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

// Create inserts a new judge. The generated ID is written back onto the
// passed struct.
func (r *Repo) Create(ctx context.Context, judge *domain.Judge) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	judge.ID = uuid.New()

	_, err := querier.Exec(ctx, createJudgeSQL,
		judge.ID, judge.ExternalID, judge.FirstName, judge.LastName,
		judge.FullName, judge.ShortName, judge.Gender, judge.Country,
		judge.City, judge.Qualification,
	)
	if err != nil {
		return postgres.MapError(err, "judge", judge.LastName)
	}
	return nil
}

const panelExistsSQL = `
SELECT EXISTS(
  SELECT 1 FROM judge_panels WHERE segment_id = $1 AND judge_id = $2
)`

// PanelExists reports whether the judge is already seated on the segment's
// panel.
func (r *Repo) PanelExists(ctx context.Context, segmentID, judgeID uuid.UUID) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	if err := querier.QueryRow(ctx, panelExistsSQL, segmentID, judgeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check panel seat exists: %w", err)
	}
	return exists, nil
}

const createPanelSQL = `
INSERT INTO judge_panels (id, segment_id, category_id, judge_id, role_code, panel_group, order_num)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

// CreatePanel seats a judge on a segment's panel.
func (r *Repo) CreatePanel(ctx context.Context, panel *domain.JudgePanel) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	panel.ID = uuid.New()

	_, err := querier.Exec(ctx, createPanelSQL,
		panel.ID, panel.SegmentID, panel.CategoryID, panel.JudgeID,
		panel.RoleCode, panel.PanelGroup, panel.OrderNum,
	)
	if err != nil {
		return postgres.MapError(err, "judge_panel", panel.ID.String())
	}
	return nil
}
