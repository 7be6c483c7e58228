// Package importer turns one parsed competition export into a committed
// graph of events, entities and scores. One file is one transaction: either
// the whole competition becomes visible or nothing does.
package importer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/figskate/results-backend/internal/calcfs"
	"github.com/figskate/results-backend/internal/domain"
)

type eventRepo interface {
	ExistsByNameAndDate(ctx context.Context, name string, beginDate *time.Time) (bool, error)
	Create(ctx context.Context, event *domain.Event) error
	CreateCategory(ctx context.Context, category *domain.Category) error
	CreateSegment(ctx context.Context, segment *domain.Segment) error
}

type clubRepo interface {
	List(ctx context.Context) ([]*domain.Club, error)
	Create(ctx context.Context, club *domain.Club) error
	Update(ctx context.Context, club *domain.Club) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountAthletes(ctx context.Context, clubID uuid.UUID) (int, error)
	MoveAthletes(ctx context.Context, from, to uuid.UUID) (int64, error)
}

type athleteRepo interface {
	GetByLookupKey(ctx context.Context, key string) (*domain.Athlete, error)
	Create(ctx context.Context, athlete *domain.Athlete) error
	Update(ctx context.Context, athlete *domain.Athlete) error
}

type coachRepo interface {
	GetByNormalizedName(ctx context.Context, normalizedName string) (*domain.Coach, error)
	Create(ctx context.Context, coach *domain.Coach) error
}

type assignmentRepo interface {
	Exists(ctx context.Context, athleteID, coachID, eventID uuid.UUID) (bool, error)
	GetCurrent(ctx context.Context, athleteID uuid.UUID) (*domain.CoachAssignment, error)
	Close(ctx context.Context, id uuid.UUID, endDate time.Time) error
	Create(ctx context.Context, assignment *domain.CoachAssignment) error
}

type judgeRepo interface {
	FindByName(ctx context.Context, firstName, lastName, fullName string) (*domain.Judge, error)
	Create(ctx context.Context, judge *domain.Judge) error
	PanelExists(ctx context.Context, segmentID, judgeID uuid.UUID) (bool, error)
	CreatePanel(ctx context.Context, panel *domain.JudgePanel) error
}

type resultRepo interface {
	GetParticipant(ctx context.Context, eventID, categoryID, athleteID uuid.UUID) (*domain.Participant, error)
	CreateParticipant(ctx context.Context, participant *domain.Participant) error
	UpdateParticipant(ctx context.Context, participant *domain.Participant) error
	GetPerformance(ctx context.Context, participantID, segmentID uuid.UUID) (*domain.Performance, error)
	CreatePerformance(ctx context.Context, performance *domain.Performance) error
	UpdatePerformance(ctx context.Context, performance *domain.Performance) error
	CreateElements(ctx context.Context, elements []domain.Element) error
	CreateComponents(ctx context.Context, components []domain.ComponentScore) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Options tunes per-import behavior.
type Options struct {
	// ClubSimilarityThreshold is the minimum similarity score at which two
	// club names are treated as the same club.
	ClubSimilarityThreshold float64
	// AutoMergeClubs runs the club deduplication pass after resolving the
	// file's clubs.
	AutoMergeClubs bool
}

// DuplicateEventError reports that the file's event was already imported.
// Callers present it as an actionable message, not as corruption.
type DuplicateEventError struct {
	Name string
	Date *time.Time
}

func (e *DuplicateEventError) Error() string {
	if e.Date != nil {
		return fmt.Sprintf("event %q dated %s already imported", e.Name, e.Date.Format("02.01.2006"))
	}
	return fmt.Sprintf("event %q already imported", e.Name)
}

func (e *DuplicateEventError) Unwrap() error { return domain.ErrDuplicateEvent }

// Importer persists parsed competition files.
type Importer struct {
	log         *slog.Logger
	tx          txManager
	events      eventRepo
	clubs       clubRepo
	athletes    athleteRepo
	coaches     coachRepo
	assignments assignmentRepo
	judges      judgeRepo
	results     resultRepo
	opts        Options
}

func New(
	log *slog.Logger,
	tx txManager,
	events eventRepo,
	clubs clubRepo,
	athletes athleteRepo,
	coaches coachRepo,
	assignments assignmentRepo,
	judges judgeRepo,
	results resultRepo,
	opts Options,
) *Importer {
	return &Importer{
		log:         log.With("service", "importer"),
		tx:          tx,
		events:      events,
		clubs:       clubs,
		athletes:    athletes,
		coaches:     coaches,
		assignments: assignments,
		judges:      judges,
		results:     results,
		opts:        opts,
	}
}

// ImportFile parses and imports one export file.
func (imp *Importer) ImportFile(ctx context.Context, path string) (*Summary, error) {
	doc, err := calcfs.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return imp.Import(ctx, doc)
}

// Import persists one parsed document in a single transaction. A duplicate
// event aborts with *DuplicateEventError before anything is written.
func (imp *Importer) Import(ctx context.Context, doc *calcfs.Document) (*Summary, error) {
	if len(doc.Events) == 0 {
		return nil, fmt.Errorf("%w: file contains no event record", domain.ErrValidation)
	}

	start := time.Now()
	sum := &Summary{SkippedRecords: doc.Skipped}

	err := imp.tx.RunInTx(ctx, func(ctx context.Context) error {
		return imp.run(ctx, doc, sum)
	})
	if err != nil {
		return nil, err
	}

	sum.Duration = time.Since(start)
	imp.log.InfoContext(ctx, "import finished",
		slog.String("event", doc.Events[0].Name),
		slog.Int("participants", sum.Participants),
		slog.Int("performances", sum.Performances),
		slog.Int("warnings", sum.Warnings),
		slog.Duration("duration", sum.Duration),
	)
	return sum, nil
}
