package importer

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/figskate/results-backend/internal/domain"
)

// fakeState holds an in-memory rendition of the store so a test can drive a
// whole import and inspect the resulting graph. Per-repo wrappers below give
// each repository interface its own method set over the shared state.
type fakeState struct {
	events       []*domain.Event
	categories   []*domain.Category
	segments     []*domain.Segment
	clubs        []*domain.Club
	athletes     []*domain.Athlete
	coaches      []*domain.Coach
	assignments  []*domain.CoachAssignment
	judges       []*domain.Judge
	panels       []*domain.JudgePanel
	participants []*domain.Participant
	performances []*domain.Performance
	elements     []domain.Element
	components   []domain.ComponentScore
}

type fakeTx struct{}

func (fakeTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeEvents struct{ s *fakeState }

func (f fakeEvents) ExistsByNameAndDate(_ context.Context, name string, beginDate *time.Time) (bool, error) {
	for _, e := range f.s.events {
		if e.Name != name {
			continue
		}
		if e.BeginDate == nil && beginDate == nil {
			return true, nil
		}
		if e.BeginDate != nil && beginDate != nil && e.BeginDate.Equal(*beginDate) {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeEvents) Create(_ context.Context, event *domain.Event) error {
	event.ID = uuid.New()
	f.s.events = append(f.s.events, event)
	return nil
}

func (f fakeEvents) CreateCategory(_ context.Context, category *domain.Category) error {
	category.ID = uuid.New()
	f.s.categories = append(f.s.categories, category)
	return nil
}

func (f fakeEvents) CreateSegment(_ context.Context, segment *domain.Segment) error {
	segment.ID = uuid.New()
	f.s.segments = append(f.s.segments, segment)
	return nil
}

type fakeClubs struct{ s *fakeState }

func (f fakeClubs) List(_ context.Context) ([]*domain.Club, error) {
	out := make([]*domain.Club, len(f.s.clubs))
	copy(out, f.s.clubs)
	return out, nil
}

func (f fakeClubs) Create(_ context.Context, club *domain.Club) error {
	club.ID = uuid.New()
	f.s.clubs = append(f.s.clubs, club)
	return nil
}

func (f fakeClubs) Update(context.Context, *domain.Club) error { return nil }

func (f fakeClubs) Delete(_ context.Context, id uuid.UUID) error {
	for i, c := range f.s.clubs {
		if c.ID == id {
			f.s.clubs = append(f.s.clubs[:i], f.s.clubs[i+1:]...)
			break
		}
	}
	return nil
}

func (f fakeClubs) CountAthletes(_ context.Context, clubID uuid.UUID) (int, error) {
	n := 0
	for _, a := range f.s.athletes {
		if a.ClubID != nil && *a.ClubID == clubID {
			n++
		}
	}
	return n, nil
}

func (f fakeClubs) MoveAthletes(_ context.Context, from, to uuid.UUID) (int64, error) {
	var moved int64
	for _, a := range f.s.athletes {
		if a.ClubID != nil && *a.ClubID == from {
			id := to
			a.ClubID = &id
			moved++
		}
	}
	return moved, nil
}

type fakeAthletes struct{ s *fakeState }

func (f fakeAthletes) GetByLookupKey(_ context.Context, key string) (*domain.Athlete, error) {
	if key != "" {
		for _, a := range f.s.athletes {
			if a.LookupKey == key {
				return a, nil
			}
		}
	}
	return nil, domain.ErrNotFound
}

func (f fakeAthletes) Create(_ context.Context, athlete *domain.Athlete) error {
	athlete.ID = uuid.New()
	f.s.athletes = append(f.s.athletes, athlete)
	return nil
}

func (f fakeAthletes) Update(context.Context, *domain.Athlete) error { return nil }

type fakeCoaches struct{ s *fakeState }

func (f fakeCoaches) GetByNormalizedName(_ context.Context, normalizedName string) (*domain.Coach, error) {
	for _, c := range f.s.coaches {
		if c.NormalizedName == normalizedName {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f fakeCoaches) Create(_ context.Context, coach *domain.Coach) error {
	coach.ID = uuid.New()
	f.s.coaches = append(f.s.coaches, coach)
	return nil
}

type fakeAssignments struct{ s *fakeState }

func (f fakeAssignments) Exists(_ context.Context, athleteID, coachID, eventID uuid.UUID) (bool, error) {
	for _, a := range f.s.assignments {
		if a.AthleteID == athleteID && a.CoachID == coachID && a.EventID == eventID {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeAssignments) GetCurrent(_ context.Context, athleteID uuid.UUID) (*domain.CoachAssignment, error) {
	for _, a := range f.s.assignments {
		if a.AthleteID == athleteID && a.IsCurrent {
			return a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f fakeAssignments) Close(_ context.Context, id uuid.UUID, endDate time.Time) error {
	for _, a := range f.s.assignments {
		if a.ID == id {
			d := endDate
			a.EndDate = &d
			a.IsCurrent = false
		}
	}
	return nil
}

func (f fakeAssignments) Create(_ context.Context, assignment *domain.CoachAssignment) error {
	assignment.ID = uuid.New()
	f.s.assignments = append(f.s.assignments, assignment)
	return nil
}

type fakeJudges struct{ s *fakeState }

func (f fakeJudges) FindByName(_ context.Context, firstName, lastName, fullName string) (*domain.Judge, error) {
	for _, j := range f.s.judges {
		if j.FirstName == firstName && j.LastName == lastName && j.FullName == fullName {
			return j, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f fakeJudges) Create(_ context.Context, judge *domain.Judge) error {
	judge.ID = uuid.New()
	f.s.judges = append(f.s.judges, judge)
	return nil
}

func (f fakeJudges) PanelExists(_ context.Context, segmentID, judgeID uuid.UUID) (bool, error) {
	for _, p := range f.s.panels {
		if p.SegmentID == segmentID && p.JudgeID == judgeID {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeJudges) CreatePanel(_ context.Context, panel *domain.JudgePanel) error {
	panel.ID = uuid.New()
	f.s.panels = append(f.s.panels, panel)
	return nil
}

type fakeResults struct{ s *fakeState }

func (f fakeResults) GetParticipant(_ context.Context, eventID, categoryID, athleteID uuid.UUID) (*domain.Participant, error) {
	for _, p := range f.s.participants {
		if p.EventID == eventID && p.CategoryID == categoryID && p.AthleteID == athleteID {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f fakeResults) CreateParticipant(_ context.Context, participant *domain.Participant) error {
	participant.ID = uuid.New()
	f.s.participants = append(f.s.participants, participant)
	return nil
}

func (f fakeResults) UpdateParticipant(context.Context, *domain.Participant) error { return nil }

func (f fakeResults) GetPerformance(_ context.Context, participantID, segmentID uuid.UUID) (*domain.Performance, error) {
	for _, p := range f.s.performances {
		if p.ParticipantID == participantID && p.SegmentID == segmentID {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f fakeResults) CreatePerformance(_ context.Context, performance *domain.Performance) error {
	performance.ID = uuid.New()
	f.s.performances = append(f.s.performances, performance)
	return nil
}

func (f fakeResults) UpdatePerformance(context.Context, *domain.Performance) error { return nil }

func (f fakeResults) CreateElements(_ context.Context, elements []domain.Element) error {
	f.s.elements = append(f.s.elements, elements...)
	return nil
}

func (f fakeResults) CreateComponents(_ context.Context, components []domain.ComponentScore) error {
	f.s.components = append(f.s.components, components...)
	return nil
}
