package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/figskate/results-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedClub creates a club row and returns it.
func SeedClub(t *testing.T, pool *pgxpool.Pool, name string) domain.Club {
	t.Helper()
	ctx := context.Background()

	club := domain.Club{
		ID:   uuid.New(),
		Name: name,
		City: "Москва",
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO clubs (id, external_id, name, short_name, country, city)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		club.ID, club.ExternalID, club.Name, club.ShortName, club.Country, club.City,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedClub insert: %v", err)
	}

	return club
}

// SeedAthlete creates an athlete row, optionally linked to a club.
// Returns a filled domain.Athlete with a unique lookup key.
func SeedAthlete(t *testing.T, pool *pgxpool.Pool, clubID *uuid.UUID) domain.Athlete {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	birth := time.Date(2010, 5, 1, 0, 0, 0, 0, time.UTC)
	athlete := domain.Athlete{
		ID:        uuid.New(),
		FirstName: "Мария",
		LastName:  "Тестова-" + suffix,
		LookupKey: "name:мария:тестова-" + suffix + ":2010-05-01",
		BirthDate: &birth,
		Gender:    "F",
		ClubID:    clubID,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO athletes (id, external_id, first_name, last_name, patronymic,
		                       full_name, lookup_key, birth_date, gender, country, club_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		athlete.ID, athlete.ExternalID, athlete.FirstName, athlete.LastName,
		athlete.Patronymic, athlete.FullName, athlete.LookupKey,
		athlete.BirthDate, athlete.Gender, athlete.Country, athlete.ClubID,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedAthlete insert: %v", err)
	}

	return athlete
}

// SeedCoach creates a coach row and returns it.
func SeedCoach(t *testing.T, pool *pgxpool.Pool) domain.Coach {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	coach := domain.Coach{
		ID:             uuid.New(),
		Name:           "Тренерова Анна " + suffix,
		NormalizedName: "тренерова анна " + suffix,
		CreatedAt:      time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO coaches (id, name, normalized_name, created_at)
		 VALUES ($1, $2, $3, $4)`,
		coach.ID, coach.Name, coach.NormalizedName, coach.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCoach insert: %v", err)
	}

	return coach
}

// SeedEvent creates an event row with a begin date and returns it.
func SeedEvent(t *testing.T, pool *pgxpool.Pool) domain.Event {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	begin := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	end := begin.AddDate(0, 0, 1)
	event := domain.Event{
		ID:        uuid.New(),
		Name:      "Кубок Тест " + suffix,
		BeginDate: &begin,
		EndDate:   &end,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO events (id, external_id, name, long_name, place, begin_date, end_date,
		                     venue, language, event_type, competition_type, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		event.ID, event.ExternalID, event.Name, event.LongName, event.Place,
		event.BeginDate, event.EndDate, event.Venue, event.Language,
		event.EventType, event.CompetitionType, event.Status, event.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedEvent insert: %v", err)
	}

	return event
}

// SeedCategory creates a category row under an event and returns it.
func SeedCategory(t *testing.T, pool *pgxpool.Pool, eventID uuid.UUID) domain.Category {
	t.Helper()
	ctx := context.Background()

	category := domain.Category{
		ID:             uuid.New(),
		EventID:        eventID,
		Name:           "1 Спортивный, Девочки",
		NormalizedName: "1 Спортивный, Девочки",
		Gender:         "F",
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO categories (id, event_id, external_id, name, tv_name, normalized_name,
		                         level, gender, category_type, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		category.ID, category.EventID, category.ExternalID, category.Name,
		category.TVName, category.NormalizedName, category.Level,
		category.Gender, category.CategoryType, category.Status,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCategory insert: %v", err)
	}

	return category
}

// SeedSegment creates a segment row under a category and returns it.
func SeedSegment(t *testing.T, pool *pgxpool.Pool, categoryID uuid.UUID) domain.Segment {
	t.Helper()
	ctx := context.Background()

	segment := domain.Segment{
		ID:               uuid.New(),
		CategoryID:       categoryID,
		Name:             "Короткая программа",
		SegmentType:      "S",
		ComponentFactors: map[int]float64{1: 0.8},
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO segments (id, category_id, external_id, name, tv_name, short_name,
		                       segment_type, factor, status, component_factors)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		segment.ID, segment.CategoryID, segment.ExternalID, segment.Name,
		segment.TVName, segment.ShortName, segment.SegmentType,
		segment.Factor, segment.Status, segment.ComponentFactors,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSegment insert: %v", err)
	}

	return segment
}

// SeedParticipant creates a participant row for the (event, category, athlete)
// triple and returns it.
func SeedParticipant(t *testing.T, pool *pgxpool.Pool, eventID, categoryID, athleteID uuid.UUID) domain.Participant {
	t.Helper()
	ctx := context.Background()

	points := 17.58
	participant := domain.Participant{
		ID:              uuid.New(),
		EventID:         eventID,
		CategoryID:      categoryID,
		AthleteID:       athleteID,
		TotalPoints:     &points,
		SegmentStatuses: []string{"Q"},
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO participants (id, external_id, event_id, category_id, athlete_id,
		                           bib_number, total_place, total_points, status,
		                           segment_statuses, entry_marker, coach_name)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		participant.ID, participant.ExternalID, participant.EventID,
		participant.CategoryID, participant.AthleteID, participant.BibNumber,
		participant.TotalPlace, participant.TotalPoints, participant.Status,
		participant.SegmentStatuses, participant.EntryMarker, participant.CoachName,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedParticipant insert: %v", err)
	}

	return participant
}
