package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/figskate/results-backend/internal/domain"
)

type athleteRepo interface {
	GetByLookupKey(ctx context.Context, key string) (*domain.Athlete, error)
	Create(ctx context.Context, athlete *domain.Athlete) error
	Update(ctx context.Context, athlete *domain.Athlete) error
}

// AthleteRegistry deduplicates athletes by the name+birth-date lookup key.
// A record missing any key component is always treated as new: two
// same-named skaters without birth dates cannot be told apart, and a wrong
// merge is worse than a duplicate row.
type AthleteRegistry struct {
	athletes athleteRepo
	log      *slog.Logger
	byKey    map[string]*domain.Athlete
}

func NewAthleteRegistry(log *slog.Logger, athletes athleteRepo) *AthleteRegistry {
	return &AthleteRegistry{
		athletes: athletes,
		log:      log.With("registry", "athlete"),
		byKey:    map[string]*domain.Athlete{},
	}
}

// ResolveOrCreate finds the stored athlete matching the candidate's lookup
// key, merging the candidate's attributes into it, or creates a new row.
// Club linkage is the one latest-wins field: the most recent file knows the
// athlete's current club.
func (r *AthleteRegistry) ResolveOrCreate(ctx context.Context, candidate domain.Athlete) (*domain.Athlete, error) {
	key := domain.AthleteLookupKey(candidate.FirstName, candidate.LastName, candidate.BirthDate)

	if key != "" {
		if cached, ok := r.byKey[key]; ok {
			r.merge(cached, candidate)
			if err := r.athletes.Update(ctx, cached); err != nil {
				return nil, fmt.Errorf("update athlete: %w", err)
			}
			return cached, nil
		}

		existing, err := r.athletes.GetByLookupKey(ctx, key)
		switch {
		case err == nil:
			r.merge(existing, candidate)
			if err := r.athletes.Update(ctx, existing); err != nil {
				return nil, fmt.Errorf("update athlete: %w", err)
			}
			r.byKey[key] = existing
			return existing, nil
		case !errors.Is(err, domain.ErrNotFound):
			return nil, fmt.Errorf("lookup athlete: %w", err)
		}
	}

	created := candidate
	created.LookupKey = key
	if err := r.athletes.Create(ctx, &created); err != nil {
		return nil, fmt.Errorf("create athlete: %w", err)
	}
	if key != "" {
		r.byKey[key] = &created
	}
	r.log.DebugContext(ctx, "athlete created",
		slog.String("last_name", created.LastName),
		slog.String("first_name", created.FirstName),
	)
	return &created, nil
}

func (r *AthleteRegistry) merge(existing *domain.Athlete, in domain.Athlete) {
	existing.FirstName = MoreComplete(existing.FirstName, in.FirstName)
	existing.LastName = MoreComplete(existing.LastName, in.LastName)
	existing.Patronymic = MoreComplete(existing.Patronymic, in.Patronymic)
	existing.FullName = MoreComplete(existing.FullName, in.FullName)
	existing.ExternalID = FillText(existing.ExternalID, in.ExternalID)
	existing.BirthDate = FillDate(existing.BirthDate, in.BirthDate)
	existing.Gender = FillText(existing.Gender, in.Gender)
	existing.Country = FillText(existing.Country, in.Country)
	if in.ClubID != nil {
		existing.ClubID = in.ClubID
	}
	if existing.LookupKey == "" {
		existing.LookupKey = domain.AthleteLookupKey(existing.FirstName, existing.LastName, existing.BirthDate)
	}
}
