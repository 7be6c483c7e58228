package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/figskate/results-backend/internal/domain"
)

type coachRepo interface {
	GetByNormalizedName(ctx context.Context, normalizedName string) (*domain.Coach, error)
	Create(ctx context.Context, coach *domain.Coach) error
}

// CoachRegistry deduplicates coaches by normalized full name. Source files
// carry nothing else about a coach, so name collisions are accepted.
type CoachRegistry struct {
	coaches coachRepo
	log     *slog.Logger
	byName  map[string]*domain.Coach
}

func NewCoachRegistry(log *slog.Logger, coaches coachRepo) *CoachRegistry {
	return &CoachRegistry{
		coaches: coaches,
		log:     log.With("registry", "coach"),
		byName:  map[string]*domain.Coach{},
	}
}

// ResolveOrCreate returns the coach for a raw name from a participant
// record. A blank name resolves to nil without error: most participants
// simply have no coach listed.
func (r *CoachRegistry) ResolveOrCreate(ctx context.Context, rawName string) (*domain.Coach, error) {
	normalized := domain.NormalizeText(domain.FixLatinLookalikes(rawName))
	if normalized == "" {
		return nil, nil
	}

	if cached, ok := r.byName[normalized]; ok {
		return cached, nil
	}

	coach, err := r.coaches.GetByNormalizedName(ctx, normalized)
	switch {
	case err == nil:
		r.byName[normalized] = coach
		return coach, nil
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("lookup coach: %w", err)
	}

	created := &domain.Coach{
		Name:           domain.CleanText(rawName),
		NormalizedName: normalized,
	}
	if err := r.coaches.Create(ctx, created); err != nil {
		return nil, fmt.Errorf("create coach: %w", err)
	}
	r.byName[normalized] = created
	r.log.DebugContext(ctx, "coach created", slog.String("name", created.Name))
	return created, nil
}
