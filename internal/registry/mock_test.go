package registry

import (
	"context"

	"github.com/google/uuid"

	"github.com/figskate/results-backend/internal/domain"
)

var (
	_ athleteRepo = &athleteRepoMock{}
	_ clubRepo    = &clubRepoMock{}
	_ coachRepo   = &coachRepoMock{}
)

type athleteRepoMock struct {
	GetByLookupKeyFunc func(ctx context.Context, key string) (*domain.Athlete, error)
	CreateFunc         func(ctx context.Context, athlete *domain.Athlete) error
	UpdateFunc         func(ctx context.Context, athlete *domain.Athlete) error
}

func (m *athleteRepoMock) GetByLookupKey(ctx context.Context, key string) (*domain.Athlete, error) {
	if m.GetByLookupKeyFunc == nil {
		panic("athleteRepoMock.GetByLookupKeyFunc is nil")
	}
	return m.GetByLookupKeyFunc(ctx, key)
}

func (m *athleteRepoMock) Create(ctx context.Context, athlete *domain.Athlete) error {
	if m.CreateFunc == nil {
		panic("athleteRepoMock.CreateFunc is nil")
	}
	return m.CreateFunc(ctx, athlete)
}

func (m *athleteRepoMock) Update(ctx context.Context, athlete *domain.Athlete) error {
	if m.UpdateFunc == nil {
		panic("athleteRepoMock.UpdateFunc is nil")
	}
	return m.UpdateFunc(ctx, athlete)
}

type clubRepoMock struct {
	ListFunc          func(ctx context.Context) ([]*domain.Club, error)
	CreateFunc        func(ctx context.Context, club *domain.Club) error
	UpdateFunc        func(ctx context.Context, club *domain.Club) error
	DeleteFunc        func(ctx context.Context, id uuid.UUID) error
	CountAthletesFunc func(ctx context.Context, clubID uuid.UUID) (int, error)
	MoveAthletesFunc  func(ctx context.Context, from, to uuid.UUID) (int64, error)
}

func (m *clubRepoMock) List(ctx context.Context) ([]*domain.Club, error) {
	if m.ListFunc == nil {
		panic("clubRepoMock.ListFunc is nil")
	}
	return m.ListFunc(ctx)
}

func (m *clubRepoMock) Create(ctx context.Context, club *domain.Club) error {
	if m.CreateFunc == nil {
		panic("clubRepoMock.CreateFunc is nil")
	}
	return m.CreateFunc(ctx, club)
}

func (m *clubRepoMock) Update(ctx context.Context, club *domain.Club) error {
	if m.UpdateFunc == nil {
		panic("clubRepoMock.UpdateFunc is nil")
	}
	return m.UpdateFunc(ctx, club)
}

func (m *clubRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("clubRepoMock.DeleteFunc is nil")
	}
	return m.DeleteFunc(ctx, id)
}

func (m *clubRepoMock) CountAthletes(ctx context.Context, clubID uuid.UUID) (int, error) {
	if m.CountAthletesFunc == nil {
		panic("clubRepoMock.CountAthletesFunc is nil")
	}
	return m.CountAthletesFunc(ctx, clubID)
}

func (m *clubRepoMock) MoveAthletes(ctx context.Context, from, to uuid.UUID) (int64, error) {
	if m.MoveAthletesFunc == nil {
		panic("clubRepoMock.MoveAthletesFunc is nil")
	}
	return m.MoveAthletesFunc(ctx, from, to)
}

type coachRepoMock struct {
	GetByNormalizedNameFunc func(ctx context.Context, normalizedName string) (*domain.Coach, error)
	CreateFunc              func(ctx context.Context, coach *domain.Coach) error
}

func (m *coachRepoMock) GetByNormalizedName(ctx context.Context, normalizedName string) (*domain.Coach, error) {
	if m.GetByNormalizedNameFunc == nil {
		panic("coachRepoMock.GetByNormalizedNameFunc is nil")
	}
	return m.GetByNormalizedNameFunc(ctx, normalizedName)
}

func (m *coachRepoMock) Create(ctx context.Context, coach *domain.Coach) error {
	if m.CreateFunc == nil {
		panic("coachRepoMock.CreateFunc is nil")
	}
	return m.CreateFunc(ctx, coach)
}
