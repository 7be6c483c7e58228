package registry

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/figskate/results-backend/internal/domain"
)

func TestCoachRegistry_BlankNameResolvesToNil(t *testing.T) {
	t.Parallel()

	reg := NewCoachRegistry(testLogger(), &coachRepoMock{})
	for _, raw := range []string{"", "   ", "\t"} {
		coach, err := reg.ResolveOrCreate(context.Background(), raw)
		require.NoError(t, err)
		assert.Nil(t, coach)
	}
}

func TestCoachRegistry_CreatesAndCaches(t *testing.T) {
	t.Parallel()

	lookups, creates := 0, 0
	repo := &coachRepoMock{
		GetByNormalizedNameFunc: func(ctx context.Context, normalizedName string) (*domain.Coach, error) {
			lookups++
			assert.Equal(t, "петрова анна сергеевна", normalizedName)
			return nil, domain.ErrNotFound
		},
		CreateFunc: func(ctx context.Context, c *domain.Coach) error {
			creates++
			c.ID = uuid.New()
			return nil
		},
	}
	reg := NewCoachRegistry(testLogger(), repo)

	first, err := reg.ResolveOrCreate(context.Background(), "Петрова Анна Сергеевна")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "Петрова Анна Сергеевна", first.Name)

	// Different spacing, same coach: served from the cache.
	second, err := reg.ResolveOrCreate(context.Background(), "  Петрова  Анна   Сергеевна ")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, lookups)
	assert.Equal(t, 1, creates)
}

func TestCoachRegistry_FindsExisting(t *testing.T) {
	t.Parallel()

	existing := &domain.Coach{ID: uuid.New(), Name: "Сидоров Пётр", NormalizedName: "сидоров пётр"}
	repo := &coachRepoMock{
		GetByNormalizedNameFunc: func(ctx context.Context, normalizedName string) (*domain.Coach, error) {
			return existing, nil
		},
	}
	reg := NewCoachRegistry(testLogger(), repo)

	got, err := reg.ResolveOrCreate(context.Background(), "Сидоров Пётр")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, got.ID)
}
