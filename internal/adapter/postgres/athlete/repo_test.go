package athlete_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/figskate/results-backend/internal/adapter/postgres/athlete"
	"github.com/figskate/results-backend/internal/adapter/postgres/testhelper"
	"github.com/figskate/results-backend/internal/domain"
)

// newRepo sets up a test DB and returns a ready Repo + pool.
func newRepo(t *testing.T) (*athlete.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return athlete.New(pool), pool
}

func strPtr(s string) *string { return &s }

func TestRepo_Create_AndGetByLookupKey(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	birth := time.Date(2011, 3, 14, 0, 0, 0, 0, time.UTC)
	key := "name:анна:ключева-" + uuid.New().String()[:8] + ":2011-03-14"
	a := &domain.Athlete{
		FirstName: "Анна",
		LastName:  "Ключева",
		LookupKey: key,
		BirthDate: &birth,
		Gender:    "F",
	}
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}
	if a.ID == uuid.Nil {
		t.Fatal("Create: expected generated ID to be written back")
	}

	got, err := repo.GetByLookupKey(ctx, key)
	if err != nil {
		t.Fatalf("GetByLookupKey: unexpected error: %v", err)
	}
	if got.ID != a.ID {
		t.Errorf("ID mismatch: got %s, want %s", got.ID, a.ID)
	}
	if got.BirthDate == nil || !got.BirthDate.Equal(birth) {
		t.Errorf("BirthDate mismatch: got %v, want %v", got.BirthDate, birth)
	}
}

func TestRepo_GetByLookupKey_EmptyKey(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	_, err := repo.GetByLookupKey(context.Background(), "")
	if err == nil || !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty key, got: %v", err)
	}
}

func TestRepo_Create_DuplicateLookupKey(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	key := "name:пётр:дублёв-" + uuid.New().String()[:8] + ":2009-01-01"
	first := &domain.Athlete{FirstName: "Пётр", LastName: "Дублёв", LookupKey: key}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create[1]: unexpected error: %v", err)
	}

	second := &domain.Athlete{FirstName: "Пётр", LastName: "Дублёв", LookupKey: key}
	err := repo.Create(ctx, second)
	if err == nil || !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got: %v", err)
	}
}

func TestRepo_Search(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	club := testhelper.SeedClub(t, pool, "Клуб Поиска "+uuid.New().String()[:8])

	marker := "Искомова-" + uuid.New().String()[:8]
	birth := time.Date(2012, 6, 1, 0, 0, 0, 0, time.UTC)
	inClub := &domain.Athlete{
		FirstName: "Вера",
		LastName:  marker,
		LookupKey: "name:вера:" + marker + ":2012-06-01",
		BirthDate: &birth,
		Gender:    "F",
		ClubID:    &club.ID,
	}
	if err := repo.Create(ctx, inClub); err != nil {
		t.Fatalf("Create[inClub]: unexpected error: %v", err)
	}

	otherBirth := time.Date(2005, 2, 2, 0, 0, 0, 0, time.UTC)
	noClub := &domain.Athlete{
		FirstName: "Олег",
		LastName:  marker + "-второй",
		LookupKey: "name:олег:" + marker + "-второй:2005-02-02",
		BirthDate: &otherBirth,
		Gender:    "M",
	}
	if err := repo.Create(ctx, noClub); err != nil {
		t.Fatalf("Create[noClub]: unexpected error: %v", err)
	}

	// Text search matches both.
	got, err := repo.Search(ctx, athlete.Filter{Search: strPtr(marker)})
	if err != nil {
		t.Fatalf("Search[text]: unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Search[text]: got %d athletes, want 2", len(got))
	}

	// Club filter narrows to one.
	got, err = repo.Search(ctx, athlete.Filter{Search: strPtr(marker), ClubID: &club.ID})
	if err != nil {
		t.Fatalf("Search[club]: unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != inClub.ID {
		t.Fatalf("Search[club]: expected only the club athlete, got %d rows", len(got))
	}

	// Birth-year range excludes the 2005 athlete.
	got, err = repo.Search(ctx, athlete.Filter{Search: strPtr(marker), BirthYearFrom: 2010, BirthYearTo: 2015})
	if err != nil {
		t.Fatalf("Search[years]: unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != inClub.ID {
		t.Fatalf("Search[years]: expected only the 2012 athlete, got %d rows", len(got))
	}

	// Gender filter.
	got, err = repo.Search(ctx, athlete.Filter{Search: strPtr(marker), Gender: strPtr("M")})
	if err != nil {
		t.Fatalf("Search[gender]: unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != noClub.ID {
		t.Fatalf("Search[gender]: expected only the male athlete, got %d rows", len(got))
	}
}

func TestRepo_Search_SortAndPagination(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	marker := "Сортова-" + uuid.New().String()[:8]
	for i, year := range []int{2010, 2008, 2012} {
		birth := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
		a := &domain.Athlete{
			FirstName: "Тест",
			LastName:  marker + string(rune('А'+i)),
			LookupKey: "name:тест:" + marker + string(rune('а'+i)) + ":" + birth.Format("2006-01-02"),
			BirthDate: &birth,
		}
		if err := repo.Create(ctx, a); err != nil {
			t.Fatalf("Create[%d]: unexpected error: %v", i, err)
		}
	}

	got, err := repo.Search(ctx, athlete.Filter{
		Search:    strPtr(marker),
		SortBy:    "birth_date",
		SortOrder: "DESC",
		Limit:     2,
	})
	if err != nil {
		t.Fatalf("Search: unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Search: got %d athletes, want 2", len(got))
	}
	if got[0].BirthDate.Year() != 2012 || got[1].BirthDate.Year() != 2010 {
		t.Errorf("sort mismatch: got years %d, %d", got[0].BirthDate.Year(), got[1].BirthDate.Year())
	}

	got, err = repo.Search(ctx, athlete.Filter{
		Search:    strPtr(marker),
		SortBy:    "birth_date",
		SortOrder: "DESC",
		Limit:     2,
		Offset:    2,
	})
	if err != nil {
		t.Fatalf("Search[page 2]: unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].BirthDate.Year() != 2008 {
		t.Fatalf("Search[page 2]: expected the 2008 athlete, got %d rows", len(got))
	}
}
