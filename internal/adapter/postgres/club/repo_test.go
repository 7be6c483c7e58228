package club_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/figskate/results-backend/internal/adapter/postgres/club"
	"github.com/figskate/results-backend/internal/adapter/postgres/testhelper"
	"github.com/figskate/results-backend/internal/domain"
)

// newRepo sets up a test DB and returns a ready Repo + pool.
func newRepo(t *testing.T) (*club.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return club.New(pool), pool
}

func TestRepo_Create_AndList(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	name := "СШОР Тест-" + uuid.New().String()[:8]
	c := &domain.Club{Name: name, City: "Казань"}
	if err := repo.Create(ctx, c); err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}
	if c.ID == uuid.Nil {
		t.Fatal("Create: expected generated ID to be written back")
	}

	clubs, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}

	var found *domain.Club
	for _, got := range clubs {
		if got.ID == c.ID {
			found = got
			break
		}
	}
	if found == nil {
		t.Fatalf("List: created club %s not returned", c.ID)
	}
	if found.Name != name {
		t.Errorf("Name mismatch: got %q, want %q", found.Name, name)
	}
	if found.City != "Казань" {
		t.Errorf("City mismatch: got %q, want %q", found.City, "Казань")
	}
}

func TestRepo_Update(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedClub(t, pool, "До переименования "+uuid.New().String()[:8])

	seeded.Name = "После переименования " + uuid.New().String()[:8]
	seeded.ShortName = "ПП"
	if err := repo.Update(ctx, &seeded); err != nil {
		t.Fatalf("Update: unexpected error: %v", err)
	}

	var name, shortName string
	err := pool.QueryRow(ctx,
		`SELECT name, short_name FROM clubs WHERE id = $1`, seeded.ID,
	).Scan(&name, &shortName)
	if err != nil {
		t.Fatalf("select updated club: %v", err)
	}
	if name != seeded.Name {
		t.Errorf("Name mismatch: got %q, want %q", name, seeded.Name)
	}
	if shortName != "ПП" {
		t.Errorf("ShortName mismatch: got %q, want %q", shortName, "ПП")
	}
}

func TestRepo_Update_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	missing := &domain.Club{ID: uuid.New(), Name: "нет такого"}
	err := repo.Update(ctx, missing)
	assertIsDomainError(t, err, domain.ErrNotFound)
}

func TestRepo_CountAndMoveAthletes(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	from := testhelper.SeedClub(t, pool, "Источник "+uuid.New().String()[:8])
	to := testhelper.SeedClub(t, pool, "Приёмник "+uuid.New().String()[:8])

	testhelper.SeedAthlete(t, pool, &from.ID)
	testhelper.SeedAthlete(t, pool, &from.ID)
	kept := testhelper.SeedAthlete(t, pool, &to.ID)

	count, err := repo.CountAthletes(ctx, from.ID)
	if err != nil {
		t.Fatalf("CountAthletes: unexpected error: %v", err)
	}
	if count != 2 {
		t.Fatalf("CountAthletes: got %d, want 2", count)
	}

	moved, err := repo.MoveAthletes(ctx, from.ID, to.ID)
	if err != nil {
		t.Fatalf("MoveAthletes: unexpected error: %v", err)
	}
	if moved != 2 {
		t.Errorf("MoveAthletes: got %d, want 2", moved)
	}

	count, err = repo.CountAthletes(ctx, to.ID)
	if err != nil {
		t.Fatalf("CountAthletes[to]: unexpected error: %v", err)
	}
	if count != 3 {
		t.Errorf("CountAthletes[to]: got %d, want 3", count)
	}

	// The athlete already in the target club is untouched.
	var clubID uuid.UUID
	if err := pool.QueryRow(ctx, `SELECT club_id FROM athletes WHERE id = $1`, kept.ID).Scan(&clubID); err != nil {
		t.Fatalf("select kept athlete: %v", err)
	}
	if clubID != to.ID {
		t.Errorf("kept athlete club mismatch: got %s, want %s", clubID, to.ID)
	}
}

func TestRepo_Delete_NullsAthleteClub(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	c := testhelper.SeedClub(t, pool, "На удаление "+uuid.New().String()[:8])
	athlete := testhelper.SeedAthlete(t, pool, &c.ID)

	if err := repo.Delete(ctx, c.ID); err != nil {
		t.Fatalf("Delete: unexpected error: %v", err)
	}

	var clubID *uuid.UUID
	if err := pool.QueryRow(ctx, `SELECT club_id FROM athletes WHERE id = $1`, athlete.ID).Scan(&clubID); err != nil {
		t.Fatalf("select orphaned athlete: %v", err)
	}
	if clubID != nil {
		t.Errorf("expected athlete club_id to be null after delete, got %s", *clubID)
	}

	err := repo.Delete(ctx, c.ID)
	assertIsDomainError(t, err, domain.ErrNotFound)
}

func assertIsDomainError(t *testing.T, err error, target error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error wrapping %v, got nil", target)
	}
	if !errors.Is(err, target) {
		t.Fatalf("expected error wrapping %v, got: %v", target, err)
	}
}
