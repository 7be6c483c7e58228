package testhelper

import (
	"context"
	"testing"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	club := SeedClub(t, pool, "СШОР Смоук "+uniqueSuffix())

	// Verify the club exists in the DB via SELECT.
	var name string
	err := pool.QueryRow(
		context.Background(),
		`SELECT name FROM clubs WHERE id = $1`,
		club.ID,
	).Scan(&name)
	if err != nil {
		t.Fatalf("expected club in DB, got error: %v", err)
	}

	if name != club.Name {
		t.Fatalf("expected name %q, got %q", club.Name, name)
	}
}
