package domain

import (
	"time"

	"github.com/google/uuid"
)

// Coach is resolved purely by normalized full name: source files carry no
// birth date or other identifying attributes for coaches.
type Coach struct {
	ID             uuid.UUID
	Name           string
	NormalizedName string
	CreatedAt      time.Time
}

// CoachAssignment is one observed coach/athlete pairing with its validity
// interval. The set of assignments per athlete is an append-only history:
// at most one row is current, and a closed row's EndDate is the StartDate of
// its successor. EventID records the import that evidenced the pairing.
type CoachAssignment struct {
	ID            uuid.UUID
	CoachID       uuid.UUID
	AthleteID     uuid.UUID
	ParticipantID uuid.UUID
	EventID       uuid.UUID
	StartDate     time.Time
	EndDate       *time.Time
	IsCurrent     bool
}
