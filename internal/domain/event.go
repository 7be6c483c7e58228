// Package domain defines the persistent entities of the results store and the
// text-normalization rules shared by the parser, registries and importer.
//
// Event is the root aggregate: categories, segments, participants,
// performances, elements, component scores and judge panels are removed with
// it. Athletes, clubs, coaches and judges are long-lived shared entities that
// event-scoped rows reference but never own.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event is a single imported competition.
// ExternalID is the id carried by the source file. It is deliberately not
// unique: unrelated exports are known to reuse the same value, so duplicate
// detection uses (Name, BeginDate) instead.
type Event struct {
	ID              uuid.UUID
	ExternalID      string
	Name            string
	LongName        string
	Place           string
	BeginDate       *time.Time
	EndDate         *time.Time
	Venue           string
	Language        string
	EventType       string
	CompetitionType string
	Status          string
	CalculationTime *time.Time
	CreatedAt       time.Time
}

// Date returns the best-known date of the event: begin date, falling back to
// end date. Nil when the file carried neither.
func (e *Event) Date() *time.Time {
	if e.BeginDate != nil {
		return e.BeginDate
	}
	return e.EndDate
}

// Category is a competition class within an event.
// NormalizedName is the canonical rank label produced by the rank classifier;
// unclassified categories carry the visible "Другой" placeholder so they can
// be corrected by hand rather than silently dropped.
type Category struct {
	ID              uuid.UUID
	EventID         uuid.UUID
	ExternalID      string
	Name            string
	TVName          string
	NormalizedName  string
	Level           string
	Gender          string
	CategoryType    string
	Status          string
	NumEntries      *int
	NumParticipants *int
}

// Segment is one scored phase of a category's program (short/free/pattern).
// ComponentFactors holds the per-slot program-component factors from the
// source file, keyed by component slot 1–5.
type Segment struct {
	ID               uuid.UUID
	CategoryID       uuid.UUID
	ExternalID       string
	Name             string
	TVName           string
	ShortName        string
	SegmentType      string
	Factor           *float64
	Status           string
	ComponentFactors map[int]float64
}
