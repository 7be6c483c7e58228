package domain

import "github.com/google/uuid"

// FreeEntryMarker is the payment-class value that marks a free (non-paying)
// entry in the source files.
const FreeEntryMarker = "БЕСП"

// Participant is one athlete's entry in one category of one event.
// At most one row exists per (EventID, CategoryID, AthleteID); the importer
// merges repeated sightings of the same athlete within a file instead of
// inserting duplicates.
type Participant struct {
	ID          uuid.UUID
	ExternalID  string
	EventID     uuid.UUID
	CategoryID  uuid.UUID
	AthleteID   uuid.UUID
	BibNumber   *int
	TotalPlace  *int
	TotalPoints *float64
	Status      string
	// SegmentStatuses holds the per-segment status codes in file order.
	// Slots are positional; missing segments are empty strings.
	SegmentStatuses []string
	EntryMarker     string
	CoachName       string
}

// IsFreeEntry reports whether the participant entered without paying the
// starting fee.
func (p *Participant) IsFreeEntry() bool {
	return p.EntryMarker == FreeEntryMarker
}

// Performance is one participant's scored skate in one segment.
// One row per (ParticipantID, SegmentID). Score fields are true values:
// the importer decodes the file's scaled integers exactly once when building
// the row.
type Performance struct {
	ID            uuid.UUID
	ParticipantID uuid.UUID
	SegmentID     uuid.UUID
	StartNumber   *int
	StartGroup    *int
	Status        string
	Qualification string
	Place         *int
	Points        *float64
	TESTotal      *float64
	PCSTotal      *float64
	Deductions    *float64
	Bonus         *float64
}

// Element is one scored move within a performance.
// JudgeMarks holds the decoded grade-of-execution per judge seat ("J01"…);
// marks that arrived outside the known code ranges are kept verbatim so
// audits can see exactly what the file contained.
type Element struct {
	ID            uuid.UUID
	PerformanceID uuid.UUID
	OrderNum      int
	PlannedCode   string
	ExecutedCode  string
	InfoCode      string
	BaseValue     *float64
	GOEResult     *float64
	Penalty       *float64
	Result        *float64
	JudgeMarks    map[string]float64
}

// ComponentScore is one judged program-component axis (skating skills,
// transitions, …) of a performance, with per-judge marks and the weighted
// result.
type ComponentScore struct {
	ID            uuid.UUID
	PerformanceID uuid.UUID
	ComponentType string
	Factor        *float64
	Penalty       *float64
	Result        *float64
	JudgeMarks    map[string]float64
}
