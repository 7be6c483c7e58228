package calcfs

import "time"

// Record types are faithful, flat transcriptions of one export file. They
// keep the file's own internal identifiers verbatim; resolving them against
// the store is the importer's job. Score-bearing fields stay raw (scaled
// integers, judge codes as strings); decoding happens once, in the consumer.

// Document holds every record extracted from one export file, grouped by
// kind.
type Document struct {
	Events       []EventRecord
	Categories   []CategoryRecord
	Segments     []SegmentRecord
	Persons      []PersonRecord
	Clubs        []ClubRecord
	Participants []ParticipantRecord
	Performances []PerformanceRecord
	Judges       []JudgeRecord
	Panels       []PanelRecord

	// Skipped counts records dropped for missing hard identifiers.
	Skipped int
}

// Stats summarizes a parsed document for logging.
type Stats struct {
	Events       int
	Categories   int
	Segments     int
	Persons      int
	Clubs        int
	Participants int
	Performances int
	Judges       int
	Panels       int
	Skipped      int
}

// EventRecord is the file's competition header.
type EventRecord struct {
	ID              string
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
}

// CategoryRecord is one competition class. Name has Latin look-alike letters
// corrected so downstream keyword classification sees clean Cyrillic.
type CategoryRecord struct {
	ID              string
	EventID         string
	ExternalID      string
	Name            string
	ShortName       string
	Gender          string
	Type            string
	Status          string
	Level           string
	NumEntries      string
	NumParticipants string
}

// SegmentRecord is one scored phase of a category.
// ComponentFactors maps component slot (1–5) to its factor, already unscaled
// because the factor is structural segment metadata, not a score.
type SegmentRecord struct {
	ID               string
	CategoryID       string
	Name             string
	TVName           string
	ShortName        string
	Type             string
	Factor           string
	Status           string
	ComponentFactors map[int]float64
}

// Person type discriminators used by the export.
const (
	PersonTypeSingle = "PER"
	PersonTypeCouple = "COU"
	PersonTypeTeam   = "TEA"
)

// PersonRecord is one athlete, pair or team from the authoritative
// participants list. Pair/team records carry a composite display name and no
// patronymic; their gender is the synthetic "P".
type PersonRecord struct {
	ID           string
	ExternalID   string
	Type         string
	Nationality  string
	ClubID       string
	BirthDate    *time.Time
	Gender       string
	FirstName    string
	LastName     string
	Patronymic   string
	FullName     string // PCT_CNAME, full name as entered
	ProtocolName string // PCT_PLNAME, preferred display name
	ShortName    string
	CoachName    string
	PaymentClass string // PCT_PPNAME; "БЕСП" marks a free entry
}

// ClubRecord is one club mentioned by the file. Clubs without a resolvable
// name are dropped at parse time.
type ClubRecord struct {
	ID         string
	ExternalID string
	Name       string
	ShortName  string
	Country    string
	City       string
}

// ParticipantRecord links a person to a category with the final placement.
type ParticipantRecord struct {
	ID              string
	CategoryID      string
	PersonID        string
	ClubID          string
	BibNumber       string
	Rank            string
	TotalPoints     string // scaled ×100, decoded at persistence time
	Status          string
	SegmentStatuses [6]string
}

// PerformanceRecord is one skate in one segment, with its scored elements
// and program components.
type PerformanceRecord struct {
	ID            string
	SegmentID     string
	ParticipantID string
	Rank          string
	Points        string
	Status        string
	Qualification string
	StartNumber   string
	StartGroup    string
	Deductions    string // PRF_DEDTOT, or the sum of per-slot deductions
	Bonus         string
	TESSum        string
	TESResult     string
	PCSSum        string
	PCSResult     string
	Elements      []ElementRecord
	Components    []ComponentRecord
}

// ElementRecord is one executed element. JudgeCodes holds the raw per-seat
// mark codes ("J01"…"J15"), undecoded.
type ElementRecord struct {
	OrderNum     int
	PlannedCode  string
	PlannedNorm  string
	ExecutedCode string
	InfoCode     string
	Confirmed    string
	TimeCode     string
	BaseValue    string
	Penalty      string
	Result       string
	GOE          string // penalty slot, else result−base fallback (still scaled)
	JudgeCodes   map[string]string
}

// ComponentRecord is one judged program-component axis of a performance.
type ComponentRecord struct {
	Slot       int
	Type       string
	Factor     *float64
	Penalty    string
	Result     string
	JudgeMarks map[string]string
}

// JudgeRecord is a judge identity from a segment's panel list.
type JudgeRecord struct {
	ID            string
	ExternalID    string
	FirstName     string
	LastName      string
	FullName      string
	ShortName     string
	Gender        string
	Country       string
	City          string
	Qualification string
}

// PanelRecord assigns a judge to a segment with a role and seat order.
type PanelRecord struct {
	SegmentID  string
	CategoryID string
	JudgeID    string
	RoleCode   string
	PanelGroup string
	OrderNum   int
}

// Stats computes per-kind record counts.
func (d *Document) Stats() Stats {
	return Stats{
		Events:       len(d.Events),
		Categories:   len(d.Categories),
		Segments:     len(d.Segments),
		Persons:      len(d.Persons),
		Clubs:        len(d.Clubs),
		Participants: len(d.Participants),
		Performances: len(d.Performances),
		Judges:       len(d.Judges),
		Panels:       len(d.Panels),
		Skipped:      d.Skipped,
	}
}
