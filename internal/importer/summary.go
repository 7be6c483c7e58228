package importer

import "time"

// Summary counts what one import wrote.
type Summary struct {
	Categories       int
	Segments         int
	Clubs            int
	ClubsMerged      int
	Judges           int
	PanelSeats       int
	Athletes         int
	Participants     int
	Performances     int
	Elements         int
	Components       int
	CoachAssignments int
	CoachTransitions int

	// SkippedRecords counts source records dropped by the parser for missing
	// hard identifiers; Warnings counts oddities logged during persistence
	// (unknown judge-mark codes, unresolvable references).
	SkippedRecords int
	Warnings       int

	Duration time.Duration
}
