package domain

import "github.com/google/uuid"

// Judge is a judge identity. Judges are matched by name only and not
// deduplicated as aggressively as athletes: the volume is small and manual
// correction is acceptable.
type Judge struct {
	ID            uuid.UUID
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

// Judge panel role codes as they appear in export files.
const (
	RoleReferee             = "REF"
	RoleTechnicalController = "TCO"
	RoleTechnicalSpecialist = "TSP"
	RoleDataOperator        = "DOP"
	RoleVideoReplayOperator = "VRO"
	RoleJudge               = "JUD"
)

// JudgePanel assigns a judge to a segment with a role and seat number.
// One row per (SegmentID, JudgeID).
type JudgePanel struct {
	ID         uuid.UUID
	SegmentID  uuid.UUID
	CategoryID *uuid.UUID
	JudgeID    uuid.UUID
	RoleCode   string
	PanelGroup string
	OrderNum   int
}
