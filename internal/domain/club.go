package domain

import "github.com/google/uuid"

// Club is an organization an athlete may represent.
// ExternalID is the club id from the most recent source file that mentioned
// the club; like Event.ExternalID it is not unique across files, so matching
// is by normalized name with the external id as a first-chance hint.
type Club struct {
	ID         uuid.UUID
	ExternalID string
	Name       string
	ShortName  string
	Country    string
	City       string
}
