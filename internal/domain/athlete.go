package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Athlete is a skater or a pair/team. Pairs and teams carry a composite
// display name in FullName and no patronymic.
//
// ClubID is a weak reference: deleting a club leaves the athlete with a nil
// club rather than cascading.
type Athlete struct {
	ID         uuid.UUID
	ExternalID string
	FirstName  string
	LastName   string
	Patronymic string
	FullName   string // protocol name from the source file, preferred for display
	LookupKey  string
	BirthDate  *time.Time
	Gender     string
	Country    string
	ClubID     *uuid.UUID
}

// AthleteLookupKey builds the deduplication key from normalized first name,
// last name and birth date. All three are required: without a birth date two
// same-named skaters cannot be told apart, so such records are never matched
// automatically and the empty key is returned.
func AthleteLookupKey(firstName, lastName string, birthDate *time.Time) string {
	first := NormalizeText(firstName)
	last := NormalizeText(lastName)
	if first == "" || last == "" || birthDate == nil {
		return ""
	}
	return fmt.Sprintf("name:%s:%s:%s", first, last, birthDate.Format("2006-01-02"))
}

// DisplayName returns the best display name: the protocol name from the file
// when present, otherwise "Last First Patronymic" with duplicated words
// repaired.
func (a *Athlete) DisplayName() string {
	if a.FullName != "" {
		return a.FullName
	}
	var parts []string
	for _, p := range []string{a.LastName, a.FirstName, a.Patronymic} {
		if p != "" {
			parts = append(parts, CollapseRepeatedWords(p))
		}
	}
	return joinSpace(parts)
}

// ShortDisplayName returns "Last F." or falls back to DisplayName when a part
// is missing.
func (a *Athlete) ShortDisplayName() string {
	if a.LastName == "" || a.FirstName == "" {
		return a.DisplayName()
	}
	last := CollapseRepeatedWords(a.LastName)
	first := []rune(CollapseRepeatedWords(a.FirstName))
	if len(first) == 0 {
		return last
	}
	return fmt.Sprintf("%s %c.", last, first[0])
}

func joinSpace(parts []string) string {
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += " " + p
	}
	return out
}
