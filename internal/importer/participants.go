package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/figskate/results-backend/internal/calcfs"
	"github.com/figskate/results-backend/internal/domain"
	"github.com/figskate/results-backend/internal/registry"
)

func (imp *Importer) importParticipants(
	ctx context.Context,
	doc *calcfs.Document,
	event *domain.Event,
	clubReg *registry.ClubRegistry,
	catID map[string]uuid.UUID,
	catGender map[string]string,
	segID map[string]uuid.UUID,
	sum *Summary,
) error {
	athReg := registry.NewAthleteRegistry(imp.log, imp.athletes)
	coachReg := registry.NewCoachRegistry(imp.log, imp.coaches)

	personByID := make(map[string]calcfs.PersonRecord, len(doc.Persons))
	for _, p := range doc.Persons {
		personByID[p.ID] = p
	}
	perfByParticipant := make(map[string][]calcfs.PerformanceRecord, len(doc.Participants))
	for _, p := range doc.Performances {
		perfByParticipant[p.ParticipantID] = append(perfByParticipant[p.ParticipantID], p)
	}

	for _, rec := range doc.Participants {
		person, ok := personByID[rec.PersonID]
		if !ok {
			imp.warn(ctx, sum, "participant references unknown person",
				slog.String("participant", rec.ID), slog.String("person", rec.PersonID))
			continue
		}
		categoryID, ok := catID[rec.CategoryID]
		if !ok {
			imp.warn(ctx, sum, "participant references unknown category",
				slog.String("participant", rec.ID), slog.String("category", rec.CategoryID))
			continue
		}

		athlete, err := athReg.ResolveOrCreate(ctx, imp.buildAthlete(person, rec, catGender, clubReg))
		if err != nil {
			return err
		}
		sum.Athletes++

		participant, created, err := imp.upsertParticipant(ctx, event.ID, categoryID, athlete.ID, rec, person)
		if err != nil {
			return err
		}
		if created {
			sum.Participants++
		}

		if err := imp.trackCoach(ctx, coachReg, person.CoachName, athlete, participant, event, sum); err != nil {
			return err
		}

		for _, perfRec := range perfByParticipant[rec.ID] {
			if err := imp.importPerformance(ctx, perfRec, participant, segID, sum); err != nil {
				return err
			}
		}
	}
	return nil
}

// buildAthlete maps a person record to an athlete candidate. Singles take
// their gender from the category when the person record omits it wrongly;
// couples keep the composite "P". The club comes from the person record,
// falling back to the participant's own club reference.
func (imp *Importer) buildAthlete(
	person calcfs.PersonRecord,
	rec calcfs.ParticipantRecord,
	catGender map[string]string,
	clubReg *registry.ClubRegistry,
) domain.Athlete {
	gender := person.Gender
	if person.Type == calcfs.PersonTypeSingle || person.Type == "" {
		if g := catGender[rec.CategoryID]; g != "" {
			gender = g
		}
	}

	var clubID *uuid.UUID
	for _, fileID := range []string{person.ClubID, rec.ClubID} {
		if fileID == "" {
			continue
		}
		if club, ok := clubReg.Lookup(fileID); ok && club != nil {
			id := club.ID
			clubID = &id
			break
		}
	}

	return domain.Athlete{
		ExternalID: person.ExternalID,
		FirstName:  domain.CollapseRepeatedWords(person.FirstName),
		LastName:   domain.CollapseRepeatedWords(person.LastName),
		Patronymic: domain.CollapseRepeatedWords(person.Patronymic),
		FullName:   firstNonEmpty(person.ProtocolName, person.FullName),
		BirthDate:  person.BirthDate,
		Gender:     gender,
		Country:    person.Nationality,
		ClubID:     clubID,
	}
}

// upsertParticipant looks a participant up by the (event, category, athlete)
// triple. The same athlete can appear under more than one person-record alias
// within a file; the second sighting merges into the first row instead of
// duplicating it.
func (imp *Importer) upsertParticipant(
	ctx context.Context,
	eventID, categoryID, athleteID uuid.UUID,
	rec calcfs.ParticipantRecord,
	person calcfs.PersonRecord,
) (*domain.Participant, bool, error) {
	existing, err := imp.results.GetParticipant(ctx, eventID, categoryID, athleteID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		p := &domain.Participant{
			ExternalID:      rec.ID,
			EventID:         eventID,
			CategoryID:      categoryID,
			AthleteID:       athleteID,
			BibNumber:       atoiPtr(rec.BibNumber),
			TotalPlace:      atoiPtr(rec.Rank),
			TotalPoints:     calcfs.DecodeScore(rec.TotalPoints),
			Status:          rec.Status,
			SegmentStatuses: segmentStatuses(rec),
			EntryMarker:     person.PaymentClass,
			CoachName:       person.CoachName,
		}
		if err := imp.results.CreateParticipant(ctx, p); err != nil {
			return nil, false, fmt.Errorf("create participant: %w", err)
		}
		return p, true, nil
	case err != nil:
		return nil, false, fmt.Errorf("lookup participant: %w", err)
	}

	if existing.BibNumber == nil {
		existing.BibNumber = atoiPtr(rec.BibNumber)
	}
	if existing.TotalPlace == nil {
		existing.TotalPlace = atoiPtr(rec.Rank)
	}
	if existing.TotalPoints == nil {
		existing.TotalPoints = calcfs.DecodeScore(rec.TotalPoints)
	}
	existing.Status = registry.FillText(existing.Status, rec.Status)
	existing.EntryMarker = registry.FillText(existing.EntryMarker, person.PaymentClass)
	if len(existing.SegmentStatuses) == 0 {
		existing.SegmentStatuses = segmentStatuses(rec)
	}
	// The coach field follows the most recent sighting.
	if person.CoachName != "" && person.CoachName != existing.CoachName {
		existing.CoachName = person.CoachName
	}
	if err := imp.results.UpdateParticipant(ctx, existing); err != nil {
		return nil, false, fmt.Errorf("update participant: %w", err)
	}
	return existing, false, nil
}

// trackCoach applies the per-participant coach transition rule: no current
// assignment opens one; a current assignment to another coach is closed at
// the event's date and a new one opened; the same coach is a no-op.
func (imp *Importer) trackCoach(
	ctx context.Context,
	coachReg *registry.CoachRegistry,
	rawName string,
	athlete *domain.Athlete,
	participant *domain.Participant,
	event *domain.Event,
	sum *Summary,
) error {
	coach, err := coachReg.ResolveOrCreate(ctx, rawName)
	if err != nil {
		return err
	}
	if coach == nil {
		return nil
	}
	eventDate := event.Date()
	if eventDate == nil {
		return nil
	}

	seen, err := imp.assignments.Exists(ctx, athlete.ID, coach.ID, event.ID)
	if err != nil {
		return fmt.Errorf("check coach assignment: %w", err)
	}
	if seen {
		return nil
	}

	open := func() error {
		assignment := &domain.CoachAssignment{
			CoachID:       coach.ID,
			AthleteID:     athlete.ID,
			ParticipantID: participant.ID,
			EventID:       event.ID,
			StartDate:     *eventDate,
			IsCurrent:     true,
		}
		if err := imp.assignments.Create(ctx, assignment); err != nil {
			return fmt.Errorf("create coach assignment: %w", err)
		}
		sum.CoachAssignments++
		return nil
	}

	current, err := imp.assignments.GetCurrent(ctx, athlete.ID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return open()
	case err != nil:
		return fmt.Errorf("get current coach assignment: %w", err)
	case current.CoachID == coach.ID:
		return nil
	}

	if err := imp.assignments.Close(ctx, current.ID, *eventDate); err != nil {
		return fmt.Errorf("close coach assignment: %w", err)
	}
	sum.CoachTransitions++
	imp.log.InfoContext(ctx, "coach transition",
		slog.String("athlete", athlete.DisplayName()),
		slog.String("new_coach", coach.Name),
		slog.Time("date", *eventDate),
	)
	return open()
}

func segmentStatuses(rec calcfs.ParticipantRecord) []string {
	last := -1
	for i, s := range rec.SegmentStatuses {
		if s != "" {
			last = i
		}
	}
	if last < 0 {
		return nil
	}
	out := make([]string, last+1)
	copy(out, rec.SegmentStatuses[:last+1])
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
