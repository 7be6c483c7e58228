package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"github.com/figskate/results-backend/internal/calcfs"
	"github.com/figskate/results-backend/internal/domain"
	"github.com/figskate/results-backend/internal/rank"
	"github.com/figskate/results-backend/internal/registry"
)

// run executes the import phases inside the caller's transaction. Identifier
// maps translate the file's internal ids into persisted row ids; a reference
// that cannot be translated skips the referencing record with a warning
// instead of failing the file.
func (imp *Importer) run(ctx context.Context, doc *calcfs.Document, sum *Summary) error {
	event := buildEvent(doc.Events[0])

	exists, err := imp.events.ExistsByNameAndDate(ctx, event.Name, event.BeginDate)
	if err != nil {
		return fmt.Errorf("check duplicate event: %w", err)
	}
	if exists {
		return &DuplicateEventError{Name: event.Name, Date: event.BeginDate}
	}
	if err := imp.events.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	clubReg := registry.NewClubRegistry(imp.log, imp.clubs, imp.opts.ClubSimilarityThreshold)
	for _, rec := range doc.Clubs {
		club, err := clubReg.ResolveOrCreate(ctx, rec.ID, domain.Club{
			ExternalID: rec.ExternalID,
			Name:       rec.Name,
			ShortName:  rec.ShortName,
			Country:    rec.Country,
			City:       rec.City,
		})
		if err != nil {
			return err
		}
		if club != nil {
			sum.Clubs++
		}
	}
	if imp.opts.AutoMergeClubs {
		merged, err := clubReg.MergeDuplicates(ctx)
		if err != nil {
			return err
		}
		sum.ClubsMerged = merged
	}

	catID := make(map[string]uuid.UUID, len(doc.Categories))
	catGender := make(map[string]string, len(doc.Categories))
	for _, rec := range doc.Categories {
		cat := buildCategory(event.ID, rec)
		if err := imp.events.CreateCategory(ctx, cat); err != nil {
			return fmt.Errorf("create category %q: %w", cat.Name, err)
		}
		catID[rec.ID] = cat.ID
		catGender[rec.ID] = rec.Gender
		sum.Categories++
	}

	segID := make(map[string]uuid.UUID, len(doc.Segments))
	for _, rec := range doc.Segments {
		parentID, ok := catID[rec.CategoryID]
		if !ok {
			imp.warn(ctx, sum, "segment references unknown category",
				slog.String("segment", rec.ID), slog.String("category", rec.CategoryID))
			continue
		}
		seg := buildSegment(parentID, rec)
		if err := imp.events.CreateSegment(ctx, seg); err != nil {
			return fmt.Errorf("create segment %q: %w", seg.Name, err)
		}
		segID[rec.ID] = seg.ID
		sum.Segments++
	}

	judgeID := make(map[string]uuid.UUID, len(doc.Judges))
	for _, rec := range doc.Judges {
		judge, err := imp.resolveJudge(ctx, rec, sum)
		if err != nil {
			return err
		}
		judgeID[rec.ID] = judge.ID
	}

	for _, rec := range doc.Panels {
		sid, okSeg := segID[rec.SegmentID]
		jid, okJudge := judgeID[rec.JudgeID]
		if !okSeg || !okJudge {
			continue
		}
		seated, err := imp.judges.PanelExists(ctx, sid, jid)
		if err != nil {
			return fmt.Errorf("check panel seat: %w", err)
		}
		if seated {
			continue
		}
		panel := &domain.JudgePanel{
			SegmentID:  sid,
			JudgeID:    jid,
			RoleCode:   rec.RoleCode,
			PanelGroup: rec.PanelGroup,
			OrderNum:   rec.OrderNum,
		}
		if cid, ok := catID[rec.CategoryID]; ok {
			panel.CategoryID = &cid
		}
		if err := imp.judges.CreatePanel(ctx, panel); err != nil {
			return fmt.Errorf("create panel seat: %w", err)
		}
		sum.PanelSeats++
	}

	return imp.importParticipants(ctx, doc, event, clubReg, catID, catGender, segID, sum)
}

func (imp *Importer) resolveJudge(ctx context.Context, rec calcfs.JudgeRecord, sum *Summary) (*domain.Judge, error) {
	judge, err := imp.judges.FindByName(ctx, rec.FirstName, rec.LastName, rec.FullName)
	switch {
	case err == nil:
		return judge, nil
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("find judge: %w", err)
	}

	judge = &domain.Judge{
		ExternalID:    rec.ExternalID,
		FirstName:     rec.FirstName,
		LastName:      rec.LastName,
		FullName:      rec.FullName,
		ShortName:     rec.ShortName,
		Gender:        rec.Gender,
		Country:       rec.Country,
		City:          rec.City,
		Qualification: rec.Qualification,
	}
	if err := imp.judges.Create(ctx, judge); err != nil {
		return nil, fmt.Errorf("create judge: %w", err)
	}
	sum.Judges++
	return judge, nil
}

func (imp *Importer) warn(ctx context.Context, sum *Summary, msg string, args ...any) {
	sum.Warnings++
	imp.log.WarnContext(ctx, msg, args...)
}

func buildEvent(rec calcfs.EventRecord) *domain.Event {
	return &domain.Event{
		ExternalID:      rec.ExternalID,
		Name:            rec.Name,
		LongName:        rec.LongName,
		Place:           rec.Place,
		BeginDate:       rec.BeginDate,
		EndDate:         rec.EndDate,
		Venue:           rec.Venue,
		Language:        rec.Language,
		EventType:       rec.EventType,
		CompetitionType: rec.CompetitionType,
		Status:          rec.Status,
		CalculationTime: rec.CalculationTime,
	}
}

func buildCategory(eventID uuid.UUID, rec calcfs.CategoryRecord) *domain.Category {
	return &domain.Category{
		EventID:         eventID,
		ExternalID:      rec.ExternalID,
		Name:            rec.Name,
		TVName:          rec.ShortName,
		NormalizedName:  rank.Normalize(rec.Name, rec.Gender),
		Level:           rec.Level,
		Gender:          rec.Gender,
		CategoryType:    rec.Type,
		Status:          rec.Status,
		NumEntries:      atoiPtr(rec.NumEntries),
		NumParticipants: atoiPtr(rec.NumParticipants),
	}
}

func buildSegment(categoryID uuid.UUID, rec calcfs.SegmentRecord) *domain.Segment {
	return &domain.Segment{
		CategoryID:       categoryID,
		ExternalID:       rec.ID,
		Name:             rec.Name,
		TVName:           rec.TVName,
		ShortName:        rec.ShortName,
		SegmentType:      rec.Type,
		Factor:           floatPtr(rec.Factor),
		Status:           rec.Status,
		ComponentFactors: rec.ComponentFactors,
	}
}

func atoiPtr(raw string) *int {
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

func floatPtr(raw string) *float64 {
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}
