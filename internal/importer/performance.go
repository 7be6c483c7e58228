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

// importPerformance persists one skate. Elements and component scores are
// written only for performances seen for the first time: a repeated sighting
// within the file fills the row's empty summary fields and stops there.
func (imp *Importer) importPerformance(
	ctx context.Context,
	rec calcfs.PerformanceRecord,
	participant *domain.Participant,
	segID map[string]uuid.UUID,
	sum *Summary,
) error {
	segmentID, ok := segID[rec.SegmentID]
	if !ok {
		imp.warn(ctx, sum, "performance references unknown segment",
			slog.String("performance", rec.ID), slog.String("segment", rec.SegmentID))
		return nil
	}

	existing, err := imp.results.GetPerformance(ctx, participant.ID, segmentID)
	switch {
	case err == nil:
		if existing.Place == nil {
			existing.Place = atoiPtr(rec.Rank)
		}
		if existing.Points == nil {
			existing.Points = calcfs.DecodeScore(rec.Points)
		}
		existing.Status = registry.FillText(existing.Status, rec.Status)
		existing.Qualification = registry.FillText(existing.Qualification, rec.Qualification)
		if err := imp.results.UpdatePerformance(ctx, existing); err != nil {
			return fmt.Errorf("update performance: %w", err)
		}
		return nil
	case !errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("lookup performance: %w", err)
	}

	perf := &domain.Performance{
		ParticipantID: participant.ID,
		SegmentID:     segmentID,
		StartNumber:   atoiPtr(rec.StartNumber),
		StartGroup:    atoiPtr(rec.StartGroup),
		Status:        rec.Status,
		Qualification: rec.Qualification,
		Place:         atoiPtr(rec.Rank),
		Points:        calcfs.DecodeScore(rec.Points),
		TESTotal:      calcfs.DecodeScore(firstNonEmpty(rec.TESSum, rec.TESResult)),
		PCSTotal:      calcfs.DecodeScore(firstNonEmpty(rec.PCSSum, rec.PCSResult)),
		Deductions:    calcfs.DecodeScore(rec.Deductions),
		Bonus:         calcfs.DecodeScore(rec.Bonus),
	}
	if err := imp.results.CreatePerformance(ctx, perf); err != nil {
		return fmt.Errorf("create performance: %w", err)
	}
	sum.Performances++

	if len(rec.Elements) > 0 {
		elements := make([]domain.Element, 0, len(rec.Elements))
		for _, el := range rec.Elements {
			elements = append(elements, domain.Element{
				PerformanceID: perf.ID,
				OrderNum:      el.OrderNum,
				PlannedCode:   el.PlannedCode,
				ExecutedCode:  el.ExecutedCode,
				InfoCode:      el.InfoCode,
				BaseValue:     calcfs.DecodeScore(el.BaseValue),
				GOEResult:     calcfs.DecodeScore(el.GOE),
				Penalty:       calcfs.DecodeScore(el.Penalty),
				Result:        calcfs.DecodeScore(el.Result),
				JudgeMarks:    imp.decodeElementMarks(ctx, rec.ID, el, sum),
			})
		}
		if err := imp.results.CreateElements(ctx, elements); err != nil {
			return fmt.Errorf("create elements: %w", err)
		}
		sum.Elements += len(elements)
	}

	if len(rec.Components) > 0 {
		components := make([]domain.ComponentScore, 0, len(rec.Components))
		for _, comp := range rec.Components {
			marks := make(map[string]float64, len(comp.JudgeMarks))
			for seat, raw := range comp.JudgeMarks {
				if v := calcfs.DecodeScore(raw); v != nil {
					marks[seat] = *v
				}
			}
			components = append(components, domain.ComponentScore{
				PerformanceID: perf.ID,
				ComponentType: comp.Type,
				Factor:        comp.Factor,
				Penalty:       calcfs.DecodeScore(comp.Penalty),
				Result:        calcfs.DecodeScore(comp.Result),
				JudgeMarks:    marks,
			})
		}
		if err := imp.results.CreateComponents(ctx, components); err != nil {
			return fmt.Errorf("create component scores: %w", err)
		}
		sum.Components += len(components)
	}

	return nil
}

// decodeElementMarks decodes every judge's GOE code for one element. Codes
// outside the known ranges are kept verbatim and logged so audits can see
// exactly what the file contained.
func (imp *Importer) decodeElementMarks(ctx context.Context, perfID string, el calcfs.ElementRecord, sum *Summary) map[string]float64 {
	if len(el.JudgeCodes) == 0 {
		return nil
	}
	marks := make(map[string]float64, len(el.JudgeCodes))
	for seat, code := range el.JudgeCodes {
		v, known := calcfs.DecodeJudgeMark(code)
		if !known {
			imp.warn(ctx, sum, "unexpected judge mark code",
				slog.String("performance", perfID),
				slog.Int("element", el.OrderNum),
				slog.String("seat", seat),
				slog.String("code", code),
			)
		}
		if v != nil {
			marks[seat] = *v
		}
	}
	return marks
}
