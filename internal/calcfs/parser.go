// Package calcfs parses ISUCalcFS competition export files and decodes their
// scaled numeric encodings. Parsing is a pure single pass: file in, flat
// typed records out, no database access and no cross-record resolution.
package calcfs

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/figskate/results-backend/internal/domain"
)

// maxElements and maxJudges bound the numbered attribute scans.
// The export format allocates 20 element slots and 15 judge seats.
const (
	maxElements   = 20
	maxJudges     = 15
	maxComponents = 5
	maxDeductions = 17
	maxSegSlots   = 6
)

// componentTypes maps a component slot to its axis code.
var componentTypes = map[int]string{
	1: "CO", // composition
	2: "TR", // transitions
	3: "PR", // presentation
	4: "IN", // interpretation
	5: "SK", // skating skills
}

// ParseFile opens and parses one export file.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open export file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse walks the export's nested structure once and collects one flat record
// per occurrence of each kind. Records missing a hard identifier are counted
// in Document.Skipped and dropped; a malformed record never fails the file.
//
// Person records are taken only from the Participants_List section. Other
// person listings in the file are display-only and ignored.
func Parse(r io.Reader) (*Document, error) {
	doc := &Document{}
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader

	var (
		path          []string // open element names, root first
		curSegmentID  string
		curCategoryID string
		panelSeat     int
		seenClubs     = map[string]bool{}
		seenJudges    = map[string]bool{}
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse export xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			path = append(path, t.Name.Local)
			a := attrMap(t)

			switch t.Name.Local {
			case "Event":
				doc.Events = append(doc.Events, parseEvent(a))
			case "Category":
				if a["CAT_ID"] == "" {
					doc.Skipped++
					continue
				}
				doc.Categories = append(doc.Categories, parseCategory(a))
			case "Segment":
				if a["SCP_ID"] == "" || a["CAT_ID"] == "" {
					doc.Skipped++
					continue
				}
				curSegmentID = a["SCP_ID"]
				curCategoryID = a["CAT_ID"]
				panelSeat = 0
				doc.Segments = append(doc.Segments, parseSegment(a))
			case "Person":
				if !slices.Contains(path, "Judges_List") || curSegmentID == "" {
					continue
				}
				if a["PCT_ID"] == "" {
					doc.Skipped++
					continue
				}
				panelSeat++
				if !seenJudges[a["PCT_ID"]] {
					seenJudges[a["PCT_ID"]] = true
					doc.Judges = append(doc.Judges, parseJudge(a))
				}
				doc.Panels = append(doc.Panels, PanelRecord{
					SegmentID:  curSegmentID,
					CategoryID: curCategoryID,
					JudgeID:    a["PCT_ID"],
					RoleCode:   domain.CleanText(a["PCT_AFUNCT"]),
					PanelGroup: domain.CleanText(a["PCT_COMPOF"]),
					OrderNum:   panelSeat,
				})
			case "Person_Couple_Team":
				if !slices.Contains(path, "Participants_List") {
					continue
				}
				if a["PCT_ID"] == "" {
					doc.Skipped++
					continue
				}
				doc.Persons = append(doc.Persons, parsePerson(a))
			case "Club":
				id := a["PCT_ID"]
				name := domain.CleanText(firstNonEmpty(a["PCT_PLNAME"], a["PCT_CNAME"]))
				if id == "" || seenClubs[id] {
					continue
				}
				if name == "" {
					doc.Skipped++
					continue
				}
				seenClubs[id] = true
				doc.Clubs = append(doc.Clubs, ClubRecord{
					ID:         id,
					ExternalID: domain.CleanText(a["PCT_EXTDT"]),
					Name:       name,
					ShortName:  domain.CleanText(a["PCT_SNAME"]),
					Country:    domain.CleanText(a["PCT_NAT"]),
					City:       domain.CleanText(a["PCT_CITY"]),
				})
			case "Participant":
				if a["PAR_ID"] == "" || a["PCT_ID"] == "" || a["CAT_ID"] == "" {
					doc.Skipped++
					continue
				}
				doc.Participants = append(doc.Participants, parseParticipant(a))
			case "Performance":
				if a["PRF_ID"] == "" {
					doc.Skipped++
					continue
				}
				doc.Performances = append(doc.Performances, parsePerformance(a))
			}

		case xml.EndElement:
			if len(path) > 0 {
				path = path[:len(path)-1]
			}
			if t.Name.Local == "Segment" {
				curSegmentID = ""
				curCategoryID = ""
			}
		}
	}

	// Component factors live on segments; attach them to each performance's
	// components so consumers don't need the segment record.
	factors := make(map[string]map[int]float64, len(doc.Segments))
	for _, s := range doc.Segments {
		factors[s.ID] = s.ComponentFactors
	}
	for pi := range doc.Performances {
		perf := &doc.Performances[pi]
		segFactors := factors[perf.SegmentID]
		for ci := range perf.Components {
			if f, ok := segFactors[perf.Components[ci].Slot]; ok {
				v := f
				perf.Components[ci].Factor = &v
			}
		}
	}

	return doc, nil
}

func attrMap(se xml.StartElement) map[string]string {
	m := make(map[string]string, len(se.Attr))
	for _, a := range se.Attr {
		m[a.Name.Local] = a.Value
	}
	return m
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func parseEvent(a map[string]string) EventRecord {
	begin := ParseDate(a["EVT_BEGDAT"])
	end := ParseDate(a["EVT_ENDDAT"])
	if begin == nil && end != nil {
		begin = end
	}
	return EventRecord{
		ID:              a["EVT_ID"],
		ExternalID:      domain.CleanText(a["EVT_EXTDT"]),
		Name:            domain.CleanText(a["EVT_NAME"]),
		LongName:        domain.CleanText(a["EVT_LNAME"]),
		Place:           domain.CleanText(a["EVT_PLACE"]),
		BeginDate:       begin,
		EndDate:         end,
		Venue:           domain.CleanText(a["EVT_R1NAM"]),
		Language:        domain.CleanText(a["EVT_PLANG"]),
		EventType:       domain.CleanText(a["EVT_TYPE"]),
		CompetitionType: domain.CleanText(a["EVT_CMPTYP"]),
		Status:          domain.CleanText(a["EVT_STAT"]),
		CalculationTime: ParseDateTime(a["EVT_CALCTM"]),
	}
}

func parseCategory(a map[string]string) CategoryRecord {
	return CategoryRecord{
		ID:              a["CAT_ID"],
		EventID:         a["EVT_ID"],
		ExternalID:      domain.CleanText(a["CAT_EXTDT"]),
		Name:            domain.FixLatinLookalikes(domain.CleanText(a["CAT_NAME"])),
		ShortName:       domain.CleanText(a["CAT_TVNAME"]),
		Gender:          domain.CleanText(a["CAT_GENDER"]),
		Type:            domain.CleanText(a["CAT_TYPE"]),
		Status:          domain.CleanText(a["CAT_STAT"]),
		Level:           domain.CleanText(a["CAT_LEVEL"]),
		NumEntries:      a["CAT_NENT"],
		NumParticipants: a["CAT_NPAR"],
	}
}

func parseSegment(a map[string]string) SegmentRecord {
	factors := map[int]float64{}
	for slot := 1; slot <= maxComponents; slot++ {
		raw := a[fmt.Sprintf("SCP_CRFR%02d", slot)]
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		factors[slot] = float64(n) / 100
	}
	return SegmentRecord{
		ID:               a["SCP_ID"],
		CategoryID:       a["CAT_ID"],
		Name:             domain.CleanText(a["SCP_NAME"]),
		TVName:           domain.CleanText(a["SCP_TVNAME"]),
		ShortName:        domain.CleanText(a["SCP_SNAM"]),
		Type:             domain.CleanText(a["SCP_TYPE"]),
		Factor:           a["SCP_FACTOR"],
		Status:           domain.CleanText(a["SCP_STAT"]),
		ComponentFactors: factors,
	}
}

func parseJudge(a map[string]string) JudgeRecord {
	return JudgeRecord{
		ID:            a["PCT_ID"],
		ExternalID:    domain.CleanText(a["PCT_EXTDT"]),
		FirstName:     domain.CleanText(a["PCT_GNAME"]),
		LastName:      domain.CleanText(firstNonEmpty(a["PCT_FNAMEC"], a["PCT_FNAME"])),
		FullName:      domain.CleanText(a["PCT_CNAME"]),
		ShortName:     domain.CleanText(a["PCT_SNAME"]),
		Gender:        domain.CleanText(a["PCT_GENDER"]),
		Country:       domain.CleanText(a["PCT_NAT"]),
		City:          domain.CleanText(a["PCT_CITY"]),
		Qualification: domain.CleanText(a["PCT_COANAM"]),
	}
}

func parsePerson(a map[string]string) PersonRecord {
	p := PersonRecord{
		ID:           a["PCT_ID"],
		ExternalID:   domain.CleanText(a["PCT_EXTDT"]),
		Type:         domain.CleanText(a["PCT_TYPE"]),
		Nationality:  domain.CleanText(a["PCT_NAT"]),
		ClubID:       a["PCT_CLBID"],
		BirthDate:    ParseDate(a["PCT_BDAY"]),
		Gender:       domain.CleanText(a["PCT_GENDER"]),
		FullName:     domain.CleanText(a["PCT_CNAME"]),
		CoachName:    domain.CleanText(a["PCT_COANAM"]),
		PaymentClass: domain.CleanText(a["PCT_PPNAME"]),
	}

	switch p.Type {
	case PersonTypeCouple, PersonTypeTeam:
		// Pairs and teams carry a composite name and no patronymic.
		p.FirstName = domain.CleanText(a["PCT_CNAME"])
		p.LastName = domain.CleanText(a["PCT_PSNAME"])
		p.ProtocolName = domain.CleanText(a["PCT_PLNAME"])
		p.ShortName = domain.CleanText(a["PCT_CNAME"])
		p.Gender = "P"
	default:
		p.FirstName = domain.CleanText(a["PCT_GNAME"])
		p.LastName = domain.CleanText(firstNonEmpty(a["PCT_FNAMEC"], a["PCT_FNAME"]))
		p.Patronymic = domain.CleanText(firstNonEmpty(a["PCT_TLNAMEC"], a["PCT_TLNAME"]))
		p.ProtocolName = domain.CleanText(a["PCT_PLNAME"])
		p.ShortName = domain.CleanText(a["PCT_PSNAME"])
	}
	return p
}

func parseParticipant(a map[string]string) ParticipantRecord {
	rec := ParticipantRecord{
		ID:          a["PAR_ID"],
		CategoryID:  a["CAT_ID"],
		PersonID:    a["PCT_ID"],
		ClubID:      a["PAR_CLBID"],
		BibNumber:   a["PAR_ENTNUM"],
		Rank:        a["PAR_TPLACE"],
		TotalPoints: a["PAR_TPOINT"],
		Status:      domain.CleanText(a["PAR_STAT"]),
	}
	for i := 0; i < maxSegSlots; i++ {
		rec.SegmentStatuses[i] = domain.CleanText(a[fmt.Sprintf("PAR_STAT%d", i+1)])
	}
	return rec
}

func parsePerformance(a map[string]string) PerformanceRecord {
	perf := PerformanceRecord{
		ID:            a["PRF_ID"],
		SegmentID:     a["SCP_ID"],
		ParticipantID: a["PAR_ID"],
		Rank:          a["PRF_PLACE"],
		Points:        a["PRF_POINTS"],
		Status:        domain.CleanText(a["PRF_STAT"]),
		Qualification: domain.CleanText(a["PRF_QUALIF"]),
		StartNumber:   a["PRF_STNUM"],
		StartGroup:    a["PRF_STGNUM"],
		Bonus:         a["PRF_BONUS"],
		TESSum:        a["PRF_M1TOT"],
		TESResult:     a["PRF_M1RES"],
		PCSSum:        a["PRF_M2TOT"],
		PCSResult:     a["PRF_M2RES"],
		Deductions:    deductionTotal(a),
	}

	for i := 1; i <= maxElements; i++ {
		idx := fmt.Sprintf("%02d", i)
		executed := firstNonEmpty(a["PRF_XNAE"+idx], a["PRF_INAE"+idx])
		if domain.CleanText(executed) == "" {
			continue
		}
		elem := ElementRecord{
			OrderNum:     i,
			PlannedCode:  domain.CleanText(a["PRF_PNAE"+idx]),
			PlannedNorm:  domain.CleanText(a["PRF_PNWE"+idx]),
			ExecutedCode: domain.CleanText(executed),
			InfoCode:     domain.CleanText(a["PRF_INAE"+idx]),
			Confirmed:    domain.CleanText(a["PRF_XCFE"+idx]),
			TimeCode:     domain.CleanText(a["PRF_XTCE"+idx]),
			BaseValue:    a["PRF_XBVE"+idx],
			Penalty:      a["PRF_E"+idx+"PNL"],
			Result:       a["PRF_E"+idx+"RES"],
			JudgeCodes:   map[string]string{},
		}
		elem.GOE = goeRaw(elem.Penalty, elem.Result, elem.BaseValue)
		for j := 1; j <= maxJudges; j++ {
			seat := fmt.Sprintf("J%02d", j)
			if code := a["PRF_E"+idx+seat]; code != "" {
				elem.JudgeCodes[seat] = code
			}
		}
		perf.Elements = append(perf.Elements, elem)
	}

	for c := 1; c <= maxComponents; c++ {
		cidx := fmt.Sprintf("%02d", c)
		result := a["PRF_C"+cidx+"RES"]
		if result == "" {
			continue
		}
		comp := ComponentRecord{
			Slot:       c,
			Type:       componentTypes[c],
			Penalty:    a["PRF_C"+cidx+"PNL"],
			Result:     result,
			JudgeMarks: map[string]string{},
		}
		for j := 1; j <= maxJudges; j++ {
			seat := fmt.Sprintf("J%02d", j)
			if mark := a["PRF_C"+cidx+seat]; mark != "" {
				comp.JudgeMarks[seat] = mark
			}
		}
		perf.Components = append(perf.Components, comp)
	}

	return perf
}

// goeRaw returns the element's GOE in the file's scaled encoding: the penalty
// slot when present, otherwise result−base computed from the scaled integers.
func goeRaw(penalty, result, base string) string {
	if penalty != "" {
		return penalty
	}
	if result == "" || base == "" {
		return ""
	}
	r, err1 := strconv.Atoi(result)
	b, err2 := strconv.Atoi(base)
	if err1 != nil || err2 != nil {
		return ""
	}
	return strconv.Itoa(r - b)
}

// deductionTotal returns PRF_DEDTOT, falling back to the sum of the per-slot
// deduction fields when the total is absent. An all-zero fallback yields "".
func deductionTotal(a map[string]string) string {
	if v := a["PRF_DEDTOT"]; v != "" {
		return v
	}
	total := 0
	found := false
	for d := 1; d <= maxDeductions; d++ {
		raw := a[fmt.Sprintf("PRF_DED%02d", d)]
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		total += n
		found = true
	}
	if !found || total == 0 {
		return ""
	}
	return strconv.Itoa(total)
}

// charsetReader handles the windows-1251 declarations common in exports from
// Russian federation installations.
func charsetReader(cs string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(cs) {
	case "", "utf-8", "utf8":
		return input, nil
	case "windows-1251", "cp1251":
		return charmap.Windows1251.NewDecoder().Reader(input), nil
	default:
		return nil, fmt.Errorf("unsupported export charset %q", cs)
	}
}
