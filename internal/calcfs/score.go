package calcfs

import (
	"strconv"
	"strings"
)

// DecodeScore converts a scaled numeric field into its true value. Point
// totals, component results, base values and deductions are all stored x100
// in the export. Absent or non-numeric input yields nil, never an error and
// never zero: zero is a legitimate score.
func DecodeScore(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	v := float64(n) / 100
	return &v
}

// DecodeJudgeMark converts a per-judge element mark into a GOE value.
//
// The export encodes marks as small integer codes:
//
//	0–8   → code−5 (−5 … +3)
//	9     → unused, no mark
//	10    → −5 (withdrawal special case)
//	11–15 → code−16 (−5 … −1, alternate negative encoding)
//
// Values in −5…−1 are legacy rows decoded by an earlier pipeline version with
// an off-by-one formula; they are corrected to value+1. Anything outside both
// ranges is returned verbatim with known=false so the caller can log it.
// Unexpected marks must stay inspectable, not be dropped.
func DecodeJudgeMark(raw string) (value *float64, known bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	code, err := strconv.Atoi(raw)
	if err != nil {
		return nil, false
	}

	switch {
	case code == 9:
		return nil, true
	case code == 10:
		return ptr(-5), true
	case code >= 0 && code <= 8:
		return ptr(float64(code) - 5), true
	case code >= 11 && code <= 15:
		return ptr(float64(code) - 16), true
	case code >= -5 && code <= -1:
		return ptr(float64(code) + 1), true
	}
	return ptr(float64(code)), false
}

func ptr(v float64) *float64 { return &v }
