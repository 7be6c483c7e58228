// Package registry resolves parsed club, athlete and coach records against
// the store, merging attributes non-destructively instead of overwriting
// earlier data with emptier later data.
package registry

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/figskate/results-backend/internal/domain"
)

// abbreviations expands the organization-type shorthands common in Russian
// school names, so "СШОР Звезда" and the spelled-out form compare as equal.
var abbreviations = map[string]string{
	"кфк":     "клуб фигурного катания",
	"сшор":    "специализированная школа олимпийского резерва",
	"дюсш":    "детско-юношеская спортивная школа",
	"сдюсшор": "специализированная детско-юношеская школа олимпийского резерва",
	"цска":    "центральный спортивный клуб армии",
	"афу":     "автономное физкультурно-спортивное учреждение",
	"мо":      "министерство обороны",
	"рф":      "российская федерация",
	"гбу":     "государственное бюджетное учреждение",
	"до":      "дополнительного образования",
}

// stopWords are legal-form and filler words that carry no identity.
var stopWords = map[string]struct{}{
	"ооо": {}, "оао": {}, "зао": {}, "ип": {}, "ао": {},
	"и": {}, "в": {}, "по": {}, "им": {}, "имени": {}, "для": {}, "на": {}, "с": {},
}

const tokenPunct = ".,;:!?()[]{}"

// NormalizeClubName folds a club name for comparison: lower case, quotes and
// punctuation stripped, whitespace collapsed, abbreviations expanded.
func NormalizeClubName(name string) string {
	s := strings.ToLower(name)
	s = strings.NewReplacer(
		`"`, "", "'", "", "«", "", "»", "", "„", "", "“", "", "”", "",
		".", " ", ",", " ",
	).Replace(s)
	words := strings.Fields(s)
	expanded := make([]string, 0, len(words))
	for _, w := range words {
		if full, ok := abbreviations[w]; ok {
			expanded = append(expanded, strings.Fields(full)...)
			continue
		}
		expanded = append(expanded, w)
	}
	return strings.Join(expanded, " ")
}

// keyTokens extracts the identity-bearing words of a normalized name:
// stop words and one-or-two letter words are dropped.
func keyTokens(normalized string) map[string]struct{} {
	tokens := map[string]struct{}{}
	for _, w := range strings.Fields(normalized) {
		w = strings.Trim(w, tokenPunct)
		if utf8.RuneCountInString(w) <= 2 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		tokens[w] = struct{}{}
	}
	return tokens
}

// Similarity scores two club names in [0, 1]. It is a pure heuristic; the
// merge decision (thresholding) is the caller's, so the threshold can be
// tuned without touching the scoring.
//
// Tiers, checked in order:
//
//	exact match after normalization          1.00
//	prefix containment with a word left over 0.70 (likely a distinct branch)
//	containment covering >=90% of the longer 0.95
//	key-word subset with 2+ shared words     0.93
//	Jaccard >= 0.7 / >= 0.5 over key words   0.95 / 0.88
//	weaker token overlap                     edit-distance ratio, floored
//	same first two words                     0.92
//	otherwise                                edit-distance ratio
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	na := NormalizeClubName(domain.FixLatinLookalikes(a))
	nb := NormalizeClubName(domain.FixLatinLookalikes(b))
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1
	}

	shorter, longer := na, nb
	if utf8.RuneCountInString(shorter) > utf8.RuneCountInString(longer) {
		shorter, longer = longer, shorter
	}
	if strings.Contains(longer, shorter) {
		// "Академия спорта" inside "Академия спорта Стрижи" is a whole
		// extra word: treat as a different school, not a duplicate.
		if strings.HasPrefix(longer, shorter) {
			if rest := strings.TrimSpace(longer[len(shorter):]); rest != "" {
				return 0.70
			}
		}
		ls, ll := utf8.RuneCountInString(shorter), utf8.RuneCountInString(longer)
		if ll > 0 && float64(ls)/float64(ll) >= 0.90 && ls >= 10 {
			return 0.95
		}
	}

	ka, kb := keyTokens(na), keyTokens(nb)
	if len(ka) > 0 && len(kb) > 0 {
		common := 0
		for w := range ka {
			if _, ok := kb[w]; ok {
				common++
			}
		}
		if common > 0 {
			union := len(ka) + len(kb) - common
			subset := common == len(ka) || common == len(kb)
			if subset && common >= 2 {
				return 0.93
			}
			jaccard := float64(common) / float64(union)
			switch {
			case jaccard >= 0.7:
				return 0.95
			case jaccard >= 0.5:
				return 0.88
			case jaccard >= 0.3 || common >= 2:
				seq := editRatio(na, nb)
				if common >= 2 {
					return math.Min(1, math.Max(0.82, seq*1.1))
				}
				return math.Max(0.80, seq)
			}
		}
	}

	wa, wb := strings.Fields(na), strings.Fields(nb)
	if len(wa) >= 2 && len(wb) >= 2 && wa[0] == wb[0] && wa[1] == wb[1] {
		return 0.92
	}

	return editRatio(na, nb)
}

// editRatio converts Levenshtein distance to a [0, 1] similarity.
func editRatio(a, b string) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 1
	}
	d := levenshtein.ComputeDistance(a, b)
	return 1 - float64(d)/float64(longest)
}
