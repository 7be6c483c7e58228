package domain

import (
	"html"
	"strings"
)

// CleanText prepares free-text fields from an export file for storage:
//   - unescapes HTML entities
//   - replaces tabs with spaces
//   - compresses runs of whitespace into a single space
//   - trims leading/trailing whitespace
//
// Case is preserved; CleanText is for storage, NormalizeText for comparison.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = html.UnescapeString(text)
	return strings.Join(strings.Fields(text), " ")
}

// NormalizeText folds text for comparison and lookup keys:
// CleanText plus lowercasing.
func NormalizeText(text string) string {
	return strings.ToLower(CleanText(text))
}

// latinToCyrillic maps Latin letters that render identically to Cyrillic ones.
// Export files frequently mix the two ("3 Юнoшеский" with a Latin "o"), which
// breaks substring matching against Cyrillic keyword tables.
var latinToCyrillic = map[rune]rune{
	'o': 'о', 'e': 'е', 'c': 'с', 'p': 'р', 'a': 'а', 'y': 'у', 'x': 'х',
	'O': 'О', 'E': 'Е', 'C': 'С', 'P': 'Р', 'A': 'А', 'Y': 'У', 'X': 'Х',
}

// FixLatinLookalikes replaces Latin look-alike letters with their Cyrillic
// counterparts. Applied before keyword matching and name comparison.
func FixLatinLookalikes(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if c, ok := latinToCyrillic[r]; ok {
			b.WriteRune(c)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CollapseRepeatedWords removes consecutive duplicate words
// ("Софья Софья" → "Софья"). Some scoring-application exports double
// name parts when operators paste the same value into two fields.
func CollapseRepeatedWords(text string) string {
	words := strings.Fields(text)
	if len(words) < 2 {
		return text
	}
	out := words[:1]
	for _, w := range words[1:] {
		if w != out[len(out)-1] {
			out = append(out, w)
		}
	}
	return strings.Join(out, " ")
}
