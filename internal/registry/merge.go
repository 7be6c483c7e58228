package registry

import (
	"time"
	"unicode/utf8"

	"github.com/figskate/results-backend/internal/domain"
)

// MoreComplete reconciles one free-text field of an existing record with an
// incoming value. The existing value survives unless the incoming one is
// non-empty and strictly longer after normalization: later files sometimes
// carry richer name data than earlier ones, but an empty field must never
// erase a filled one.
func MoreComplete(existing, incoming string) string {
	incoming = domain.CleanText(incoming)
	if incoming == "" {
		return existing
	}
	if existing == "" {
		return incoming
	}
	if utf8.RuneCountInString(incoming) > utf8.RuneCountInString(existing) {
		return incoming
	}
	return existing
}

// FillText keeps the existing value and takes the incoming one only when the
// existing is empty. Used for fields where length says nothing about
// completeness (gender, country codes).
func FillText(existing, incoming string) string {
	if existing != "" {
		return existing
	}
	return domain.CleanText(incoming)
}

// FillDate fills a missing date; it never replaces a known one.
func FillDate(existing, incoming *time.Time) *time.Time {
	if existing != nil {
		return existing
	}
	return incoming
}
