package calendar

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/bariskaantoprak-ui/ITSO/internal/model"
)

// Fold lower-cases s with Turkish casing rules: İ folds to i and I folds to
// dotless ı.
func Fold(s string) string {
	return cases.Lower(language.Turkish).String(s)
}

// Filter keeps the events whose title contains query, ignoring case. An empty
// query returns events unchanged.
func Filter(events []model.Event, query string) []model.Event {
	if query == "" {
		return events
	}
	// A Caser is stateful, so each call gets its own.
	lower := cases.Lower(language.Turkish)
	q := lower.String(query)

	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if strings.Contains(lower.String(e.Title), q) {
			out = append(out, e)
		}
	}
	return out
}
