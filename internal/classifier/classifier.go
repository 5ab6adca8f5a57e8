package classifier

import (
	"strings"

	"ukstats/internal/model"
)

// Classifier assigns harmonized categories to (code, era, description)
// triples. Overrides are keyed by exact (code, era) and always win over
// the keyword score.
type Classifier struct {
	categories []Category
	overrides  map[overrideKey]Override
}

// New creates a classifier over the fixed category table.
func New() *Classifier {
	return &Classifier{
		categories: Categories,
		overrides:  map[overrideKey]Override{},
	}
}

// NewWithOverrides creates a classifier with a manual override table.
// Duplicate rows for the same (code, era) have already been resolved
// last-wins by LoadOverrides.
func NewWithOverrides(overrides []Override) *Classifier {
	c := New()
	for _, o := range overrides {
		// last-wins for duplicate (code, era) rows
		c.overrides[overrideKey{o.Code, o.Era}] = o
	}
	return c
}

// Classify derives the harmonized category for one code record.
//
// Keyword scoring: each category's keywords are tested as substrings of
// the lowercased description; a keyword counts at most once. The highest
// count wins, ties go to the category declared first. No hits, or a
// missing description, falls back to "other" with low confidence.
// An override for the exact (code, era) replaces the result outright.
func (c *Classifier) Classify(code string, era model.Era, description string) model.Assignment {
	a := model.Assignment{
		Code:        strings.TrimSpace(code),
		Era:         era,
		Description: description,
	}

	if o, ok := c.overrides[overrideKey{a.Code, era}]; ok {
		a.CategoryID = o.CategoryID
		a.CategoryName = o.CategoryName
		a.Confidence = model.ConfidenceOverride
		return a
	}

	bestIdx := -1
	bestHits := 0
	desc := strings.ToLower(strings.TrimSpace(description))
	if desc != "" {
		for i, cat := range c.categories {
			if cat.ID == FallbackCategoryID {
				continue
			}
			hits := 0
			for _, kw := range cat.Keywords {
				if strings.Contains(desc, kw) {
					hits++
				}
			}
			// strict > keeps the first-declared category on ties
			if hits > bestHits {
				bestHits = hits
				bestIdx = i
			}
		}
	}

	if bestIdx < 0 {
		fallback, _ := CategoryByID(FallbackCategoryID)
		a.CategoryID = fallback.ID
		a.CategoryName = fallback.Name
		a.Confidence = model.ConfidenceLow
		return a
	}

	cat := c.categories[bestIdx]
	a.CategoryID = cat.ID
	a.CategoryName = cat.Name
	if bestHits >= 2 {
		a.Confidence = model.ConfidenceHigh
	} else {
		a.Confidence = model.ConfidenceMedium
	}
	return a
}

// ClassifyAll classifies every code record, preserving input order.
func (c *Classifier) ClassifyAll(records []model.CodeRecord) []model.Assignment {
	out := make([]model.Assignment, 0, len(records))
	for _, r := range records {
		out = append(out, c.Classify(r.Code, r.Era, r.Description))
	}
	return out
}

type overrideKey struct {
	code string
	era  model.Era
}
