package parser

import "strings"

// Field names a standardized mortality/population column.
type Field string

const (
	FieldYear        Field = "year"
	FieldSex         Field = "sex"
	FieldAge         Field = "age"
	FieldCause       Field = "cause"
	FieldDeaths      Field = "deaths"
	FieldPopulation  Field = "population"
	FieldDescription Field = "description"
	FieldCode        Field = "code"
)

// FieldMapper resolves the era workbooks' drifting column names onto
// standardized fields. Exact synonyms are tried first, substring rules
// second, so "ICD-10 Code" maps to cause while "Description" never does.
type FieldMapper struct{}

// NewFieldMapper creates a field mapper.
func NewFieldMapper() *FieldMapper {
	return &FieldMapper{}
}

var exactSynonyms = map[string]Field{
	"YEAR":         FieldYear,
	"YR":           FieldYear,
	"YEAROFDEATH":  FieldYear,
	"SEX":          FieldSex,
	"GENDER":       FieldSex,
	"AGE":          FieldAge,
	"AGEGROUP":     FieldAge,
	"AGEGROUPS":    FieldAge,
	"CAUSE":        FieldCause,
	"CAUSEOFDEATH": FieldCause,
	"ICDCODE":      FieldCause,
	"ICD10":        FieldCause,
	"ICD10CODE":    FieldCause,
	"ICD1":         FieldCause,
	"ICD":          FieldCause,
	"DEATHS":       FieldDeaths,
	"NDTHS":        FieldDeaths,
	"TOTALDEATHS":  FieldDeaths,
	"COUNT":        FieldDeaths,
	"NO":           FieldDeaths,
	"POP":          FieldPopulation,
	"POPS":         FieldPopulation,
	"POPULATION":   FieldPopulation,
	"CODE":         FieldCode,
	"DESCRIPTION":  FieldDescription,
	"DESCRIPTION2": FieldDescription,
}

// MapColumns maps header cells to standardized fields by column index.
// The first column claiming a field wins; later duplicates are ignored.
func (m *FieldMapper) MapColumns(headers []string) map[int]Field {
	out := map[int]Field{}
	claimed := map[Field]bool{}

	claim := func(idx int, f Field) {
		if !claimed[f] {
			out[idx] = f
			claimed[f] = true
		}
	}

	for idx, raw := range headers {
		norm := NormalizeToken(raw)
		if norm == "" {
			continue
		}
		if f, ok := exactSynonyms[norm]; ok {
			claim(idx, f)
			continue
		}

		lower := strings.ToLower(NormalizeColumnName(raw))
		switch {
		case strings.Contains(lower, "descr"):
			claim(idx, FieldDescription)
		case strings.Contains(lower, "icd") || strings.Contains(lower, "cause"):
			claim(idx, FieldCause)
		case strings.Contains(lower, "ndth") || strings.Contains(lower, "death"):
			claim(idx, FieldDeaths)
		case strings.Contains(lower, "age"):
			claim(idx, FieldAge)
		case strings.Contains(lower, "sex"):
			claim(idx, FieldSex)
		case strings.Contains(lower, "pop"):
			claim(idx, FieldPopulation)
		case strings.Contains(lower, "year"):
			claim(idx, FieldYear)
		}
	}

	return out
}
