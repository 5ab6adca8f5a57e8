package parser

import "strings"

// MortalityHeaderTokens are the cells that identify a mortality data
// table's header row in the 21st-century workbook.
var MortalityHeaderTokens = []string{"ICD-10", "YR", "SEX", "AGE", "NDTHS"}

// yearHeaderKeywords identify header rows in the historical era workbooks,
// whose layouts drifted across a century of publications.
var yearHeaderKeywords = []string{"year", "yr", "year of death"}

// FindHeaderRow scans the first maxRows rows for one containing every
// token (compared through NormalizeToken). Returns -1 when absent.
func FindHeaderRow(rows [][]string, tokens []string, maxRows int) int {
	norm := make([]string, len(tokens))
	for i, t := range tokens {
		norm[i] = NormalizeToken(t)
	}

	limit := len(rows)
	if maxRows > 0 && maxRows < limit {
		limit = maxRows
	}
	for idx := 0; idx < limit; idx++ {
		cells := map[string]bool{}
		for _, cell := range rows[idx] {
			cells[NormalizeToken(cell)] = true
		}
		all := true
		for _, t := range norm {
			if !cells[t] {
				all = false
				break
			}
		}
		if all {
			return idx
		}
	}
	return -1
}

// FindYearHeaderRow scans the first maxRows rows for any cell containing
// a year keyword. Used for the historical workbooks whose header tokens
// vary by era. Returns -1 when absent.
func FindYearHeaderRow(rows [][]string, maxRows int) int {
	limit := len(rows)
	if maxRows > 0 && maxRows < limit {
		limit = maxRows
	}
	for idx := 0; idx < limit; idx++ {
		for _, cell := range rows[idx] {
			lower := strings.ToLower(strings.TrimSpace(cell))
			if lower == "" {
				continue
			}
			for _, kw := range yearHeaderKeywords {
				if strings.Contains(lower, kw) {
					return idx
				}
			}
		}
	}
	return -1
}

// FindDescriptionHeaderRow scans the first maxRows rows for a header
// carrying both a code column and a description column. Returns -1 when
// absent.
func FindDescriptionHeaderRow(rows [][]string, maxRows int) int {
	limit := len(rows)
	if maxRows > 0 && maxRows < limit {
		limit = maxRows
	}
	for idx := 0; idx < limit; idx++ {
		hasCode, hasDesc := false, false
		for _, cell := range rows[idx] {
			lower := strings.ToLower(strings.TrimSpace(cell))
			if strings.Contains(lower, "descr") {
				hasDesc = true
			}
			if strings.Contains(lower, "code") || strings.Contains(lower, "icd") || strings.Contains(lower, "cause") {
				hasCode = true
			}
		}
		if hasCode && hasDesc {
			return idx
		}
	}
	return -1
}

// FirstColumnLooksLikeYears reports whether enough cells of the first
// column parse as plausible years, the last-resort header heuristic for
// sheets published without any header at all.
func FirstColumnLooksLikeYears(rows [][]string, minHits int) bool {
	hits := 0
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		if ParseYear(row[0]) != 0 {
			hits++
			if hits >= minHits {
				return true
			}
		}
	}
	return false
}
