package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	nonAlnumRe   = regexp.MustCompile(`[^A-Z0-9]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	yearLikeRe   = regexp.MustCompile(`^\d{4}$`)
)

// NormalizeToken uppercases a header cell and strips everything but
// letters and digits, so "ICD-10", "icd 10" and "Icd_10" all compare equal.
func NormalizeToken(s string) string {
	return nonAlnumRe.ReplaceAllString(strings.ToUpper(strings.TrimSpace(s)), "")
}

// NormalizeColumnName trims and collapses whitespace in a header cell.
func NormalizeColumnName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "\n", " ")
	name = strings.ReplaceAll(name, "\r", " ")
	name = strings.ReplaceAll(name, "\t", " ")
	return whitespaceRe.ReplaceAllString(name, " ")
}

// ContainsAny reports whether text contains any of the keywords.
func ContainsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// ParseFloat converts tolerantly, stripping thousands separators and
// percent signs. Returns 0 when the cell is not numeric.
func ParseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "%", "")
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

// ParseInt converts tolerantly, stripping thousands separators.
func ParseInt(s string) int {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	i, _ := strconv.Atoi(s)
	return i
}

// ParseYear extracts a plausible data year (1800-2100) from a cell;
// accepts "1953" and "1953.0". Returns 0 when implausible.
func ParseYear(s string) int {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	if !yearLikeRe.MatchString(s) {
		return 0
	}
	y, _ := strconv.Atoi(s)
	if y < 1800 || y > 2100 {
		return 0
	}
	return y
}

// NormalizeSex maps the many source spellings onto Male/Female/All.
// Unrecognized values are returned trimmed as-is so nothing is lost.
func NormalizeSex(s string) string {
	switch strings.ToLower(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "."))) {
	case "male", "males", "m", "1", "1.0":
		return "Male"
	case "female", "females", "f", "2", "2.0":
		return "Female"
	case "", "all", "both", "persons", "total":
		return "All"
	default:
		return strings.TrimSpace(s)
	}
}

// NormalizeAge trims an age band label; empty cells become "All ages".
func NormalizeAge(s string) string {
	s = NormalizeColumnName(s)
	if s == "" {
		return "All ages"
	}
	return s
}
