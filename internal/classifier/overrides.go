package classifier

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"ukstats/internal/model"
)

// Override is one manual classification row keyed by (code, era).
// The confidence label from the file is informational only; applied
// overrides are always tagged confidence "override".
type Override struct {
	Code         string
	Era          model.Era
	CategoryID   string
	CategoryName string
	Label        string
}

// LoadOverrides reads a manual override CSV with the columns
// code, era, category, category_name, confidence_label (header required,
// order-insensitive). When the file lists the same (code, era) more than
// once, the last row wins. A missing file is not an error: overrides are
// optional.
func LoadOverrides(path string) ([]Override, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open overrides: %w", err)
	}
	defer f.Close()

	rows, err := ReadOverrides(f)
	if err != nil {
		return nil, fmt.Errorf("read overrides %s: %w", path, err)
	}
	return rows, nil
}

// ReadOverrides parses override rows from r, resolving duplicates
// last-wins while preserving first-seen order of the surviving keys.
func ReadOverrides(r io.Reader) ([]Override, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := map[string]int{}
	for i, col := range header {
		idx[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, required := range []string{"code", "era", "category"} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	field := func(rec []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var order []overrideKey
	byKey := map[overrideKey]Override{}
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		o := Override{
			Code:         field(rec, "code"),
			Era:          model.Era(field(rec, "era")),
			CategoryID:   field(rec, "category"),
			CategoryName: field(rec, "category_name"),
			Label:        field(rec, "confidence_label"),
		}
		if o.Code == "" || o.Era == "" || o.CategoryID == "" {
			// malformed row: skip, never abort
			continue
		}
		if o.CategoryName == "" {
			if cat, ok := CategoryByID(o.CategoryID); ok {
				o.CategoryName = cat.Name
			}
		}

		key := overrideKey{o.Code, o.Era}
		if _, seen := byKey[key]; !seen {
			order = append(order, key)
		}
		byKey[key] = o // last row wins
	}

	out := make([]Override, 0, len(order))
	for _, key := range order {
		out = append(out, byKey[key])
	}
	return out, nil
}
