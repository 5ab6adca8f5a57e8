package classifier

import (
	"path/filepath"
	"strings"
	"testing"

	"ukstats/internal/model"
)

func TestReadOverrides(t *testing.T) {
	t.Parallel()

	input := `code,era,category,category_name,confidence_label
10.0,ICD-1 (1901-1910),infectious_diseases,Infectious and Parasitic Diseases,reviewed
27.2,ICD-4 (1931-1939),circulatory,,checked
`
	overrides, err := ReadOverrides(strings.NewReader(input))
	if err != nil {
		t.Fatalf("read overrides: %v", err)
	}
	if len(overrides) != 2 {
		t.Fatalf("got %d overrides, want 2", len(overrides))
	}

	if overrides[0].Code != "10.0" || overrides[0].Era != model.EraICD1 {
		t.Errorf("first override = %+v", overrides[0])
	}
	// empty category_name is backfilled from the category table
	if overrides[1].CategoryName != "Diseases of the Circulatory System" {
		t.Errorf("backfilled name = %q", overrides[1].CategoryName)
	}
}

func TestReadOverridesDuplicateLastWins(t *testing.T) {
	t.Parallel()

	input := `code,era,category
10.0,ICD-1 (1901-1910),infectious_diseases
10.0,ICD-1 (1901-1910),ill_defined
`
	overrides, err := ReadOverrides(strings.NewReader(input))
	if err != nil {
		t.Fatalf("read overrides: %v", err)
	}
	if len(overrides) != 1 {
		t.Fatalf("got %d overrides, want 1", len(overrides))
	}
	if overrides[0].CategoryID != "ill_defined" {
		t.Fatalf("category = %q, want ill_defined (last row wins)", overrides[0].CategoryID)
	}

	// the classifier applies the surviving row
	a := NewWithOverrides(overrides).Classify("10.0", model.EraICD1, "Cholera")
	if a.CategoryID != "ill_defined" || a.Confidence != model.ConfidenceOverride {
		t.Fatalf("assignment = %+v", a)
	}
}

func TestReadOverridesSkipsMalformedRows(t *testing.T) {
	t.Parallel()

	input := `code,era,category
,ICD-1 (1901-1910),infectious_diseases
10.0,,infectious_diseases
10.0,ICD-1 (1901-1910),
5.1,ICD-2 (1911-1920),neoplasms
`
	overrides, err := ReadOverrides(strings.NewReader(input))
	if err != nil {
		t.Fatalf("read overrides: %v", err)
	}
	if len(overrides) != 1 {
		t.Fatalf("got %d overrides, want 1", len(overrides))
	}
	if overrides[0].Code != "5.1" {
		t.Fatalf("code = %q, want 5.1", overrides[0].Code)
	}
}

func TestReadOverridesMissingRequiredColumn(t *testing.T) {
	t.Parallel()

	input := `code,category
10.0,infectious_diseases
`
	if _, err := ReadOverrides(strings.NewReader(input)); err == nil {
		t.Fatalf("expected error for missing era column")
	}
}

func TestLoadOverridesMissingFile(t *testing.T) {
	t.Parallel()

	overrides, err := LoadOverrides(filepath.Join(t.TempDir(), "absent.csv"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if overrides != nil {
		t.Fatalf("got %v, want nil", overrides)
	}
}
