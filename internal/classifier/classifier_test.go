package classifier

import (
	"testing"

	"ukstats/internal/model"
)

func TestClassifyConfidenceLevels(t *testing.T) {
	t.Parallel()

	c := New()

	tests := []struct {
		name           string
		description    string
		wantCategory   string
		wantConfidence model.Confidence
	}{
		{
			name:           "two keyword hits",
			description:    "Typhoid fever",
			wantCategory:   "infectious_diseases",
			wantConfidence: model.ConfidenceHigh,
		},
		{
			name:           "single keyword hit",
			description:    "Measles",
			wantCategory:   "infectious_diseases",
			wantConfidence: model.ConfidenceMedium,
		},
		{
			name:           "no keyword hits",
			description:    "Xyzzy",
			wantCategory:   "other",
			wantConfidence: model.ConfidenceLow,
		},
		{
			name:           "empty description",
			description:    "",
			wantCategory:   "other",
			wantConfidence: model.ConfidenceLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := c.Classify("1", model.EraICD1, tt.description)
			if a.CategoryID != tt.wantCategory {
				t.Errorf("category = %q, want %q", a.CategoryID, tt.wantCategory)
			}
			if a.Confidence != tt.wantConfidence {
				t.Errorf("confidence = %q, want %q", a.Confidence, tt.wantConfidence)
			}
		})
	}
}

func TestClassifyTieGoesToFirstDeclaredCategory(t *testing.T) {
	t.Parallel()

	// one hit for neoplasms ("cancer") and one for digestive ("stomach");
	// neoplasms is declared earlier so it must win
	a := New().Classify("43", model.EraICD2, "Cancer of the stomach")
	if a.CategoryID != "neoplasms" {
		t.Fatalf("category = %q, want neoplasms", a.CategoryID)
	}
	if a.Confidence != model.ConfidenceMedium {
		t.Fatalf("confidence = %q, want medium", a.Confidence)
	}
}

func TestClassifySameCodeDifferentEras(t *testing.T) {
	t.Parallel()

	// the same code string names unrelated diseases in different
	// revisions and must classify independently
	c := New()

	first := c.Classify("10.0", model.EraICD1, "Cholera")
	if first.CategoryID != "infectious_diseases" {
		t.Fatalf("ICD-1 category = %q, want infectious_diseases", first.CategoryID)
	}

	fourth := c.Classify("10.0", model.EraICD4, "Diabetes mellitus")
	if fourth.CategoryID != "endocrine_metabolic" {
		t.Fatalf("ICD-4 category = %q, want endocrine_metabolic", fourth.CategoryID)
	}
}

func TestClassifyOverrideWins(t *testing.T) {
	t.Parallel()

	c := NewWithOverrides([]Override{
		{
			Code:         "10.0",
			Era:          model.EraICD1,
			CategoryID:   "ill_defined",
			CategoryName: "Symptoms, Signs and Ill-Defined Conditions",
			Label:        "reviewed",
		},
	})

	// the description alone would classify as infectious with high
	// confidence; the override replaces the result outright
	a := c.Classify("10.0", model.EraICD1, "Typhoid fever")
	if a.CategoryID != "ill_defined" {
		t.Fatalf("category = %q, want ill_defined", a.CategoryID)
	}
	if a.Confidence != model.ConfidenceOverride {
		t.Fatalf("confidence = %q, want override", a.Confidence)
	}

	// the override is scoped to its era
	other := c.Classify("10.0", model.EraICD4, "Typhoid fever")
	if other.CategoryID != "infectious_diseases" {
		t.Fatalf("other era category = %q, want infectious_diseases", other.CategoryID)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	t.Parallel()

	c := New()
	first := c.Classify("27.2", model.EraICD5, "Cerebral haemorrhage")
	for i := 0; i < 100; i++ {
		got := c.Classify("27.2", model.EraICD5, "Cerebral haemorrhage")
		if got != first {
			t.Fatalf("run %d: got %+v, want %+v", i, got, first)
		}
	}
}

func TestClassifyAllPreservesOrder(t *testing.T) {
	t.Parallel()

	records := []model.CodeRecord{
		{Code: "1", Era: model.EraICD1, Description: "Smallpox"},
		{Code: "2", Era: model.EraICD1, Description: "Measles"},
		{Code: "3", Era: model.EraICD1, Description: "Scarlet fever"},
	}

	assignments := New().ClassifyAll(records)
	if len(assignments) != len(records) {
		t.Fatalf("got %d assignments, want %d", len(assignments), len(records))
	}
	for i, a := range assignments {
		if a.Code != records[i].Code {
			t.Errorf("assignment %d code = %q, want %q", i, a.Code, records[i].Code)
		}
		if a.Era != records[i].Era {
			t.Errorf("assignment %d era = %q, want %q", i, a.Era, records[i].Era)
		}
	}
}

func TestCategoryByID(t *testing.T) {
	t.Parallel()

	cat, ok := CategoryByID("circulatory")
	if !ok {
		t.Fatalf("circulatory not found")
	}
	if cat.Name != "Diseases of the Circulatory System" {
		t.Fatalf("name = %q", cat.Name)
	}

	if _, ok := CategoryByID("nonexistent"); ok {
		t.Fatalf("nonexistent category found")
	}
}
