package store

import (
	"path/filepath"
	"testing"

	"ukstats/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := New(filepath.Join(t.TempDir(), "ukstats.db"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestMortalityRoundTrip(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)

	records := []*model.MortalityObservation{
		{Year: 1905, Cause: "10.0", Sex: "Male", AgeGroup: "0-4", Deaths: 120, SourceFile: "icd1.xlsx"},
		{Year: 1905, Cause: "10.0", Sex: "Female", AgeGroup: "0-4", Deaths: 98, SourceFile: "icd1.xlsx"},
		{Year: 1935, Cause: "10.0", Sex: "Male", AgeGroup: "45-54", Deaths: 40, SourceFile: "icd4.xlsx"},
	}
	if err := st.BatchInsertMortality(records); err != nil {
		t.Fatalf("insert: %v", err)
	}

	year := 1905
	got, err := st.GetMortality(MortalityQueryOptions{Year: &year})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}

	totals, err := st.GetYearlyTotals()
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if len(totals) != 2 || totals[0].Year != 1905 || totals[0].TotalDeaths != 218 {
		t.Fatalf("totals = %+v", totals)
	}

	years, err := st.MortalityYears()
	if err != nil {
		t.Fatalf("years: %v", err)
	}
	if len(years) != 2 || years[0] != 1905 || years[1] != 1935 {
		t.Fatalf("years = %v", years)
	}
}

func TestDeleteMortalityBySourceFile(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	if err := st.BatchInsertMortality([]*model.MortalityObservation{
		{Year: 1905, Cause: "1", Sex: "All", AgeGroup: "All ages", Deaths: 10, SourceFile: "a.xlsx"},
		{Year: 1905, Cause: "1", Sex: "All", AgeGroup: "All ages", Deaths: 20, SourceFile: "b.xlsx"},
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := st.DeleteMortalityBySourceFile("a.xlsx"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	n, err := st.CountMortality()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("count = %d, want 1", n)
	}
}

func TestHarmonizedJoinIsEraScoped(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)

	// the same code string means different diseases in different eras
	if err := st.BatchInsertMortality([]*model.MortalityObservation{
		{Year: 1905, Cause: "10.0", Sex: "All", AgeGroup: "All ages", Deaths: 100},
		{Year: 1935, Cause: "10.0", Sex: "All", AgeGroup: "All ages", Deaths: 50},
		{Year: 2010, Cause: "A00", Sex: "All", AgeGroup: "All ages", Deaths: 5},
	}); err != nil {
		t.Fatalf("insert mortality: %v", err)
	}

	if err := st.ReplaceAssignments([]model.Assignment{
		{Code: "10.0", Era: model.EraICD1, CategoryID: "infectious_diseases",
			CategoryName: "Infectious and Parasitic Diseases", Confidence: model.ConfidenceHigh},
		{Code: "10.0", Era: model.EraICD4, CategoryID: "endocrine_metabolic",
			CategoryName: "Endocrine, Nutritional and Metabolic Diseases", Confidence: model.ConfidenceMedium},
	}); err != nil {
		t.Fatalf("insert assignments: %v", err)
	}

	got, err := st.GetHarmonizedMortality(MortalityQueryOptions{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d rows, want 3", len(got))
	}

	byYear := map[int]*model.HarmonizedObservation{}
	for _, o := range got {
		byYear[o.Year] = o
	}

	if byYear[1905].CategoryID != "infectious_diseases" {
		t.Errorf("1905 category = %q, want infectious_diseases", byYear[1905].CategoryID)
	}
	if byYear[1935].CategoryID != "endocrine_metabolic" {
		t.Errorf("1935 category = %q, want endocrine_metabolic", byYear[1935].CategoryID)
	}
	// years outside 1901-2000 have no era and no assignment
	if byYear[2010].CategoryID != "" {
		t.Errorf("2010 category = %q, want empty", byYear[2010].CategoryID)
	}
}

func TestReplaceAssignmentsIsAtomicSwap(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)

	first := []model.Assignment{
		{Code: "1", Era: model.EraICD1, CategoryID: "infectious_diseases",
			CategoryName: "Infectious and Parasitic Diseases", Confidence: model.ConfidenceHigh},
		{Code: "2", Era: model.EraICD1, CategoryID: "neoplasms",
			CategoryName: "Neoplasms (Cancers and Tumors)", Confidence: model.ConfidenceMedium},
	}
	if err := st.ReplaceAssignments(first); err != nil {
		t.Fatalf("first replace: %v", err)
	}

	second := []model.Assignment{
		{Code: "3", Era: model.EraICD2, CategoryID: "circulatory",
			CategoryName: "Diseases of the Circulatory System", Confidence: model.ConfidenceLow},
	}
	if err := st.ReplaceAssignments(second); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	got, err := st.GetAssignments()
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 1 || got[0].Code != "3" {
		t.Fatalf("assignments = %+v, want only code 3", got)
	}

	counts, err := st.GetCategoryCounts()
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if len(counts) != 1 || counts[0].CategoryID != "circulatory" || counts[0].Codes != 1 {
		t.Fatalf("counts = %+v", counts)
	}
}

func TestPopulationLargestEstimateWins(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)

	if err := st.BatchInsertPopulation([]*model.PopulationObservation{
		{Year: 1950, Sex: "All", AgeGroup: "0-4", Population: 4000000, SourceFile: "provisional.xlsx"},
		{Year: 1950, Sex: "All", AgeGroup: "0-4", Population: 4100000, SourceFile: "revised.xlsx"},
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := st.GetPopulation(PopulationQueryOptions{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d rows, want 1 (deduplicated)", len(got))
	}
	if got[0].Population != 4100000 {
		t.Fatalf("population = %v, want revised 4100000", got[0].Population)
	}
}

func TestCodeRecordsRoundTrip(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)

	records := []model.CodeRecord{
		{Code: "10.0", Era: model.EraICD1, Description: "Cholera"},
		{Code: "10.0", Era: model.EraICD4, Description: "Diabetes mellitus"},
	}
	if err := st.BatchInsertCodeRecords(records); err != nil {
		t.Fatalf("insert: %v", err)
	}

	all, err := st.GetCodeRecords("")
	if err != nil {
		t.Fatalf("query all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d records, want 2", len(all))
	}

	icd1, err := st.GetCodeRecords(model.EraICD1)
	if err != nil {
		t.Fatalf("query era: %v", err)
	}
	if len(icd1) != 1 || icd1[0].Description != "Cholera" {
		t.Fatalf("icd1 records = %+v", icd1)
	}
}

func TestRunLogs(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)

	id, err := st.CreateRunLog("import-mortality", "icd1.xlsx")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == "" {
		t.Fatalf("empty run id")
	}

	if err := st.CompleteRunLog(id, 5, 4, 1, 1000, 20, "completed", ""); err != nil {
		t.Fatalf("complete: %v", err)
	}

	logs, err := st.GetRecentRunLogs(10)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("got %d logs, want 1", len(logs))
	}
	l := logs[0]
	if l.ID != id || l.Status != "completed" || l.RowsKept != 1000 || l.ImportedSheets != 4 {
		t.Fatalf("log = %+v", l)
	}
	if l.CompletedAt == nil {
		t.Fatalf("completed_at not set")
	}
}
