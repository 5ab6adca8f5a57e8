package importer

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"ukstats/internal/model"
	"ukstats/internal/parser"
	"ukstats/internal/store"
)

func TestEraFromFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		filename string
		want     model.Era
		wantOK   bool
	}{
		{"icd1.xlsx", model.EraICD1, true},
		{"icd7_1958-1967.xlsx", model.EraICD7, true},
		{"ICD-9a.xls", model.EraICD9a, true},
		{"Icd_9c codes.xlsx", model.EraICD9c, true},
		{"icd10_reference.xlsx", "", false}, // post-2000, no harmonization era
		{"population1950.xlsx", "", false},
		{"21stcenturymortality2023.xls", "", false},
	}
	for _, tt := range tests {
		got, ok := EraFromFilename(tt.filename)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("EraFromFilename(%q) = (%q, %v), want (%q, %v)",
				tt.filename, got, ok, tt.want, tt.wantOK)
		}
	}
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.New(filepath.Join(t.TempDir(), "ukstats.db"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

// saveWorkbook writes sheets of rows to filename in a temp dir and
// returns the path. The coordinator reopens the file itself.
func saveWorkbook(t *testing.T, filename string, sheets map[string][][]string) string {
	t.Helper()

	f := excelize.NewFile()
	first := true
	for name, rows := range sheets {
		if first {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
			first = false
		} else {
			if _, err := f.NewSheet(name); err != nil {
				t.Fatalf("new sheet: %v", err)
			}
		}
		for i, row := range rows {
			cell, _ := excelize.CoordinatesToCellName(1, i+1)
			data := make([]interface{}, len(row))
			for j, v := range row {
				data[j] = v
			}
			if err := f.SetSheetRow(name, cell, &data); err != nil {
				t.Fatalf("set row: %v", err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), filename)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close workbook: %v", err)
	}
	return path
}

func eraWorkbookSheets() map[string][][]string {
	return map[string][][]string{
		"1911": {
			{"ICD-10", "YR", "SEX", "AGE", "NDTHS"},
			{"10.0", "1911", "1", "0-4", "12"},
			{"10.0", "1911", "2", "0-4", "9"},
			{"10.0", "1750", "1", "0-4", "5"}, // implausible year
		},
		"icd2 descriptions": {
			{"Code", "Description"},
			{"10.0", "Cholera"},
			{"20.0", "Typhoid fever"},
		},
		"Contents": {
			{"Sheet list"},
			{"1911", "Deaths registered 1911-1920"},
		},
	}
}

func TestImportMortalityWorkbook(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	path := saveWorkbook(t, "icd2_1911-1920.xlsx", eraWorkbookSheets())

	ch := NewCoordinator(st).ImportMortality(ImportOptions{
		FilePath:  path,
		YearRange: parser.YearRange{Start: 1800, End: 2100},
	})

	var report *parser.ImportReport
	for evt := range ch {
		switch evt.Type {
		case "error":
			t.Fatalf("import failed: %s", evt.Message)
		case "done":
			report = evt.Data.(*parser.ImportReport)
		}
	}
	if report == nil {
		t.Fatalf("no done event received")
	}

	if report.TotalSheets != 3 || report.ImportedSheets != 2 || report.SkippedSheets != 1 {
		t.Fatalf("sheet counts = %d/%d/%d, want 3/2/1",
			report.TotalSheets, report.ImportedSheets, report.SkippedSheets)
	}
	if report.RowsKept != 4 || report.RowsSkipped != 1 {
		t.Fatalf("row counts = %d kept %d skipped, want 4/1", report.RowsKept, report.RowsSkipped)
	}

	mortality, err := st.GetMortality(store.MortalityQueryOptions{})
	if err != nil {
		t.Fatalf("query mortality: %v", err)
	}
	if len(mortality) != 2 {
		t.Fatalf("got %d mortality rows, want 2", len(mortality))
	}
	if mortality[0].SourceFile != "icd2_1911-1920.xlsx" {
		t.Fatalf("source file = %q", mortality[0].SourceFile)
	}

	codes, err := st.GetCodeRecords(model.EraICD2)
	if err != nil {
		t.Fatalf("query codes: %v", err)
	}
	if len(codes) != 2 {
		t.Fatalf("got %d code records, want 2", len(codes))
	}

	logs, err := st.GetRecentRunLogs(5)
	if err != nil {
		t.Fatalf("query run logs: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("got %d run logs, want 1", len(logs))
	}
	run := logs[0]
	if run.Operation != "import-mortality" || run.Status != "completed" {
		t.Fatalf("run log = %+v", run)
	}
	if run.CompletedAt == nil {
		t.Fatalf("run log never completed")
	}
	if run.RowsKept != 4 {
		t.Fatalf("run log rows kept = %d, want 4", run.RowsKept)
	}
}

func TestImportMortalityReplaceExisting(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	path := saveWorkbook(t, "icd2_1911-1920.xlsx", eraWorkbookSheets())

	for i := 0; i < 2; i++ {
		ch := NewCoordinator(st).ImportMortality(ImportOptions{
			FilePath:        path,
			YearRange:       parser.YearRange{Start: 1800, End: 2100},
			ReplaceExisting: true,
		})
		for evt := range ch {
			if evt.Type == "error" {
				t.Fatalf("import %d failed: %s", i+1, evt.Message)
			}
		}
	}

	n, err := st.CountMortality()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("count after re-import = %d, want 2", n)
	}
}

func TestImportMortalityMissingFile(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ch := NewCoordinator(st).ImportMortality(ImportOptions{
		FilePath: filepath.Join(t.TempDir(), "missing.xlsx"),
	})

	sawError := false
	for evt := range ch {
		if evt.Type == "error" {
			sawError = true
		}
		if evt.Type == "done" {
			t.Fatalf("done event for a missing workbook")
		}
	}
	if !sawError {
		t.Fatalf("expected an error event")
	}

	logs, err := st.GetRecentRunLogs(5)
	if err != nil {
		t.Fatalf("query run logs: %v", err)
	}
	if len(logs) != 1 || logs[0].Status != "failed" {
		t.Fatalf("run logs = %+v", logs)
	}
}
