package exporter

import (
	"archive/zip"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ukstats/internal/model"
	"ukstats/internal/store"
)

func TestRateHeadersNameDenominatorScope(t *testing.T) {
	t.Parallel()

	joined := strings.Join(CauseRateHeader, ",")
	if !strings.Contains(joined, "mortality_rate_per_100k_age_group_population") {
		t.Errorf("cause rate header lacks age-group-scoped rate column: %v", CauseRateHeader)
	}
	if !strings.Contains(joined, "population_age_group") {
		t.Errorf("cause rate header lacks age-group denominator column: %v", CauseRateHeader)
	}
	if strings.Contains(joined, "total_population") {
		t.Errorf("cause rate header must not carry a total-population column: %v", CauseRateHeader)
	}

	yearly := strings.Join(YearlyRateHeader, ",")
	if !strings.Contains(yearly, "mortality_rate_per_100k_total_population") {
		t.Errorf("yearly rate header lacks total-scoped rate column: %v", YearlyRateHeader)
	}
	if strings.Contains(yearly, "age_group") {
		t.Errorf("yearly rate header must not carry age-group columns: %v", YearlyRateHeader)
	}
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out", "rates.csv")
	rates := []model.YearlyRate{
		{Year: 1950, Deaths: 500, PopulationTotal: 50000000, RatePer100k: 1},
	}
	if err := WriteCSV(path, YearlyRateHeader, YearlyRateRows(rates)); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want header + 1 row", len(records))
	}
	if records[0][3] != model.ColRatePer100kTotal {
		t.Fatalf("header = %v", records[0])
	}
	if records[1][0] != "1950" || records[1][1] != "500" {
		t.Fatalf("row = %v", records[1])
	}
}

func TestWriteZippedCSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cause_rates.csv.zip")
	rates := []model.CauseRate{
		{Year: 1905, Cause: "10.0", CategoryID: "infectious_diseases",
			CategoryName: "Infectious and Parasitic Diseases",
			Sex:          "Male", AgeGroup: "0-4",
			Deaths: 250, PopulationAgeGroup: 2000000, RatePer100k: 12.5},
	}
	if err := WriteZippedCSV(path, "cause_rates.csv", CauseRateHeader, CauseRateRows(rates)); err != nil {
		t.Fatalf("write: %v", err)
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer zr.Close()

	if len(zr.File) != 1 || zr.File[0].Name != "cause_rates.csv" {
		t.Fatalf("archive entries = %v", zr.File)
	}
	entry, err := zr.File[0].Open()
	if err != nil {
		t.Fatalf("open entry: %v", err)
	}
	defer entry.Close()

	records, err := csv.NewReader(entry).ReadAll()
	if err != nil {
		t.Fatalf("read entry: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[1][1] != "10.0" || records[1][8] != "12.5000" {
		t.Fatalf("row = %v", records[1])
	}
}

func TestFiscalRows(t *testing.T) {
	t.Parallel()

	series := []model.FiscalSeries{
		{OutputColumn: "paye_income_tax", ONSName: "Central government PAYE income tax receipts"},
		{OutputColumn: "total_receipts_ex_banks", ONSName: "Public sector current receipts excluding public sector banks"},
	}
	rows := []model.FiscalYearRow{
		{FYStart: 2020, Values: map[string]float64{"paye_income_tax": 150, "total_receipts_ex_banks": 300}},
	}

	header, records := FiscalRows(rows, series)
	if header[0] != "fy_start" || header[1] != "paye_income_tax" || header[2] != "total_receipts_ex_banks" {
		t.Fatalf("header = %v", header)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0][0] != "2020" || records[0][1] != "150" || records[0][2] != "300" {
		t.Fatalf("record = %v", records[0])
	}
}

func TestWriteCatalogue(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "docs", "catalogue.md")
	entries := DefaultCatalogueEntries()
	for i := range entries {
		if entries[i].Filename == "uk_mortality_yearly_totals_1901_2025.csv" {
			entries[i].Rows = 125
			entries[i].YearFrom, entries[i].YearTo = 1901, 2025
		}
	}
	categories := []store.CategoryCount{
		{CategoryID: "neoplasms", CategoryName: "Neoplasms", Codes: 42},
	}
	if err := WriteCatalogue(path, entries, categories); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	content := string(data)
	for _, want := range []string{
		"ICD-1 (1901-1910)",
		"ICD-9c (1994-2000)",
		model.ColRatePer100kAgeGroup,
		model.ColRatePer100kTotal,
		"uk_mortality_rates_per_100k_by_cause.zip",
		"icd_harmonized_categories.csv",
		"icd_code_descriptions.csv",
		"ons_fiscal_fy.csv",
		"125 rows, covering 1901-2025",
		"| neoplasms | Neoplasms | 42 |",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("catalogue missing %q", want)
		}
	}
}
