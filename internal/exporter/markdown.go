package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ukstats/internal/model"
	"ukstats/internal/store"
)

// CatalogueEntry describes one generated output file for the data
// catalogue document. Rows and the year bounds are zero when the store
// holds no data for the file.
type CatalogueEntry struct {
	Filename    string
	Description string
	Columns     []string
	Rows        int
	YearFrom    int
	YearTo      int
}

// WriteCatalogue renders the output catalogue as a markdown document.
// The category counts, when present, become a summary table.
func WriteCatalogue(path string, entries []CatalogueEntry, categories []store.CategoryCount) error {
	var b strings.Builder

	b.WriteString("# Data catalogue\n\n")
	fmt.Fprintf(&b, "Generated %s.\n\n", time.Now().Format("2006-01-02"))

	b.WriteString("## Code revision eras\n\n")
	b.WriteString("| Era | From | To |\n|---|---|---|\n")
	for _, r := range model.EraRanges {
		fmt.Fprintf(&b, "| %s | %d | %d |\n", r.Era, r.StartYear, r.EndYear)
	}
	b.WriteString("\nYears from 2001 on use ICD-10 codes directly and carry no harmonization era.\n\n")

	b.WriteString("## Rate column naming\n\n")
	fmt.Fprintf(&b, "`%s` divides deaths by the population of the same sex and age band.\n", model.ColRatePer100kAgeGroup)
	fmt.Fprintf(&b, "`%s` divides deaths by the whole-year population.\n", model.ColRatePer100kTotal)
	b.WriteString("The two denominators are never interchangeable, so the scope is part of the column name.\n\n")

	if len(categories) > 0 {
		b.WriteString("## Harmonized categories\n\n")
		b.WriteString("| Category | Name | Codes assigned |\n|---|---|---|\n")
		for _, c := range categories {
			fmt.Fprintf(&b, "| %s | %s | %d |\n", c.CategoryID, c.CategoryName, c.Codes)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Files\n\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "### %s\n\n%s\n\n", e.Filename, e.Description)
		if e.Rows > 0 {
			fmt.Fprintf(&b, "%d rows", e.Rows)
			if e.YearFrom > 0 {
				fmt.Fprintf(&b, ", covering %d-%d", e.YearFrom, e.YearTo)
			}
			b.WriteString(".\n\n")
		}
		if len(e.Columns) > 0 {
			b.WriteString("| Column |\n|---|\n")
			for _, col := range e.Columns {
				fmt.Fprintf(&b, "| `%s` |\n", col)
			}
			b.WriteString("\n")
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return os.WriteFile(path, []byte(b.String()), 0644)
}

// DefaultCatalogueEntries describes the standard pipeline outputs.
func DefaultCatalogueEntries() []CatalogueEntry {
	return []CatalogueEntry{
		{
			Filename:    "uk_mortality_rates_per_100k_by_cause.zip",
			Description: "Per-100k mortality rates per year, cause, sex and age band, scoped to the age-band population.",
			Columns:     CauseRateHeader,
		},
		{
			Filename:    "uk_mortality_rates_per_100k_by_age_group.csv",
			Description: "All-cause per-100k rates per year, sex and age band.",
			Columns:     AgeGroupRateHeader,
		},
		{
			Filename:    "uk_mortality_rates_per_100k_yearly_totals.csv",
			Description: "All-cause per-100k rates per year against the total population.",
			Columns:     YearlyRateHeader,
		},
		{
			Filename:    "icd_harmonized_categories.csv",
			Description: "Harmonized category per (code, era) pair with confidence labels.",
			Columns:     AssignmentHeader,
		},
		{
			Filename:    "uk_mortality_by_cause_1901_2000_harmonized.csv",
			Description: "Mortality records for 1901 to 2000 joined against the harmonized category assignments.",
			Columns:     HarmonizedHeader,
		},
		{
			Filename:    "uk_mortality_by_cause_1901_2025.zip",
			Description: "Raw by-cause death counts for every year, before harmonization.",
			Columns:     MortalityHeader,
		},
		{
			Filename:    "uk_mortality_comprehensive_1901_2025.zip",
			Description: "All mortality records with harmonized categories where an era applies.",
			Columns:     HarmonizedHeader,
		},
		{
			Filename:    "uk_mortality_yearly_totals_1901_2025.csv",
			Description: "Total registered deaths per year.",
			Columns:     YearlyTotalHeader,
		},
		{
			Filename:    "combined_population_data.csv",
			Description: "Population estimates per year, sex and age band, deduplicated across source files.",
			Columns:     PopulationHeader,
		},
		{
			Filename:    "icd_code_descriptions.csv",
			Description: "Cause-of-death code descriptions per revision era.",
			Columns:     CodeRecordHeader,
		},
		{
			Filename:    "ons_fiscal_fy.csv",
			Description: "Public sector finance series summed into UK financial years (April to March).",
		},
		{
			Filename:    "summary.xlsx",
			Description: "Summary workbook with yearly totals, category counts and era coverage.",
		},
	}
}

// ExportCatalogue writes the catalogue with row counts, year coverage
// and the category summary taken from the store.
func (e *Exporter) ExportCatalogue(path string) error {
	mortalityRows, err := e.store.CountMortality()
	if err != nil {
		return err
	}
	populationRows, err := e.store.CountPopulation()
	if err != nil {
		return err
	}
	years, err := e.store.MortalityYears()
	if err != nil {
		return err
	}
	totals, err := e.store.GetYearlyTotals()
	if err != nil {
		return err
	}
	assignments, err := e.store.GetAssignments()
	if err != nil {
		return err
	}
	codes, err := e.store.GetCodeRecords("")
	if err != nil {
		return err
	}
	counts, err := e.store.GetCategoryCounts()
	if err != nil {
		return err
	}

	yearFrom, yearTo := 0, 0
	if len(years) > 0 {
		yearFrom, yearTo = years[0], years[len(years)-1]
	}

	entries := DefaultCatalogueEntries()
	for i := range entries {
		switch entries[i].Filename {
		case "uk_mortality_by_cause_1901_2025.zip", "uk_mortality_comprehensive_1901_2025.zip":
			entries[i].Rows = mortalityRows
			entries[i].YearFrom, entries[i].YearTo = yearFrom, yearTo
		case "uk_mortality_yearly_totals_1901_2025.csv":
			entries[i].Rows = len(totals)
			entries[i].YearFrom, entries[i].YearTo = yearFrom, yearTo
		case "icd_harmonized_categories.csv":
			entries[i].Rows = len(assignments)
		case "icd_code_descriptions.csv":
			entries[i].Rows = len(codes)
		case "combined_population_data.csv":
			entries[i].Rows = populationRows
		}
	}

	return WriteCatalogue(path, entries, counts)
}
