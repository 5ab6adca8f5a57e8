package exporter

import (
	"path/filepath"

	"ukstats/internal/store"
)

// ExportHarmonizedOutputs writes the harmonized mortality tables under
// outDir: the 1901-2000 harmonized table, the comprehensive and raw
// by-cause archives over every year, and yearly death totals. Both the
// apply-harmonized command and rebuild go through here so the two paths
// cannot drift apart.
func (e *Exporter) ExportHarmonizedOutputs(outDir string) error {
	from, to := 1901, 2000
	harmonized, err := e.store.GetHarmonizedMortality(store.MortalityQueryOptions{
		YearFrom: &from,
		YearTo:   &to,
	})
	if err != nil {
		return err
	}
	if err := WriteCSV(filepath.Join(outDir, "uk_mortality_by_cause_1901_2000_harmonized.csv"),
		HarmonizedHeader, HarmonizedRows(harmonized)); err != nil {
		return err
	}

	all, err := e.store.GetHarmonizedMortality(store.MortalityQueryOptions{})
	if err != nil {
		return err
	}
	if err := WriteZippedCSV(filepath.Join(outDir, "uk_mortality_comprehensive_1901_2025.zip"),
		"uk_mortality_comprehensive_1901_2025.csv",
		HarmonizedHeader, HarmonizedRows(all)); err != nil {
		return err
	}

	raw, err := e.store.GetMortality(store.MortalityQueryOptions{})
	if err != nil {
		return err
	}
	if err := WriteZippedCSV(filepath.Join(outDir, "uk_mortality_by_cause_1901_2025.zip"),
		"uk_mortality_by_cause_1901_2025.csv",
		MortalityHeader, MortalityRows(raw)); err != nil {
		return err
	}

	totals, err := e.store.GetYearlyTotals()
	if err != nil {
		return err
	}
	return WriteCSV(filepath.Join(outDir, "uk_mortality_yearly_totals_1901_2025.csv"),
		YearlyTotalHeader, YearlyTotalRows(totals))
}

// ExportPopulationTable writes the combined population table and
// returns the row count.
func (e *Exporter) ExportPopulationTable(outDir string) (int, error) {
	combined, err := e.store.GetPopulation(store.PopulationQueryOptions{})
	if err != nil {
		return 0, err
	}
	err = WriteCSV(filepath.Join(outDir, "combined_population_data.csv"),
		PopulationHeader, PopulationRows(combined))
	return len(combined), err
}

// ExportCodeDescriptions writes the code description reference table
// and returns the row count.
func (e *Exporter) ExportCodeDescriptions(outDir string) (int, error) {
	records, err := e.store.GetCodeRecords("")
	if err != nil {
		return 0, err
	}
	err = WriteCSV(filepath.Join(outDir, "icd_code_descriptions.csv"),
		CodeRecordHeader, CodeRecordRows(records))
	return len(records), err
}
