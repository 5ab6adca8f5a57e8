package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"ukstats/internal/classifier"
	"ukstats/internal/dashboard"
	"ukstats/internal/downloader"
	"ukstats/internal/exporter"
	"ukstats/internal/fiscal"
	"ukstats/internal/importer"
	"ukstats/internal/rates"
	"ukstats/internal/store"
)

var rebuildSkipDownload bool

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Run the whole pipeline end to end",
	Long: `Download the source datasets, import every workbook found in
the downloads directory, harmonize the code assignments and regenerate
every output: reference tables, harmonized mortality tables, rate
tables, fiscal series, summary workbook, dashboards and the data
catalogue. Running it twice produces identical outputs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, dir, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		downloadsDir := filepath.Join(dir, "downloads")

		if !rebuildSkipDownload {
			dl := downloader.New(downloadsDir, logger)
			if _, err := dl.FetchAll(cmd.Context(), false); err != nil {
				logger.Warnw("some downloads failed, continuing with local files", "error", err)
			}
		}

		if err := importWorkbooks(st, downloadsDir); err != nil {
			return err
		}

		outDir := filepath.Join(dir, "outputs")
		ex := exporter.NewExporter(st)
		if _, err := ex.ExportPopulationTable(outDir); err != nil {
			return err
		}
		if _, err := ex.ExportCodeDescriptions(outDir); err != nil {
			return err
		}

		assigned, err := harmonizeAll(st)
		if err != nil {
			return err
		}
		if assigned > 0 {
			if err := ex.ExportHarmonizedOutputs(outDir); err != nil {
				return err
			}
		}
		if err := writeRateTables(st, dir); err != nil {
			return err
		}
		if err := ex.ExportSummaryWorkbook(
			filepath.Join(outDir, "summary.xlsx")); err != nil {
			return err
		}
		if err := writeFiscalOutputs(st, dir); err != nil {
			return err
		}
		if err := ex.ExportCatalogue(filepath.Join(dir, "docs", "catalogue.md")); err != nil {
			return err
		}

		logger.Infow("rebuild complete", "data_dir", dir)
		return nil
	},
}

func importWorkbooks(st *store.Store, downloadsDir string) error {
	entries, err := os.ReadDir(downloadsDir)
	if err != nil {
		return fmt.Errorf("read downloads directory: %w", err)
	}

	coordinator := importer.NewCoordinator(st)
	imported := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".xls" && ext != ".xlsx" {
			continue
		}
		path := filepath.Join(downloadsDir, entry.Name())

		lower := strings.ToLower(entry.Name())
		if strings.Contains(lower, "pop") {
			report, err := coordinator.ImportPopulation(importer.ImportOptions{
				FilePath:  path,
				YearRange: sourceYearRange(),
			})
			if err != nil {
				logger.Warnw("population import failed", "file", entry.Name(), "error", err)
				continue
			}
			logger.Infow("population imported", "file", report.Filename, "rows", report.RowsKept)
			imported++
			continue
		}

		ch := coordinator.ImportMortality(importer.ImportOptions{
			FilePath:        path,
			YearRange:       sourceYearRange(),
			ReplaceExisting: true,
		})
		failed := false
		for evt := range ch {
			if evt.Type == "error" {
				logger.Warnw("mortality import failed", "file", entry.Name(), "error", evt.Message)
				failed = true
			}
		}
		if !failed {
			imported++
		}
	}

	if imported == 0 {
		return fmt.Errorf("no workbooks imported from %s", downloadsDir)
	}
	return nil
}

func harmonizeAll(st *store.Store) (int, error) {
	overrides, err := classifier.LoadOverrides(cfg.Source.OverridesFile)
	if err != nil {
		return 0, fmt.Errorf("load overrides: %w", err)
	}
	records, err := st.GetCodeRecords("")
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		logger.Infow("no code records stored, skipping harmonization")
		return 0, nil
	}

	assignments := classifier.NewWithOverrides(overrides).ClassifyAll(records)
	if err := st.ReplaceAssignments(assignments); err != nil {
		return 0, err
	}
	logger.Infow("harmonization complete", "codes", len(assignments), "overrides", len(overrides))
	return len(assignments), nil
}

func writeRateTables(st *store.Store, dir string) error {
	calc := rates.NewCalculator(st)
	outDir := filepath.Join(dir, "outputs")

	causeRates, err := calc.CauseRates(store.MortalityQueryOptions{})
	if err != nil {
		return err
	}
	if err := exporter.WriteZippedCSV(filepath.Join(outDir, "uk_mortality_rates_per_100k_by_cause.zip"),
		"uk_mortality_rates_per_100k_by_cause.csv",
		exporter.CauseRateHeader, exporter.CauseRateRows(causeRates)); err != nil {
		return err
	}

	ageGroupRates, err := calc.AgeGroupRates()
	if err != nil {
		return err
	}
	if err := exporter.WriteCSV(filepath.Join(outDir, "uk_mortality_rates_per_100k_by_age_group.csv"),
		exporter.AgeGroupRateHeader, exporter.AgeGroupRateRows(ageGroupRates)); err != nil {
		return err
	}

	yearlyRates, err := calc.YearlyRates()
	if err != nil {
		return err
	}
	if err := exporter.WriteCSV(filepath.Join(outDir, "uk_mortality_rates_per_100k_yearly_totals.csv"),
		exporter.YearlyRateHeader, exporter.YearlyRateRows(yearlyRates)); err != nil {
		return err
	}

	assignments, err := st.GetAssignments()
	if err != nil {
		return err
	}
	if len(assignments) > 0 {
		if err := exporter.WriteCSV(filepath.Join(outDir, "icd_harmonized_categories.csv"),
			exporter.AssignmentHeader, exporter.AssignmentRows(assignments)); err != nil {
			return err
		}
	}

	return dashboard.NewBuilder(st).WriteMortalityDashboard(
		filepath.Join(dir, "dashboards", "mortality.html"), yearlyRates)
}

func writeFiscalOutputs(st *store.Store, dir string) error {
	input := filepath.Join(dir, "downloads", "publicsectorfinances.csv")
	f, err := os.Open(input)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Infow("fiscal dataset not downloaded, skipping fiscal outputs")
			return nil
		}
		return err
	}
	defer f.Close()

	rows, err := fiscal.Compile(f, fiscal.DefaultSeries)
	if err != nil {
		return fmt.Errorf("compile fiscal series: %w", err)
	}

	header, records := exporter.FiscalRows(rows, fiscal.DefaultSeries)
	if err := exporter.WriteCSV(filepath.Join(dir, "outputs", "ons_fiscal_fy.csv"),
		header, records); err != nil {
		return err
	}
	return dashboard.NewBuilder(st).WriteFiscalDashboard(
		filepath.Join(dir, "dashboards", "fiscal.html"), rows, fiscal.DefaultSeries)
}

func init() {
	rebuildCmd.Flags().BoolVar(&rebuildSkipDownload, "skip-download", false,
		"use already-downloaded files only")
	rootCmd.AddCommand(rebuildCmd)
}
