package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"ukstats/internal/exporter"
	"ukstats/internal/rates"
	"ukstats/internal/store"
)

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Compute per-100k mortality rates and write the rate tables",
	Long: `Join death counts to population denominators and write the
cause, age-group and yearly rate tables. Each output column names its
denominator scope; slices without a matching denominator are dropped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, dir, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		calc := rates.NewCalculator(st)
		outDir := filepath.Join(dir, "outputs")

		causeRates, err := calc.CauseRates(store.MortalityQueryOptions{})
		if err != nil {
			return err
		}
		causePath := filepath.Join(outDir, "uk_mortality_rates_per_100k_by_cause.zip")
		if err := exporter.WriteZippedCSV(causePath, "uk_mortality_rates_per_100k_by_cause.csv",
			exporter.CauseRateHeader, exporter.CauseRateRows(causeRates)); err != nil {
			return err
		}
		logger.Infow("cause rates written", "path", causePath, "rows", len(causeRates))

		ageGroupRates, err := calc.AgeGroupRates()
		if err != nil {
			return err
		}
		agePath := filepath.Join(outDir, "uk_mortality_rates_per_100k_by_age_group.csv")
		if err := exporter.WriteCSV(agePath,
			exporter.AgeGroupRateHeader, exporter.AgeGroupRateRows(ageGroupRates)); err != nil {
			return err
		}
		logger.Infow("age-group rates written", "path", agePath, "rows", len(ageGroupRates))

		yearlyRates, err := calc.YearlyRates()
		if err != nil {
			return err
		}
		yearlyPath := filepath.Join(outDir, "uk_mortality_rates_per_100k_yearly_totals.csv")
		if err := exporter.WriteCSV(yearlyPath,
			exporter.YearlyRateHeader, exporter.YearlyRateRows(yearlyRates)); err != nil {
			return err
		}
		logger.Infow("yearly rates written", "path", yearlyPath, "rows", len(yearlyRates))

		return nil
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Write the Excel summary workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, dir, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		path := filepath.Join(dir, "outputs", "summary.xlsx")
		if err := exporter.NewExporter(st).ExportSummaryWorkbook(path); err != nil {
			return err
		}
		logger.Infow("summary workbook written", "path", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ratesCmd, summaryCmd)
}
