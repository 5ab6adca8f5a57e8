package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"ukstats/internal/dashboard"
	"ukstats/internal/exporter"
	"ukstats/internal/fiscal"
	"ukstats/internal/model"
	"ukstats/internal/rates"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Render the HTML dashboards",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, dir, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		yearly, err := rates.NewCalculator(st).YearlyRates()
		if err != nil {
			return err
		}

		builder := dashboard.NewBuilder(st)
		mortalityPath := filepath.Join(dir, "dashboards", "mortality.html")
		if err := builder.WriteMortalityDashboard(mortalityPath, yearly); err != nil {
			return err
		}
		logger.Infow("dashboard written", "path", mortalityPath)

		// the fiscal page needs the compiled dataset; skip when absent
		fiscalCSV := filepath.Join(dir, "downloads", "publicsectorfinances.csv")
		f, err := os.Open(fiscalCSV)
		if err != nil {
			if os.IsNotExist(err) {
				logger.Infow("fiscal dataset not downloaded, skipping fiscal dashboard")
				return nil
			}
			return err
		}
		defer f.Close()

		rows, err := fiscal.Compile(f, fiscal.DefaultSeries)
		if err != nil {
			return fmt.Errorf("compile fiscal series: %w", err)
		}
		fiscalPath := filepath.Join(dir, "dashboards", "fiscal.html")
		if err := builder.WriteFiscalDashboard(fiscalPath, rows, fiscal.DefaultSeries); err != nil {
			return err
		}
		logger.Infow("dashboard written", "path", fiscalPath)
		return nil
	},
}

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Write the markdown data catalogue",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, dir, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		path := filepath.Join(dir, "docs", "catalogue.md")
		if err := exporter.NewExporter(st).ExportCatalogue(path); err != nil {
			return err
		}
		logger.Infow("catalogue written", "path", path, "eras", len(model.EraRanges))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd, docsCmd)
}
