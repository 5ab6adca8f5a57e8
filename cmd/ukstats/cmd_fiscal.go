package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"ukstats/internal/config"
	"ukstats/internal/exporter"
	"ukstats/internal/fiscal"
)

var fiscalInput string

var fiscalCmd = &cobra.Command{
	Use:   "fiscal",
	Short: "Sum the public sector finance series into financial years",
	Long: `Read the downloaded public sector finances dataset and write
ons_fiscal_fy.csv with the extracted series summed into UK financial
years (April to March, labelled by the calendar year of April).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := config.EnsureDataDir(cfg)
		if err != nil {
			return fmt.Errorf("ensure data directory: %w", err)
		}

		input := fiscalInput
		if input == "" {
			input = filepath.Join(dir, "downloads", "publicsectorfinances.csv")
		}
		f, err := os.Open(input)
		if err != nil {
			return fmt.Errorf("open dataset (run download first?): %w", err)
		}
		defer f.Close()

		rows, err := fiscal.Compile(f, fiscal.DefaultSeries)
		if err != nil {
			return err
		}

		header, records := exporter.FiscalRows(rows, fiscal.DefaultSeries)
		outPath := filepath.Join(dir, "outputs", "ons_fiscal_fy.csv")
		if err := exporter.WriteCSV(outPath, header, records); err != nil {
			return err
		}
		logger.Infow("fiscal series written", "path", outPath, "years", len(rows))
		return nil
	},
}

func init() {
	fiscalCmd.Flags().StringVar(&fiscalInput, "input", "",
		"public sector finances CSV (defaults to the downloaded file)")
	rootCmd.AddCommand(fiscalCmd)
}
