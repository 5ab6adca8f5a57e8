package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"ukstats/internal/exporter"
	"ukstats/internal/importer"
	"ukstats/internal/parser"
)

var compileReplace bool

func sourceYearRange() parser.YearRange {
	return parser.YearRange{Start: cfg.Source.YearFrom, End: cfg.Source.YearTo}
}

var compileMortalityCmd = &cobra.Command{
	Use:   "compile-mortality <workbook...>",
	Short: "Import mortality workbooks into the database",
	Long: `Parse one or more mortality workbooks and store the death
counts. Sheets are recognized by layout; description sheets found in
era workbooks are stored as code reference records.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		coordinator := importer.NewCoordinator(st)
		for _, path := range args {
			ch := coordinator.ImportMortality(importer.ImportOptions{
				FilePath:        path,
				YearRange:       sourceYearRange(),
				ReplaceExisting: compileReplace,
			})
			for evt := range ch {
				switch evt.Type {
				case "error":
					return fmt.Errorf("import %s: %s", path, evt.Message)
				case "warning":
					logger.Warnw(evt.Message, "file", path)
				case "done":
					if r, ok := evt.Data.(*parser.ImportReport); ok {
						logger.Infow("workbook imported",
							"file", r.Filename,
							"sheets", r.ImportedSheets,
							"rows", r.RowsKept,
							"skipped_rows", r.RowsSkipped,
							"duration", r.Duration)
					}
				default:
					logger.Debugw(evt.Message, "file", path)
				}
			}
		}
		return nil
	},
}

var compilePopulationCmd = &cobra.Command{
	Use:   "compile-population <workbook...>",
	Short: "Import population estimate workbooks into the database",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, dir, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		coordinator := importer.NewCoordinator(st)
		for _, path := range args {
			report, err := coordinator.ImportPopulation(importer.ImportOptions{
				FilePath:  path,
				YearRange: sourceYearRange(),
			})
			if err != nil {
				return fmt.Errorf("import %s: %w", path, err)
			}
			logger.Infow("workbook imported",
				"file", report.Filename,
				"rows", report.RowsKept,
				"skipped_rows", report.RowsSkipped,
				"duration", report.Duration)
		}

		outDir := filepath.Join(dir, "outputs")
		n, err := exporter.NewExporter(st).ExportPopulationTable(outDir)
		if err != nil {
			return err
		}
		logger.Infow("combined population written", "dir", outDir, "rows", n)
		return nil
	},
}

var extractDescriptionsCmd = &cobra.Command{
	Use:   "extract-descriptions <workbook...>",
	Short: "Extract code descriptions from era workbooks",
	Long: `Store the (code, description) reference pairs from each era
workbook's description sheet. The era is taken from the filename, e.g.
icd7_1958-1967.xlsx.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, dir, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		for _, path := range args {
			records, era, err := importer.ExtractDescriptions(path)
			if err != nil {
				return fmt.Errorf("extract %s: %w", path, err)
			}
			if err := st.BatchInsertCodeRecords(records); err != nil {
				return fmt.Errorf("store %s: %w", path, err)
			}
			logger.Infow("descriptions extracted", "file", path, "era", era, "codes", len(records))
		}

		outDir := filepath.Join(dir, "outputs")
		n, err := exporter.NewExporter(st).ExportCodeDescriptions(outDir)
		if err != nil {
			return err
		}
		logger.Infow("code descriptions written", "dir", outDir, "codes", n)
		return nil
	},
}

func init() {
	compileMortalityCmd.Flags().BoolVar(&compileReplace, "replace", false,
		"drop earlier imports of the same file first")
	rootCmd.AddCommand(compileMortalityCmd, compilePopulationCmd, extractDescriptionsCmd)
}
