package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"ukstats/internal/classifier"
	"ukstats/internal/exporter"
	"ukstats/internal/model"
)

var overridesPath string

var harmonizeCmd = &cobra.Command{
	Use:   "harmonize",
	Short: "Classify every stored (code, era) pair into harmonized categories",
	Long: `Run keyword classification over the stored code descriptions
and replace the assignment table. Manual overrides from the overrides
CSV win unconditionally and are labelled confidence "override".

Writes the assignment table, a per-category summary, and the list of
codes that fell to the fallback category for manual review.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, dir, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		path := overridesPath
		if path == "" {
			path = cfg.Source.OverridesFile
		}
		overrides, err := classifier.LoadOverrides(path)
		if err != nil {
			return fmt.Errorf("load overrides: %w", err)
		}

		records, err := st.GetCodeRecords("")
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return fmt.Errorf("no code records stored; run extract-descriptions first")
		}

		assignments := classifier.NewWithOverrides(overrides).ClassifyAll(records)
		if err := st.ReplaceAssignments(assignments); err != nil {
			return err
		}

		outDir := filepath.Join(dir, "outputs")
		if err := exporter.WriteCSV(filepath.Join(outDir, "icd_harmonized_categories.csv"),
			exporter.AssignmentHeader, exporter.AssignmentRows(assignments)); err != nil {
			return err
		}

		counts, err := st.GetCategoryCounts()
		if err != nil {
			return err
		}
		if err := exporter.WriteCSV(filepath.Join(outDir, "harmonized_categories_summary.csv"),
			exporter.CategoryCountHeader, exporter.CategoryCountRows(counts)); err != nil {
			return err
		}

		var unclassified []model.Assignment
		byConfidence := map[model.Confidence]int{}
		for _, a := range assignments {
			byConfidence[a.Confidence]++
			if a.CategoryID == classifier.FallbackCategoryID {
				unclassified = append(unclassified, a)
			}
		}
		if err := exporter.WriteCSV(filepath.Join(outDir, "unclassified_codes_for_review.csv"),
			exporter.AssignmentHeader, exporter.AssignmentRows(unclassified)); err != nil {
			return err
		}

		logger.Infow("harmonization complete",
			"codes", len(assignments),
			"overrides", len(overrides),
			"unclassified", len(unclassified),
			"high", byConfidence[model.ConfidenceHigh],
			"medium", byConfidence[model.ConfidenceMedium],
			"low", byConfidence[model.ConfidenceLow],
			"override", byConfidence[model.ConfidenceOverride])
		return nil
	},
}

var applyHarmonizedCmd = &cobra.Command{
	Use:   "apply-harmonized",
	Short: "Export the mortality table joined to its harmonized categories",
	Long: `Join every mortality observation to its era-scoped category
assignment and write the harmonized mortality outputs: the 1901-2000
harmonized table, the comprehensive and raw by-cause archives over
every year, and yearly death totals.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, dir, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		assignments, err := st.GetAssignments()
		if err != nil {
			return err
		}
		if len(assignments) == 0 {
			return fmt.Errorf("no assignments stored; run harmonize first")
		}

		outDir := filepath.Join(dir, "outputs")
		if err := exporter.NewExporter(st).ExportHarmonizedOutputs(outDir); err != nil {
			return err
		}
		logger.Infow("harmonized outputs written", "dir", outDir, "assignments", len(assignments))
		return nil
	},
}

func init() {
	harmonizeCmd.Flags().StringVar(&overridesPath, "overrides", "",
		"manual overrides CSV (defaults to config)")
	rootCmd.AddCommand(harmonizeCmd, applyHarmonizedCmd)
}
