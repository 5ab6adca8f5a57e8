package exporter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"ukstats/internal/model"
	"ukstats/internal/store"
)

// CategoryCountRows renders category assignment counts for CSV output.
func CategoryCountRows(counts []store.CategoryCount) [][]string {
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{c.CategoryID, c.CategoryName, formatCount(float64(c.Codes))})
	}
	return rows
}

// Exporter builds the summary workbook from the compiled store.
type Exporter struct {
	store *store.Store
}

// NewExporter creates an exporter.
func NewExporter(st *store.Store) *Exporter {
	return &Exporter{store: st}
}

// ExportSummaryWorkbook writes a workbook with yearly totals, category
// assignment counts and era coverage to path.
func (e *Exporter) ExportSummaryWorkbook(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := e.fillYearlyTotals(f); err != nil {
		return err
	}
	if err := e.fillCategoryCounts(f); err != nil {
		return err
	}
	if err := e.fillEraCoverage(f); err != nil {
		return err
	}

	// the default sheet is replaced by the data sheets
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("remove default sheet: %w", err)
	}
	f.SetActiveSheet(0)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func (e *Exporter) fillYearlyTotals(f *excelize.File) error {
	totals, err := e.store.GetYearlyTotals()
	if err != nil {
		return err
	}

	const sheet = "Yearly Totals"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"Year", "Total deaths"}); err != nil {
		return err
	}
	for i, t := range totals {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &[]interface{}{t.Year, t.TotalDeaths}); err != nil {
			return err
		}
	}
	return nil
}

func (e *Exporter) fillCategoryCounts(f *excelize.File) error {
	counts, err := e.store.GetCategoryCounts()
	if err != nil {
		return err
	}

	const sheet = "Categories"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"Category", "Name", "Codes assigned"}); err != nil {
		return err
	}
	for i, c := range counts {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &[]interface{}{c.CategoryID, c.CategoryName, c.Codes}); err != nil {
			return err
		}
	}
	return nil
}

func (e *Exporter) fillEraCoverage(f *excelize.File) error {
	const sheet = "Eras"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"Era", "From", "To", "Codes"}); err != nil {
		return err
	}

	for i, r := range model.EraRanges {
		records, err := e.store.GetCodeRecords(r.Era)
		if err != nil {
			return err
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{string(r.Era), r.StartYear, r.EndYear, len(records)}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
