package exporter

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"ukstats/internal/model"
)

// WriteCSV writes header and rows to path, creating parent directories.
func WriteCSV(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// WriteZippedCSV writes the table as a single CSV entry inside a zip
// archive, the distribution format for the larger outputs.
func WriteZippedCSV(zipPath, entryName string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(zipPath), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	f, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", zipPath, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	entry, err := zw.Create(entryName)
	if err != nil {
		return fmt.Errorf("create zip entry: %w", err)
	}

	w := csv.NewWriter(entry)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return zw.Close()
}

func formatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// CauseRateHeader is the cause rate table header. The rate and
// denominator columns name their population scope.
var CauseRateHeader = []string{
	"year", "cause", "category_id", "category_name", "sex", "age_group",
	"deaths", model.ColPopulationAgeGroup, model.ColRatePer100kAgeGroup,
}

// CauseRateRows renders cause rates for CSV output.
func CauseRateRows(rates []model.CauseRate) [][]string {
	rows := make([][]string, 0, len(rates))
	for _, r := range rates {
		rows = append(rows, []string{
			strconv.Itoa(r.Year), r.Cause, r.CategoryID, r.CategoryName,
			r.Sex, r.AgeGroup,
			formatCount(r.Deaths),
			formatCount(r.PopulationAgeGroup),
			formatRate(r.RatePer100k),
		})
	}
	return rows
}

// AgeGroupRateHeader is the age-group rate table header.
var AgeGroupRateHeader = []string{
	"year", "sex", "age_group",
	"deaths", model.ColPopulationAgeGroup, model.ColRatePer100kAgeGroup,
}

// AgeGroupRateRows renders age-group rates for CSV output.
func AgeGroupRateRows(rates []model.AgeGroupRate) [][]string {
	rows := make([][]string, 0, len(rates))
	for _, r := range rates {
		rows = append(rows, []string{
			strconv.Itoa(r.Year), r.Sex, r.AgeGroup,
			formatCount(r.Deaths),
			formatCount(r.PopulationAgeGroup),
			formatRate(r.RatePer100k),
		})
	}
	return rows
}

// YearlyRateHeader is the yearly all-cause rate table header.
var YearlyRateHeader = []string{
	"year", "deaths", model.ColPopulationTotal, model.ColRatePer100kTotal,
}

// YearlyRateRows renders yearly rates for CSV output.
func YearlyRateRows(rates []model.YearlyRate) [][]string {
	rows := make([][]string, 0, len(rates))
	for _, r := range rates {
		rows = append(rows, []string{
			strconv.Itoa(r.Year),
			formatCount(r.Deaths),
			formatCount(r.PopulationTotal),
			formatRate(r.RatePer100k),
		})
	}
	return rows
}

// AssignmentHeader is the harmonized assignment table header.
var AssignmentHeader = []string{
	"code", "era", "description", "category_id", "category_name", "confidence",
}

// AssignmentRows renders assignments for CSV output.
func AssignmentRows(assignments []model.Assignment) [][]string {
	rows := make([][]string, 0, len(assignments))
	for _, a := range assignments {
		rows = append(rows, []string{
			a.Code, string(a.Era), a.Description,
			a.CategoryID, a.CategoryName, string(a.Confidence),
		})
	}
	return rows
}

// HarmonizedHeader is the harmonized mortality table header.
var HarmonizedHeader = []string{
	"year", "cause", "cause_description", "category_id", "category_name",
	"confidence", "sex", "age_group", "deaths",
}

// HarmonizedRows renders harmonized observations for CSV output.
func HarmonizedRows(obs []*model.HarmonizedObservation) [][]string {
	rows := make([][]string, 0, len(obs))
	for _, o := range obs {
		rows = append(rows, []string{
			strconv.Itoa(o.Year), o.Cause, o.CauseDescription,
			o.CategoryID, o.CategoryName, string(o.Confidence),
			o.Sex, o.AgeGroup, formatCount(o.Deaths),
		})
	}
	return rows
}

// MortalityHeader is the raw by-cause observation table header.
var MortalityHeader = []string{
	"year", "cause", "cause_description", "sex", "age_group", "deaths",
}

// MortalityRows renders raw mortality observations for CSV output.
func MortalityRows(obs []*model.MortalityObservation) [][]string {
	rows := make([][]string, 0, len(obs))
	for _, o := range obs {
		rows = append(rows, []string{
			strconv.Itoa(o.Year), o.Cause, o.CauseDescription,
			o.Sex, o.AgeGroup, formatCount(o.Deaths),
		})
	}
	return rows
}

// YearlyTotalHeader is the yearly death total table header.
var YearlyTotalHeader = []string{"year", "total_deaths"}

// YearlyTotalRows renders yearly totals for CSV output.
func YearlyTotalRows(totals []model.YearlyTotal) [][]string {
	rows := make([][]string, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, []string{strconv.Itoa(t.Year), formatCount(t.TotalDeaths)})
	}
	return rows
}

// PopulationHeader is the combined population table header.
var PopulationHeader = []string{"year", "sex", "age_group", "population"}

// PopulationRows renders population estimates for CSV output.
func PopulationRows(obs []*model.PopulationObservation) [][]string {
	rows := make([][]string, 0, len(obs))
	for _, o := range obs {
		rows = append(rows, []string{
			strconv.Itoa(o.Year), o.Sex, o.AgeGroup, formatCount(o.Population),
		})
	}
	return rows
}

// CodeRecordHeader is the code description reference table header.
var CodeRecordHeader = []string{"code", "era", "description"}

// CodeRecordRows renders code records for CSV output.
func CodeRecordRows(records []model.CodeRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{r.Code, string(r.Era), r.Description})
	}
	return rows
}

// CategoryCountHeader is the category summary table header.
var CategoryCountHeader = []string{"category_id", "category_name", "codes"}

// FiscalRows renders financial year sums for CSV output, one column per
// series in the given order.
func FiscalRows(rows []model.FiscalYearRow, series []model.FiscalSeries) ([]string, [][]string) {
	header := make([]string, 0, len(series)+1)
	header = append(header, "fy_start")
	for _, s := range series {
		header = append(header, s.OutputColumn)
	}

	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		record := make([]string, 0, len(header))
		record = append(record, strconv.Itoa(r.FYStart))
		for _, s := range series {
			record = append(record, formatCount(r.Values[s.OutputColumn]))
		}
		out = append(out, record)
	}
	return header, out
}
