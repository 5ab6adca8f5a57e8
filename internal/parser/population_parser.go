package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"ukstats/internal/model"
)

// PopulationParser extracts population estimates from one workbook.
// The mid-year estimate files share the mortality layout minus the cause
// column, with Pops/Population in place of deaths.
type PopulationParser struct {
	file       *excelize.File
	mapper     *FieldMapper
	sourceFile string
}

// NewPopulationParser creates a parser over an open workbook.
func NewPopulationParser(file *excelize.File) *PopulationParser {
	return &PopulationParser{
		file:       file,
		mapper:     NewFieldMapper(),
		sourceFile: filepath.Base(file.Path),
	}
}

// ParseWorkbook parses every sheet holding a year+population table.
// Sheets without one are skipped silently; an error is returned only
// when no sheet in the whole workbook qualifies.
func (p *PopulationParser) ParseWorkbook(yearRange YearRange) ([]*model.PopulationObservation, int, error) {
	var records []*model.PopulationObservation
	skipped := 0
	parsedSheets := 0

	for _, sheetName := range p.file.GetSheetList() {
		got, skip, err := p.ParseSheet(sheetName, yearRange)
		if err != nil {
			continue
		}
		records = append(records, got...)
		skipped += skip
		parsedSheets++
	}
	if parsedSheets == 0 {
		return nil, 0, fmt.Errorf("no population sheet in %s", p.sourceFile)
	}
	return records, skipped, nil
}

// ParseSheet parses one population sheet. Rows outside the year range and
// rows with non-positive population are skipped and counted.
func (p *PopulationParser) ParseSheet(sheetName string, yearRange YearRange) ([]*model.PopulationObservation, int, error) {
	rows, err := p.file.GetRows(sheetName)
	if err != nil {
		return nil, 0, fmt.Errorf("read sheet %s: %w", sheetName, err)
	}
	if len(rows) < 2 {
		return nil, 0, fmt.Errorf("sheet %s has no data rows", sheetName)
	}

	headerRow := FindHeaderRow(rows, []string{"YR", "AGE", "SEX", "POP"}, 40)
	if headerRow < 0 {
		headerRow = FindYearHeaderRow(rows, 25)
	}
	if headerRow < 0 {
		return nil, 0, fmt.Errorf("sheet %s has no header row", sheetName)
	}

	fields := p.mapper.MapColumns(rows[headerRow])
	have := map[Field]bool{}
	for _, f := range fields {
		have[f] = true
	}
	if !have[FieldYear] || !have[FieldPopulation] {
		return nil, 0, fmt.Errorf("sheet %s lacks year/population columns", sheetName)
	}

	var records []*model.PopulationObservation
	skipped := 0
	for _, row := range rows[headerRow+1:] {
		obs := &model.PopulationObservation{
			Sex:        "All",
			AgeGroup:   "All ages",
			SourceFile: p.sourceFile,
		}
		for colIdx, field := range fields {
			if colIdx >= len(row) {
				continue
			}
			value := strings.TrimSpace(row[colIdx])
			if value == "" {
				continue
			}
			switch field {
			case FieldYear:
				obs.Year = ParseYear(value)
			case FieldSex:
				obs.Sex = NormalizeSex(value)
			case FieldAge:
				obs.AgeGroup = NormalizeAge(value)
			case FieldPopulation:
				obs.Population = ParseFloat(value)
			}
		}

		if obs.Year == 0 || !yearRange.Contains(obs.Year) || obs.Population <= 0 {
			skipped++
			continue
		}
		records = append(records, obs)
	}

	return records, skipped, nil
}
