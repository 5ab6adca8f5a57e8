package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"ukstats/internal/model"
)

// YearRange bounds the plausible data years for one source workbook.
// Zero values disable the corresponding bound.
type YearRange struct {
	Start int
	End   int
}

// Contains reports whether year falls inside the (possibly open) range.
func (r YearRange) Contains(year int) bool {
	if r.Start > 0 && year < r.Start {
		return false
	}
	if r.End > 0 && year > r.End {
		return false
	}
	return true
}

// MortalityParser extracts mortality observations from one workbook.
type MortalityParser struct {
	file       *excelize.File
	recognizer *SheetRecognizer
	mapper     *FieldMapper
	sourceFile string
}

// NewMortalityParser creates a parser over an open workbook.
func NewMortalityParser(file *excelize.File) *MortalityParser {
	return &MortalityParser{
		file:       file,
		recognizer: NewSheetRecognizer(),
		mapper:     NewFieldMapper(),
		sourceFile: filepath.Base(file.Path),
	}
}

// ParseSheet parses one recognized mortality sheet. Rows outside the year
// range, rows without a plausible year and rows with non-positive death
// counts are skipped and counted, never fatal.
func (p *MortalityParser) ParseSheet(sheetName string, yearRange YearRange) ([]*model.MortalityObservation, int, error) {
	rows, err := p.file.GetRows(sheetName)
	if err != nil {
		return nil, 0, fmt.Errorf("read sheet %s: %w", sheetName, err)
	}
	if len(rows) < 2 {
		return nil, 0, fmt.Errorf("sheet %s has no data rows", sheetName)
	}

	recognition := p.recognizer.Recognize(sheetName, rows)
	if recognition.SheetKind != SheetKindMortality {
		return nil, 0, fmt.Errorf("sheet %s is not a mortality table (kind=%s)", sheetName, recognition.SheetKind)
	}

	fields := p.mapper.MapColumns(rows[recognition.HeaderRow])
	records, skipped := p.parseRows(rows[recognition.HeaderRow+1:], fields, sheetName, yearRange)
	return records, skipped, nil
}

func (p *MortalityParser) parseRows(rows [][]string, fields map[int]Field, sheetName string, yearRange YearRange) ([]*model.MortalityObservation, int) {
	var records []*model.MortalityObservation
	skipped := 0

	for _, row := range rows {
		obs := &model.MortalityObservation{
			Sex:         "All",
			AgeGroup:    "All ages",
			SourceSheet: sheetName,
			SourceFile:  p.sourceFile,
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
			case FieldCause:
				obs.Cause = value
			case FieldDeaths:
				obs.Deaths = ParseFloat(value)
			case FieldDescription:
				obs.CauseDescription = value
			}
		}

		if obs.Year == 0 || !yearRange.Contains(obs.Year) || obs.Deaths <= 0 {
			skipped++
			continue
		}
		if obs.Cause == "" {
			obs.Cause = "All causes"
		}
		records = append(records, obs)
	}

	return records, skipped
}
