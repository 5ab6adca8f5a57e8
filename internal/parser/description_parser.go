package parser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"ukstats/internal/model"
)

// DescriptionParser extracts (code, description) reference pairs from an
// era workbook's description sheet.
type DescriptionParser struct {
	file       *excelize.File
	recognizer *SheetRecognizer
	mapper     *FieldMapper
}

// NewDescriptionParser creates a parser over an open workbook.
func NewDescriptionParser(file *excelize.File) *DescriptionParser {
	return &DescriptionParser{
		file:       file,
		recognizer: NewSheetRecognizer(),
		mapper:     NewFieldMapper(),
	}
}

// ParseWorkbook finds the workbook's description sheet and returns its
// code records tagged with the given era. Duplicate codes keep the first
// description seen; rows without a code are skipped.
func (p *DescriptionParser) ParseWorkbook(era model.Era) ([]model.CodeRecord, error) {
	sheetName := ""
	for _, name := range p.file.GetSheetList() {
		if strings.Contains(strings.ToLower(name), "descr") {
			sheetName = name
			break
		}
	}
	if sheetName == "" {
		return nil, fmt.Errorf("no description sheet in %s", p.file.Path)
	}
	return p.ParseSheet(sheetName, era)
}

// ParseSheet parses one description sheet.
func (p *DescriptionParser) ParseSheet(sheetName string, era model.Era) ([]model.CodeRecord, error) {
	rows, err := p.file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheetName, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %s has no data rows", sheetName)
	}

	headerRow := FindDescriptionHeaderRow(rows, 25)
	if headerRow < 0 {
		return nil, fmt.Errorf("sheet %s has no header row", sheetName)
	}

	fields := p.mapper.MapColumns(rows[headerRow])
	codeCol, descCol := -1, -1
	for idx, f := range fields {
		switch f {
		case FieldCode, FieldCause:
			if codeCol < 0 || f == FieldCode {
				codeCol = idx
			}
		case FieldDescription:
			descCol = idx
		}
	}
	if codeCol < 0 || descCol < 0 {
		return nil, fmt.Errorf("sheet %s lacks code/description columns", sheetName)
	}

	var records []model.CodeRecord
	seen := map[string]bool{}
	for _, row := range rows[headerRow+1:] {
		if codeCol >= len(row) {
			continue
		}
		code := strings.TrimSpace(row[codeCol])
		if code == "" || seen[code] {
			continue
		}
		description := ""
		if descCol < len(row) {
			description = NormalizeColumnName(row[descCol])
		}
		seen[code] = true
		records = append(records, model.CodeRecord{
			Code:        code,
			Era:         era,
			Description: description,
		})
	}

	return records, nil
}
