package importer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"ukstats/internal/model"
	"ukstats/internal/parser"
)

// ExtractDescriptions reads the code description reference pairs from an
// era workbook. The era comes from the filename; ICD-10 reference
// workbooks are labelled EraICD10.
func ExtractDescriptions(path string) ([]model.CodeRecord, model.Era, error) {
	base := filepath.Base(path)
	era, ok := EraFromFilename(base)
	if !ok {
		lower := strings.ToLower(base)
		if strings.Contains(lower, "icd10") || strings.Contains(lower, "icd-10") || strings.Contains(lower, "icd_10") {
			era = model.EraICD10
		} else {
			return nil, "", fmt.Errorf("filename names no code era: %s", base)
		}
	}

	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("open workbook: %w", err)
	}
	defer file.Close()

	records, err := parser.NewDescriptionParser(file).ParseWorkbook(era)
	if err != nil {
		return nil, "", err
	}
	return records, era, nil
}
