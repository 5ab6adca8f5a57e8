package parser

import "strings"

// SheetRecognizer classifies workbook sheets before parsing.
type SheetRecognizer struct {
	mapper *FieldMapper
}

// NewSheetRecognizer creates a recognizer.
func NewSheetRecognizer() *SheetRecognizer {
	return &SheetRecognizer{mapper: NewFieldMapper()}
}

// metadataSheetNames are sheets that never hold data tables.
var metadataSheetNames = []string{
	"metadata", "description", "correction notice", "contents", "readme",
	"notes", "terms and conditions",
}

// Recognize classifies one sheet from its name and rows.
//
// Description reference sheets are named for it ("descriptions",
// "icd9_descr" and similar). Mortality sheets are recognized by locating
// a header row and scoring how many standardized fields it yields;
// year+deaths are the two that make a sheet usable at all.
func (r *SheetRecognizer) Recognize(sheetName string, rows [][]string) SheetRecognitionResult {
	lowerName := strings.ToLower(strings.TrimSpace(sheetName))

	if strings.Contains(lowerName, "descr") && !strings.Contains(lowerName, "correction") {
		return SheetRecognitionResult{
			SheetName:  sheetName,
			SheetKind:  SheetKindDescriptions,
			Confidence: 0.9,
			HeaderRow:  firstHeaderRow(rows),
		}
	}

	for _, meta := range metadataSheetNames {
		if lowerName == meta {
			return SheetRecognitionResult{
				SheetName:  sheetName,
				SheetKind:  SheetKindMetadata,
				Confidence: 1,
				HeaderRow:  -1,
			}
		}
	}

	headerRow := FindHeaderRow(rows, MortalityHeaderTokens, 40)
	if headerRow < 0 {
		headerRow = FindYearHeaderRow(rows, 25)
	}
	if headerRow < 0 {
		return SheetRecognitionResult{
			SheetName:  sheetName,
			SheetKind:  SheetKindUnknown,
			Confidence: 0,
			HeaderRow:  -1,
		}
	}

	fields := r.mapper.MapColumns(rows[headerRow])
	have := map[Field]bool{}
	for _, f := range fields {
		have[f] = true
	}

	keyFields := []Field{FieldYear, FieldDeaths, FieldCause, FieldSex, FieldAge}
	matched := 0
	for _, f := range keyFields {
		if have[f] {
			matched++
		}
	}
	confidence := float64(matched) / float64(len(keyFields))

	if have[FieldYear] && have[FieldDeaths] {
		return SheetRecognitionResult{
			SheetName:  sheetName,
			SheetKind:  SheetKindMortality,
			Confidence: confidence,
			HeaderRow:  headerRow,
		}
	}

	return SheetRecognitionResult{
		SheetName:  sheetName,
		SheetKind:  SheetKindUnknown,
		Confidence: confidence,
		HeaderRow:  headerRow,
	}
}

// firstHeaderRow finds the first row with at least two non-empty cells.
func firstHeaderRow(rows [][]string) int {
	for idx, row := range rows {
		nonEmpty := 0
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				nonEmpty++
			}
		}
		if nonEmpty >= 2 {
			return idx
		}
	}
	return -1
}
