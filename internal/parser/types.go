package parser

import "time"

// SheetKind classifies a workbook sheet by what it holds.
type SheetKind string

const (
	SheetKindMortality    SheetKind = "mortality"    // year/sex/age/cause/deaths table
	SheetKindDescriptions SheetKind = "descriptions" // code -> description reference
	SheetKindMetadata     SheetKind = "metadata"     // contents/readme/notices, skipped
	SheetKindUnknown      SheetKind = "unknown"
)

// SheetRecognitionResult is the outcome of sheet-type recognition.
type SheetRecognitionResult struct {
	SheetName  string    `json:"sheetName"`
	SheetKind  SheetKind `json:"sheetKind"`
	Confidence float64   `json:"confidence"` // 0-1
	HeaderRow  int       `json:"headerRow"`  // -1 when no header located
}

// ParseResult summarizes one sheet of an import.
type ParseResult struct {
	SheetName   string        `json:"sheetName"`
	SheetKind   SheetKind     `json:"sheetKind"`
	Status      string        `json:"status"` // imported/skipped/error
	RowsKept    int           `json:"rowsKept"`
	RowsSkipped int           `json:"rowsSkipped"`
	Errors      []string      `json:"errors,omitempty"`
	Duration    time.Duration `json:"duration"`
}

// ImportReport summarizes a whole workbook import.
type ImportReport struct {
	Filename       string        `json:"filename"`
	TotalSheets    int           `json:"totalSheets"`
	ImportedSheets int           `json:"importedSheets"`
	SkippedSheets  int           `json:"skippedSheets"`
	RowsKept       int           `json:"rowsKept"`
	RowsSkipped    int           `json:"rowsSkipped"`
	Duration       time.Duration `json:"duration"`
	Sheets         []ParseResult `json:"sheets"`
}
