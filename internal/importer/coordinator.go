package importer

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"ukstats/internal/model"
	"ukstats/internal/parser"
	"ukstats/internal/store"
)

// Coordinator drives workbook imports: sheet recognition, parsing,
// persistence and run logging.
type Coordinator struct {
	store      *store.Store
	recognizer *parser.SheetRecognizer
}

// NewCoordinator creates an import coordinator.
func NewCoordinator(st *store.Store) *Coordinator {
	return &Coordinator{
		store:      st,
		recognizer: parser.NewSheetRecognizer(),
	}
}

// ImportOptions configures one workbook import.
type ImportOptions struct {
	FilePath        string
	YearRange       parser.YearRange // zero values disable bounds
	ReplaceExisting bool             // drop earlier imports of the same file first
}

// ProgressEvent is one step of an import, streamed over a channel.
type ProgressEvent struct {
	Type      string      `json:"type"` // start/info/warning/sheet_start/error/done
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// ImportMortality imports one mortality workbook asynchronously and
// returns the progress channel. Description sheets found alongside the
// data are stored as code reference records when the filename names an
// era. The channel closes after the done or error event.
func (c *Coordinator) ImportMortality(opts ImportOptions) <-chan ProgressEvent {
	progressChan := make(chan ProgressEvent, 100)

	go func() {
		defer close(progressChan)
		c.doImport(opts, progressChan)
	}()

	return progressChan
}

func (c *Coordinator) doImport(opts ImportOptions, progressChan chan ProgressEvent) {
	startTime := time.Now()
	filename := filepath.Base(opts.FilePath)

	c.sendProgress(progressChan, ProgressEvent{
		Type:      "start",
		Message:   "importing workbook",
		Data:      map[string]string{"filename": filename},
		Timestamp: time.Now(),
	})

	runID, err := c.store.CreateRunLog("import-mortality", filename)
	if err != nil {
		c.fail(progressChan, "", fmt.Sprintf("create run log: %v", err))
		return
	}

	file, err := excelize.OpenFile(opts.FilePath)
	if err != nil {
		c.fail(progressChan, runID, fmt.Sprintf("open workbook: %v", err))
		return
	}
	defer file.Close()

	if opts.ReplaceExisting {
		if err := c.store.DeleteMortalityBySourceFile(filename); err != nil {
			c.fail(progressChan, runID, fmt.Sprintf("clear earlier import: %v", err))
			return
		}
	}

	report := &parser.ImportReport{
		Filename: filename,
		Sheets:   []parser.ParseResult{},
	}

	sheetList := file.GetSheetList()
	report.TotalSheets = len(sheetList)

	c.sendProgress(progressChan, ProgressEvent{
		Type:      "info",
		Message:   fmt.Sprintf("found %d sheets", len(sheetList)),
		Data:      map[string]interface{}{"total_sheets": len(sheetList)},
		Timestamp: time.Now(),
	})

	era, hasEra := EraFromFilename(filename)

	for _, sheetName := range sheetList {
		c.processSheet(file, sheetName, opts, report, progressChan, era, hasEra)
	}

	report.Duration = time.Since(startTime)

	if err := c.store.CompleteRunLog(runID, report.TotalSheets, report.ImportedSheets,
		report.SkippedSheets, report.RowsKept, report.RowsSkipped, "completed", ""); err != nil {
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "warning",
			Message:   fmt.Sprintf("complete run log: %v", err),
			Timestamp: time.Now(),
		})
	}

	c.sendProgress(progressChan, ProgressEvent{
		Type:      "done",
		Message:   "import complete",
		Data:      report,
		Timestamp: time.Now(),
	})
}

func (c *Coordinator) processSheet(file *excelize.File, sheetName string, opts ImportOptions, report *parser.ImportReport, progressChan chan ProgressEvent, era model.Era, hasEra bool) {
	sheetStart := time.Now()

	c.sendProgress(progressChan, ProgressEvent{
		Type:      "sheet_start",
		Message:   fmt.Sprintf("parsing sheet %s", sheetName),
		Data:      map[string]string{"sheet_name": sheetName},
		Timestamp: time.Now(),
	})

	rows, err := file.GetRows(sheetName)
	if err != nil || len(rows) < 1 {
		c.recordSheetResult(report, parser.ParseResult{
			SheetName: sheetName,
			SheetKind: parser.SheetKindUnknown,
			Status:    "error",
			Errors:    []string{fmt.Sprintf("read sheet: %v", err)},
			Duration:  time.Since(sheetStart),
		})
		return
	}

	recognition := c.recognizer.Recognize(sheetName, rows)

	c.sendProgress(progressChan, ProgressEvent{
		Type:    "info",
		Message: fmt.Sprintf("sheet %q recognized as %s (confidence %.2f)", sheetName, recognition.SheetKind, recognition.Confidence),
		Data: map[string]interface{}{
			"sheet_name": sheetName,
			"sheet_kind": string(recognition.SheetKind),
			"confidence": recognition.Confidence,
		},
		Timestamp: time.Now(),
	})

	switch recognition.SheetKind {
	case parser.SheetKindMortality:
		c.processMortalitySheet(file, sheetName, opts, report, sheetStart)
	case parser.SheetKindDescriptions:
		if hasEra {
			c.processDescriptionSheet(file, sheetName, era, report, sheetStart)
		} else {
			c.recordSheetResult(report, parser.ParseResult{
				SheetName: sheetName,
				SheetKind: parser.SheetKindDescriptions,
				Status:    "skipped",
				Errors:    []string{"filename names no code era"},
				Duration:  time.Since(sheetStart),
			})
		}
	case parser.SheetKindMetadata:
		c.recordSheetResult(report, parser.ParseResult{
			SheetName: sheetName,
			SheetKind: parser.SheetKindMetadata,
			Status:    "skipped",
			Duration:  time.Since(sheetStart),
		})
	default:
		c.recordSheetResult(report, parser.ParseResult{
			SheetName: sheetName,
			SheetKind: parser.SheetKindUnknown,
			Status:    "skipped",
			Errors:    []string{"unrecognized sheet layout"},
			Duration:  time.Since(sheetStart),
		})
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "warning",
			Message:   fmt.Sprintf("skipping unrecognized sheet %s", sheetName),
			Timestamp: time.Now(),
		})
	}
}

func (c *Coordinator) processMortalitySheet(file *excelize.File, sheetName string, opts ImportOptions, report *parser.ImportReport, sheetStart time.Time) {
	mortalityParser := parser.NewMortalityParser(file)
	records, skipped, err := mortalityParser.ParseSheet(sheetName, opts.YearRange)
	if err != nil {
		c.recordSheetResult(report, parser.ParseResult{
			SheetName: sheetName,
			SheetKind: parser.SheetKindMortality,
			Status:    "error",
			Errors:    []string{err.Error()},
			Duration:  time.Since(sheetStart),
		})
		return
	}

	if err := c.store.BatchInsertMortality(records); err != nil {
		c.recordSheetResult(report, parser.ParseResult{
			SheetName: sheetName,
			SheetKind: parser.SheetKindMortality,
			Status:    "error",
			Errors:    []string{err.Error()},
			Duration:  time.Since(sheetStart),
		})
		return
	}

	c.recordSheetResult(report, parser.ParseResult{
		SheetName:   sheetName,
		SheetKind:   parser.SheetKindMortality,
		Status:      "imported",
		RowsKept:    len(records),
		RowsSkipped: skipped,
		Duration:    time.Since(sheetStart),
	})
}

func (c *Coordinator) processDescriptionSheet(file *excelize.File, sheetName string, era model.Era, report *parser.ImportReport, sheetStart time.Time) {
	descParser := parser.NewDescriptionParser(file)
	records, err := descParser.ParseSheet(sheetName, era)
	if err != nil {
		c.recordSheetResult(report, parser.ParseResult{
			SheetName: sheetName,
			SheetKind: parser.SheetKindDescriptions,
			Status:    "error",
			Errors:    []string{err.Error()},
			Duration:  time.Since(sheetStart),
		})
		return
	}

	if err := c.store.BatchInsertCodeRecords(records); err != nil {
		c.recordSheetResult(report, parser.ParseResult{
			SheetName: sheetName,
			SheetKind: parser.SheetKindDescriptions,
			Status:    "error",
			Errors:    []string{err.Error()},
			Duration:  time.Since(sheetStart),
		})
		return
	}

	c.recordSheetResult(report, parser.ParseResult{
		SheetName: sheetName,
		SheetKind: parser.SheetKindDescriptions,
		Status:    "imported",
		RowsKept:  len(records),
		Duration:  time.Since(sheetStart),
	})
}

// ImportPopulation imports one population workbook synchronously and
// returns its report.
func (c *Coordinator) ImportPopulation(opts ImportOptions) (*parser.ImportReport, error) {
	startTime := time.Now()
	filename := filepath.Base(opts.FilePath)

	runID, err := c.store.CreateRunLog("import-population", filename)
	if err != nil {
		return nil, err
	}

	file, err := excelize.OpenFile(opts.FilePath)
	if err != nil {
		_ = c.store.CompleteRunLog(runID, 0, 0, 0, 0, 0, "failed", err.Error())
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer file.Close()

	populationParser := parser.NewPopulationParser(file)
	records, skipped, err := populationParser.ParseWorkbook(opts.YearRange)
	if err != nil {
		_ = c.store.CompleteRunLog(runID, 0, 0, 0, 0, 0, "failed", err.Error())
		return nil, err
	}

	if err := c.store.BatchInsertPopulation(records); err != nil {
		_ = c.store.CompleteRunLog(runID, 0, 0, 0, 0, 0, "failed", err.Error())
		return nil, err
	}

	report := &parser.ImportReport{
		Filename:       filename,
		TotalSheets:    len(file.GetSheetList()),
		ImportedSheets: 1,
		RowsKept:       len(records),
		RowsSkipped:    skipped,
		Duration:       time.Since(startTime),
	}

	if err := c.store.CompleteRunLog(runID, report.TotalSheets, report.ImportedSheets,
		report.SkippedSheets, report.RowsKept, report.RowsSkipped, "completed", ""); err != nil {
		return report, err
	}
	return report, nil
}

func (c *Coordinator) fail(progressChan chan ProgressEvent, runID, message string) {
	if runID != "" {
		_ = c.store.CompleteRunLog(runID, 0, 0, 0, 0, 0, "failed", message)
	}
	c.sendProgress(progressChan, ProgressEvent{
		Type:      "error",
		Message:   message,
		Timestamp: time.Now(),
	})
}

func (c *Coordinator) recordSheetResult(report *parser.ImportReport, result parser.ParseResult) {
	report.Sheets = append(report.Sheets, result)

	switch result.Status {
	case "imported":
		report.ImportedSheets++
	case "skipped":
		report.SkippedSheets++
	}
	report.RowsKept += result.RowsKept
	report.RowsSkipped += result.RowsSkipped
}

func (c *Coordinator) sendProgress(ch chan ProgressEvent, event ProgressEvent) {
	select {
	case ch <- event:
	default:
		// channel full, drop the event
	}
}

var eraFilenameRe = regexp.MustCompile(`icd[-_ ]?(\d+[abc]?)`)

// EraFromFilename extracts the code revision era a source workbook
// covers from its filename, e.g. "icd7_1958-1967.xlsx" or "ICD-9a.xls".
func EraFromFilename(filename string) (model.Era, bool) {
	m := eraFilenameRe.FindStringSubmatch(strings.ToLower(filename))
	if m == nil {
		return "", false
	}
	for _, r := range model.EraRanges {
		label := strings.ToLower(string(r.Era))
		revision := strings.TrimPrefix(label[:strings.Index(label, " ")], "icd-")
		if revision == m[1] {
			return r.Era, true
		}
	}
	return "", false
}
