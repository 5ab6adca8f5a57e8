// Package fiscal extracts public sector finance series from the ONS
// monthly dataset and sums them into UK financial years (April to
// March, labelled by the calendar year containing April).
package fiscal

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"ukstats/internal/model"
)

// DefaultSeries are the columns extracted from the public sector
// finances dataset.
var DefaultSeries = []model.FiscalSeries{
	{OutputColumn: "ps_net_investment_ex_banks", ONSName: "Public sector net investment excluding public sector banks"},
	{OutputColumn: "total_receipts_ex_banks", ONSName: "Public sector current receipts excluding public sector banks"},
	{OutputColumn: "paye_income_tax", ONSName: "Central government PAYE income tax receipts"},
}

// FinancialYearStart returns the calendar year of the April opening the
// financial year that contains t.
func FinancialYearStart(t time.Time) int {
	if t.Month() >= time.April {
		return t.Year()
	}
	return t.Year() - 1
}

// monthLayouts cover the date spellings the ONS has published, e.g.
// "2020 APR" or "Apr 2020". Month names match case-insensitively.
var monthLayouts = []string{"2006 Jan", "Jan 2006", "2006-01", "Jan-06"}

func parseMonth(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range monthLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Compile reads the monthly dataset CSV and sums the requested series
// into financial years. Rows whose Month column does not parse are
// dropped; a series missing from the dataset is an error, matching the
// published column names exactly after trimming.
func Compile(r io.Reader, series []model.FiscalSeries) ([]model.FiscalYearRow, error) {
	if len(series) == 0 {
		series = DefaultSeries
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	colIdx := map[string]int{}
	for idx, name := range header {
		colIdx[strings.TrimSpace(name)] = idx
	}

	monthCol, ok := colIdx["Month"]
	if !ok {
		return nil, fmt.Errorf("dataset has no Month column")
	}
	seriesCols := make([]int, len(series))
	for i, s := range series {
		idx, ok := colIdx[s.ONSName]
		if !ok {
			return nil, fmt.Errorf("series not found in dataset: %s", s.ONSName)
		}
		seriesCols[i] = idx
	}

	sums := map[int]map[string]float64{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if monthCol >= len(record) {
			continue
		}
		month, ok := parseMonth(record[monthCol])
		if !ok {
			continue
		}
		fy := FinancialYearStart(month)
		if sums[fy] == nil {
			sums[fy] = map[string]float64{}
		}
		for i, s := range series {
			if seriesCols[i] >= len(record) {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(record[seriesCols[i]], ",", "")), 64)
			if err != nil {
				continue
			}
			sums[fy][s.OutputColumn] += v
		}
	}

	rows := make([]model.FiscalYearRow, 0, len(sums))
	for fy, values := range sums {
		rows = append(rows, model.FiscalYearRow{FYStart: fy, Values: values})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].FYStart < rows[j].FYStart })
	return rows, nil
}
