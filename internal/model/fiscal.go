package model

// FiscalSeries names one column extracted from the ONS public sector
// finances dataset, keyed by the output column name.
type FiscalSeries struct {
	OutputColumn string `json:"outputColumn"`
	ONSName      string `json:"onsName"`
}

// FiscalYearRow holds one UK financial year (April-March) of summed
// monthly values, one entry per extracted series.
type FiscalYearRow struct {
	FYStart int                `json:"fyStart"` // calendar year containing April
	Values  map[string]float64 `json:"values"`  // output column -> summed value
}
