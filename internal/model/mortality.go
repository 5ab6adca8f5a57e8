package model

// MortalityObservation is one row of the compiled death-count table:
// deaths registered in a year for one cause code, sex and age band.
type MortalityObservation struct {
	ID               int64   `json:"id"`
	Year             int     `json:"year"`
	Cause            string  `json:"cause"`
	CauseDescription string  `json:"causeDescription,omitempty"`
	Sex              string  `json:"sex"` // Male / Female / All
	AgeGroup         string  `json:"ageGroup"`
	Deaths           float64 `json:"deaths"`
	SourceSheet      string  `json:"sourceSheet,omitempty"`
	SourceFile       string  `json:"sourceFile,omitempty"`
}

// HarmonizedObservation is a mortality observation joined to its
// year-aware classification.
type HarmonizedObservation struct {
	Year             int        `json:"year"`
	Cause            string     `json:"cause"`
	CauseDescription string     `json:"causeDescription,omitempty"`
	CategoryID       string     `json:"categoryId,omitempty"`
	CategoryName     string     `json:"categoryName,omitempty"`
	Confidence       Confidence `json:"confidence,omitempty"`
	Sex              string     `json:"sex"`
	AgeGroup         string     `json:"ageGroup"`
	Deaths           float64    `json:"deaths"`
}

// YearlyTotal is total deaths registered in one year across all causes.
type YearlyTotal struct {
	Year        int     `json:"year"`
	TotalDeaths float64 `json:"totalDeaths"`
}
