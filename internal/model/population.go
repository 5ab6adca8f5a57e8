package model

// PopulationObservation is one row of the combined population table,
// used only as a rate denominator join key.
type PopulationObservation struct {
	ID         int64   `json:"id"`
	Year       int     `json:"year"`
	Sex        string  `json:"sex"`
	AgeGroup   string  `json:"ageGroup"`
	Population float64 `json:"population"`
	SourceFile string  `json:"sourceFile,omitempty"`
}
