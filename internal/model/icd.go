package model

// Confidence labels how a harmonized category assignment was derived.
type Confidence string

const (
	ConfidenceHigh     Confidence = "high"     // >= 2 keyword hits
	ConfidenceMedium   Confidence = "medium"   // exactly 1 keyword hit
	ConfidenceLow      Confidence = "low"      // no hits, fallback category
	ConfidenceOverride Confidence = "override" // manual override table
)

// CodeRecord is one cause-of-death code as published for a single era.
// Records are write-once reference data extracted from the source workbooks.
type CodeRecord struct {
	Code        string `json:"code"`
	Era         Era    `json:"era"`
	Description string `json:"description"`
}

// Assignment maps a (code, era) pair to exactly one harmonized category.
type Assignment struct {
	Code         string     `json:"code"`
	Era          Era        `json:"era"`
	Description  string     `json:"description"`
	CategoryID   string     `json:"categoryId"`
	CategoryName string     `json:"categoryName"`
	Confidence   Confidence `json:"confidence"`
}
