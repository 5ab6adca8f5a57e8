package model

// Era identifies the ICD revision in force for a contiguous range of years.
// The label format matches the reference spreadsheets, e.g. "ICD-1 (1901-1910)".
type Era string

const (
	EraICD1  Era = "ICD-1 (1901-1910)"
	EraICD2  Era = "ICD-2 (1911-1920)"
	EraICD3  Era = "ICD-3 (1921-1930)"
	EraICD4  Era = "ICD-4 (1931-1939)"
	EraICD5  Era = "ICD-5 (1940-1949)"
	EraICD6  Era = "ICD-6 (1950-1957)"
	EraICD7  Era = "ICD-7 (1958-1967)"
	EraICD8  Era = "ICD-8 (1968-1978)"
	EraICD9a Era = "ICD-9a (1979-1984)"
	EraICD9b Era = "ICD-9b (1985-1993)"
	EraICD9c Era = "ICD-9c (1994-2000)"

	// EraICD10 labels description records taken from the ICD-10 reference
	// workbook. It is not a harmonization era: years after 2000 keep their
	// ICD-10 codes and are never joined through EraRanges.
	EraICD10 Era = "ICD-10 (2001-)"
)

// EraRange is an era together with its inclusive year range.
type EraRange struct {
	Era       Era
	StartYear int
	EndYear   int
}

// EraRanges lists every harmonization era in chronological order.
// Years after 2000 are ICD-10 and carry no harmonization era.
var EraRanges = []EraRange{
	{EraICD1, 1901, 1910},
	{EraICD2, 1911, 1920},
	{EraICD3, 1921, 1930},
	{EraICD4, 1931, 1939},
	{EraICD5, 1940, 1949},
	{EraICD6, 1950, 1957},
	{EraICD7, 1958, 1967},
	{EraICD8, 1968, 1978},
	{EraICD9a, 1979, 1984},
	{EraICD9b, 1985, 1993},
	{EraICD9c, 1994, 2000},
}

// EraForYear returns the era whose year range contains the given year.
// The second return is false for years outside 1901-2000.
func EraForYear(year int) (Era, bool) {
	for _, r := range EraRanges {
		if year >= r.StartYear && year <= r.EndYear {
			return r.Era, true
		}
	}
	return "", false
}
