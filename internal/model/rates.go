package model

// Rate column names carry their denominator scope in the name itself.
// Age-group-scoped rates divide by the population of that age/sex slice,
// total-population rates divide by the whole-year population. The two
// bases are not interchangeable, so the distinction lives in the header.
const (
	ColRatePer100kAgeGroup = "mortality_rate_per_100k_age_group_population"
	ColRatePer100kTotal    = "mortality_rate_per_100k_total_population"
	ColPopulationAgeGroup  = "population_age_group"
	ColPopulationTotal     = "population_total"
)

// CauseRate is a per-100k mortality rate for one (year, cause, sex, age
// group), scoped to the population of that age group.
type CauseRate struct {
	Year               int     `json:"year"`
	Cause              string  `json:"cause"`
	CategoryID         string  `json:"categoryId,omitempty"`
	CategoryName       string  `json:"categoryName,omitempty"`
	Sex                string  `json:"sex"`
	AgeGroup           string  `json:"ageGroup"`
	Deaths             float64 `json:"deaths"`
	PopulationAgeGroup float64 `json:"populationAgeGroup"`
	RatePer100k        float64 `json:"ratePer100kAgeGroupPopulation"`
}

// AgeGroupRate is a per-100k all-cause rate for one (year, sex, age group).
type AgeGroupRate struct {
	Year               int     `json:"year"`
	Sex                string  `json:"sex"`
	AgeGroup           string  `json:"ageGroup"`
	Deaths             float64 `json:"deaths"`
	PopulationAgeGroup float64 `json:"populationAgeGroup"`
	RatePer100k        float64 `json:"ratePer100kAgeGroupPopulation"`
}

// YearlyRate is the all-cause rate for one year against total population.
type YearlyRate struct {
	Year            int     `json:"year"`
	Deaths          float64 `json:"deaths"`
	PopulationTotal float64 `json:"populationTotal"`
	RatePer100k     float64 `json:"ratePer100kTotalPopulation"`
}
