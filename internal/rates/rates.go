// Package rates joins death counts to population denominators and
// computes per-100k mortality rates. Every output column name carries
// its denominator scope, since an age-group rate and a total-population
// rate for the same slice differ by orders of magnitude.
package rates

import (
	"fmt"
	"sort"

	"ukstats/internal/model"
	"ukstats/internal/store"
)

// Calculator computes mortality rates from the compiled store.
type Calculator struct {
	store *store.Store
}

// NewCalculator creates a rate calculator.
func NewCalculator(st *store.Store) *Calculator {
	return &Calculator{store: st}
}

type popKey struct {
	year     int
	sex      string
	ageGroup string
}

// denominators loads the population table into two lookup maps: one per
// (year, sex, age group) slice and one total per year. The total uses
// the All/All ages slice when published, else sums the age bands of the
// "All" sex rows to avoid double counting males and females.
func (c *Calculator) denominators() (map[popKey]float64, map[int]float64, error) {
	pops, err := c.store.GetPopulation(store.PopulationQueryOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("load population: %w", err)
	}

	bySlice := make(map[popKey]float64, len(pops))
	totals := map[int]float64{}
	summed := map[int]float64{}
	for _, p := range pops {
		bySliceKey := popKey{p.Year, p.Sex, p.AgeGroup}
		bySlice[bySliceKey] = p.Population
		if p.Sex == "All" && p.AgeGroup == "All ages" {
			totals[p.Year] = p.Population
		} else if p.Sex == "All" {
			summed[p.Year] += p.Population
		}
	}
	for year, sum := range summed {
		if _, ok := totals[year]; !ok {
			totals[year] = sum
		}
	}
	return bySlice, totals, nil
}

// CauseRates computes per-100k rates for every harmonized observation
// whose (year, sex, age group) slice has a published denominator.
// Observations without one are dropped, never approximated with a
// different denominator scope.
func (c *Calculator) CauseRates(opts store.MortalityQueryOptions) ([]model.CauseRate, error) {
	bySlice, _, err := c.denominators()
	if err != nil {
		return nil, err
	}

	obs, err := c.store.GetHarmonizedMortality(opts)
	if err != nil {
		return nil, fmt.Errorf("load mortality: %w", err)
	}

	var out []model.CauseRate
	for _, o := range obs {
		pop, ok := bySlice[popKey{o.Year, o.Sex, o.AgeGroup}]
		if !ok || pop <= 0 {
			continue
		}
		out = append(out, model.CauseRate{
			Year:               o.Year,
			Cause:              o.Cause,
			CategoryID:         o.CategoryID,
			CategoryName:       o.CategoryName,
			Sex:                o.Sex,
			AgeGroup:           o.AgeGroup,
			Deaths:             o.Deaths,
			PopulationAgeGroup: pop,
			RatePer100k:        o.Deaths / pop * 100000,
		})
	}
	return out, nil
}

// AgeGroupRates computes all-cause per-100k rates per (year, sex, age
// group) slice against that slice's own population.
func (c *Calculator) AgeGroupRates() ([]model.AgeGroupRate, error) {
	bySlice, _, err := c.denominators()
	if err != nil {
		return nil, err
	}

	obs, err := c.store.GetMortality(store.MortalityQueryOptions{})
	if err != nil {
		return nil, fmt.Errorf("load mortality: %w", err)
	}

	type sliceKey struct {
		year     int
		sex      string
		ageGroup string
	}
	deaths := map[sliceKey]float64{}
	for _, o := range obs {
		deaths[sliceKey{o.Year, o.Sex, o.AgeGroup}] += o.Deaths
	}

	var out []model.AgeGroupRate
	for k, d := range deaths {
		pop, ok := bySlice[popKey{k.year, k.sex, k.ageGroup}]
		if !ok || pop <= 0 {
			continue
		}
		out = append(out, model.AgeGroupRate{
			Year:               k.year,
			Sex:                k.sex,
			AgeGroup:           k.ageGroup,
			Deaths:             d,
			PopulationAgeGroup: pop,
			RatePer100k:        d / pop * 100000,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		if out[i].Sex != out[j].Sex {
			return out[i].Sex < out[j].Sex
		}
		return out[i].AgeGroup < out[j].AgeGroup
	})
	return out, nil
}

// YearlyRates computes the all-cause rate per year against that year's
// total population. Years without a total denominator are dropped.
func (c *Calculator) YearlyRates() ([]model.YearlyRate, error) {
	_, totals, err := c.denominators()
	if err != nil {
		return nil, err
	}

	yearly, err := c.store.GetYearlyTotals()
	if err != nil {
		return nil, fmt.Errorf("load yearly totals: %w", err)
	}

	var out []model.YearlyRate
	for _, t := range yearly {
		pop, ok := totals[t.Year]
		if !ok || pop <= 0 {
			continue
		}
		out = append(out, model.YearlyRate{
			Year:            t.Year,
			Deaths:          t.TotalDeaths,
			PopulationTotal: pop,
			RatePer100k:     t.TotalDeaths / pop * 100000,
		})
	}
	return out, nil
}
