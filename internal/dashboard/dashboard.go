// Package dashboard renders self-contained HTML charts of the compiled
// series. Data is embedded as JSON and drawn client-side with Plotly.
package dashboard

import (
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"

	"ukstats/internal/model"
	"ukstats/internal/store"
)

// Builder renders dashboards from computed series.
type Builder struct {
	store *store.Store
}

// NewBuilder creates a dashboard builder.
func NewBuilder(st *store.Store) *Builder {
	return &Builder{store: st}
}

type trace struct {
	Name string    `json:"name"`
	X    []int     `json:"x"`
	Y    []float64 `json:"y"`
}

type chart struct {
	DivID  string
	Title  string
	YTitle string
	Traces template.JS
}

var pageTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="https://cdn.plot.ly/plotly-2.35.2.min.js"></script>
<style>
body { font-family: sans-serif; margin: 2rem; }
.chart { width: 100%; height: 480px; margin-bottom: 2rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{range .Charts}}<div id="{{.DivID}}" class="chart"></div>
{{end}}
<script>
{{range .Charts}}Plotly.newPlot("{{.DivID}}", {{.Traces}}, {
  title: {text: "{{.Title}}"},
  xaxis: {title: {text: "Year"}},
  yaxis: {title: {text: "{{.YTitle}}"}}
});
{{end}}</script>
</body>
</html>
`))

type page struct {
	Title  string
	Charts []chart
}

func tracesJSON(traces []trace) (template.JS, error) {
	data, err := json.Marshal(traces)
	if err != nil {
		return "", fmt.Errorf("encode traces: %w", err)
	}
	return template.JS(data), nil
}

// WriteMortalityDashboard renders the mortality overview page: the
// all-cause yearly rate and per-category death counts over time.
func (b *Builder) WriteMortalityDashboard(path string, yearly []model.YearlyRate) error {
	var charts []chart

	yearlyTrace := trace{Name: "All causes"}
	for _, r := range yearly {
		yearlyTrace.X = append(yearlyTrace.X, r.Year)
		yearlyTrace.Y = append(yearlyTrace.Y, r.RatePer100k)
	}
	traces, err := tracesJSON([]trace{yearlyTrace})
	if err != nil {
		return err
	}
	charts = append(charts, chart{
		DivID:  "yearly-rate",
		Title:  "All-cause mortality per 100k (total population)",
		YTitle: "Deaths per 100k",
		Traces: traces,
	})

	categoryChart, err := b.categoryChart()
	if err != nil {
		return err
	}
	if categoryChart != nil {
		charts = append(charts, *categoryChart)
	}

	return writePage(path, page{Title: "UK mortality 1901-2025", Charts: charts})
}

func (b *Builder) categoryChart() (*chart, error) {
	obs, err := b.store.GetHarmonizedMortality(store.MortalityQueryOptions{})
	if err != nil {
		return nil, fmt.Errorf("load harmonized mortality: %w", err)
	}
	if len(obs) == 0 {
		return nil, nil
	}

	type key struct {
		category string
		year     int
	}
	sums := map[key]float64{}
	names := map[string]bool{}
	years := map[int]bool{}
	for _, o := range obs {
		name := o.CategoryName
		if name == "" {
			continue
		}
		sums[key{name, o.Year}] += o.Deaths
		names[name] = true
		years[o.Year] = true
	}

	var sortedYears []int
	for y := range years {
		sortedYears = append(sortedYears, y)
	}
	sort.Ints(sortedYears)

	var traces []trace
	for name := range names {
		t := trace{Name: name}
		for _, y := range sortedYears {
			t.X = append(t.X, y)
			t.Y = append(t.Y, sums[key{name, y}])
		}
		traces = append(traces, t)
	}
	sort.Slice(traces, func(i, j int) bool { return traces[i].Name < traces[j].Name })

	data, err := tracesJSON(traces)
	if err != nil {
		return nil, err
	}
	return &chart{
		DivID:  "category-deaths",
		Title:  "Deaths per harmonized category",
		YTitle: "Deaths",
		Traces: data,
	}, nil
}

// WriteFiscalDashboard renders the fiscal series page.
func (b *Builder) WriteFiscalDashboard(path string, rows []model.FiscalYearRow, series []model.FiscalSeries) error {
	var traces []trace
	for _, s := range series {
		t := trace{Name: s.OutputColumn}
		for _, r := range rows {
			t.X = append(t.X, r.FYStart)
			t.Y = append(t.Y, r.Values[s.OutputColumn])
		}
		traces = append(traces, t)
	}
	data, err := tracesJSON(traces)
	if err != nil {
		return err
	}

	return writePage(path, page{
		Title: "UK public sector finances by financial year",
		Charts: []chart{{
			DivID:  "fiscal-series",
			Title:  "Financial year sums (April to March)",
			YTitle: "GBP million",
			Traces: data,
		}},
	})
}

func writePage(path string, p page) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return pageTemplate.Execute(f, p)
}
