package fiscal

import (
	"math"
	"strings"
	"testing"
	"time"

	"ukstats/internal/model"
)

func TestFinancialYearStart(t *testing.T) {
	t.Parallel()

	tests := []struct {
		date string
		want int
	}{
		{"2020-04-01", 2020}, // April opens the financial year
		{"2020-12-15", 2020},
		{"2021-01-01", 2020}, // January still belongs to the prior FY
		{"2021-03-31", 2020},
		{"2021-04-01", 2021},
	}
	for _, tt := range tests {
		d, err := time.Parse("2006-01-02", tt.date)
		if err != nil {
			t.Fatalf("parse %s: %v", tt.date, err)
		}
		if got := FinancialYearStart(d); got != tt.want {
			t.Errorf("FinancialYearStart(%s) = %d, want %d", tt.date, got, tt.want)
		}
	}
}

func TestCompile(t *testing.T) {
	t.Parallel()

	input := `Month,Public sector net investment excluding public sector banks,Public sector current receipts excluding public sector banks,Central government PAYE income tax receipts
2020 APR,10,100,50
2020 MAY,10,100,50
2021 MAR,10,100,50
2021 APR,20,200,60
not a date,99,999,999
`
	rows, err := Compile(strings.NewReader(input), DefaultSeries)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d financial years, want 2", len(rows))
	}

	// FY 2020 covers Apr 2020 through Mar 2021: three months summed
	fy2020 := rows[0]
	if fy2020.FYStart != 2020 {
		t.Fatalf("first FY = %d, want 2020", fy2020.FYStart)
	}
	if got := fy2020.Values["ps_net_investment_ex_banks"]; math.Abs(got-30) > 1e-9 {
		t.Errorf("FY2020 net investment = %v, want 30", got)
	}
	if got := fy2020.Values["paye_income_tax"]; math.Abs(got-150) > 1e-9 {
		t.Errorf("FY2020 PAYE = %v, want 150", got)
	}

	fy2021 := rows[1]
	if fy2021.FYStart != 2021 {
		t.Fatalf("second FY = %d, want 2021", fy2021.FYStart)
	}
	if got := fy2021.Values["total_receipts_ex_banks"]; math.Abs(got-200) > 1e-9 {
		t.Errorf("FY2021 receipts = %v, want 200", got)
	}
}

func TestCompileMissingSeries(t *testing.T) {
	t.Parallel()

	input := "Month,Some other column\n2020 APR,1\n"
	_, err := Compile(strings.NewReader(input), []model.FiscalSeries{
		{OutputColumn: "paye_income_tax", ONSName: "Central government PAYE income tax receipts"},
	})
	if err == nil {
		t.Fatalf("expected error for missing series")
	}
}

func TestCompileDefaultsSeries(t *testing.T) {
	t.Parallel()

	if len(DefaultSeries) != 3 {
		t.Fatalf("got %d default series, want 3", len(DefaultSeries))
	}
	for _, s := range DefaultSeries {
		if s.OutputColumn == "" || s.ONSName == "" {
			t.Fatalf("incomplete series: %+v", s)
		}
	}
}
