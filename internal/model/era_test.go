package model

import "testing"

func TestEraForYear(t *testing.T) {
	t.Parallel()

	tests := []struct {
		year   int
		want   Era
		wantOK bool
	}{
		{1900, "", false},
		{1901, EraICD1, true},
		{1910, EraICD1, true},
		{1911, EraICD2, true},
		{1939, EraICD4, true},
		{1940, EraICD5, true},
		{1979, EraICD9a, true},
		{1985, EraICD9b, true},
		{1994, EraICD9c, true},
		{2000, EraICD9c, true},
		{2001, "", false},
		{1800, "", false},
	}

	for _, tt := range tests {
		got, ok := EraForYear(tt.year)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("EraForYear(%d) = (%q, %v), want (%q, %v)",
				tt.year, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestEraRangesAreContiguous(t *testing.T) {
	t.Parallel()

	for i := 1; i < len(EraRanges); i++ {
		prev, cur := EraRanges[i-1], EraRanges[i]
		if cur.StartYear != prev.EndYear+1 {
			t.Errorf("gap between %s and %s: %d vs %d",
				prev.Era, cur.Era, prev.EndYear, cur.StartYear)
		}
	}
	if EraRanges[0].StartYear != 1901 {
		t.Errorf("first era starts %d, want 1901", EraRanges[0].StartYear)
	}
	if EraRanges[len(EraRanges)-1].EndYear != 2000 {
		t.Errorf("last era ends %d, want 2000", EraRanges[len(EraRanges)-1].EndYear)
	}
}
