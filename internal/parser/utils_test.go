package parser

import "testing"

func TestNormalizeToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"ICD-10", "ICD10"},
		{"icd 10", "ICD10"},
		{"  Icd_10 ", "ICD10"},
		{"NDTHS", "NDTHS"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeToken(tt.in); got != tt.want {
			t.Errorf("NormalizeToken(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseYear(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int
	}{
		{"1953", 1953},
		{"1953.0", 1953},
		{" 2001 ", 2001},
		{"1799", 0},
		{"2101", 0},
		{"53", 0},
		{"year", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := ParseYear(tt.in); got != tt.want {
			t.Errorf("ParseYear(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseFloat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want float64
	}{
		{"1,234", 1234},
		{"12.5%", 12.5},
		{" 42 ", 42},
		{"n/a", 0},
	}
	for _, tt := range tests {
		if got := ParseFloat(tt.in); got != tt.want {
			t.Errorf("ParseFloat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeSex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"1", "Male"},
		{"1.0", "Male"},
		{"males", "Male"},
		{"M", "Male"},
		{"2", "Female"},
		{"F", "Female"},
		{"Females.", "Female"},
		{"Persons", "All"},
		{"both", "All"},
		{"", "All"},
		{"Total", "All"},
		{"other", "other"},
	}
	for _, tt := range tests {
		if got := NormalizeSex(tt.in); got != tt.want {
			t.Errorf("NormalizeSex(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeAge(t *testing.T) {
	t.Parallel()

	if got := NormalizeAge(""); got != "All ages" {
		t.Errorf("empty age = %q, want All ages", got)
	}
	if got := NormalizeAge(" 0-4\n"); got != "0-4" {
		t.Errorf("age = %q, want 0-4", got)
	}
}
