package inventory

import (
	"math"
	"reflect"
	"testing"
	"time"
)

func TestParseSheet(t *testing.T) {
	tests := []struct {
		name        string
		raw         [][]string
		wantHeaders []string
		wantRows    [][]string
	}{
		{
			name:        "empty sheet",
			raw:         nil,
			wantHeaders: nil,
			wantRows:    nil,
		},
		{
			name:        "duplicate and blank headers",
			raw:         [][]string{{"A", "", "A", "A"}, {"1", "2", "3", "4"}},
			wantHeaders: []string{"A", "Unnamed: 1", "A.1", "A.2"},
			wantRows:    [][]string{{"1", "2", "3", "4"}},
		},
		{
			name:        "short rows are padded",
			raw:         [][]string{{"A", "B", "C"}, {"1"}},
			wantHeaders: []string{"A", "B", "C"},
			wantRows:    [][]string{{"1", "", ""}},
		},
		{
			name:        "rows wider than header get unnamed columns",
			raw:         [][]string{{"A"}, {"1", "2"}},
			wantHeaders: []string{"A", "Unnamed: 1"},
			wantRows:    [][]string{{"1", "2"}},
		},
		{
			name:        "blank rows are skipped",
			raw:         [][]string{{"A"}, {""}, {"  "}, {}, {"x"}},
			wantHeaders: []string{"A"},
			wantRows:    [][]string{{"x"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseSheet(tt.raw)
			if !reflect.DeepEqual(got.headers, tt.wantHeaders) {
				t.Errorf("headers = %q, want %q", got.headers, tt.wantHeaders)
			}
			if len(got.rows) != len(tt.wantRows) {
				t.Fatalf("rows = %q, want %q", got.rows, tt.wantRows)
			}
			for i := range tt.wantRows {
				if !reflect.DeepEqual(got.rows[i], tt.wantRows[i]) {
					t.Errorf("row %d = %q, want %q", i, got.rows[i], tt.wantRows[i])
				}
			}
		})
	}
}

func TestToNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"5", 5},
		{" 7.5 ", 7.5},
		{"-3", -3},
		{"1e3", 1000},
		{"", 0},
		{"N/A", 0},
		{"1,234", 0},
		{"NaN", 0},
		{"Inf", 0},
		{"1e400", 0},
		{"1e300", 1e300},
		{"-1e-400", 0},
		{"1e20000000", 0},
		{"1e-20000000", 0},
		{"0e-99999999", 0},
	}

	for _, tt := range tests {
		if got := toNumber(tt.in); got != tt.want {
			t.Errorf("toNumber(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestToNumberHugeExponentIsCheap(t *testing.T) {
	start := time.Now()
	for _, cell := range []string{"1e-2000000000", "9e2000000000", "-5e-1999999999"} {
		if got := toNumber(cell); got != 0 {
			t.Errorf("toNumber(%q) = %v, want 0", cell, got)
		}
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("parsing huge exponents took %s", elapsed)
	}
}

func TestFormatNumberNonFinite(t *testing.T) {
	for _, v := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		if got := formatNumber(v); got != "0" {
			t.Errorf("formatNumber(%v) = %q, want 0", v, got)
		}
	}
}

func TestFormatting(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"currency", FormatCurrency(1234.5), "$1,234.50"},
		{"currency zero", FormatCurrency(0), "$0.00"},
		{"currency millions", FormatCurrency(1234567.891), "$1,234,567.89"},
		{"currency negative", FormatCurrency(-12), "-$12.00"},
		{"percentage", FormatPercentage(77.7777), "77.8%"},
		{"percentage zero", FormatPercentage(0), "0.0%"},
		{"percentage whole", FormatPercentage(100), "100.0%"},
		{"number", FormatNumber(1234567), "1,234,567"},
		{"number rounds", FormatNumber(1234.6), "1,235"},
		{"number half to even down", FormatNumber(2.5), "2"},
		{"number half to even up", FormatNumber(3.5), "4"},
		{"number half zero", FormatNumber(0.5), "0"},
		{"number half thousands", FormatNumber(1234.5), "1,234"},
		{"number small", FormatNumber(35), "35"},
		{"ratio", FormatRatio(2.2), "2.20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}
