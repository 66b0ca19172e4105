package currency

import "testing"

func TestFormat(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "CLP 0"},
		{5000, "CLP 5.000"},
		{5990, "CLP 5.990"},
		{499000, "CLP 499.000"},
		{1234567, "CLP 1.234.567"},
		{5990.4, "CLP 5.990"},
		{5990.6, "CLP 5.991"},
	}
	for _, tc := range cases {
		if got := Format(tc.amount); got != tc.want {
			t.Fatalf("Format(%v) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	cases := []struct {
		pct  float64
		want string
	}{
		{15, "15%"},
		{16.7, "16,7%"},
		{0, "0%"},
	}
	for _, tc := range cases {
		if got := FormatPercent(tc.pct); got != tc.want {
			t.Fatalf("FormatPercent(%v) = %q, want %q", tc.pct, got, tc.want)
		}
	}
}
