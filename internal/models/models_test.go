package models

import "testing"

func TestParseViewMode(t *testing.T) {
	cases := []struct {
		in   string
		want ViewMode
		ok   bool
	}{
		{"", ViewSnapshot, true},
		{"snapshot", ViewSnapshot, true},
		{"Snapshot (Single Year)", ViewSnapshot, true},
		{" TREND ", ViewTrend, true},
		{"Trend (Multi-Year)", ViewTrend, true},
		{"pie", "", false},
	}
	for _, tc := range cases {
		got, err := ParseViewMode(tc.in)
		if (err == nil) != tc.ok {
			t.Errorf("ParseViewMode(%q): unexpected error state %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseViewMode(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestViewModeLabelRoundTrip(t *testing.T) {
	for _, m := range []ViewMode{ViewSnapshot, ViewTrend} {
		got, err := ParseViewMode(m.Label())
		if err != nil || got != m {
			t.Errorf("%s: label %q parsed to %q (%v)", m, m.Label(), got, err)
		}
	}
}
