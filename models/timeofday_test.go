package models

import "testing"

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in   string
		want TimeOfDay
	}{
		{"00:00", 0},
		{"09:00", 540},
		{"09:30", 570},
		{"23:59", 1439},
	}
	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.in)
		if err != nil {
			t.Errorf("ParseTimeOfDay(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTimeOfDay(%q) = %d, want %d", tc.in, got, tc.want)
		}
		if got.String() != tc.in {
			t.Errorf("round trip %q -> %q", tc.in, got.String())
		}
	}
}

func TestParseTimeOfDayRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "9am", "24:00", "12:60", "-1:00", "aa:bb",
		"09:30xyz", "9:5", "9:30", "09:3", "+9:05", "09-30"} {
		if _, err := ParseTimeOfDay(in); err == nil {
			t.Errorf("ParseTimeOfDay(%q) accepted", in)
		}
	}
}

func TestIntervalValid(t *testing.T) {
	if !(Interval{Start: 540, End: 600}).Valid() {
		t.Error("09:00-10:00 should be valid")
	}
	if (Interval{Start: 600, End: 600}).Valid() {
		t.Error("empty interval should be invalid")
	}
	if (Interval{Start: 600, End: 540}).Valid() {
		t.Error("inverted interval should be invalid")
	}
	if (Interval{Start: -10, End: 60}).Valid() {
		t.Error("negative start should be invalid")
	}
	if !(Interval{Start: 1380, End: 1440}).Valid() {
		t.Error("23:00-24:00 should be valid")
	}
}
