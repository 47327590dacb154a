package model

import "testing"

func TestParseMinuteOfDay(t *testing.T) {
	cases := []struct {
		in      string
		want    MinuteOfDay
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"14:05:30", 845, false}, // legacy rows carry seconds
		{"24:00", 0, true},
		{"9:3", 0, true},
		{"", 0, true},
		{"noon", 0, true},
	}

	for _, tc := range cases {
		got, err := ParseMinuteOfDay(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseMinuteOfDay(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseMinuteOfDay(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseMinuteOfDay(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestMinuteOfDayString(t *testing.T) {
	if got := MinuteOfDay(570).String(); got != "09:30" {
		t.Fatalf("expected 09:30, got %s", got)
	}
	if got := MinuteOfDay(0).String(); got != "00:00" {
		t.Fatalf("expected 00:00, got %s", got)
	}
}

func TestParseCalendarDate(t *testing.T) {
	if _, err := ParseCalendarDate("2026-09-01"); err != nil {
		t.Fatalf("valid date rejected: %v", err)
	}
	for _, bad := range []string{"2026-13-01", "01-09-2026", "2026/09/01", ""} {
		if _, err := ParseCalendarDate(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestCalendarDateBefore(t *testing.T) {
	a, b := CalendarDate("2026-08-31"), CalendarDate("2026-09-01")
	if !a.Before(b) {
		t.Fatal("2026-08-31 must sort before 2026-09-01")
	}
	if b.Before(a) || b.Before(b) {
		t.Fatal("Before must be a strict ordering")
	}
}
