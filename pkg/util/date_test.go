package util

import (
	"math"
	"strconv"
	"testing"
	"time"
)

func TestParseTimeRFC3339(t *testing.T) {
	s := "2024-10-10T10:10:10Z"
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeUnix(t *testing.T) {
	ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
	got, ok := ParseTime(strconv.FormatInt(ts, 10))
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Unix() != ts {
		t.Fatalf("unexpected unix %v", got.Unix())
	}
}

func TestParseTimeDate(t *testing.T) {
	got, ok := ParseTime("2023-03-01")
	if !ok || !got.Equal(time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date %v %v", got, ok)
	}
}

func TestParseTimeDefault(t *testing.T) {
	def := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC)
	got := ParseTimeDefault("", def)
	if !got.Equal(def) {
		t.Fatalf("expected default")
	}
	got = ParseTimeDefault("yesterday", def)
	if !got.Equal(def) {
		t.Fatalf("expected default for garbage")
	}
}

func TestParseDate(t *testing.T) {
	if _, ok := ParseDate("2024-13-01"); ok {
		t.Fatalf("month 13 accepted")
	}
	if _, ok := ParseDate("2024-01-31"); !ok {
		t.Fatalf("valid date rejected")
	}
}

func TestParseFloatOrNaN(t *testing.T) {
	cases := map[string]float64{
		"1.25": 1.25,
		" -3 ": -3,
		"0":    0,
		"1e3":  1000,
	}
	for in, want := range cases {
		if got := ParseFloatOrNaN(in); got != want {
			t.Fatalf("%q: got %v want %v", in, got, want)
		}
	}
	for _, in := range []string{"", ".", "n/a"} {
		if got := ParseFloatOrNaN(in); !math.IsNaN(got) {
			t.Fatalf("%q: expected NaN, got %v", in, got)
		}
	}
}
