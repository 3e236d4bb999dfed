package tz

import (
	"errors"
	"testing"
)

func TestZeroValueIsUTC(t *testing.T) {
	var zone TimeZone
	if got := zone.Identifier(); got != "UTC" {
		t.Errorf("zero value Identifier() = %q, want UTC", got)
	}
	if Named("UTC") != zone {
		t.Error("Named(UTC) != zero value")
	}
}

func TestFromIdentifier(t *testing.T) {
	p := testProvider()

	tests := []struct {
		in   string
		want string
	}{
		{"America/New_York", "America/New_York"},
		{"america/new_york", "America/New_York"}, // canonicalized
		{"+05:30", "+05:30"},
		{"-08:00", "-08:00"},
		{"+0530", "+05:30"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			zone, err := FromIdentifier(tt.in, p)
			if err != nil {
				t.Fatal(err)
			}
			if got := zone.Identifier(); got != tt.want {
				t.Errorf("Identifier() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFromIdentifierErrors(t *testing.T) {
	p := testProvider()

	for _, in := range []string{
		"",
		"Mars/Olympus_Mons", // unknown to the provider
		"+05:30:30",         // identifiers are minute precision
		"../etc/passwd",
		"America//New_York",
		"1America/New_York",
	} {
		t.Run(in, func(t *testing.T) {
			if _, err := FromIdentifier(in, p); !errors.Is(err, ErrInvalidIdentifier) {
				t.Errorf("got %v, want ErrInvalidIdentifier", err)
			}
		})
	}
}

func TestFromOffsetTextKeepsSubMinutePrecision(t *testing.T) {
	zone, err := FromOffsetText("+05:30:30.5")
	if err != nil {
		t.Fatal(err)
	}
	if got := zone.Identifier(); got != "+05:30:30.5" {
		t.Errorf("Identifier() = %q, want +05:30:30.5", got)
	}
}

func TestFromText(t *testing.T) {
	p := testProvider()

	tests := []struct {
		in   string
		want string
	}{
		{"America/New_York", "America/New_York"},
		{"+09:30", "+09:30"},
		{"2025-07-01T12:00:00[America/New_York]", "America/New_York"},
		{"2025-07-01T12:00:00+02:00[america/new_york]", "America/New_York"},
		{"2025-07-01T12:00:00[!America/New_York]", "America/New_York"},
		{"2025-07-01T12:00:00[+05:30]", "+05:30"},
		{"2025-07-01T12:00:00+02:00", "+02:00"},
		{"2025-07-01t12:00:00-08:00", "-08:00"},
		{"2025-07-01 12:00:00+02:00", "+02:00"},
		// A trailing offset with seconds narrows to minute precision.
		{"2025-07-01T12:00:00+05:30:30", "+05:30"},
		// The designator resolves directly; the test provider knows
		// no "UTC" zone.
		{"2025-07-01T12:00:00Z", "UTC"},
		{"2025-07-01T12:00:00z", "UTC"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			zone, err := FromText(tt.in, p)
			if err != nil {
				t.Fatal(err)
			}
			if got := zone.Identifier(); got != tt.want {
				t.Errorf("Identifier() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFromTextErrors(t *testing.T) {
	p := testProvider()

	for _, in := range []string{
		"",
		"2025-07-01",          // a bare date denotes no time zone
		"2025-07-01T12:00:00", // no annotation, offset or designator
		"2025-07-01T12:00:00[Mars/Olympus_Mons]",
		"2025-07-01T12:00:00[+05:30:30]", // sub-minute annotation
		"not a time zone",
		"12:00:00+02:00", // time without a date
	} {
		t.Run(in, func(t *testing.T) {
			if _, err := FromText(in, p); !errors.Is(err, ErrInvalidTimeZoneString) {
				t.Errorf("got %v, want ErrInvalidTimeZoneString", err)
			}
		})
	}
}

func TestParseDisambiguation(t *testing.T) {
	for s, want := range map[string]Disambiguation{
		"compatible": Compatible,
		"earlier":    Earlier,
		"later":      Later,
		"reject":     Reject,
	} {
		got, err := ParseDisambiguation(s)
		if err != nil {
			t.Errorf("ParseDisambiguation(%q): %v", s, err)
			continue
		}
		if got != want {
			t.Errorf("ParseDisambiguation(%q) = %v, want %v", s, got, want)
		}
		if got.String() != s {
			t.Errorf("String() = %q, want %q", got.String(), s)
		}
	}
	if _, err := ParseDisambiguation("sometimes"); err == nil {
		t.Error("expected error for unknown policy")
	}
}
