package tz

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lockels/temporal/iso"
)

// providerSpan is one offset regime of a fake zone: offset in seconds
// east, in effect for instants in [start, end) Unix seconds. The
// math.MinInt64 and math.MaxInt64 sentinels mark unbounded spans.
type providerSpan struct {
	offset     int64
	start, end int64
}

// fakeProvider serves hand-built span tables. Zones listed in
// hideTransitions answer offset queries without transition information.
type fakeProvider struct {
	spans           map[string][]providerSpan
	hideTransitions map[string]bool
}

func (f *fakeProvider) NormalizeIdentifier(name string) (string, error) {
	for id := range f.spans {
		if strings.EqualFold(id, name) {
			return id, nil
		}
	}
	return "", fmt.Errorf("unknown zone %q", name)
}

func (f *fakeProvider) OffsetAndTransitionAt(identifier string, at iso.EpochNanoseconds) (TransitionInfo, error) {
	spans, ok := f.spans[identifier]
	if !ok {
		return TransitionInfo{}, fmt.Errorf("unknown zone %q", identifier)
	}
	sec := at.Seconds()
	for _, s := range spans {
		if sec < s.start || sec >= s.end {
			continue
		}
		info := TransitionInfo{Offset: s.offset}
		if s.start != math.MinInt64 && !f.hideTransitions[identifier] {
			info.Transition = iso.FromUnix(s.start, 0)
			info.TransitionKnown = true
		}
		return info, nil
	}
	return TransitionInfo{}, fmt.Errorf("no span covers %v", at)
}

func (f *fakeProvider) PossibleInstantsAt(identifier string, dt iso.DateTime) ([]iso.EpochNanoseconds, error) {
	spans, ok := f.spans[identifier]
	if !ok {
		return nil, fmt.Errorf("unknown zone %q", identifier)
	}
	localSec := dt.Date.EpochDays()*86400 +
		int64(dt.Time.Hour)*3600 + int64(dt.Time.Minute)*60 + int64(dt.Time.Second)
	subNanos := int64(dt.Time.Millisecond)*1e6 +
		int64(dt.Time.Microsecond)*1e3 + int64(dt.Time.Nanosecond)
	var out []iso.EpochNanoseconds
	for _, s := range spans {
		c := localSec - s.offset
		if c >= s.start && c < s.end {
			out = append(out, iso.FromUnix(c, subNanos))
		}
	}
	return out, nil
}

// newYork covers 2025 with the real US eastern transitions:
// to EDT at 2025-03-09T07:00Z, back to EST at 2025-11-02T06:00Z.
const (
	nySpring = 1741503600
	nyFall   = 1762063200
)

func testProvider() *fakeProvider {
	return &fakeProvider{
		spans: map[string][]providerSpan{
			"America/New_York": {
				{offset: -5 * 3600, start: math.MinInt64, end: nySpring},
				{offset: -4 * 3600, start: nySpring, end: nyFall},
				{offset: -5 * 3600, start: nyFall, end: math.MaxInt64},
			},
			// Daylight time starts at local midnight, skipping it:
			// 2024-10-06T00:00-04:00 never occurs.
			"America/Asuncion": {
				{offset: -4 * 3600, start: math.MinInt64, end: 1728187200},
				{offset: -3 * 3600, start: 1728187200, end: math.MaxInt64},
			},
		},
		hideTransitions: map[string]bool{},
	}
}

func dt(y, mo, d, h, mi int) iso.DateTime {
	return iso.DateTime{
		Date: iso.Date{Year: int32(y), Month: uint8(mo), Day: uint8(d)},
		Time: iso.Time{Hour: uint8(h), Minute: uint8(mi)},
	}
}

func TestOffsetNanosecondsAt(t *testing.T) {
	p := testProvider()
	ny := Named("America/New_York")

	// 2025-07-01T00:00Z, daylight time.
	got, err := ny.OffsetNanosecondsAt(iso.FromUnix(1751328000, 0), p)
	if err != nil {
		t.Fatal(err)
	}
	if want := int64(-4 * 3600 * nsPerSecond); got != want {
		t.Errorf("summer offset = %d, want %d", got, want)
	}

	// 2025-01-01T00:00Z, standard time.
	got, err = ny.OffsetNanosecondsAt(iso.FromUnix(1735689600, 0), p)
	if err != nil {
		t.Fatal(err)
	}
	if want := int64(-5 * 3600 * nsPerSecond); got != want {
		t.Errorf("winter offset = %d, want %d", got, want)
	}

	// Fixed-offset zones answer without touching the provider.
	fixed := Offset(FromMinutes(330))
	got, err = fixed.OffsetNanosecondsAt(iso.FromUnix(0, 0), nil)
	if err != nil {
		t.Fatal(err)
	}
	if want := int64(330 * 60 * nsPerSecond); got != want {
		t.Errorf("fixed offset = %d, want %d", got, want)
	}
}

func TestDateTimeAt(t *testing.T) {
	p := testProvider()
	ny := Named("America/New_York")

	// 2025-07-01T00:00Z reads as the prior evening in New York.
	got, err := ny.DateTimeAt(iso.FromUnix(1751328000, 0), p)
	if err != nil {
		t.Fatal(err)
	}
	want := dt(2025, 6, 30, 20, 0)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("local reading mismatch (-want +got):\n%s", diff)
	}
}

func TestPossibleInstantsFor(t *testing.T) {
	p := testProvider()
	ny := Named("America/New_York")

	tests := []struct {
		name string
		dt   iso.DateTime
		want []int64 // Unix seconds
	}{
		{"unambiguous", dt(2025, 7, 1, 12, 0), []int64{1751385600}},
		{"gap", dt(2025, 3, 9, 2, 30), nil},
		{"fold", dt(2025, 11, 2, 1, 30), []int64{1762061400, 1762065000}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ny.PossibleInstantsFor(tt.dt, p)
			if err != nil {
				t.Fatal(err)
			}
			var want []iso.EpochNanoseconds
			for _, sec := range tt.want {
				want = append(want, iso.FromUnix(sec, 0))
			}
			if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b iso.EpochNanoseconds) bool {
				return a.Compare(b) == 0
			})); diff != "" {
				t.Errorf("instants mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPossibleInstantsForFixedOffset(t *testing.T) {
	zone := Offset(FromMinutes(330)) // +05:30

	got, err := zone.PossibleInstantsFor(dt(2025, 7, 1, 12, 0), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Compare(iso.FromUnix(1751351400, 0)) != 0 {
		t.Errorf("instants = %v, want [1751351400s]", got)
	}
}

func TestPossibleInstantsForDateOutOfRange(t *testing.T) {
	p := testProvider()
	far := iso.DateTime{Date: iso.Date{Year: 300_000, Month: 1, Day: 1}}

	_, err := Named("America/New_York").PossibleInstantsFor(far, p)
	if !errors.Is(err, ErrDateOutOfRange) {
		t.Errorf("named zone: got %v, want ErrDateOutOfRange", err)
	}

	_, err = Offset(FromMinutes(0)).PossibleInstantsFor(far, nil)
	if !errors.Is(err, ErrDateOutOfRange) {
		t.Errorf("fixed zone: got %v, want ErrDateOutOfRange", err)
	}
}

func TestPossibleInstantsForInstantOutOfRange(t *testing.T) {
	// The last representable day at noon, shifted east past the end of
	// the instant range by a westward offset.
	last := iso.DateFromEpochDays(100_000_000)
	dt := iso.DateTime{Date: last, Time: iso.Time{Hour: 12}}

	_, err := Offset(FromMinutes(-300)).PossibleInstantsFor(dt, nil)
	if !errors.Is(err, ErrInstantOutOfRange) {
		t.Errorf("got %v, want ErrInstantOutOfRange", err)
	}
}

func TestInstantForFold(t *testing.T) {
	p := testProvider()
	ny := Named("America/New_York")
	fold := dt(2025, 11, 2, 1, 30)

	tests := []struct {
		policy Disambiguation
		want   int64
	}{
		{Compatible, 1762061400},
		{Earlier, 1762061400},
		{Later, 1762065000},
	}
	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			got, err := ny.InstantFor(fold, tt.policy, p)
			if err != nil {
				t.Fatal(err)
			}
			if got.Compare(iso.FromUnix(tt.want, 0)) != 0 {
				t.Errorf("instant = %v, want %ds", got, tt.want)
			}
		})
	}

	if _, err := ny.InstantFor(fold, Reject, p); !errors.Is(err, ErrAmbiguousTime) {
		t.Errorf("reject: got %v, want ErrAmbiguousTime", err)
	}
}

func TestInstantForGap(t *testing.T) {
	p := testProvider()
	ny := Named("America/New_York")
	gap := dt(2025, 3, 9, 2, 30)

	tests := []struct {
		policy Disambiguation
		want   int64
	}{
		// The skipped half hour resolves an hour forward, 03:30 EDT.
		{Compatible, 1741505400},
		{Later, 1741505400},
		// Or an hour back, 01:30 EST.
		{Earlier, 1741501800},
	}
	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			got, err := ny.InstantFor(gap, tt.policy, p)
			if err != nil {
				t.Fatal(err)
			}
			if got.Compare(iso.FromUnix(tt.want, 0)) != 0 {
				t.Errorf("instant = %v, want %ds", got, tt.want)
			}
		})
	}

	if _, err := ny.InstantFor(gap, Reject, p); !errors.Is(err, ErrAmbiguousTime) {
		t.Errorf("reject: got %v, want ErrAmbiguousTime", err)
	}
}

func TestInstantForRoundTrips(t *testing.T) {
	p := testProvider()
	ny := Named("America/New_York")

	// An unambiguous local time maps back to itself through the
	// instant it denotes.
	local := dt(2025, 7, 1, 12, 0)
	instant, err := ny.InstantFor(local, Compatible, p)
	if err != nil {
		t.Fatal(err)
	}
	back, err := ny.DateTimeAt(instant, p)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(local, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestStartOfDay(t *testing.T) {
	p := testProvider()

	// An ordinary day starts at local midnight.
	got, err := Named("America/New_York").StartOfDay(iso.Date{Year: 2025, Month: 7, Day: 1}, p)
	if err != nil {
		t.Fatal(err)
	}
	if got.Compare(iso.FromUnix(1751342400, 0)) != 0 {
		t.Errorf("start of day = %v, want 2025-07-01T04:00Z", got)
	}

	// A day whose midnight was skipped starts at the transition.
	got, err = Named("America/Asuncion").StartOfDay(iso.Date{Year: 2024, Month: 10, Day: 6}, p)
	if err != nil {
		t.Fatal(err)
	}
	if got.Compare(iso.FromUnix(1728187200, 0)) != 0 {
		t.Errorf("start of skipped day = %v, want 2024-10-06T04:00Z", got)
	}

	// Fixed-offset zones always start at midnight.
	got, err = Offset(FromMinutes(-240)).StartOfDay(iso.Date{Year: 2024, Month: 10, Day: 6}, p)
	if err != nil {
		t.Fatal(err)
	}
	if got.Compare(iso.FromUnix(1728187200, 0)) != 0 {
		t.Errorf("fixed-offset start of day = %v, want 2024-10-06T04:00Z", got)
	}
}

func TestStartOfDayUndetermined(t *testing.T) {
	p := testProvider()
	p.hideTransitions["America/Asuncion"] = true

	_, err := Named("America/Asuncion").StartOfDay(iso.Date{Year: 2024, Month: 10, Day: 6}, p)
	if !errors.Is(err, ErrStartOfDayUndetermined) {
		t.Errorf("got %v, want ErrStartOfDayUndetermined", err)
	}
}
