package tz

import (
	"fmt"

	"github.com/lockels/temporal/iso"
)

// OffsetNanosecondsAt returns the total offset from UTC, in nanoseconds,
// in effect at the given instant. Fixed-offset zones answer without a
// lookup and cannot fail; named zones fail only if the provider does.
func (t TimeZone) OffsetNanosecondsAt(at iso.EpochNanoseconds, p Provider) (int64, error) {
	switch t.kind {
	case kindOffset:
		return t.offset.Nanoseconds(), nil
	case kindNamed:
		info, err := p.OffsetAndTransitionAt(t.ianaName(), at)
		if err != nil {
			return 0, err
		}
		return info.Offset * nsPerSecond, nil
	default:
		panic(fmt.Sprintf("tz: unknown time zone variant %d", t.kind))
	}
}

// DateTimeAt maps an instant to the local date-time it reads as in t.
func (t TimeZone) DateTimeAt(at iso.EpochNanoseconds, p Provider) (iso.DateTime, error) {
	offset, err := t.OffsetNanosecondsAt(at, p)
	if err != nil {
		return iso.DateTime{}, err
	}
	return iso.DateTimeFromEpoch(at, offset), nil
}

// PossibleInstantsFor enumerates the absolute instants consistent with the
// local wall-clock reading dt in t: an empty slice if dt falls in a gap,
// one instant if it is unambiguous, two (ascending) if it falls in a fold.
// Fixed-offset zones always yield exactly one instant.
func (t TimeZone) PossibleInstantsFor(dt iso.DateTime, p Provider) ([]iso.EpochNanoseconds, error) {
	var candidates []iso.EpochNanoseconds
	switch t.kind {
	case kindOffset:
		// Sub-minute offsets never enter the identifier namespace that
		// feeds local-time resolution; reaching this path with one is a
		// caller bug.
		if t.offset.IsSubMinute() {
			panic("tz: sub-minute offset in local-time resolution")
		}
		balanced := iso.BalanceDateTime(
			int64(dt.Date.Year), int64(dt.Date.Month), int64(dt.Date.Day),
			int64(dt.Time.Hour), int64(dt.Time.Minute)-int64(t.offset.Minutes()),
			int64(dt.Time.Second), int64(dt.Time.Millisecond),
			int64(dt.Time.Microsecond), int64(dt.Time.Nanosecond),
		)
		if !balanced.Date.InDayRange() {
			return nil, fmt.Errorf("%w: %04d-%02d-%02d", ErrDateOutOfRange,
				balanced.Date.Year, balanced.Date.Month, balanced.Date.Day)
		}
		candidates = []iso.EpochNanoseconds{balanced.EpochNanoseconds()}
	case kindNamed:
		if !dt.Date.InDayRange() {
			return nil, fmt.Errorf("%w: %04d-%02d-%02d", ErrDateOutOfRange,
				dt.Date.Year, dt.Date.Month, dt.Date.Day)
		}
		var err error
		candidates, err = p.PossibleInstantsAt(t.ianaName(), dt)
		if err != nil {
			return nil, err
		}
	default:
		panic(fmt.Sprintf("tz: unknown time zone variant %d", t.kind))
	}

	for _, c := range candidates {
		if !c.IsValid() {
			return nil, fmt.Errorf("%w: epoch %s s", ErrInstantOutOfRange, c)
		}
	}
	return candidates, nil
}

// InstantFor resolves a local date-time to exactly one instant under the
// given disambiguation policy.
func (t TimeZone) InstantFor(dt iso.DateTime, d Disambiguation, p Provider) (iso.EpochNanoseconds, error) {
	candidates, err := t.PossibleInstantsFor(dt, p)
	if err != nil {
		return iso.EpochNanoseconds{}, err
	}
	return t.disambiguate(candidates, dt, d, p)
}

// disambiguate turns the candidate set of a local time into one instant.
//
// The gap branch probes the local time three hours either side of the
// reading. The probe width exceeds any real-world transition magnitude
// while staying inside the neighbouring unambiguous intervals; the
// transition table is assumed to never hold two transitions within three
// hours of each other, so each probe must resolve to exactly one instant.
func (t TimeZone) disambiguate(candidates []iso.EpochNanoseconds, dt iso.DateTime, d Disambiguation, p Provider) (iso.EpochNanoseconds, error) {
	switch n := len(candidates); {
	case n == 1:
		return candidates[0], nil
	case n != 0:
		// A fold: the reading occurred twice.
		switch d {
		case Compatible, Earlier:
			return candidates[0], nil
		case Later:
			return candidates[n-1], nil
		case Reject:
			return iso.EpochNanoseconds{}, fmt.Errorf("%w: local time occurs %d times", ErrAmbiguousTime, n)
		default:
			panic(fmt.Sprintf("tz: unknown disambiguation %d", d))
		}
	}

	// A gap: the reading never occurred.
	if d == Reject {
		return iso.EpochNanoseconds{}, fmt.Errorf("%w: local time was skipped", ErrAmbiguousTime)
	}

	before := dt.AddNanoseconds(-3 * nsPerHour)
	after := dt.AddNanoseconds(3 * nsPerHour)

	beforePossible, err := t.PossibleInstantsFor(before, p)
	if err != nil {
		return iso.EpochNanoseconds{}, err
	}
	if len(beforePossible) != 1 {
		panic(fmt.Sprintf("tz: probe before gap resolved to %d instants", len(beforePossible)))
	}
	afterPossible, err := t.PossibleInstantsFor(after, p)
	if err != nil {
		return iso.EpochNanoseconds{}, err
	}
	if len(afterPossible) != 1 {
		panic(fmt.Sprintf("tz: probe after gap resolved to %d instants", len(afterPossible)))
	}

	offsetBefore, err := t.OffsetNanosecondsAt(beforePossible[0], p)
	if err != nil {
		return iso.EpochNanoseconds{}, err
	}
	offsetAfter, err := t.OffsetNanosecondsAt(afterPossible[0], p)
	if err != nil {
		return iso.EpochNanoseconds{}, err
	}
	delta := offsetAfter - offsetBefore

	if d == Earlier {
		shifted := dt.AddNanoseconds(-delta)
		possible, err := t.PossibleInstantsFor(shifted, p)
		if err != nil {
			return iso.EpochNanoseconds{}, err
		}
		if len(possible) == 0 {
			panic("tz: earlier gap probe resolved to no instants")
		}
		return possible[0], nil
	}

	// Compatible and Later shift forward across the gap. The shifted
	// reading may itself land in a fold; the later candidate wins.
	shifted := dt.AddNanoseconds(delta)
	possible, err := t.PossibleInstantsFor(shifted, p)
	if err != nil {
		return iso.EpochNanoseconds{}, err
	}
	if len(possible) == 0 {
		panic("tz: later gap probe resolved to no instants")
	}
	return possible[len(possible)-1], nil
}

// StartOfDay returns the instant at which the given calendar date begins
// in t. Local midnight is the default; when midnight falls inside a gap
// the day starts at the transition itself.
func (t TimeZone) StartOfDay(date iso.Date, p Provider) (iso.EpochNanoseconds, error) {
	midnight := iso.DateTime{Date: date}
	candidates, err := t.PossibleInstantsFor(midnight, p)
	if err != nil {
		return iso.EpochNanoseconds{}, err
	}
	if len(candidates) > 0 {
		return candidates[0], nil
	}

	// Fixed offsets cannot produce gaps.
	if t.kind != kindNamed {
		panic("tz: fixed-offset zone produced an empty candidate set")
	}

	// Midnight was skipped. Probe the same date at 03:00 local, which is
	// past any real-world transition, and ask the provider for the
	// transition that encloses the probe's instant: the day starts there.
	probe := iso.DateTime{Date: date, Time: iso.Time{Hour: 3}}
	afterPossible, err := t.PossibleInstantsFor(probe, p)
	if err != nil {
		return iso.EpochNanoseconds{}, err
	}
	if len(afterPossible) == 0 {
		return iso.EpochNanoseconds{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrStartOfDayUndetermined,
			date.Year, date.Month, date.Day)
	}
	info, err := p.OffsetAndTransitionAt(t.ianaName(), afterPossible[0])
	if err != nil {
		return iso.EpochNanoseconds{}, err
	}
	if !info.TransitionKnown {
		return iso.EpochNanoseconds{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrStartOfDayUndetermined,
			date.Year, date.Month, date.Day)
	}
	return info.Transition, nil
}
