// Package tz implements time zones and the resolution of wall-clock
// date-times against them: mapping a local reading to the absolute
// instants it may denote, disambiguating gaps and folds introduced by
// offset transitions, and the reverse instant-to-local mapping.
//
// Transition data comes from an injected Provider; the package holds no
// time-zone database of its own.
package tz

import (
	"fmt"
	"strings"
)

const (
	nsPerSecond = 1_000_000_000
	nsPerMinute = 60 * nsPerSecond
	nsPerHour   = 60 * nsPerMinute
)

// UtcOffset is a validated fixed offset from UTC, stored at nanosecond
// precision. The zero value is +00:00. Offsets are immutable; they are
// created by the parsing entry points or FromMinutes.
type UtcOffset struct {
	ns int64
}

// FromMinutes returns the offset for a whole number of minutes east (+) or
// west (-) of UTC.
func FromMinutes(minutes int16) UtcOffset {
	return UtcOffset{ns: int64(minutes) * nsPerMinute}
}

// ParseOffset parses an offset in the form ±HH[:MM[:SS[.fraction]]]; the
// colons may be omitted. The fraction is limited to nine digits.
func ParseOffset(s string) (UtcOffset, error) {
	rec, err := scanOffset(s)
	if err != nil {
		return UtcOffset{}, fmt.Errorf("parse offset %q: %w", s, err)
	}
	o, err := offsetFromRecord(rec)
	if err != nil {
		return UtcOffset{}, fmt.Errorf("parse offset %q: %w", s, err)
	}
	return o, nil
}

// offsetFromRecord computes the nanosecond value of a scanned offset
// record. Records without a seconds component yield minute-precision
// values.
func offsetFromRecord(rec offsetRecord) (UtcOffset, error) {
	minutes := 60*int64(rec.hour) + int64(rec.minute)
	if !rec.hasSecond {
		return UtcOffset{ns: minutes * int64(rec.sign) * nsPerMinute}, nil
	}
	ns := (60*minutes + int64(rec.second)) * nsPerSecond
	if rec.fraction != "" {
		if len(rec.fraction) > 9 {
			return UtcOffset{}, ErrInvalidFraction
		}
		var frac int64
		for _, c := range []byte(rec.fraction) {
			frac = frac*10 + int64(c-'0')
		}
		for i := len(rec.fraction); i < 9; i++ {
			frac *= 10
		}
		ns += frac
	}
	return UtcOffset{ns: ns * int64(rec.sign)}, nil
}

// Minutes returns the offset in whole minutes. A value that does not fit
// int16 narrows to 0 rather than failing; callers rely on the non-failing
// contract.
func (o UtcOffset) Minutes() int16 {
	m := o.ns / nsPerMinute
	if m < -32768 || m > 32767 {
		return 0
	}
	return int16(m)
}

// Nanoseconds returns the signed nanosecond value of the offset.
func (o UtcOffset) Nanoseconds() int64 { return o.ns }

// IsSubMinute reports whether the offset is not a whole number of minutes.
// Sub-minute offsets can only come from the full-precision parsing entry
// points and are rejected by the identifier namespace.
func (o UtcOffset) IsSubMinute() bool { return o.ns%nsPerMinute != 0 }

// String formats the offset as ±HH:MM, extended with :SS and a fraction
// only when the seconds or sub-second part is non-zero. The fraction is
// trimmed to the minimum number of digits.
func (o UtcOffset) String() string {
	sign := byte('+')
	total := o.ns
	if total < 0 {
		sign = '-'
		total = -total
	}

	nanos := total % nsPerSecond
	secondsLeft := total / nsPerSecond
	second := secondsLeft % 60
	minutesLeft := secondsLeft / 60
	minute := minutesLeft % 60
	hour := minutesLeft / 60

	var b strings.Builder
	fmt.Fprintf(&b, "%c%02d:%02d", sign, hour, minute)
	if second == 0 && nanos == 0 {
		return b.String()
	}
	fmt.Fprintf(&b, ":%02d", second)
	if nanos != 0 {
		frac := strings.TrimRight(fmt.Sprintf("%09d", nanos), "0")
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}
