package iso

import "fmt"

// maxEpochSeconds bounds representable instants to 1e8 days either side of
// the Unix epoch, i.e. ±8.64e21 nanoseconds.
const maxEpochSeconds = maxEpochDays * secondsPerDay

// EpochNanoseconds is an absolute instant: a signed nanosecond count from
// the Unix epoch. The full ±8.64e21 ns range does not fit a 64-bit
// integer, so the count is held as whole seconds plus a non-negative
// sub-second nanosecond part, the split the standard library's time.Time
// uses internally. The zero value is the Unix epoch.
type EpochNanoseconds struct {
	secs  int64
	nanos uint32 // [0, 1e9)
}

// FromUnix builds an instant from seconds and nanoseconds since the Unix
// epoch. The nanosecond argument may be any value; it is balanced into the
// seconds.
func FromUnix(sec, nsec int64) EpochNanoseconds {
	carry, nanos := floorDivMod(nsec, nsPerSecond)
	return EpochNanoseconds{secs: sec + carry, nanos: uint32(nanos)}
}

// Seconds returns the whole seconds since the Unix epoch, rounded towards
// negative infinity.
func (e EpochNanoseconds) Seconds() int64 { return e.secs }

// SubsecondNanos returns the non-negative sub-second part.
func (e EpochNanoseconds) SubsecondNanos() uint32 { return e.nanos }

// Add returns the instant shifted by a signed nanosecond duration.
func (e EpochNanoseconds) Add(d int64) EpochNanoseconds {
	return FromUnix(e.secs, int64(e.nanos)+d)
}

// Sub returns the nanosecond difference e − o. The result is only
// meaningful when the two instants are within a few centuries of each
// other; resolution probes stay well inside that.
func (e EpochNanoseconds) Sub(o EpochNanoseconds) int64 {
	return (e.secs-o.secs)*nsPerSecond + int64(e.nanos) - int64(o.nanos)
}

// Compare returns -1, 0 or +1 depending on whether e is before, equal to
// or after o.
func (e EpochNanoseconds) Compare(o EpochNanoseconds) int {
	switch {
	case e.secs < o.secs:
		return -1
	case e.secs > o.secs:
		return 1
	case e.nanos < o.nanos:
		return -1
	case e.nanos > o.nanos:
		return 1
	default:
		return 0
	}
}

// IsValid reports whether the instant lies within the representable range
// of ±8.64e21 nanoseconds from the Unix epoch.
func (e EpochNanoseconds) IsValid() bool {
	if e.secs > maxEpochSeconds || e.secs < -maxEpochSeconds {
		return false
	}
	// The positive bound is inclusive only at exactly +8.64e21 ns.
	if e.secs == maxEpochSeconds && e.nanos != 0 {
		return false
	}
	return true
}

// String renders the instant as decimal seconds since the Unix epoch.
func (e EpochNanoseconds) String() string {
	secs, nanos := e.secs, e.nanos
	sign := ""
	if secs < 0 && nanos > 0 {
		// Convert the floored representation to sign-magnitude.
		secs++
		nanos = nsPerSecond - nanos
		if secs == 0 {
			sign = "-"
		}
	}
	if nanos == 0 {
		return fmt.Sprintf("%d", secs)
	}
	return fmt.Sprintf("%s%d.%09d", sign, secs, nanos)
}
