package tz

import "errors"

// Recoverable, data-caused errors. Each failure is wrapped with context at
// the site that detects it; callers match with errors.Is. Contract
// violations between this package and its callers or provider (malformed
// records, sub-minute offsets reaching the fixed-offset resolution path,
// probes that were expected to be unambiguous) are not represented here:
// they panic.
var (
	// ErrInvalidFraction is returned when an offset's fractional-second
	// part carries more than nine digits.
	ErrInvalidFraction = errors.New("fractional seconds exceed nine digits")

	// ErrDateOutOfRange is returned when a local date falls outside the
	// representable day range.
	ErrDateOutOfRange = errors.New("date out of representable range")

	// ErrInstantOutOfRange is returned when a resolved instant falls
	// outside the representable instant range.
	ErrInstantOutOfRange = errors.New("instant out of representable range")

	// ErrInvalidIdentifier is returned for text that is neither an IANA
	// name nor an offset usable as a time-zone identifier.
	ErrInvalidIdentifier = errors.New("invalid time zone identifier")

	// ErrInvalidTimeZoneString is returned by FromText when no allowed
	// form matches.
	ErrInvalidTimeZoneString = errors.New("not a valid time zone string")

	// ErrAmbiguousTime is returned under the Reject policy for local
	// times inside a gap or a fold.
	ErrAmbiguousTime = errors.New("ambiguous wall-clock time")

	// ErrStartOfDayUndetermined is returned when a skipped local
	// midnight cannot be resolved against the provider's transition
	// information.
	ErrStartOfDayUndetermined = errors.New("start of day could not be determined")
)
