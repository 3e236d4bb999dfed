// Package temporal resolves civil date-times against time zones: it
// parses zone identifiers and offset strings, enumerates the instants a
// local time can denote across daylight saving gaps and folds, and
// applies disambiguation policies to pick one.
//
// The root package binds the core resolution engine in tz to the
// system's zone database in tzdb. Programs that need a different
// database construct a tzdb.Database themselves and use the tz package
// directly.
package temporal

import (
	"github.com/lockels/temporal/tz"
	"github.com/lockels/temporal/tzdb"
)

// TimeZoneFromIdentifier builds a time zone from a zone identifier, an
// IANA name or an offset in minute precision, resolved against the
// system database.
func TimeZoneFromIdentifier(identifier string) (tz.TimeZone, error) {
	return tz.FromIdentifier(identifier, tzdb.Default())
}

// TimeZoneFromOffsetText builds an offset time zone from an offset
// string such as "+05:30", keeping sub-minute precision.
func TimeZoneFromOffsetText(text string) (tz.TimeZone, error) {
	return tz.FromOffsetText(text)
}

// TimeZoneFromText builds a time zone from free-form text: a zone
// identifier, or a date-time string whose annotation, offset suffix or
// Z designator names one, resolved against the system database.
func TimeZoneFromText(text string) (tz.TimeZone, error) {
	return tz.FromText(text, tzdb.Default())
}

// IsValidTimeZone reports whether identifier names a zone the system
// database knows, or is a well-formed offset identifier.
func IsValidTimeZone(identifier string) bool {
	_, err := tz.FromIdentifier(identifier, tzdb.Default())
	return err == nil
}
