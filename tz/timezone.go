package tz

import "fmt"

// TimeZone is a closed two-variant value: a canonicalized IANA identifier
// or a fixed UTC offset. The zero value is the named zone "UTC". TimeZone
// values are comparable; equality is structural.
type TimeZone struct {
	kind   tzKind
	name   string
	offset UtcOffset
}

type tzKind uint8

const (
	kindNamed tzKind = iota
	kindOffset
)

// Named returns the zone for an IANA identifier. The identifier is taken
// as already canonical; use FromIdentifier to canonicalize raw input
// against a provider.
func Named(identifier string) TimeZone {
	if identifier == "UTC" {
		return TimeZone{}
	}
	return TimeZone{kind: kindNamed, name: identifier}
}

// Offset returns the fixed-offset zone for o.
func Offset(o UtcOffset) TimeZone {
	return TimeZone{kind: kindOffset, offset: o}
}

// ianaName returns the identifier of a named zone, mapping the zero value
// to "UTC".
func (t TimeZone) ianaName() string {
	if t.name == "" {
		return "UTC"
	}
	return t.name
}

// Identifier returns the canonical IANA name for named zones and the
// formatted offset for fixed-offset zones; the two share one textual
// namespace for display.
func (t TimeZone) Identifier() string {
	switch t.kind {
	case kindNamed:
		return t.ianaName()
	case kindOffset:
		return t.offset.String()
	default:
		panic(fmt.Sprintf("tz: unknown time zone variant %d", t.kind))
	}
}

// String implements fmt.Stringer as an alias for Identifier.
func (t TimeZone) String() string { return t.Identifier() }

// fromRecord builds a TimeZone from a parsed record, canonicalizing names
// through the provider. The record shapes are exhaustively known at this
// boundary; any other shape is a bug in the caller and panics.
func fromRecord(rec timeZoneRecord, p Provider) (TimeZone, error) {
	switch rec.kind {
	case recordName:
		canonical, err := p.NormalizeIdentifier(rec.name)
		if err != nil {
			return TimeZone{}, err
		}
		return Named(canonical), nil
	case recordOffset:
		return Offset(rec.offset), nil
	case recordUTC:
		return Named("UTC"), nil
	default:
		panic(fmt.Sprintf("tz: malformed time zone record (kind %d)", rec.kind))
	}
}

// FromIdentifier parses exactly an IANA name or a minute-precision
// offset-as-identifier, canonicalizing names through the provider.
func FromIdentifier(s string, p Provider) (TimeZone, error) {
	rec, err := scanIdentifier(s)
	if err != nil {
		return TimeZone{}, fmt.Errorf("%w: %q: %v", ErrInvalidIdentifier, s, err)
	}
	t, err := fromRecord(rec, p)
	if err != nil {
		return TimeZone{}, fmt.Errorf("%w: %q: %v", ErrInvalidIdentifier, s, err)
	}
	return t, nil
}

// FromOffsetText parses offset syntax only, at full precision, and always
// yields a fixed-offset zone.
func FromOffsetText(s string) (TimeZone, error) {
	o, err := ParseOffset(s)
	if err != nil {
		return TimeZone{}, err
	}
	return Offset(o), nil
}

// FromText parses any allowed time-zone text: the identifier forms first,
// then date-time strings carrying a bracketed annotation, a trailing
// offset or the Z designator.
func FromText(s string, p Provider) (TimeZone, error) {
	if t, err := FromIdentifier(s, p); err == nil {
		return t, nil
	}
	rec, ok := scanTextFallback(s)
	if !ok {
		return TimeZone{}, fmt.Errorf("%w: %q", ErrInvalidTimeZoneString, s)
	}
	t, err := fromRecord(rec, p)
	if err != nil {
		return TimeZone{}, fmt.Errorf("%w: %q: %v", ErrInvalidTimeZoneString, s, err)
	}
	return t, nil
}
