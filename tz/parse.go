package tz

import (
	"fmt"
	"strings"
)

// offsetRecord is the structured result of scanning offset text. The sign
// is ±1; fraction holds the raw digits after the decimal point.
type offsetRecord struct {
	sign      int8
	hour      uint8
	minute    uint8
	second    uint8
	hasSecond bool
	fraction  string
}

// scanOffset tokenizes ±HH[:MM[:SS[.fraction]]]. Separators must be used
// consistently: either every component is colon-separated or none is.
func scanOffset(s string) (offsetRecord, error) {
	var rec offsetRecord
	if len(s) < 3 {
		return rec, fmt.Errorf("too short")
	}
	switch s[0] {
	case '+':
		rec.sign = 1
	case '-':
		rec.sign = -1
	default:
		return rec, fmt.Errorf("missing sign")
	}
	s = s[1:]

	hour, s, err := scanTwoDigits(s, 23)
	if err != nil {
		return rec, fmt.Errorf("hour: %w", err)
	}
	rec.hour = hour
	if len(s) == 0 {
		return rec, nil
	}

	colons := s[0] == ':'
	if colons {
		s = s[1:]
	}
	minute, s, err := scanTwoDigits(s, 59)
	if err != nil {
		return rec, fmt.Errorf("minute: %w", err)
	}
	rec.minute = minute
	if len(s) == 0 {
		return rec, nil
	}

	if colons != (s[0] == ':') {
		return rec, fmt.Errorf("inconsistent separators")
	}
	if colons {
		s = s[1:]
	}
	second, s, err := scanTwoDigits(s, 59)
	if err != nil {
		return rec, fmt.Errorf("second: %w", err)
	}
	rec.second = second
	rec.hasSecond = true
	if len(s) == 0 {
		return rec, nil
	}

	if s[0] != '.' && s[0] != ',' {
		return rec, fmt.Errorf("unexpected trailing text %q", s)
	}
	s = s[1:]
	if len(s) == 0 {
		return rec, fmt.Errorf("empty fraction")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return rec, fmt.Errorf("fraction: invalid digit %q", s[i])
		}
	}
	rec.fraction = s
	return rec, nil
}

func scanTwoDigits(s string, max uint8) (uint8, string, error) {
	if len(s) < 2 || s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, "", fmt.Errorf("expected two digits, got %q", s)
	}
	n := (s[0]-'0')*10 + (s[1] - '0')
	if n > max {
		return 0, "", fmt.Errorf("%d exceeds %d", n, max)
	}
	return n, s[2:], nil
}

// timeZoneRecord is the parsed shape of time-zone text: exactly one of an
// IANA-style name or a minute-precision offset. The shape set is closed;
// fromRecord treats anything else as a contract violation.
type timeZoneRecord struct {
	kind   recordKind
	name   string
	offset UtcOffset
}

type recordKind uint8

const (
	recordInvalid recordKind = iota
	recordName
	recordOffset
	// recordUTC is the Z designator: it denotes the UTC zone directly,
	// without a database lookup.
	recordUTC
)

// scanIdentifier classifies identifier text as an IANA name or a
// minute-precision offset. Offsets carrying seconds are not part of the
// identifier namespace.
func scanIdentifier(s string) (timeZoneRecord, error) {
	if s == "" {
		return timeZoneRecord{}, fmt.Errorf("empty identifier")
	}
	if s[0] == '+' || s[0] == '-' {
		rec, err := scanOffset(s)
		if err != nil {
			return timeZoneRecord{}, err
		}
		if rec.hasSecond {
			return timeZoneRecord{}, fmt.Errorf("offset identifiers are minute precision")
		}
		o, err := offsetFromRecord(rec)
		if err != nil {
			return timeZoneRecord{}, err
		}
		return timeZoneRecord{kind: recordOffset, offset: o}, nil
	}
	if !isIanaName(s) {
		return timeZoneRecord{}, fmt.Errorf("malformed name %q", s)
	}
	return timeZoneRecord{kind: recordName, name: s}, nil
}

// isIanaName checks the IANA identifier grammar: slash-separated
// components, each starting with a letter, '.' or '_', continuing with
// those plus digits, '-' and '+'. The file-system escape components "."
// and ".." are rejected.
func isIanaName(s string) bool {
	for _, part := range strings.Split(s, "/") {
		if part == "" || part == "." || part == ".." {
			return false
		}
		for i := 0; i < len(part); i++ {
			c := part[i]
			switch {
			case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c == '.', c == '_':
			case i > 0 && (c >= '0' && c <= '9' || c == '-' || c == '+'):
			default:
				return false
			}
		}
	}
	return true
}

// scanTextFallback handles the time-zone forms that are not bare
// identifiers: a date-time string carrying a bracketed annotation, a
// trailing numeric offset, or the Z designator. It returns the record and
// whether any form matched.
func scanTextFallback(s string) (timeZoneRecord, bool) {
	// Bracketed annotation wins over any offset in the string:
	// "1970-01-01T00:00+01:00[Africa/Lagos]" denotes the named zone.
	if open := strings.IndexByte(s, '['); open > 0 {
		close := strings.IndexByte(s[open:], ']')
		if close < 0 {
			return timeZoneRecord{}, false
		}
		ann := s[open+1 : open+close]
		ann = strings.TrimPrefix(ann, "!") // critical flag
		rec, err := scanIdentifier(ann)
		if err != nil {
			return timeZoneRecord{}, false
		}
		return rec, true
	}

	if !looksLikeDateTime(s) {
		return timeZoneRecord{}, false
	}

	// The Z designator marks an exact UTC instant.
	if strings.HasSuffix(s, "Z") || strings.HasSuffix(s, "z") {
		return timeZoneRecord{kind: recordUTC}, true
	}

	// A trailing offset on a date-time: scan backwards for the sign that
	// starts it. The sign must follow a time digit, not a date separator.
	for i := len(s) - 1; i > 10; i-- {
		if s[i] != '+' && s[i] != '-' {
			continue
		}
		if s[i-1] < '0' || s[i-1] > '9' {
			continue
		}
		rec, err := scanOffset(s[i:])
		if err != nil {
			return timeZoneRecord{}, false
		}
		o, err := offsetFromRecord(rec)
		if err != nil {
			return timeZoneRecord{}, false
		}
		// The resolved zone keeps minute precision, as offset zones do.
		return timeZoneRecord{kind: recordOffset, offset: FromMinutes(o.Minutes())}, true
	}
	return timeZoneRecord{}, false
}

// looksLikeDateTime applies a shallow shape check: a YYYY-MM-DD date,
// optionally followed by a time separated with 'T', 't' or a space.
func looksLikeDateTime(s string) bool {
	if len(s) < 10 {
		return false
	}
	for i, c := range []byte(s[:10]) {
		if i == 4 || i == 7 {
			if c != '-' {
				return false
			}
		} else if c < '0' || c > '9' {
			return false
		}
	}
	if len(s) == 10 {
		return false // a bare date denotes no time zone
	}
	return s[10] == 'T' || s[10] == 't' || s[10] == ' '
}
