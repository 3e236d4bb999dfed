// Package tzrule parses POSIX-style TZ strings as found in TZif
// footers and expands their daylight saving rules into concrete
// transition instants for any given year.
package tzrule

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lockels/temporal/iso"
)

var errSyntax = errors.New("tzrule: malformed TZ string")

const secondsPerDay = 86400

// Zone is one of the at most two local time types a TZ string
// describes.
type Zone struct {
	Name   string
	Offset int64 // seconds east of UTC
	DST    bool
}

// Rule is a parsed TZ string. A rule is either static, meaning a
// single zone applies forever, or it alternates between a standard
// and a daylight zone at instants given by two transition day
// specifications.
type Rule struct {
	std, dst Zone
	toDST    transitionDay // standard to daylight
	toSTD    transitionDay // daylight to standard
	static   bool
}

type dayForm uint8

const (
	dayJulian    dayForm = iota // Jn, 1-365, February 29 never counted
	dayZeroBased                // n, 0-365, February 29 counted
	dayMonthWeek
)

type transitionDay struct {
	form    dayForm
	day     int   // Jn or n forms
	month   int   // 1-12
	week    int   // 1-5, 5 meaning the last occurrence
	weekday int   // 0=Sunday
	time    int64 // seconds from local midnight, may be negative or exceed a day
}

// Parse parses a TZ string such as "EST5EDT,M3.2.0,M11.1.0".
// Offsets in the result follow the ISO convention, positive east of
// Greenwich, the opposite of the POSIX convention used in the string.
func Parse(s string) (*Rule, error) {
	stdName, s, err := scanZoneName(s)
	if err != nil {
		return nil, err
	}
	stdPosix, s, err := scanPosixOffset(s)
	if err != nil {
		return nil, fmt.Errorf("%w: standard offset: %v", errSyntax, err)
	}
	r := &Rule{std: Zone{Name: stdName, Offset: -stdPosix}}
	if s == "" {
		r.static = true
		return r, nil
	}

	dstName, s, err := scanZoneName(s)
	if err != nil {
		return nil, err
	}
	dstOffset := r.std.Offset + 3600
	if s != "" && s[0] != ',' {
		posix, rest, err := scanPosixOffset(s)
		if err != nil {
			return nil, fmt.Errorf("%w: daylight offset: %v", errSyntax, err)
		}
		dstOffset = -posix
		s = rest
	}
	r.dst = Zone{Name: dstName, Offset: dstOffset, DST: true}

	if s == "" {
		// No rules given. tzcode substitutes the current US
		// practice in that case.
		r.toDST = transitionDay{form: dayMonthWeek, month: 3, week: 2, weekday: 0, time: 2 * 3600}
		r.toSTD = transitionDay{form: dayMonthWeek, month: 11, week: 1, weekday: 0, time: 2 * 3600}
		return r, nil
	}
	if s[0] != ',' {
		return nil, errSyntax
	}
	r.toDST, s, err = scanTransitionDay(s[1:])
	if err != nil {
		return nil, err
	}
	if s == "" || s[0] != ',' {
		return nil, errSyntax
	}
	r.toSTD, s, err = scanTransitionDay(s[1:])
	if err != nil {
		return nil, err
	}
	if s != "" {
		return nil, errSyntax
	}

	// TZif version 3 allows rules like "XXX3EDT4,0/0,J365/23" that
	// keep daylight time in effect the whole year.
	if r.daylightAllYear() {
		r.std = r.dst
		r.static = true
	}
	return r, nil
}

// Static reports whether a single zone is in effect at all times and,
// if so, which one.
func (r *Rule) Static() (Zone, bool) {
	return r.std, r.static
}

// Lookup returns the zone in effect at sec, seconds since the Unix
// epoch, together with the span [start, end) of instants sharing that
// zone. For static rules start and end are the extreme int64 values.
func (r *Rule) Lookup(sec int64) (Zone, int64, int64) {
	if r.static {
		return r.std, minInt64, maxInt64
	}
	ts := r.transitionsAround(sec)
	if sec < ts[0].at {
		// Cannot normally happen given the year margin, but a
		// rule placed at the very edge of a year could.
		return r.counterpart(ts[0].to), minInt64, ts[0].at
	}
	for i := len(ts) - 1; i >= 0; i-- {
		if ts[i].at <= sec {
			end := maxInt64
			if i+1 < len(ts) {
				end = ts[i+1].at
			}
			return ts[i].to, ts[i].at, end
		}
	}
	return r.std, minInt64, maxInt64 // unreachable
}

const (
	minInt64 int64 = -1 << 63
	maxInt64 int64 = 1<<63 - 1
)

type transition struct {
	at int64
	to Zone
}

func (r *Rule) counterpart(z Zone) Zone {
	if z.DST {
		return r.std
	}
	return r.dst
}

// transitionsAround expands the rule for the year containing sec and
// its two neighbors, sorted by instant. The margin guarantees that
// sec falls strictly inside the covered range.
func (r *Rule) transitionsAround(sec int64) []transition {
	year := int(iso.DateFromEpochDays(floorDiv(sec, secondsPerDay)).Year)
	var ts []transition
	for y := year - 1; y <= year+1; y++ {
		// The wall clock before a transition runs on the zone
		// the transition leaves.
		ts = append(ts,
			transition{at: r.toDST.instant(y, r.std.Offset), to: r.dst},
			transition{at: r.toSTD.instant(y, r.dst.Offset), to: r.std},
		)
	}
	// Southern hemisphere rules put the change to standard time
	// before the change to daylight time within a year.
	sort.Slice(ts, func(i, j int) bool { return ts[i].at < ts[j].at })
	return ts
}

// daylightAllYear reports whether the rule's daylight span covers
// every instant of the year, checked against a leap year.
func (r *Rule) daylightAllYear() bool {
	start := r.toDST.instant(2000, r.std.Offset)
	end := r.toSTD.instant(2000, r.dst.Offset)
	return end-start >= 366*secondsPerDay
}

// instant converts the transition day in the given year to seconds
// since the Unix epoch. offset is the offset of the zone whose wall
// clock the transition time refers to.
func (d transitionDay) instant(year int, offset int64) int64 {
	var doy int // zero-based day of year
	switch d.form {
	case dayJulian:
		doy = d.day - 1
		if isLeapYear(year) && d.day > 59 {
			doy++
		}
	case dayZeroBased:
		doy = d.day
		if !isLeapYear(year) && doy > 364 {
			doy = 364
		}
	case dayMonthWeek:
		dom := nthWeekdayOfMonth(year, d.month, d.weekday, d.week)
		doy = int(iso.Date{Year: int32(year), Month: uint8(d.month), Day: uint8(dom)}.EpochDays() - iso.Date{Year: int32(year), Month: 1, Day: 1}.EpochDays())
	}
	days := iso.Date{Year: int32(year), Month: 1, Day: 1}.EpochDays() + int64(doy)
	return days*secondsPerDay + d.time - offset
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// scanZoneName consumes a zone abbreviation, either three or more
// alphabetic characters or an arbitrary name in angle brackets.
func scanZoneName(s string) (string, string, error) {
	if s == "" {
		return "", "", errSyntax
	}
	if s[0] == '<' {
		for i := 1; i < len(s); i++ {
			if s[i] == '>' {
				if i < 2 {
					return "", "", errSyntax
				}
				return s[1:i], s[i+1:], nil
			}
		}
		return "", "", errSyntax
	}
	i := 0
	for i < len(s) && isAlpha(s[i]) {
		i++
	}
	if i < 3 {
		return "", "", errSyntax
	}
	return s[:i], s[i:], nil
}

func isAlpha(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

// scanPosixOffset consumes an offset of the form [+-]hh[:mm[:ss]] and
// returns it in seconds, positive west of Greenwich as POSIX has it.
func scanPosixOffset(s string) (int64, string, error) {
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	hour, s, err := scanInt(s, 0, 167)
	if err != nil {
		return 0, "", err
	}
	sec := int64(hour) * 3600
	if s != "" && s[0] == ':' {
		var m int
		m, s, err = scanInt(s[1:], 0, 59)
		if err != nil {
			return 0, "", err
		}
		sec += int64(m) * 60
		if s != "" && s[0] == ':' {
			var ss int
			ss, s, err = scanInt(s[1:], 0, 59)
			if err != nil {
				return 0, "", err
			}
			sec += int64(ss)
		}
	}
	if neg {
		sec = -sec
	}
	return sec, s, nil
}

// scanTransitionDay consumes one rule date, Jn, n or Mm.w.d, with an
// optional /time suffix defaulting to 02:00 local.
func scanTransitionDay(s string) (transitionDay, string, error) {
	var d transitionDay
	var err error
	switch {
	case s != "" && s[0] == 'J':
		d.form = dayJulian
		d.day, s, err = scanInt(s[1:], 1, 365)
	case s != "" && s[0] == 'M':
		d.form = dayMonthWeek
		d.month, s, err = scanInt(s[1:], 1, 12)
		if err == nil {
			if s == "" || s[0] != '.' {
				return d, "", errSyntax
			}
			d.week, s, err = scanInt(s[1:], 1, 5)
		}
		if err == nil {
			if s == "" || s[0] != '.' {
				return d, "", errSyntax
			}
			d.weekday, s, err = scanInt(s[1:], 0, 6)
		}
	default:
		d.form = dayZeroBased
		d.day, s, err = scanInt(s, 0, 365)
	}
	if err != nil {
		return d, "", err
	}
	d.time = 2 * 3600
	if s != "" && s[0] == '/' {
		d.time, s, err = scanRuleTime(s[1:])
		if err != nil {
			return d, "", err
		}
	}
	return d, s, nil
}

// scanRuleTime consumes the time part of a rule date. TZif version 3
// extends it to [+-]hh[:mm[:ss]] with hours from -167 to 167.
func scanRuleTime(s string) (int64, string, error) {
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	hour, s, err := scanInt(s, 0, 167)
	if err != nil {
		return 0, "", err
	}
	t := int64(hour) * 3600
	if s != "" && s[0] == ':' {
		var m int
		m, s, err = scanInt(s[1:], 0, 59)
		if err != nil {
			return 0, "", err
		}
		t += int64(m) * 60
		if s != "" && s[0] == ':' {
			var ss int
			ss, s, err = scanInt(s[1:], 0, 59)
			if err != nil {
				return 0, "", err
			}
			t += int64(ss)
		}
	}
	if neg {
		t = -t
	}
	return t, s, nil
}

func scanInt(s string, min, max int) (int, string, error) {
	i, n := 0, 0
	for i < len(s) && '0' <= s[i] && s[i] <= '9' {
		n = n*10 + int(s[i]-'0')
		if n > max {
			return 0, "", fmt.Errorf("%w: number out of range", errSyntax)
		}
		i++
	}
	if i == 0 {
		return 0, "", fmt.Errorf("%w: expected number", errSyntax)
	}
	if n < min {
		return 0, "", fmt.Errorf("%w: number out of range", errSyntax)
	}
	return n, s[i:], nil
}
