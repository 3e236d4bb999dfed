// Package iso implements the proleptic Gregorian calendar values that the
// time-zone resolution engine operates on: a calendar date, a wall-clock
// time, their combination, and the absolute instant type EpochNanoseconds.
//
// All types are immutable values. Balancing (normalizing out-of-range
// fields by carrying into the neighbouring fields) and the conversion
// between civil fields and days/seconds since the Unix epoch ignore leap
// seconds, matching the behaviour of the IANA time-zone database.
package iso

import "fmt"

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour

	nsPerSecond = 1_000_000_000
	nsPerDay    = secondsPerDay * nsPerSecond

	// maxEpochDays bounds the representable calendar range to 1e8 days
	// either side of the epoch, the same range instants may span.
	maxEpochDays = 100_000_000
)

// Date is a calendar date in the proleptic Gregorian calendar.
type Date struct {
	Year  int32
	Month uint8 // 1..12
	Day   uint8 // 1..31
}

// NewDate returns a Date after checking the field ranges.
func NewDate(year, month, day int) (Date, error) {
	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf("month out of range: %d", month)
	}
	if day < 1 || day > daysInMonth(int64(year), int64(month)) {
		return Date{}, fmt.Errorf("day out of range: %d", day)
	}
	if year < -271821 || year > 275760 {
		// Years outside this window cannot produce representable days.
		return Date{}, fmt.Errorf("year out of range: %d", year)
	}
	return Date{Year: int32(year), Month: uint8(month), Day: uint8(day)}, nil
}

// EpochDays returns the number of days between the Unix epoch and d.
// Dates before 1970-01-01 yield negative values.
func (d Date) EpochDays() int64 {
	return daysFromCivil(int64(d.Year), int64(d.Month), int64(d.Day))
}

// InDayRange reports whether d is within the representable day range of
// 1e8 days either side of the Unix epoch.
func (d Date) InDayRange() bool {
	days := d.EpochDays()
	return -maxEpochDays <= days && days <= maxEpochDays
}

// DateFromEpochDays is the inverse of EpochDays.
func DateFromEpochDays(days int64) Date {
	y, m, dom := civilFromDays(days)
	return Date{Year: int32(y), Month: uint8(m), Day: uint8(dom)}
}

// Time is a wall-clock time of day at nanosecond precision.
// The zero value is midnight.
type Time struct {
	Hour        uint8
	Minute      uint8
	Second      uint8
	Millisecond uint16
	Microsecond uint16
	Nanosecond  uint16
}

// NewTime returns a Time after checking the field ranges.
func NewTime(hour, minute, second, milli, micro, nano int) (Time, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return Time{}, fmt.Errorf("time out of range: %02d:%02d:%02d", hour, minute, second)
	}
	if milli < 0 || milli > 999 || micro < 0 || micro > 999 || nano < 0 || nano > 999 {
		return Time{}, fmt.Errorf("fractional second out of range: %03d.%03d.%03d", milli, micro, nano)
	}
	return Time{
		Hour:        uint8(hour),
		Minute:      uint8(minute),
		Second:      uint8(second),
		Millisecond: uint16(milli),
		Microsecond: uint16(micro),
		Nanosecond:  uint16(nano),
	}, nil
}

// nanosecondsOfDay returns the nanoseconds elapsed since midnight.
func (t Time) nanosecondsOfDay() int64 {
	secs := int64(t.Hour)*secondsPerHour + int64(t.Minute)*secondsPerMinute + int64(t.Second)
	return secs*nsPerSecond + t.subsecondNanos()
}

func (t Time) subsecondNanos() int64 {
	return int64(t.Millisecond)*1_000_000 + int64(t.Microsecond)*1_000 + int64(t.Nanosecond)
}

// DateTime combines a calendar date and a wall-clock time.
type DateTime struct {
	Date Date
	Time Time
}

// BalanceDateTime normalizes arbitrary, possibly out-of-range date-time
// fields into a valid DateTime by carrying overflow and underflow into the
// neighbouring fields. Sub-second fields carry into seconds, seconds into
// minutes and so on up to days; day overflow is balanced through the
// calendar.
func BalanceDateTime(year, month, day, hour, minute, second, milli, micro, nano int64) DateTime {
	var carry int64

	carry, nano = floorDivMod(nano, 1_000)
	micro += carry
	carry, micro = floorDivMod(micro, 1_000)
	milli += carry
	carry, milli = floorDivMod(milli, 1_000)
	second += carry
	carry, second = floorDivMod(second, 60)
	minute += carry
	carry, minute = floorDivMod(minute, 60)
	hour += carry
	carry, hour = floorDivMod(hour, 24)
	day += carry

	date := balanceDate(year, month, day)
	return DateTime{
		Date: date,
		Time: Time{
			Hour:        uint8(hour),
			Minute:      uint8(minute),
			Second:      uint8(second),
			Millisecond: uint16(milli),
			Microsecond: uint16(micro),
			Nanosecond:  uint16(nano),
		},
	}
}

// balanceDate normalizes a (year, month, day) triple. Months carry into
// years first, then the day is resolved through the epoch-day mapping so
// that any day offset, however large, lands on a valid calendar date.
func balanceDate(year, month, day int64) Date {
	carry, monthIdx := floorDivMod(month-1, 12)
	year += carry
	month = monthIdx + 1

	days := daysFromCivil(year, month, 1) + (day - 1)
	y, m, d := civilFromDays(days)
	return Date{Year: int32(y), Month: uint8(m), Day: uint8(d)}
}

// AddNanoseconds shifts dt by a signed nanosecond duration, carrying day
// overflow or underflow through the calendar.
func (dt DateTime) AddNanoseconds(d int64) DateTime {
	total := dt.Time.nanosecondsOfDay() + d
	dayCarry, ofDay := floorDivMod(total, nsPerDay)

	secs, subNanos := ofDay/nsPerSecond, ofDay%nsPerSecond
	return DateTime{
		Date: balanceDate(int64(dt.Date.Year), int64(dt.Date.Month), int64(dt.Date.Day)+dayCarry),
		Time: Time{
			Hour:        uint8(secs / secondsPerHour),
			Minute:      uint8(secs % secondsPerHour / secondsPerMinute),
			Second:      uint8(secs % secondsPerMinute),
			Millisecond: uint16(subNanos / 1_000_000),
			Microsecond: uint16(subNanos / 1_000 % 1_000),
			Nanosecond:  uint16(subNanos % 1_000),
		},
	}
}

// EpochNanoseconds interprets dt as UTC and returns the corresponding
// instant. The result is not range-checked; see EpochNanoseconds.IsValid.
func (dt DateTime) EpochNanoseconds() EpochNanoseconds {
	secs := dt.Date.EpochDays()*secondsPerDay +
		int64(dt.Time.Hour)*secondsPerHour +
		int64(dt.Time.Minute)*secondsPerMinute +
		int64(dt.Time.Second)
	return EpochNanoseconds{secs: secs, nanos: uint32(dt.Time.subsecondNanos())}
}

// DateTimeFromEpoch maps an instant to the local date-time of the zone
// whose total offset from UTC is offsetNanos.
func DateTimeFromEpoch(at EpochNanoseconds, offsetNanos int64) DateTime {
	carry, nanos := floorDivMod(int64(at.nanos)+offsetNanos, nsPerSecond)
	secs := at.secs + carry

	days, ofDay := floorDivMod(secs, secondsPerDay)
	y, m, d := civilFromDays(days)
	return DateTime{
		Date: Date{Year: int32(y), Month: uint8(m), Day: uint8(d)},
		Time: Time{
			Hour:        uint8(ofDay / secondsPerHour),
			Minute:      uint8(ofDay % secondsPerHour / secondsPerMinute),
			Second:      uint8(ofDay % secondsPerMinute),
			Millisecond: uint16(nanos / 1_000_000),
			Microsecond: uint16(nanos / 1_000 % 1_000),
			Nanosecond:  uint16(nanos % 1_000),
		},
	}
}

// daysFromCivil converts a proleptic Gregorian date to days since the Unix
// epoch. The algorithm works era by era (400-year cycles), the same
// leap-day accounting the Unix-time mapping in the standard library uses.
func daysFromCivil(y, m, d int64) int64 {
	if m <= 2 {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400 // [0, 399]
	var doy int64      // [0, 365]
	if m > 2 {
		doy = (153*(m-3)+2)/5 + d - 1
	} else {
		doy = (153*(m+9)+2)/5 + d - 1
	}
	doe := yoe*365 + yoe/4 - yoe/100 + doy // [0, 146096]
	return era*146097 + doe - 719468
}

// civilFromDays is the inverse of daysFromCivil.
func civilFromDays(days int64) (y, m, d int64) {
	z := days + 719468
	era := floorDiv(z, 146097)
	doe := z - era*146097                                  // [0, 146096]
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365 // [0, 399]
	doy := doe - (365*yoe + yoe/4 - yoe/100)               // [0, 365]
	mp := (5*doy + 2) / 153                                // [0, 11]
	d = doy - (153*mp+2)/5 + 1                             // [1, 31]
	if mp < 10 {
		m = mp + 3
	} else {
		m = mp - 9
	}
	y = yoe + era*400
	if m <= 2 {
		y++
	}
	return y, m, d
}

func isLeapYear(year int64) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func daysInMonth(year, month int64) int {
	switch month {
	case 2:
		if isLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// floorDiv returns the quotient of a/b rounded towards negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// floorDivMod returns the floored quotient and the always-non-negative
// remainder of a/b.
func floorDivMod(a, b int64) (q, r int64) {
	q = floorDiv(a, b)
	return q, a - q*b
}
