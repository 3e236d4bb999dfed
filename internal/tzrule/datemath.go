package tzrule

// isLeapYear determines if the year is a leap year.
func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// daysInMonth returns the number of days in a given month for a specific year.
func daysInMonth(year, month int) int {
	if month == 2 {
		if isLeapYear(year) {
			return 29
		}
		return 28
	}
	if month == 4 || month == 6 || month == 9 || month == 11 {
		return 30
	}
	return 31
}

// dayOfWeek calculates the day of the week for a given date,
// where 0=Sunday, 1=Monday, ..., 6=Saturday.
func dayOfWeek(year, month, day int) int {
	// Zeller's Congruence, adjusted for the Gregorian calendar.
	if month < 3 {
		month += 12
		year--
	}
	k := year % 100
	j := year / 100
	if k < 0 {
		// Zeller needs a non-negative century remainder.
		k += 100
		j--
	}
	h := (day + ((13 * (month + 1)) / 5) + k + (k / 4) + (j / 4) + (5 * j)) % 7
	// Shift so that Sunday=0, Monday=1, ..., Saturday=6.
	return ((h+6)%7 + 7) % 7
}

// nthWeekdayOfMonth returns the day of month of the n-th (1-based)
// occurrence of the given weekday. Occurrence 5 means the last one.
func nthWeekdayOfMonth(year, month, weekday, n int) int {
	if n >= 5 {
		return lastWeekdayOfMonth(year, month, weekday)
	}
	first := dayOfWeek(year, month, 1)
	offset := (weekday - first + 7) % 7
	return 1 + offset + (n-1)*7
}

// lastWeekdayOfMonth finds the last instance of a given weekday in a
// specific month and year.
func lastWeekdayOfMonth(year, month, weekday int) int {
	lastDay := daysInMonth(year, month)
	lastDayWeekday := dayOfWeek(year, month, lastDay)
	offset := (lastDayWeekday - weekday + 7) % 7
	return lastDay - offset
}
