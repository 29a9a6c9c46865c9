package dates

import (
	"strconv"
	"strings"
	"time"
)

// Years outside this range are never accepted as part of a date.
const (
	minYear = 1900
	maxYear = 2030
)

// months maps lowercased month names and abbreviations (periods stripped)
// to month numbers. "sept" is the only four-letter abbreviation in use.
var months = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "jun": time.June, "jul": time.July,
	"aug": time.August, "sep": time.September, "sept": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// Resolve converts the captured groups of one grammar match into a calendar
// date. Empty groups are dropped first. If any group is a month name the
// match is resolved as a text-month date; otherwise a pure numeric triple is
// resolved by format priority: year-first tries (Y, M, D) then (Y, D, M),
// year-last tries US month-first then EU day-first.
//
// The numeric ordering is a best-effort heuristic for MM/DD vs DD/MM
// ambiguity, not a statement of true date semantics. It must stay exactly as
// written so repeated runs over the same corpus produce identical output.
func Resolve(groups []string) (time.Time, bool) {
	var kept []string
	for _, g := range groups {
		if g != "" {
			kept = append(kept, g)
		}
	}
	if len(kept) == 0 {
		return time.Time{}, false
	}

	for _, g := range kept {
		if _, ok := months[normalize(g)]; ok {
			return resolveTextMonth(kept)
		}
	}
	return resolveNumeric(kept)
}

// resolveTextMonth classifies each group as month (by name), year (exactly
// four digits), or day (one to two digits, 1-31). A number goes to the day
// slot first; once the day is filled, a number of 12 or less may fill a still
// missing month. A missing day defaults to the first of the month.
func resolveTextMonth(groups []string) (time.Time, bool) {
	var month time.Month
	var day, year int

	for _, g := range groups {
		if m, ok := months[normalize(g)]; ok {
			month = m
			continue
		}
		if !allDigits(g) {
			continue
		}
		n, _ := strconv.Atoi(g)
		if len(g) == 4 {
			year = n
			continue
		}
		if n >= 1 && n <= 31 {
			if day == 0 {
				day = n
			} else if month == 0 && n <= 12 {
				month = time.Month(n)
			}
		}
	}

	if year < minYear || year > maxYear || month == 0 {
		return time.Time{}, false
	}
	if day == 0 {
		day = 1
	}
	return makeDate(year, month, day)
}

// resolveNumeric disambiguates a numeric triple. Exactly one of the first or
// last numbers must look like a year; each branch tries its preferred
// month/day ordering and falls back to the swapped ordering once.
func resolveNumeric(groups []string) (time.Time, bool) {
	if len(groups) != 3 {
		return time.Time{}, false
	}
	var nums [3]int
	for i, g := range groups {
		if !allDigits(g) {
			return time.Time{}, false
		}
		nums[i], _ = strconv.Atoi(g)
	}

	switch {
	case nums[0] >= minYear && nums[0] <= maxYear:
		// Year first: prefer YYYY-MM-DD, then YYYY-DD-MM.
		if validMonthDay(nums[1], nums[2]) {
			if t, ok := makeDate(nums[0], time.Month(nums[1]), nums[2]); ok {
				return t, true
			}
		}
		if validMonthDay(nums[2], nums[1]) {
			if t, ok := makeDate(nums[0], time.Month(nums[2]), nums[1]); ok {
				return t, true
			}
		}
	case nums[2] >= minYear && nums[2] <= maxYear:
		// Year last: prefer MM/DD/YYYY (US), then DD/MM/YYYY (EU).
		if validMonthDay(nums[0], nums[1]) {
			if t, ok := makeDate(nums[2], time.Month(nums[0]), nums[1]); ok {
				return t, true
			}
		}
		if validMonthDay(nums[1], nums[0]) {
			if t, ok := makeDate(nums[2], time.Month(nums[1]), nums[0]); ok {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

func validMonthDay(month, day int) bool {
	return month >= 1 && month <= 12 && day >= 1 && day <= 31
}

// makeDate builds a UTC midnight date, rejecting day-of-month overflow.
// time.Date would silently normalize Feb 30 to Mar 1-2; an overflowing day
// must instead fail so the caller can try the alternate ordering.
func makeDate(year int, month time.Month, day int) (time.Time, bool) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func normalize(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), ".", "")
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
