package present

import (
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// msToKmh converts meters per second to kilometers per hour
const msToKmh = 3.6

// Round rounds half toward positive infinity, the way browsers round
// display values (-2.5 rounds to -2)
func Round(v float64) int {
	return int(math.Floor(v + 0.5))
}

// WindKmh converts a wind speed in m/s to whole km/h
func WindKmh(mps float64) int {
	return Round(mps * msToKmh)
}

// Capitalize upper-cases the first letter of s
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// FormatLongDate renders e.g. "Monday, December 2, 2024"
func FormatLongDate(t time.Time) string {
	return t.Format("Monday, January 2, 2006")
}

// FormatDayName renders the short weekday, e.g. "Mon"
func FormatDayName(t time.Time) string {
	return t.Format("Mon")
}

// FormatShortDate renders e.g. "Dec 2"
func FormatShortDate(t time.Time) string {
	return t.Format("Jan 2")
}

// FilterSuggestions returns the recent cities matching the search input,
// ignoring case; blank input returns all of them
func FilterSuggestions(recent []string, input string) []string {
	needle := strings.ToLower(strings.TrimSpace(input))

	out := []string{}
	for _, c := range recent {
		if needle == "" || strings.Contains(strings.ToLower(c), needle) {
			out = append(out, c)
		}
	}
	return out
}
