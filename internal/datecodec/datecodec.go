// Package datecodec parses and formats the fixed DD-MM-YYYY date
// representation used by the item store and settings layer.
//
// All parsed instants are UTC midnight. Later day-count arithmetic in
// the engine assumes no timezone drift, so UTC normalization here is
// mandatory, not cosmetic.
package datecodec

import (
	"time"
)

// Layout is the only accepted textual form: two-digit day, two-digit
// month, four-digit year, dash separated.
const Layout = "02-01-2006"

// Parse converts a DD-MM-YYYY string into a UTC midnight instant.
// Anything that is not exactly that shape, or names a calendar date
// that does not exist (31-02-2025), fails with a *ParseError.
func Parse(text string) (time.Time, error) {
	if !wellFormed(text) {
		return time.Time{}, &ParseError{Input: text, Kind: ErrBadFormat}
	}
	t, err := time.ParseInLocation(Layout, text, time.UTC)
	if err != nil {
		// time.ParseInLocation rejects out-of-range components
		// (month 13, day 32) that pass the shape check.
		return time.Time{}, &ParseError{Input: text, Kind: ErrBadDate}
	}
	// time.Parse normalizes overflow dates for some layouts; a
	// round-trip guarantees the text named a real calendar day.
	if t.Format(Layout) != text {
		return time.Time{}, &ParseError{Input: text, Kind: ErrBadDate}
	}
	return t, nil
}

// Format renders an instant back to DD-MM-YYYY, always in UTC.
func Format(t time.Time) string {
	return t.UTC().Format(Layout)
}

// wellFormed checks the DD-MM-YYYY shape without touching the
// calendar: exactly ten bytes, digits in the right places, dashes at
// positions 2 and 5.
func wellFormed(s string) bool {
	if len(s) != 10 {
		return false
	}
	for i := 0; i < 10; i++ {
		if i == 2 || i == 5 {
			if s[i] != '-' {
				return false
			}
			continue
		}
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
