// Copyright (c) 2026 Andrés Rodríguez Cantú <acantu@tec.mx>.
// SPDX-License-Identifier: Apache-2.0

// Package hajj maps a solar (Gregorian) year to the Hajj season dates of
// that year. The pilgrimage starts on 8 Dhu al-Hijjah of the Hijri year
// overlapping the given solar year and runs for five days. Conversion uses
// the tabular (civil) Islamic calendar, which can drift a day or two from
// the observational Umm al-Qura calendar; that is acceptable for season
// bucketing.
package hajj

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoConversion indicates the year falls outside the supported Hijri
// range and no date pair can be produced.
var ErrNoConversion = errors.New("no conversion for year")

// The Hijri calendar ran 579 years behind the Gregorian one at the 1446 AH
// reference point (2025 CE), and the supported range mirrors the span the
// original conversion tables covered.
const (
	hijriOffset   = 579
	minHijriYear  = 1343
	maxHijriYear  = 1500
	seasonDays    = 5
	dhuAlHijjah   = 12
	pilgrimageDay = 8
)

// Season is the Hajj window for one solar year.
type Season struct {
	Year  int
	Start time.Time
	End   time.Time
}

// Month returns the Gregorian month in which the season starts.
func (s Season) Month() time.Month {
	return s.Start.Month()
}

// ForYear returns the Hajj season for the given solar year, or
// ErrNoConversion when the mapped Hijri year is out of range.
func ForYear(year int) (Season, error) {
	hijriYear := year - hijriOffset
	if hijriYear < minHijriYear || hijriYear > maxHijriYear {
		return Season{}, fmt.Errorf("%w: %d", ErrNoConversion, year)
	}

	start := gregorianFromJDN(jdnFromHijri(hijriYear, dhuAlHijjah, pilgrimageDay))
	return Season{
		Year:  year,
		Start: start,
		End:   start.AddDate(0, 0, seasonDays),
	}, nil
}

// jdnFromHijri computes the Julian day number of a tabular-calendar Hijri
// date (civil epoch, 16 July 622 CE).
func jdnFromHijri(year, month, day int) int {
	return day +
		(59*(month-1)+1)/2 +
		(year-1)*354 +
		(3+11*year)/30 +
		1948440 - 1
}

// gregorianFromJDN converts a Julian day number to a UTC midnight
// time.Time using the Fliegel-Van Flandern arithmetic.
func gregorianFromJDN(jdn int) time.Time {
	a := jdn + 32044
	b := (4*a + 3) / 146097
	c := a - 146097*b/4
	d := (4*c + 3) / 1461
	e := c - 1461*d/4
	m := (5*e + 2) / 153

	day := e - (153*m+2)/5 + 1
	month := m + 3 - 12*(m/10)
	year := 100*b + d - 4800 + m/10

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
