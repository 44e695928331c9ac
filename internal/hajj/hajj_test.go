// Copyright (c) 2026 Andrés Rodríguez Cantú <acantu@tec.mx>.
// SPDX-License-Identifier: Apache-2.0

package hajj

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForYear_KnownSeasons(t *testing.T) {
	// The tabular calendar can drift a day from the observational one; these
	// are the tabular dates.
	tests := []struct {
		year  int
		start time.Time
	}{
		{2010, time.Date(2010, time.November, 15, 0, 0, 0, 0, time.UTC)},
		{2015, time.Date(2015, time.September, 22, 0, 0, 0, 0, time.UTC)},
		{2019, time.Date(2019, time.August, 10, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		s, err := ForYear(tt.year)
		require.NoError(t, err)
		assert.Equal(t, tt.year, s.Year)
		assert.Equal(t, tt.start, s.Start)
		assert.Equal(t, tt.start.AddDate(0, 0, 5), s.End)
	}
}

func TestForYear_SeasonDriftsEarlier(t *testing.T) {
	// The lunar year is ~11 days shorter, so consecutive seasons move
	// earlier in the solar calendar.
	prev, err := ForYear(2010)
	require.NoError(t, err)
	for year := 2011; year <= 2019; year++ {
		s, err := ForYear(year)
		require.NoError(t, err)
		assert.True(t, s.Start.YearDay() < prev.Start.YearDay(),
			"season %d should start earlier in the year than %d", year, year-1)
		prev = s
	}
}

func TestForYear_OutOfRange(t *testing.T) {
	for _, year := range []int{1900, 1921, 2080, 2200} {
		_, err := ForYear(year)
		assert.ErrorIs(t, err, ErrNoConversion, "year %d", year)
	}
}

func TestForYear_RangeBoundaries(t *testing.T) {
	// 1343 AH and 1500 AH are the first and last convertible years.
	_, err := ForYear(1343 + 579)
	assert.NoError(t, err)
	_, err = ForYear(1500 + 579)
	assert.NoError(t, err)

	_, err = ForYear(1343 + 579 - 1)
	assert.ErrorIs(t, err, ErrNoConversion)
	_, err = ForYear(1500 + 579 + 1)
	assert.ErrorIs(t, err, ErrNoConversion)
}

func TestSeason_Month(t *testing.T) {
	s, err := ForYear(2015)
	require.NoError(t, err)
	assert.Equal(t, time.September, s.Month())
}
