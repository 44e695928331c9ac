// Copyright (c) 2026 Andrés Rodríguez Cantú <acantu@tec.mx>.
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() *Table {
	return &Table{
		Name:    "census",
		Columns: []string{"Country", " Flag ", "MuslimPopulation_PctOfPopWhoAreMuslim_pct_2024update"},
		Rows: [][]string{
			{"Indonesia", "id", "87.2"},
			{"Pakistan", "pk"},
		},
	}
}

func TestColumnIndex(t *testing.T) {
	tab := sampleTable()
	assert.Equal(t, 0, tab.ColumnIndex("Country"))
	assert.Equal(t, 0, tab.ColumnIndex("country"))
	assert.Equal(t, 1, tab.ColumnIndex("flag"), "matching ignores surrounding whitespace")
	assert.Equal(t, -1, tab.ColumnIndex("Missing"))
}

func TestFindColumn(t *testing.T) {
	tab := sampleTable()
	assert.Equal(t, 2, tab.FindColumn("muslim", "pct"))
	assert.Equal(t, 2, tab.FindColumn("pct"))
	assert.Equal(t, 0, tab.FindColumn("country"))
	assert.Equal(t, -1, tab.FindColumn("muslim", "absolute"))
}

func TestCell_RaggedRows(t *testing.T) {
	tab := sampleTable()
	assert.Equal(t, "87.2", tab.Cell(0, 2))
	assert.Equal(t, "", tab.Cell(1, 2), "ragged row reads as empty, not a panic")
	assert.Equal(t, "", tab.Cell(5, 0))
	assert.Equal(t, "", tab.Cell(-1, 0))
	assert.Equal(t, "", tab.Cell(0, -1))
}

func TestTableJSON(t *testing.T) {
	tab := &Table{
		Name:    "t",
		Columns: []string{"A", "B"},
		Rows:    [][]string{{"1", "2"}, {"3"}},
	}
	buf, err := tab.JSON()
	require.NoError(t, err)
	assert.JSONEq(t, `[{"A":"1","B":"2"},{"A":"3","B":""}]`, buf.String())
}

func TestReadCSV(t *testing.T) {
	tab, err := ReadCSV("testdata/countries.csv", "countries")
	require.NoError(t, err)

	assert.Equal(t, "countries", tab.Name)
	assert.Equal(t, []string{"Country", "Code", "Region"}, tab.Columns)
	require.Len(t, tab.Rows, 4)
	assert.Equal(t, "Saudi Arabia", tab.Cell(2, 0))
	assert.Equal(t, "", tab.Cell(3, 2), "short row is tolerated")
}

func TestReadCSV_Missing(t *testing.T) {
	_, err := ReadCSV("testdata/nope.csv", "nope")
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestReadExcel(t *testing.T) {
	tab, err := ReadExcel("testdata/traffic.xlsx", "aviation_2015")
	require.NoError(t, err)

	// The first sheet in the workbook is empty; the loader must skip to the
	// first sheet that has data.
	assert.Equal(t, []string{"Airport", "Destination", "Month"}, tab.Columns)
	require.Len(t, tab.Rows, 2)
	assert.Equal(t, "JED", tab.Cell(0, 0))
	assert.Equal(t, "Jeddah City", tab.Cell(1, 0))
}

func TestReadExcel_Missing(t *testing.T) {
	_, err := ReadExcel("testdata/nope.xlsx", "nope")
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestReadExcel_NotAWorkbook(t *testing.T) {
	// A CSV is not a zip archive, so opening it as xlsx must fail as a parse
	// error, not a missing source.
	_, err := ReadExcel("testdata/countries.csv", "bad")
	assert.ErrorIs(t, err, ErrParse)
}

func TestBundle_PutRouting(t *testing.T) {
	b := NewBundle()

	b.Put("countries", &Table{Name: "countries"})
	b.Put("global_holidays", &Table{Name: "global_holidays"})
	b.Put("population_census", &Table{Name: "population_census"})
	b.Put("aviation_2015", &Table{Name: "aviation_2015"})
	b.Put("pilgrimage_2", &Table{Name: "pilgrimage_2"})
	b.Put("mystery", &Table{Name: "mystery"})

	assert.NotNil(t, b.Countries)
	assert.NotNil(t, b.Holidays)
	assert.NotNil(t, b.Census)
	assert.Contains(t, b.Aviation, "aviation_2015")
	assert.Contains(t, b.Pilgrimage, "pilgrimage_2")

	assert.Equal(t, b.Countries, b.Table("countries"))
	assert.Equal(t, b.Aviation["aviation_2015"], b.Table("aviation_2015"))
	assert.Nil(t, b.Table("mystery"), "unknown names are dropped")
}

func TestBundle_Counts(t *testing.T) {
	b := NewBundle()
	b.Put("countries", &Table{})
	b.Put("aviation_2014", &Table{})
	b.Put("aviation_2015", &Table{})

	counts := b.Counts()
	assert.Equal(t, 1, counts["countries"])
	assert.Equal(t, 0, counts["global_holidays"])
	assert.Equal(t, 2, counts["aviation"])
	assert.Equal(t, 0, counts["pilgrimage"])
}
