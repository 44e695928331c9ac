// Copyright (c) 2026 Andrés Rodríguez Cantú <acantu@tec.mx>.
// SPDX-License-Identifier: Apache-2.0

// Package analysis holds the query logic over a loaded bundle: ranking
// countries by Muslim population share and extracting aviation routes with
// both endpoints resolved to countries.
package analysis

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"

	"github.com/acantu/hajjav/internal/airports"
	"github.com/acantu/hajjav/internal/dataset"
	"github.com/acantu/hajjav/internal/hajj"
	"github.com/acantu/hajjav/internal/iata"
)

// CountryShare is one row of the census ranking.
type CountryShare struct {
	Country  string  `json:"country"`
	FlagCode string  `json:"flag_code"`
	Pct      float64 `json:"pct"`
}

// Route is one aviation row whose endpoints both resolved to countries.
type Route struct {
	Airport            string `json:"airport"`
	Destination        string `json:"destination"`
	AirportCountry     string `json:"airport_country"`
	DestinationCountry string `json:"destination_country"`
	Month              string `json:"month"`
	InHajjSeason       bool   `json:"in_hajj_season"`
}

// TopMuslimCountries ranks the census table by Muslim population share and
// returns the top n rows. Header names in the census workbook are messy, so
// columns are found by token matching rather than exact names.
func TopMuslimCountries(census *dataset.Table, n int) ([]CountryShare, error) {
	if census == nil {
		return nil, fmt.Errorf("population census not loaded")
	}

	pctCol := census.FindColumn("muslim", "pct")
	if pctCol < 0 {
		pctCol = census.FindColumn("pct")
	}
	if pctCol < 0 {
		return nil, fmt.Errorf("census table %s: no population percentage column", census.Name)
	}

	countryCol := census.FindColumn("country")
	flagCol := census.FindColumn("flag")

	//nolint:prealloc // rows with unparseable percentages are dropped.
	var result []CountryShare
	for i := range census.Rows {
		pct, err := strconv.ParseFloat(
			strings.TrimSuffix(strings.TrimSpace(census.Cell(i, pctCol)), "%"), 64)
		if err != nil {
			continue
		}
		row := CountryShare{Pct: pct}
		if countryCol >= 0 {
			row.Country = census.Cell(i, countryCol)
		}
		if flagCol >= 0 {
			row.FlagCode = census.Cell(i, flagCol)
		}
		result = append(result, row)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Pct > result[j].Pct
	})

	if n > 0 && len(result) > n {
		result = result[:n]
	}
	return result, nil
}

// Routes extracts the rows of one year's aviation table whose Airport and
// Destination cells are both IATA codes known to the index. When a Hajj
// season is provided, rows whose month matches the season start month are
// flagged.
func Routes(aviation *dataset.Table, idx *airports.Index, season *hajj.Season) ([]Route, error) {
	if aviation == nil {
		return nil, fmt.Errorf("aviation table not loaded")
	}

	airportCol := aviation.ColumnIndex("Airport")
	destCol := aviation.ColumnIndex("Destination")
	if airportCol < 0 || destCol < 0 {
		return nil, fmt.Errorf("aviation table %s: missing Airport/Destination columns", aviation.Name)
	}
	monthCol := aviation.ColumnIndex("Month")

	var dropped int
	//nolint:prealloc
	var result []Route
	for i := range aviation.Rows {
		airport := strings.TrimSpace(aviation.Cell(i, airportCol))
		dest := strings.TrimSpace(aviation.Cell(i, destCol))

		if !iata.IsCode(airport) || !iata.IsCode(dest) {
			dropped++
			continue
		}

		from, okFrom := idx.Lookup(airport)
		to, okTo := idx.Lookup(dest)
		if !okFrom || !okTo {
			dropped++
			continue
		}

		route := Route{
			Airport:            iata.Normalize(airport),
			Destination:        iata.Normalize(dest),
			AirportCountry:     from.CountryCode,
			DestinationCountry: to.CountryCode,
		}
		if monthCol >= 0 {
			route.Month = aviation.Cell(i, monthCol)
			if season != nil {
				if m, ok := parseMonth(route.Month); ok {
					route.InHajjSeason = m == season.Month()
				}
			}
		}
		result = append(result, route)
	}

	log.Debugf("routes: kept %d, dropped %d of %d rows of %s",
		len(result), dropped, len(aviation.Rows), aviation.Name)
	return result, nil
}

// ExportRoutesCSV writes the route list as a CSV file, mirroring the
// original pipeline's filtered-output artifact.
func ExportRoutesCSV(routes []Route, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"DestinationCode", "AirportCode", "Month"}); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	for _, r := range routes {
		if err := w.Write([]string{r.DestinationCountry, r.AirportCountry, r.Month}); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}

// RowsJSON marshals any row slice into the buffer shape SliceDiceSpit
// consumes.
func RowsJSON(rows any) (bytes.Buffer, error) {
	var buf bytes.Buffer
	b, err := json.Marshal(rows)
	if err != nil {
		return buf, err
	}
	buf.Write(b)
	return buf, nil
}

// parseMonth accepts either a numeric month or an English month name
// (full or three-letter).
func parseMonth(s string) (time.Month, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= 12 {
			return time.Month(n), true
		}
		return 0, false
	}

	for m := time.January; m <= time.December; m++ {
		name := m.String()
		if strings.EqualFold(s, name) || strings.EqualFold(s, name[:3]) {
			return m, true
		}
	}
	return 0, false
}
