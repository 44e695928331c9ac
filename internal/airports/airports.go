// Copyright (c) 2026 Andrés Rodríguez Cantú <acantu@tec.mx>.
// SPDX-License-Identifier: Apache-2.0

// Package airports answers IATA-code lookups against a local airports JSON
// database (an array of airport objects). The whole file is parsed once
// into an in-memory index; there is no remote lookup.
package airports

import (
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/tidwall/gjson"

	"github.com/acantu/hajjav/internal/iata"
)

// Airport is the subset of the database record the pipeline cares about.
type Airport struct {
	IATA        string
	Name        string
	CountryCode string
}

// Index is an immutable IATA -> Airport map.
type Index struct {
	byCode map[string]Airport
}

// LoadIndex reads an airports JSON file and builds the lookup index.
// Records without a usable iata code are skipped. Field names follow the
// common airport-db dumps: iata, name, country_code (iata_code and
// iso_country accepted as fallbacks).
func LoadIndex(path string) (*Index, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read airports db: %w", err)
	}

	parsed := gjson.ParseBytes(b)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("airports db %s: expected a JSON array", path)
	}

	idx := &Index{byCode: map[string]Airport{}}
	parsed.ForEach(func(_, rec gjson.Result) bool {
		code := rec.Get("iata").String()
		if code == "" {
			code = rec.Get("iata_code").String()
		}
		if !iata.IsCode(code) {
			return true
		}

		country := rec.Get("country_code").String()
		if country == "" {
			country = rec.Get("iso_country").String()
		}

		idx.byCode[iata.Normalize(code)] = Airport{
			IATA:        iata.Normalize(code),
			Name:        rec.Get("name").String(),
			CountryCode: country,
		}
		return true
	})

	log.Debugf("airports index: %d entries from %s", len(idx.byCode), path)
	return idx, nil
}

// Lookup returns the airport for an IATA code, if known. Zero or one
// records; never an error.
func (i *Index) Lookup(code string) (Airport, bool) {
	if i == nil || !iata.IsCode(code) {
		return Airport{}, false
	}
	a, ok := i.byCode[iata.Normalize(code)]
	return a, ok
}

// Len returns the number of indexed airports.
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.byCode)
}
