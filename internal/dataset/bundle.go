// Copyright (c) 2026 Andrés Rodríguez Cantú <acantu@tec.mx>.
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"strings"
	"time"
)

// Bundle is the computed payload the cache persists between runs: one slot
// per dataset category plus the save timestamp. Slots for sources that were
// missing at load time stay nil/absent, mirroring what a fresh load would
// have produced.
type Bundle struct {
	SavedAt    time.Time
	Countries  *Table
	Holidays   *Table
	Census     *Table
	Aviation   map[string]*Table
	Pilgrimage map[string]*Table
}

// NewBundle returns a Bundle with the map slots initialized.
func NewBundle() *Bundle {
	return &Bundle{
		Aviation:   map[string]*Table{},
		Pilgrimage: map[string]*Table{},
	}
}

// Put routes a loaded table into its slot by logical source name. Unknown
// names are dropped; the registry is the authority on what exists.
func (b *Bundle) Put(name string, t *Table) {
	switch {
	case name == "countries":
		b.Countries = t
	case name == "global_holidays":
		b.Holidays = t
	case name == "population_census":
		b.Census = t
	case strings.HasPrefix(name, "aviation_"):
		if b.Aviation == nil {
			b.Aviation = map[string]*Table{}
		}
		b.Aviation[name] = t
	case strings.HasPrefix(name, "pilgrimage_"):
		if b.Pilgrimage == nil {
			b.Pilgrimage = map[string]*Table{}
		}
		b.Pilgrimage[name] = t
	}
}

// Table is the reverse of Put: fetch a table by logical source name.
func (b *Bundle) Table(name string) *Table {
	switch {
	case name == "countries":
		return b.Countries
	case name == "global_holidays":
		return b.Holidays
	case name == "population_census":
		return b.Census
	case strings.HasPrefix(name, "aviation_"):
		return b.Aviation[name]
	case strings.HasPrefix(name, "pilgrimage_"):
		return b.Pilgrimage[name]
	}
	return nil
}

// Counts summarizes how many tables each slot holds, for the run report.
func (b *Bundle) Counts() map[string]int {
	counts := map[string]int{}
	if b.Countries != nil {
		counts["countries"] = 1
	}
	if b.Holidays != nil {
		counts["global_holidays"] = 1
	}
	if b.Census != nil {
		counts["population_census"] = 1
	}
	counts["aviation"] = len(b.Aviation)
	counts["pilgrimage"] = len(b.Pilgrimage)
	return counts
}
