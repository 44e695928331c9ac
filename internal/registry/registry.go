// Copyright (c) 2026 Andrés Rodríguez Cantú <acantu@tec.mx>.
// SPDX-License-Identifier: Apache-2.0

// Package registry enumerates the logical input datasets the pipeline
// depends on and resolves each to a concrete path. Resolution ("what could
// exist") is kept separate from fingerprinting ("what does exist right now")
// so validity checks can re-stat cheaply.
package registry

import (
	"fmt"
	"path/filepath"

	"github.com/apex/log"

	"github.com/acantu/hajjav/internal/config"
)

// Dataset kinds understood by the loader.
const (
	KindCSV   = "csv"
	KindExcel = "excel"
)

// Descriptor is one logical source: a unique name, the loader kind, and a
// concrete file path. Descriptors are plain data handed to New; nothing in
// this package consults ambient state after construction.
type Descriptor struct {
	Name string
	Kind string
	Path string
}

// Registry holds the configured descriptor set for one pipeline run.
type Registry struct {
	descriptors []Descriptor
	mode        Mode
}

// New builds a Registry from an explicit descriptor list. Later duplicates
// of a name win, which is how a manifest overrides the defaults.
func New(descriptors []Descriptor, mode Mode) *Registry {
	return &Registry{descriptors: descriptors, mode: mode}
}

// Resolve returns the current name -> path map. It never fails: descriptors
// with an empty path (unset category) are omitted, and paths are cleaned and
// made absolute where possible.
func (r *Registry) Resolve() map[string]string {
	sources := make(map[string]string, len(r.descriptors))
	for _, d := range r.descriptors {
		if d.Path == "" {
			continue
		}
		p := filepath.Clean(d.Path)
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		sources[d.Name] = p
	}
	return sources
}

// Kind returns the loader kind for a logical name, or "" if unknown.
func (r *Registry) Kind(name string) string {
	for _, d := range r.descriptors {
		if d.Name == name {
			return d.Kind
		}
	}
	return ""
}

// Fingerprint snapshots the provided sources using the registry's mode.
func (r *Registry) Fingerprint(sources map[string]string) Fingerprint {
	return Snapshot(sources, r.mode)
}

// Mode returns the registry's fingerprint mode.
func (r *Registry) Mode() Mode {
	return r.mode
}

// FromConfig assembles the full descriptor set: the built-in defaults from
// the YAML config plus, when configured, the overrides from an HCL sources
// manifest.
func FromConfig(env config.Env) *Registry {
	mode, _ := config.GetString("fingerprint.mode", string(ModeMtime))

	descriptors := DefaultDescriptors(env)

	if manifest, err := config.GetString("sources_manifest"); err == nil && manifest != "" {
		fromManifest, mErr := LoadManifest(manifest, dataDir(env))
		if mErr != nil {
			log.WithError(mErr).Warnf("ignoring sources manifest %s", manifest)
		} else {
			descriptors = merge(descriptors, fromManifest)
		}
	}

	return New(descriptors, ModeFromString(mode))
}

// DefaultDescriptors mirrors the original pipeline's source layout. Each
// category is gated on its paths.* config key; a missing key simply omits
// the category. The population census is the one exception: it always gets
// a descriptor, falling back to its historical hardcoded location.
func DefaultDescriptors(env config.Env) []Descriptor {
	var descriptors []Descriptor

	dd := dataDir(env)

	if dr, err := config.GetString("paths.datarush"); err == nil && dd != "" {
		descriptors = append(descriptors,
			Descriptor{Name: "countries", Kind: KindCSV,
				Path: filepath.Join(dd, dr, "countries.csv")},
			Descriptor{Name: "global_holidays", Kind: KindCSV,
				Path: filepath.Join(dd, dr, "global_holidays.csv")},
		)
	}

	if av, err := config.GetString("paths.aviation"); err == nil && dd != "" {
		for year := 2010; year <= 2019; year++ {
			descriptors = append(descriptors, Descriptor{
				Name: fmt.Sprintf("aviation_%d", year),
				Kind: KindExcel,
				Path: filepath.Join(dd, av, fmt.Sprintf("%d.xlsx", year)),
			})
		}
	}

	if hj, err := config.GetString("paths.hajj"); err == nil && dd != "" {
		for i := 1; i <= 4; i++ {
			descriptors = append(descriptors, Descriptor{
				Name: fmt.Sprintf("pilgrimage_%d", i),
				Kind: KindExcel,
				Path: filepath.Join(dd, hj, fmt.Sprintf("pilgrimage%d.xlsx", i)),
			})
		}
	}

	// Always present, even with nothing configured.
	census, _ := config.GetString("paths.population",
		filepath.Join("db", "muslims", "population_census"))
	descriptors = append(descriptors, Descriptor{
		Name: "population_census",
		Kind: KindExcel,
		Path: filepath.Join(dd, census, "muslim_population_by_country.xlsx"),
	})

	return descriptors
}

// merge overlays b onto a by name, appending names a doesn't have.
func merge(a, b []Descriptor) []Descriptor {
	result := make([]Descriptor, len(a))
	copy(result, a)
outer:
	for _, d := range b {
		for i := range result {
			if result[i].Name == d.Name {
				result[i] = d
				continue outer
			}
		}
		result = append(result, d)
	}
	return result
}

func dataDir(env config.Env) string {
	if dd, err := config.GetString("data_dir"); err == nil && dd != "" {
		return dd
	}
	return env.DataDir
}
