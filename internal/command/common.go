// Copyright (c) 2026 Andrés Rodríguez Cantú <acantu@tec.mx>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/acantu/hajjav/internal/airports"
	"github.com/acantu/hajjav/internal/analysis"
	"github.com/acantu/hajjav/internal/attrs"
	"github.com/acantu/hajjav/internal/cachestore"
	"github.com/acantu/hajjav/internal/config"
	"github.com/acantu/hajjav/internal/loader"
	"github.com/acantu/hajjav/internal/meta"
	"github.com/acantu/hajjav/internal/output"
	"github.com/acantu/hajjav/internal/registry"
)

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --cols, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (al attrs.AttrList) {
	//nolint:errcheck
	{
		for _, d := range defaults {
			al.Set(d)
		}
		if extras := cmd.String("cols"); extras != "" {
			al.Set(extras)
		}
		al.SetGlobalTransformSpec()
	}
	return
}

// EmitRows marshals a row slice and passes it to the common output routine.
func EmitRows(rows any, al attrs.AttrList, cmd *cli.Command) error {
	raw, err := analysis.RowsJSON(rows)
	if err != nil {
		return fmt.Errorf("failed to marshal rows: %w", err)
	}
	output.SliceDiceSpit(raw, al, cmd, os.Stdout)
	return nil
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// NewPipeline assembles the registry, cache store and loader the way every
// data command needs them.
func NewPipeline() (*registry.Registry, *cachestore.Store, *loader.Loader) {
	env := config.FromEnv()
	reg := registry.FromConfig(env)
	store := cachestore.New(env, reg.Mode())
	return reg, store, loader.New(reg, store)
}

// LoadAirportsIndex resolves and loads the airports database configured at
// paths.airports (relative paths hang off data_dir).
func LoadAirportsIndex() (*airports.Index, error) {
	env := config.FromEnv()

	path, err := config.GetString("paths.airports")
	if err != nil || path == "" {
		return nil, fmt.Errorf("paths.airports is not configured")
	}

	if !filepath.IsAbs(path) {
		if dd, dErr := config.GetString("data_dir", env.DataDir); dErr == nil && dd != "" {
			path = filepath.Join(dd, path)
		}
	}

	return airports.LoadIndex(path)
}
