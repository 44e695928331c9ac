// Copyright (c) 2026 Andrés Rodríguez Cantú <acantu@tec.mx>.
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// A sources manifest lets a user replace or extend the built-in descriptor
// set without recompiling:
//
//	data_dir = "/srv/datarush"
//
//	source "aviation" {
//	  kind  = "excel"
//	  years = [2014, 2015, 2016]
//	  path  = "${data_dir}/aviation/${year}.xlsx"
//	}
//
// A source with years expands to one descriptor per year, named
// "<label>_<year>". path is an HCL template with data_dir (and, inside a
// years block, year) in scope.

type manifestFile struct {
	DataDir *string          `hcl:"data_dir"`
	Sources []manifestSource `hcl:"source,block"`
}

type manifestSource struct {
	Name  string         `hcl:"name,label"`
	Kind  string         `hcl:"kind"`
	Years []int          `hcl:"years,optional"`
	Path  hcl.Expression `hcl:"path"`
}

// LoadManifest parses an HCL sources manifest into descriptors. dataDir is
// the value from config/env; a data_dir attribute in the manifest wins.
func LoadManifest(path string, dataDir string) ([]Descriptor, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest: %w", diags)
	}

	var mf manifestFile
	if diags := gohcl.DecodeBody(file.Body, nil, &mf); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest: %w", diags)
	}

	if mf.DataDir != nil && *mf.DataDir != "" {
		dataDir = *mf.DataDir
	}

	var descriptors []Descriptor
	for _, src := range mf.Sources {
		if src.Kind != KindCSV && src.Kind != KindExcel {
			return nil, fmt.Errorf("source %q: unsupported kind %q", src.Name, src.Kind)
		}

		if len(src.Years) == 0 {
			p, err := evalPath(src.Path, dataDir, nil)
			if err != nil {
				return nil, fmt.Errorf("source %q: %w", src.Name, err)
			}
			descriptors = append(descriptors, Descriptor{
				Name: src.Name, Kind: src.Kind, Path: p})
			continue
		}

		for _, year := range src.Years {
			y := year
			p, err := evalPath(src.Path, dataDir, &y)
			if err != nil {
				return nil, fmt.Errorf("source %q year %d: %w", src.Name, year, err)
			}
			descriptors = append(descriptors, Descriptor{
				Name: fmt.Sprintf("%s_%d", src.Name, year),
				Kind: src.Kind,
				Path: p,
			})
		}
	}

	return descriptors, nil
}

// evalPath evaluates the path expression with data_dir (and optionally
// year) in scope.
func evalPath(expr hcl.Expression, dataDir string, year *int) (string, error) {
	vars := map[string]cty.Value{
		"data_dir": cty.StringVal(dataDir),
	}
	if year != nil {
		vars["year"] = cty.NumberIntVal(int64(*year))
	}

	val, diags := expr.Value(&hcl.EvalContext{Variables: vars})
	if diags.HasErrors() {
		return "", fmt.Errorf("failed to evaluate path: %w", diags)
	}
	if val.Type() != cty.String {
		return "", fmt.Errorf("path must evaluate to a string, got %s", val.Type().FriendlyName())
	}

	return val.AsString(), nil
}
