// Copyright (c) 2026 Andrés Rodríguez Cantú <acantu@tec.mx>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/acantu/hajjav/internal/analysis"
	"github.com/acantu/hajjav/internal/hajj"
	"github.com/acantu/hajjav/internal/meta"
)

// RoutesCommandAction is the action handler for the "routes" subcommand. It
// loads the bundle (cache-aware), resolves both endpoints of every aviation
// row of the requested year against the airports database, flags rows
// falling in that year's Hajj season, and emits the result.
func RoutesCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	year := int(cmd.Int("year"))

	_, _, ld := NewPipeline()
	bundle, err := ld.Load(ctx)
	if err != nil {
		return err
	}

	table := bundle.Aviation[fmt.Sprintf("aviation_%d", year)]
	if table == nil {
		return fmt.Errorf("no aviation data loaded for %d", year)
	}

	idx, err := LoadAirportsIndex()
	if err != nil {
		return fmt.Errorf("failed to load airports database: %w", err)
	}

	var season *hajj.Season
	if s, err := hajj.ForYear(year); err == nil {
		season = &s
	} else if errors.Is(err, hajj.ErrNoConversion) {
		log.Warnf("no hajj season available for %d", year)
	} else {
		return err
	}

	routes, err := analysis.Routes(table, idx, season)
	if err != nil {
		return err
	}

	if export := cmd.String("export"); export != "" {
		if err := analysis.ExportRoutesCSV(routes, export); err != nil {
			return err
		}
		log.Infof("exported %d routes to %s", len(routes), export)
	}

	al := BuildAttrs(cmd,
		"airport", "destination", "airport_country", "destination_country",
		"month", "in_hajj_season")
	return EmitRows(routes, al, cmd)
}

// RoutesCommandBuilder constructs the cli.Command for "routes", wiring
// metadata, flags, and action/validator handlers.
func RoutesCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	flags := NewGlobalFlags("routes")
	flags = append(flags,
		NewYearFlag("routes"),
		&cli.StringFlag{
			Name:    "export",
			Aliases: []string{"e"},
			Usage:   "write the routes to `FILE` as CSV",
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator)
			},
		},
	)

	return &cli.Command{
		Name:      "routes",
		Usage:     "list aviation routes with both endpoints resolved to countries",
		UsageText: `hajjav routes [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := RoutesCommandValidator(ctx, c); err != nil {
				return err
			}
			return RoutesCommandAction(ctx, c)
		},
	}
}

// RoutesCommandValidator performs validation for "routes" and delegates to
// GlobalFlagsValidator.
func RoutesCommandValidator(ctx context.Context, cmd *cli.Command) error {
	if err := FlagValidators(int(cmd.Int("year")), YearValidator); err != nil {
		return fmt.Errorf("invalid --year: %w", err)
	}
	return GlobalFlagsValidator(ctx, cmd)
}
