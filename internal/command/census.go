// Copyright (c) 2026 Andrés Rodríguez Cantú <acantu@tec.mx>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/acantu/hajjav/internal/analysis"
	"github.com/acantu/hajjav/internal/meta"
)

// CensusCommandAction is the action handler for the "census" subcommand. It
// ranks countries by Muslim population share from the loaded census table.
func CensusCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	_, _, ld := NewPipeline()
	bundle, err := ld.Load(ctx)
	if err != nil {
		return err
	}

	rows, err := analysis.TopMuslimCountries(bundle.Census, int(cmd.Int("limit")))
	if err != nil {
		return err
	}

	al := BuildAttrs(cmd, "country", "flag_code", "pct")
	return EmitRows(rows, al, cmd)
}

// CensusCommandBuilder constructs the cli.Command for "census", wiring
// metadata, flags, and action/validator handlers.
func CensusCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	flags := NewGlobalFlags("census")
	flags = append(flags,
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"l"},
			Usage:   "number of countries to rank",
			Value:   16, //nolint:mnd
		},
	)

	return &cli.Command{
		Name:      "census",
		Usage:     "rank countries by Muslim population share",
		UsageText: `hajjav census [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := CensusCommandValidator(ctx, c); err != nil {
				return err
			}
			return CensusCommandAction(ctx, c)
		},
	}
}

// CensusCommandValidator performs validation for "census" and delegates to
// GlobalFlagsValidator.
func CensusCommandValidator(ctx context.Context, cmd *cli.Command) error {
	if cmd.Int("limit") < 0 {
		return errors.New("invalid --limit: must not be negative")
	}
	return GlobalFlagsValidator(ctx, cmd)
}
