// Copyright (c) 2026 Andrés Rodríguez Cantú <acantu@tec.mx>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/acantu/hajjav/internal/hajj"
	"github.com/acantu/hajjav/internal/meta"
)

const (
	firstAviationYear = 2010
	lastAviationYear  = 2019
)

// hajjRow is one line of the hajj season table.
type hajjRow struct {
	Year  int    `json:"year"`
	Start string `json:"start"`
	End   string `json:"end"`
	Month string `json:"month"`
}

// HajjCommandAction is the action handler for the "hajj" subcommand. It
// emits the computed Hajj season window for each year in the aviation
// range, or a single year when --year is given.
func HajjCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	first, last := firstAviationYear, lastAviationYear
	if cmd.IsSet("year") {
		first = int(cmd.Int("year"))
		last = first
	}

	var rows []hajjRow
	for year := first; year <= last; year++ {
		s, err := hajj.ForYear(year)
		if errors.Is(err, hajj.ErrNoConversion) {
			log.Warnf("no hajj season available for %d", year)
			continue
		}
		if err != nil {
			return err
		}
		rows = append(rows, hajjRow{
			Year:  s.Year,
			Start: s.Start.Format("2006-01-02"),
			End:   s.End.Format("2006-01-02"),
			Month: s.Month().String(),
		})
	}

	al := BuildAttrs(cmd, "year", "start", "end", "month")
	return EmitRows(rows, al, cmd)
}

// HajjCommandBuilder constructs the cli.Command for "hajj", wiring
// metadata, flags, and action/validator handlers.
func HajjCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	flags := NewGlobalFlags("hajj")
	flags = append(flags, NewYearFlag("hajj"))

	return &cli.Command{
		Name:      "hajj",
		Usage:     "show computed Hajj season dates per year",
		UsageText: `hajjav hajj [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := HajjCommandValidator(ctx, c); err != nil {
				return err
			}
			return HajjCommandAction(ctx, c)
		},
	}
}

// HajjCommandValidator performs validation for "hajj" and delegates to
// GlobalFlagsValidator.
func HajjCommandValidator(ctx context.Context, cmd *cli.Command) error {
	if cmd.IsSet("year") {
		if err := FlagValidators(int(cmd.Int("year")), YearValidator); err != nil {
			return err
		}
	}
	return GlobalFlagsValidator(ctx, cmd)
}
