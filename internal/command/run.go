// Copyright (c) 2026 Andrés Rodríguez Cantú <acantu@tec.mx>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/acantu/hajjav/internal/meta"
)

// runSlot is one line of the run summary.
type runSlot struct {
	Slot   string `json:"slot"`
	Tables int    `json:"tables"`
	Rows   int    `json:"rows"`
}

// RunCommandAction is the action handler for the "run" subcommand. It runs
// the full cache-aware load and emits a per-slot summary of what was
// loaded.
func RunCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	_, store, ld := NewPipeline()
	log.Debugf("cache dir: %s", store.Dir())

	bundle, err := ld.Load(ctx)
	if err != nil {
		return err
	}

	rowCount := func(name string) int {
		if t := bundle.Table(name); t != nil {
			return len(t.Rows)
		}
		return 0
	}

	results := []runSlot{
		{Slot: "countries", Tables: bundle.Counts()["countries"], Rows: rowCount("countries")},
		{Slot: "global_holidays", Tables: bundle.Counts()["global_holidays"], Rows: rowCount("global_holidays")},
		{Slot: "population_census", Tables: bundle.Counts()["population_census"], Rows: rowCount("population_census")},
	}

	aviation := runSlot{Slot: "aviation", Tables: len(bundle.Aviation)}
	for _, t := range bundle.Aviation {
		aviation.Rows += len(t.Rows)
	}
	results = append(results, aviation)

	pilgrimage := runSlot{Slot: "pilgrimage", Tables: len(bundle.Pilgrimage)}
	for _, t := range bundle.Pilgrimage {
		pilgrimage.Rows += len(t.Rows)
	}
	results = append(results, pilgrimage)

	al := BuildAttrs(cmd, "slot", "tables", "rows")
	return EmitRows(results, al, cmd)
}

// RunCommandBuilder constructs the cli.Command for "run", wiring metadata,
// flags, and action/validator handlers.
func RunCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "load all datasets (cache-aware) and summarize",
		UsageText: `hajjav run [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: NewGlobalFlags("run"),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := RunCommandValidator(ctx, c); err != nil {
				return err
			}
			return RunCommandAction(ctx, c)
		},
	}
}

// RunCommandValidator performs validation for "run" and delegates to
// GlobalFlagsValidator.
func RunCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
