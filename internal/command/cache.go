// Copyright (c) 2026 Andrés Rodríguez Cantú <acantu@tec.mx>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
	gojsondiff "github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/acantu/hajjav/internal/config"
	"github.com/acantu/hajjav/internal/meta"
)

// cacheFileRow is one line of the cache status report.
type cacheFileRow struct {
	File     string `json:"file"`
	Size     string `json:"size"`
	Modified string `json:"modified"`
	State    string `json:"state"`
}

// CacheStatusCommandAction reports where the cache lives, what it holds,
// and whether it would be reused on the next load. When the cache is stale
// it also prints a diff of the stored fingerprint against the current one,
// which names exactly which source files moved.
func CacheStatusCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	reg, store, _ := NewPipeline()

	if !store.Enabled() {
		fmt.Fprintln(os.Stdout, "cache is disabled")
		return nil
	}

	current := reg.Fingerprint(reg.Resolve())
	valid := store.IsValid(current)

	var rows []cacheFileRow
	for _, fi := range store.Files() {
		row := cacheFileRow{File: fi.Path, State: "absent"}
		if fi.Exists {
			row.Size = humanize.Bytes(uint64(fi.Size))
			row.Modified = humanize.Time(fi.ModTime)
			row.State = "stale"
			if valid {
				row.State = "valid"
			}
		}
		rows = append(rows, row)
	}

	al := BuildAttrs(cmd, "file", "size", "modified", "state")
	if err := EmitRows(rows, al, cmd); err != nil {
		return err
	}

	if !valid {
		if diff := fingerprintDiff(cmd, current); diff != "" {
			fmt.Fprint(os.Stdout, diff)
		}
	}

	return nil
}

// fingerprintDiff renders stored-vs-current fingerprints as an ascii diff.
// Any failure along the way collapses to "" since the diff is advisory.
func fingerprintDiff(cmd *cli.Command, current any) string {
	_, store, _ := NewPipeline()

	stored, err := store.StoredFingerprint()
	if err != nil {
		return ""
	}

	storedJSON, err := json.Marshal(stored)
	if err != nil {
		return ""
	}
	currentJSON, err := json.Marshal(current)
	if err != nil {
		return ""
	}

	d, err := gojsondiff.New().Compare(storedJSON, currentJSON)
	if err != nil || !d.Modified() {
		return ""
	}

	var left map[string]interface{}
	if err := json.Unmarshal(storedJSON, &left); err != nil {
		return ""
	}

	out, err := formatter.NewAsciiFormatter(left, formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       cmd.Bool("color"),
	}).Format(d)
	if err != nil {
		return ""
	}
	return out
}

// CacheClearCommandAction deletes both cache files. Clearing an absent
// cache succeeds.
func CacheClearCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	_, store, _ := NewPipeline()
	if err := store.Clear(); err != nil {
		return err
	}
	log.Infof("cache cleared from %s", store.Dir())
	return nil
}

// CachePurgeCommandAction removes cache files older than --hours (falling
// back to the cache.clean config key).
func CachePurgeCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	hours := int(cmd.Int("hours"))
	if hours == 0 {
		if v, err := config.GetInt("cache.clean"); err == nil {
			hours = v
		}
	}

	_, store, _ := NewPipeline()
	return store.Purge(hours)
}

// CacheCommandBuilder constructs the cli.Command for "cache" and its
// status/clear/purge subcommands.
func CacheCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "cache",
		Usage:     "inspect and manage the on-disk result cache",
		UsageText: `hajjav cache <status|clear|purge> [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Commands: []*cli.Command{
			{
				Name:      "status",
				Usage:     "show cache files and validity against the current sources",
				UsageText: `hajjav cache status [options]`,
				Metadata: map[string]any{
					"meta": meta,
				},
				Flags:  NewGlobalFlags("cache"),
				Action: CacheStatusCommandAction,
			},
			{
				Name:      "clear",
				Usage:     "delete the cache files",
				UsageText: `hajjav cache clear`,
				Metadata: map[string]any{
					"meta": meta,
				},
				Action: CacheClearCommandAction,
			},
			{
				Name:      "purge",
				Usage:     "remove cache files older than a number of hours",
				UsageText: `hajjav cache purge [options]`,
				Metadata: map[string]any{
					"meta": meta,
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "hours",
						Usage: "age threshold in hours (0 uses the cache.clean config key)",
					},
				},
				Action: CachePurgeCommandAction,
			},
		},
	}
}
