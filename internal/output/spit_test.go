// Copyright © 2026 Andrés Rodríguez Cantú acantu@tec.mx
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/acantu/hajjav/internal/attrs"
)

const routesRaw = `[
	{"airport":"JED","destination":"CGK","month":9},
	{"airport":"MED","destination":"KHI","month":3}
]`

// runSpit runs SliceDiceSpit under a throwaway command so the flag values
// arrive the same way they do in production.
func runSpit(t *testing.T, args []string, raw string, al attrs.AttrList) string {
	t.Helper()

	var out bytes.Buffer
	cmd := &cli.Command{
		Name: "test",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Value: "text"},
			&cli.StringFlag{Name: "filter"},
			&cli.StringFlag{Name: "sort"},
			&cli.BoolFlag{Name: "color"},
			&cli.BoolFlag{Name: "titles"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			var b bytes.Buffer
			b.WriteString(raw)
			SliceDiceSpit(b, al, c, &out)
			return nil
		},
	}

	require.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))
	return out.String()
}

func routeAttrs(t *testing.T) attrs.AttrList {
	t.Helper()
	var al attrs.AttrList
	require.NoError(t, al.Set("airport,destination,month"))
	return al
}

func TestSliceDiceSpit_Raw(t *testing.T) {
	got := runSpit(t, []string{"--output", "raw"}, routesRaw, routeAttrs(t))
	assert.Equal(t, routesRaw, got, "raw mode must dump the input untouched")
}

func TestSliceDiceSpit_JSON(t *testing.T) {
	got := runSpit(t, []string{"--output", "json"}, routesRaw, routeAttrs(t))
	assert.JSONEq(t, `[
		{"airport":"JED","destination":"CGK","month":9},
		{"airport":"MED","destination":"KHI","month":3}
	]`, got)
}

func TestSliceDiceSpit_JSONFiltered(t *testing.T) {
	got := runSpit(t, []string{"--output", "json", "--filter", "airport=JED"},
		routesRaw, routeAttrs(t))
	assert.JSONEq(t, `[{"airport":"JED","destination":"CGK","month":9}]`, got)
}

func TestSliceDiceSpit_JSONSorted(t *testing.T) {
	got := runSpit(t, []string{"--output", "json", "--sort", "month"},
		routesRaw, routeAttrs(t))
	assert.JSONEq(t, `[
		{"airport":"MED","destination":"KHI","month":3},
		{"airport":"JED","destination":"CGK","month":9}
	]`, got)
}

func TestSliceDiceSpit_YAML(t *testing.T) {
	got := runSpit(t, []string{"--output", "yaml", "--filter", "airport=MED"},
		routesRaw, routeAttrs(t))
	assert.Contains(t, got, "airport: MED")
	assert.Contains(t, got, "destination: KHI")
}

func TestSliceDiceSpit_Text(t *testing.T) {
	got := runSpit(t, []string{"--output", "text", "--titles"}, routesRaw, routeAttrs(t))
	assert.Contains(t, got, "JED")
	assert.Contains(t, got, "airport", "titles mode includes the headers")
}

func TestSliceDiceSpit_Transform(t *testing.T) {
	var al attrs.AttrList
	require.NoError(t, al.Set("airport::l,destination,month"))

	got := runSpit(t, []string{"--output", "json"}, routesRaw, al)
	assert.Contains(t, got, `"airport":"jed"`)
}

func TestSortDataset(t *testing.T) {
	data := func() []map[string]interface{} {
		return []map[string]interface{}{
			{"name": "beta", "pct": 40.0},
			{"name": "Alpha", "pct": 90.0},
			{"name": "gamma", "pct": 40.0},
		}
	}

	t.Run("ascending string, case-insensitive", func(t *testing.T) {
		d := data()
		SortDataset(d, "name")
		assert.Equal(t, "Alpha", d[0]["name"])
		assert.Equal(t, "beta", d[1]["name"])
	})

	t.Run("descending numeric", func(t *testing.T) {
		d := data()
		SortDataset(d, "-pct")
		assert.Equal(t, 90.0, d[0]["pct"])
	})

	t.Run("multi-key with stability", func(t *testing.T) {
		d := data()
		SortDataset(d, "pct,name")
		assert.Equal(t, "beta", d[0]["name"])
		assert.Equal(t, "gamma", d[1]["name"])
		assert.Equal(t, "Alpha", d[2]["name"])
	})

	t.Run("case-sensitive", func(t *testing.T) {
		d := []map[string]interface{}{
			{"name": "beta"},
			{"name": "Alpha"},
			{"name": "ALPHA"},
		}
		SortDataset(d, "!name")
		assert.Equal(t, "ALPHA", d[0]["name"])
		assert.Equal(t, "Alpha", d[1]["name"])
		assert.Equal(t, "beta", d[2]["name"])
	})

	t.Run("empty spec is a no-op", func(t *testing.T) {
		d := data()
		SortDataset(d, "")
		assert.Equal(t, "beta", d[0]["name"])
	})
}

func TestInterfaceToString(t *testing.T) {
	assert.Equal(t, "JED", InterfaceToString("JED"))
	assert.Equal(t, "9", InterfaceToString(9.0), "whole floats print without .0")
	assert.Equal(t, "87.2", InterfaceToString(87.2))
	assert.Equal(t, "true", InterfaceToString(true))
	assert.Equal(t, "", InterfaceToString(nil))
	assert.Equal(t, "-", InterfaceToString(nil, "-"))
	assert.Equal(t, "-", InterfaceToString("", "-"))
}
