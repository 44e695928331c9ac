// Copyright (c) 2026 Andrés Rodríguez Cantú <acantu@tec.mx>.
// SPDX-License-Identifier: Apache-2.0

package cachestore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acantu/hajjav/internal/config"
	"github.com/acantu/hajjav/internal/dataset"
	"github.com/acantu/hajjav/internal/registry"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	store := New(config.Env{CacheDir: dir}, registry.ModeMtime)
	return store, dir
}

func testBundle() *dataset.Bundle {
	b := dataset.NewBundle()
	b.Put("countries", &dataset.Table{
		Name:    "countries",
		Columns: []string{"Country", "Code"},
		Rows:    [][]string{{"Indonesia", "ID"}, {"Pakistan", "PK"}},
	})
	b.Put("aviation_2015", &dataset.Table{
		Name:    "aviation_2015",
		Columns: []string{"Airport", "Destination", "Month"},
		Rows:    [][]string{{"JED", "CGK", "9"}},
	})
	b.SavedAt = time.Now()
	return b
}

// writeSources drops real files in a temp dir so fingerprints have
// something to observe.
func writeSources(t *testing.T) map[string]string {
	t.Helper()
	dir := t.TempDir()
	sources := map[string]string{}
	for _, name := range []string{"countries", "aviation_2015"} {
		path := filepath.Join(dir, name+".dat")
		require.NoError(t, os.WriteFile(path, []byte(name), 0o644))
		sources[name] = path
	}
	return sources
}

func TestNew_CacheDirPrecedence(t *testing.T) {
	store := New(config.Env{CacheDir: "/explicit"}, registry.ModeMtime)
	assert.Equal(t, "/explicit", store.Dir())
	assert.True(t, store.Enabled())
}

func TestNew_Disabled(t *testing.T) {
	store := New(config.Env{CacheDir: t.TempDir(), Cache: "0"}, registry.ModeMtime)
	assert.False(t, store.Enabled())
	assert.False(t, store.IsValid(registry.Fingerprint{}))
	assert.NoError(t, store.Save(testBundle(), map[string]string{}))
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	sources := writeSources(t)

	require.NoError(t, store.Save(testBundle(), sources))

	got, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, got.Countries)
	assert.Equal(t, [][]string{{"Indonesia", "ID"}, {"Pakistan", "PK"}}, got.Countries.Rows)
	require.Contains(t, got.Aviation, "aviation_2015")
	assert.Equal(t, "JED", got.Aviation["aviation_2015"].Rows[0][0])
}

func TestIsValid_FreshSave(t *testing.T) {
	store, _ := newTestStore(t)
	sources := writeSources(t)

	require.NoError(t, store.Save(testBundle(), sources))

	current := registry.Snapshot(sources, registry.ModeMtime)
	assert.True(t, store.IsValid(current))
}

func TestIsValid_MtimeBumpInvalidates(t *testing.T) {
	store, _ := newTestStore(t)
	sources := writeSources(t)

	require.NoError(t, store.Save(testBundle(), sources))

	// Bump one source's mtime.
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(sources["countries"], future, future))

	current := registry.Snapshot(sources, registry.ModeMtime)
	assert.False(t, store.IsValid(current))
}

func TestIsValid_SourceSetDriftInvalidates(t *testing.T) {
	store, _ := newTestStore(t)
	sources := writeSources(t)

	require.NoError(t, store.Save(testBundle(), sources))

	// A dataset added to the configuration changes the fingerprint key set.
	grown := map[string]string{}
	for k, v := range sources {
		grown[k] = v
	}
	grown["pilgrimage_1"] = "/nonexistent/pilgrimage1.xlsx"

	current := registry.Snapshot(grown, registry.ModeMtime)
	assert.False(t, store.IsValid(current))
}

func TestIsValid_AbsentSourceIsStable(t *testing.T) {
	store, _ := newTestStore(t)
	sources := writeSources(t)
	sources["optional"] = "/nonexistent/optional.xlsx"

	require.NoError(t, store.Save(testBundle(), sources))

	// Still absent on the next check: cache stays valid.
	current := registry.Snapshot(sources, registry.ModeMtime)
	assert.True(t, store.IsValid(current))
}

func TestIsValid_ForceReload(t *testing.T) {
	dir := t.TempDir()
	store := New(config.Env{CacheDir: dir}, registry.ModeMtime)
	sources := writeSources(t)
	require.NoError(t, store.Save(testBundle(), sources))

	forced := New(config.Env{CacheDir: dir, ForceReload: "1"}, registry.ModeMtime)
	current := registry.Snapshot(sources, registry.ModeMtime)
	assert.False(t, forced.IsValid(current))

	// The files themselves are untouched.
	assert.True(t, store.IsValid(current))
}

func TestIsValid_MissingFiles(t *testing.T) {
	store, _ := newTestStore(t)
	assert.False(t, store.IsValid(registry.Fingerprint{}))
}

func TestLoad_CorruptBundle(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, os.MkdirAll(store.Dir(), 0o755))
	require.NoError(t, os.WriteFile(store.BundlePath(), []byte("not gob"), 0o600))

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestIsValid_CorruptMeta(t *testing.T) {
	store, _ := newTestStore(t)
	sources := writeSources(t)
	require.NoError(t, store.Save(testBundle(), sources))

	require.NoError(t, os.WriteFile(store.MetaPath(), []byte("{invalid"), 0o600))

	current := registry.Snapshot(sources, registry.ModeMtime)
	assert.False(t, store.IsValid(current), "undecodable fingerprint must read as a miss")

	_, err := store.StoredFingerprint()
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestClear_Idempotent(t *testing.T) {
	store, _ := newTestStore(t)
	sources := writeSources(t)
	require.NoError(t, store.Save(testBundle(), sources))

	require.NoError(t, store.Clear())
	_, err := os.Stat(store.BundlePath())
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(store.MetaPath())
	assert.True(t, os.IsNotExist(err))

	// Clearing again is fine.
	assert.NoError(t, store.Clear())
}

func TestSave_OverwritesPreviousGeneration(t *testing.T) {
	store, _ := newTestStore(t)
	sources := writeSources(t)

	require.NoError(t, store.Save(testBundle(), sources))

	b2 := dataset.NewBundle()
	b2.Put("countries", &dataset.Table{
		Name:    "countries",
		Columns: []string{"Country"},
		Rows:    [][]string{{"Malaysia"}},
	})
	require.NoError(t, store.Save(b2, sources))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Malaysia"}}, got.Countries.Rows)

	// No temp files left behind.
	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestSave_FilePermissions(t *testing.T) {
	store, _ := newTestStore(t)
	sources := writeSources(t)
	require.NoError(t, store.Save(testBundle(), sources))

	for _, p := range []string{store.BundlePath(), store.MetaPath()} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), p)
	}
}

func TestPurge(t *testing.T) {
	store, dir := newTestStore(t)
	sources := writeSources(t)
	require.NoError(t, store.Save(testBundle(), sources))

	// Age the bundle file past the threshold; keep the meta file fresh.
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(store.BundlePath(), old, old))

	require.NoError(t, store.Purge(24))

	_, err := os.Stat(store.BundlePath())
	assert.True(t, os.IsNotExist(err), "aged file should be purged")
	_, err = os.Stat(store.MetaPath())
	assert.NoError(t, err, "fresh file should survive")

	// hours <= 0 is a no-op.
	require.NoError(t, store.Purge(0))
	_, err = os.Stat(filepath.Join(dir, metaFile))
	assert.NoError(t, err)
}

func TestFiles(t *testing.T) {
	store, _ := newTestStore(t)

	files := store.Files()
	require.Len(t, files, 2)
	assert.False(t, files[0].Exists)
	assert.False(t, files[1].Exists)

	sources := writeSources(t)
	require.NoError(t, store.Save(testBundle(), sources))

	files = store.Files()
	for _, fi := range files {
		assert.True(t, fi.Exists, fi.Path)
		assert.Positive(t, fi.Size, fi.Path)
	}
}
