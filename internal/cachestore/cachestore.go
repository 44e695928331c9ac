// Copyright (c) 2026 Andrés Rodríguez Cantú <acantu@tec.mx>.
// SPDX-License-Identifier: Apache-2.0

// Package cachestore owns the durability contract of the result cache: two
// sibling files (an opaque gob bundle and a human-readable fingerprint)
// written atomically, validity decided by exact fingerprint equality, and
// every internal failure recoverable by the caller falling back to a full
// reload.
package cachestore

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/apex/log"

	"github.com/acantu/hajjav/internal/config"
	"github.com/acantu/hajjav/internal/dataset"
	"github.com/acantu/hajjav/internal/registry"
)

const (
	bundleFile = "data_cache.gob"
	metaFile   = "data_cache_meta.json"
)

var (
	// ErrCorrupt indicates the stored bundle or fingerprint could not be
	// decoded. Callers treat it as a forced miss, never as fatal.
	ErrCorrupt = errors.New("cache corrupt")
	// ErrWriteFailed indicates the cache could not be persisted. The
	// pipeline proceeds with its in-memory bundle; only the benefit for the
	// next run is lost.
	ErrWriteFailed = errors.New("cache write failed")
)

// Store manages one cache instance rooted at a single directory.
type Store struct {
	dir     string
	enabled bool
	env     config.Env
	mode    registry.Mode
}

// New resolves the cache directory and returns a Store. Precedence:
//  1. HAJJAV_CACHE_DIR, if set and non-empty
//  2. os.UserCacheDir()/hajjav
//
// If no base can be resolved, or HAJJAV_CACHE disables caching, the Store
// is inert: IsValid is always false and Save is a no-op.
func New(env config.Env, mode registry.Mode) *Store {
	s := &Store{env: env, mode: mode, enabled: env.CacheEnabled()}

	if env.CacheDir != "" {
		s.dir = env.CacheDir
	} else if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		s.dir = filepath.Join(dir, "hajjav")
	} else {
		s.enabled = false
	}

	return s
}

// Dir returns the resolved cache directory ("" when disabled).
func (s *Store) Dir() string {
	return s.dir
}

// Enabled reports whether the store will read or write anything at all.
func (s *Store) Enabled() bool {
	return s.enabled
}

// BundlePath returns the path of the serialized bundle file.
func (s *Store) BundlePath() string {
	return filepath.Join(s.dir, bundleFile)
}

// MetaPath returns the path of the serialized fingerprint file.
func (s *Store) MetaPath() string {
	return filepath.Join(s.dir, metaFile)
}

// IsValid reports whether the stored bundle may be reused for the given
// current fingerprint. It is false when the force-reload override is
// active, when either file is absent, when the stored fingerprint cannot be
// decoded, or when the fingerprints differ. No side effects.
func (s *Store) IsValid(current registry.Fingerprint) bool {
	if !s.enabled {
		return false
	}
	if s.env.ForceReloadActive() {
		log.Debug("force reload active, cache treated as invalid")
		return false
	}
	if _, err := os.Stat(s.BundlePath()); err != nil {
		return false
	}

	stored, err := s.StoredFingerprint()
	if err != nil {
		return false
	}

	return stored.Equal(current)
}

// StoredFingerprint decodes the persisted fingerprint file.
func (s *Store) StoredFingerprint() (registry.Fingerprint, error) {
	b, err := os.ReadFile(s.MetaPath())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	var stored registry.Fingerprint
	if err := json.Unmarshal(b, &stored); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.MetaPath(), err)
	}
	return stored, nil
}

// Load deserializes and returns the stored bundle. Any decode failure comes
// back as ErrCorrupt; the caller falls back to a full source reload.
func (s *Store) Load() (*dataset.Bundle, error) {
	b, err := os.ReadFile(s.BundlePath())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	var bundle dataset.Bundle
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&bundle); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.BundlePath(), err)
	}

	return &bundle, nil
}

// Save persists the bundle and a fresh fingerprint of sources as the new
// cache generation. Each file is written to a temp file in the cache dir
// and promoted by rename, so a failed write leaves the previous generation
// readable and a concurrent reader never observes a half-written file.
func (s *Store) Save(bundle *dataset.Bundle, sources map[string]string) error {
	if !s.enabled {
		return nil // treat as disabled.
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("%w: failed to create cache directory: %v", ErrWriteFailed, err)
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(bundle); err != nil {
		return fmt.Errorf("%w: failed to encode bundle: %v", ErrWriteFailed, err)
	}
	if err := writeAtomic(s.BundlePath(), buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	fp := registry.Snapshot(sources, s.mode)
	meta, err := json.MarshalIndent(fp, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to encode fingerprint: %v", ErrWriteFailed, err)
	}
	if err := writeAtomic(s.MetaPath(), meta); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	log.Debugf("cache saved to %s", s.BundlePath())
	return nil
}

// Clear deletes both cache files. Clearing an empty or absent cache is not
// an error.
func (s *Store) Clear() error {
	for _, p := range []string{s.BundlePath(), s.MetaPath()} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", p, err)
		}
	}
	return nil
}

// Purge removes files in the cache dir older than the provided number of
// hours. If hours <= 0 or the store is disabled, it is a no-op.
func (s *Store) Purge(hours int) error {
	if hours <= 0 {
		log.Debug("cache cleaning disabled")
		return nil
	}
	if !s.enabled {
		return nil
	}
	maxAge := time.Duration(hours) * time.Hour
	if err := filepath.Walk(s.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil //nolint:nilerr // absent dir means nothing to purge.
		}
		if !info.IsDir() && time.Since(info.ModTime()) > maxAge {
			if err := os.Remove(path); err == nil {
				log.Debugf("removed cache file %s", path)
			} else {
				log.WithError(err).Warnf("failed to remove cache file %s", path)
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	return nil
}

// FileInfo describes one of the two cache files for status reporting.
type FileInfo struct {
	Path    string
	Size    int64
	ModTime time.Time
	Exists  bool
}

// Files stats both cache files.
func (s *Store) Files() []FileInfo {
	result := make([]FileInfo, 0, 2) //nolint:mnd
	for _, p := range []string{s.BundlePath(), s.MetaPath()} {
		fi := FileInfo{Path: p}
		if info, err := os.Stat(p); err == nil {
			fi.Size = info.Size()
			fi.ModTime = info.ModTime()
			fi.Exists = true
		}
		result = append(result, fi)
	}
	return result
}

// writeAtomic writes data to a temp file in path's directory and promotes
// it with a rename. On any failure the temp file is removed and the
// previous file at path is left untouched.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, os.FileMode(0o600)); err != nil { //nolint:mnd
		os.Remove(tmpName)
		return fmt.Errorf("failed to chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to promote %s: %w", tmpName, err)
	}
	return nil
}
