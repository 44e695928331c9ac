// Copyright (c) 2026 Andrés Rodríguez Cantú <acantu@tec.mx>.
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

// Mode selects how a source file is fingerprinted.
type Mode string

const (
	// ModeMtime records the file's modification time (UnixNano). This is
	// the default and matches the cache's "trust the mtimes" contract.
	ModeMtime Mode = "mtime"
	// ModeContent records an XXHash of the file's content instead. Slower,
	// but immune to mtime-only touches.
	ModeContent Mode = "content"
)

// ModeFromString normalizes a configured mode value, defaulting to mtime.
func ModeFromString(s string) Mode {
	if Mode(s) == ModeContent {
		return ModeContent
	}
	return ModeMtime
}

// Fingerprint is a snapshot of the observed state of a named set of source
// files. A nil entry is the explicit "absent" marker for a file that could
// not be stat'd (or hashed). It serializes to a flat JSON object with
// numeric values and nulls, which is exactly re-derivable on the next run.
type Fingerprint map[string]*int64

// Snapshot fingerprints every entry of sources. Per-file failures of any
// kind degrade to the absent marker; this function never fails as a whole.
func Snapshot(sources map[string]string, mode Mode) Fingerprint {
	fp := make(Fingerprint, len(sources))
	for name, path := range sources {
		fp[name] = observe(path, mode)
	}
	return fp
}

func observe(path string, mode Mode) *int64 {
	if mode == ModeContent {
		f, err := os.Open(path)
		if err != nil {
			return nil
		}
		defer f.Close()
		h := xxhash.New()
		if _, err := io.Copy(h, f); err != nil {
			return nil
		}
		sum := int64(h.Sum64()) //nolint:gosec // stable bijection is all we need
		return &sum
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil
	}
	mtime := info.ModTime().UnixNano()
	return &mtime
}

// Equal reports exact equality: same key set and, per key, both absent or
// the same observed value. Key-set drift (a dataset added or removed since
// the stored fingerprint was written) therefore reads as inequality, which
// is what forces the cache miss.
func (f Fingerprint) Equal(other Fingerprint) bool {
	if len(f) != len(other) {
		return false
	}
	for name, v := range f {
		ov, ok := other[name]
		if !ok {
			return false
		}
		if (v == nil) != (ov == nil) {
			return false
		}
		if v != nil && *v != *ov {
			return false
		}
	}
	return true
}
