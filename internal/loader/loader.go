// Copyright (c) 2026 Andrés Rodríguez Cantú <acantu@tec.mx>.
// SPDX-License-Identifier: Apache-2.0

// Package loader drives the cache-aware load of the full dataset bundle:
// resolve sources, check cache validity, either reuse the stored bundle or
// reload every dataset (in parallel) and persist the result for next time.
package loader

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/apex/log"
	"golang.org/x/sync/errgroup"

	"github.com/acantu/hajjav/internal/cachestore"
	"github.com/acantu/hajjav/internal/dataset"
	"github.com/acantu/hajjav/internal/registry"
)

const defaultParallelism = 4

// Loader wires the registry and the cache store into the load pipeline.
type Loader struct {
	Registry    *registry.Registry
	Store       *cachestore.Store
	Parallelism int
}

// New returns a Loader with the default bounded parallelism.
func New(reg *registry.Registry, store *cachestore.Store) *Loader {
	return &Loader{Registry: reg, Store: store, Parallelism: defaultParallelism}
}

// Load returns the dataset bundle, from cache when the fingerprint still
// matches, otherwise freshly loaded from the source files. Cache-layer
// failures (corruption, write errors) degrade to warnings; only parse
// failures of actually-present source files abort the load.
func (l *Loader) Load(ctx context.Context) (*dataset.Bundle, error) {
	sources := l.Registry.Resolve()
	current := l.Registry.Fingerprint(sources)

	if l.Store.IsValid(current) {
		bundle, err := l.Store.Load()
		if err == nil {
			log.Debugf("loaded cached bundle (saved at %s)", bundle.SavedAt.Format(time.RFC3339))
			return bundle, nil
		}
		log.WithError(err).Warn("failed to load cache, will reload from sources")
	}

	bundle, err := l.reload(ctx, sources)
	if err != nil {
		return nil, err
	}

	if err := l.Store.Save(bundle, sources); err != nil {
		log.WithError(err).Warn("failed to save cache")
	}

	return bundle, nil
}

// reload loads every resolved source with a bounded worker pool. Each
// dataset load is independent and read-only, and merge order is irrelevant
// since tables land in slots keyed by logical name.
func (l *Loader) reload(ctx context.Context, sources map[string]string) (*dataset.Bundle, error) {
	bundle := dataset.NewBundle()

	parallelism := l.Parallelism
	if parallelism <= 0 {
		parallelism = defaultParallelism
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for name, path := range sources {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			t, err := l.read(name, path)
			if err != nil {
				// A missing file is a warning, not a failure: the slot just
				// stays empty, same as the original pipeline.
				if errors.Is(err, dataset.ErrSourceUnavailable) {
					log.Warnf("%s not found; leaving slot empty (%s)", name, path)
					return nil
				}
				return err
			}

			mu.Lock()
			bundle.Put(name, t)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	bundle.SavedAt = time.Now()
	return bundle, nil
}

func (l *Loader) read(name, path string) (*dataset.Table, error) {
	switch l.Registry.Kind(name) {
	case registry.KindCSV:
		return dataset.ReadCSV(path, name)
	case registry.KindExcel:
		return dataset.ReadExcel(path, name)
	default:
		return nil, fmt.Errorf("%w: %s: unknown dataset kind", dataset.ErrParse, name)
	}
}
