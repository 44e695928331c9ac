// Copyright © 2026 Andrés Rodríguez Cantú acantu@tec.mx
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Env is the environment surface of the tool, bound with envconfig under the
// HAJJAV_ prefix. The YAML config file carries everything else; only the
// knobs that must be flippable per-invocation without editing a file live
// here.
type Env struct {
	// CacheDir overrides the cache directory (HAJJAV_CACHE_DIR).
	CacheDir string `envconfig:"CACHE_DIR"`
	// Cache disables the cache entirely when "0" or "false" (HAJJAV_CACHE).
	Cache string `envconfig:"CACHE"`
	// ForceReload, when affirmative, makes every validity check report a
	// miss (HAJJAV_FORCE_RELOAD).
	ForceReload string `envconfig:"FORCE_RELOAD"`
	// DataDir is the root under which the dataset files live
	// (HAJJAV_DATA_DIR). The config file key data_dir takes precedence.
	DataDir string `envconfig:"DATA_DIR"`
}

// FromEnv binds the HAJJAV_* variables. Parse failures are impossible with
// an all-string struct, so the error is swallowed.
func FromEnv() Env {
	var e Env
	_ = envconfig.Process("hajjav", &e)
	return e
}

// CacheEnabled returns true unless HAJJAV_CACHE explicitly disables it
// ("0"/"false").
func (e Env) CacheEnabled() bool {
	return e.Cache == "" || (e.Cache != "0" && e.Cache != "false")
}

// ForceReloadActive reports whether the force-reload override is set to an
// affirmative value.
func (e Env) ForceReloadActive() bool {
	switch strings.ToLower(e.ForceReload) {
	case "1", "true", "yes":
		return true
	}
	return false
}
