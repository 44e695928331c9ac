// Copyright © 2026 Andrés Rodríguez Cantú acantu@tec.mx
// SPDX-License-Identifier: MIT

package version

// Version is stamped at build time via -ldflags.
var Version = "dev"
