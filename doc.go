// Copyright © 2026 Andrés Rodríguez Cantú acantu@tec.mx
// SPDX-License-Identifier: MIT

// hajjav is the main package for the hajjav command line tool. It wires the
// CLI, delegates to internal packages, and serves as the entry point.
package main
