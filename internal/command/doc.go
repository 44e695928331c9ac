// Copyright © 2026 Andrés Rodríguez Cantú acantu@tec.mx
// SPDX-License-Identifier: MIT

// Package command defines the CLI command set for hajjav. It wires flags,
// validators, actions, and shell completion for subcommands.
package command
