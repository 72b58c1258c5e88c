// Package cli defines the Cobra command tree for the versionsync CLI. Each
// file registers one top-level command (node, ruff, all, config, version).
// Commands resolve settings through internal/config and delegate the actual
// synchronization to internal/nodeversion and internal/linterversion.
package cli
