// Package app is folio's composition root.
//
// # Overview
//
// Open wires configuration, storage, logging and the state store together
// and hands back an Env. The CLI commands work on an Env directly; Run adds
// the persist retrier and the TUI on top of one.
//
// # Initialization
//
//  1. Load ~/.config/folio/config.toml (or the --config path)
//  2. Apply --data-dir, --backend and --ephemeral overrides
//  3. Open the log file, or discard records for ephemeral sessions
//  4. Open the key-value medium (file, sqlite or memory)
//  5. Build the state store, which loads the three persisted entities
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> Open()          config, log file, kv medium, state.Store
//	       ├─────> StartRetrier()  background persist retries
//	       └─────> ui.Run()        TUI (blocks)
//
// # Error Handling
//
// Open fails on an unreadable config, an unknown backend, or storage and log
// files that cannot be opened. Once the store exists nothing is fatal: a
// failed storage write is logged and recorded on the store, and the retrier
// rewrites the state with exponential backoff (capped at 30s) until a write
// lands.
package app
