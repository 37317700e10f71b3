// Package config loads folio's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/folio/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing/empty, use defaults for them
//
// # Default Values
//
//   - Config file: ~/.config/folio/config.toml
//   - Backend: file
//   - Data directory: ~/.local/share/folio
//   - Log file: <data_dir>/folio.log
//   - Log level: info
//   - Upload workers: 4
//   - Max image size: 20 MiB
//
// # TOML Format
//
//	backend = "sqlite"
//	data_dir = "~/.local/share/folio"
//	log_file = "~/.local/share/folio/folio.log"
//	log_level = "debug"
//	upload_workers = 4
//	max_image_bytes = 20971520
//
// Every field is optional. Tilde expansion is performed on paths. When
// data_dir is set and log_file is not, the log moves with the data dir.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML parse errors and an unknown backend. A missing file is
// not an error.
package config
