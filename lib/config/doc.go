// Copyright 2026 The Tablescout Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for tablescout.
//
// Configuration is loaded from a single file specified by either the
// TABLESCOUT_CONFIG environment variable (via [Load]) or a --config
// flag (via [LoadFile]). There is no ~/.config discovery and no
// automatic file search; when no file is named, the built-in defaults
// apply unchanged, so the tool runs without any configuration at all.
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded. No other
// environment variables override config values — the file is the
// single source of truth once named.
//
// Key exports:
//
//   - [Config] -- master struct with Server, Search, UI, Log sections
//   - [Default] -- returns a Config with stock defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other tablescout packages.
package config
