// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for cfgdiff's user
// configuration. The configuration is a YAML document named by
// CFGDIFF_CFG_FILE or located in the user's configuration directory:
//   - Linux: $XDG_CONFIG_HOME/cfgdiff.yaml or $HOME/.config/cfgdiff.yaml
//   - macOS: $HOME/Library/Application Support/cfgdiff.yaml
//   - Windows: %APPDATA%/cfgdiff.yaml
//
// A typical file:
//
//	store: /config
//	archive:
//	  type: s3
//	  s3:
//	    bucket: router-configs
//	    key: edge1/config.boot.json
//	cache:
//	  clean: 24
//	show:
//	  secure: ["--hide-secrets", "--context"]
package config
