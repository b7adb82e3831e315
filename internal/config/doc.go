// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for awsctl's user
// configuration. The configuration is a YAML document named by
// AWSCTL_CFG_FILE or located in the user's configuration directory:
//   - Linux: $XDG_CONFIG_HOME/awsctl.yaml or $HOME/.config/awsctl.yaml
//   - macOS: $HOME/Library/Application Support/awsctl.yaml
//   - Windows: %APPDATA%/awsctl.yaml
//
// Operation parameter defaults live under "<service>.<command>.<param>", for
// example "ssm.Get-SSMParameter.with-decryption: true".
package config
