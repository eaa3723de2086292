// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

// defaultSettingsFile is consulted when --config is not given.
const defaultSettingsFile = "autoprop.toml"

// Settings are the file-configurable options; flags override them.
type Settings struct {
	// Lang selects the dialect adapter.
	Lang string `toml:"lang"`

	// LangVersion is the active language version, "latest" when empty.
	LangVersion string `toml:"lang-version"`

	// Parallel bounds concurrent file scans, 0 for one per processor.
	Parallel int `toml:"parallel"`

	// Warnings raises diagnostics from info to warning severity.
	Warnings bool `toml:"warnings"`

	// Verbose logs verdicts and telemetry.
	Verbose bool `toml:"verbose"`
}

func defaultSettings() Settings {
	return Settings{
		Lang:        "csharp",
		LangVersion: "latest",
	}
}

// resolveSettings layers the settings file under any explicitly set flags.
func resolveSettings(cmd *cobra.Command) (Settings, error) {
	settings := defaultSettings()

	path, _ := cmd.Flags().GetString("config")
	explicit := path != ""

	if !explicit {
		path = defaultSettingsFile
	}

	meta, err := toml.DecodeFile(path, &settings)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// no settings file is fine

	case err != nil:
		return Settings{}, fmt.Errorf("settings %s: %w", path, err)

	default:
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			fmt.Fprintf(os.Stderr, "autoprop: settings %s: unknown keys %v\n", path, undecoded)
		}
	}

	flags := cmd.Flags()

	if flags.Changed("lang") {
		settings.Lang, _ = flags.GetString("lang")
	}

	if flags.Changed("lang-version") {
		settings.LangVersion, _ = flags.GetString("lang-version")
	}

	if flags.Changed("parallel") {
		settings.Parallel, _ = flags.GetInt("parallel")
	}

	if flags.Changed("warnings") {
		settings.Warnings, _ = flags.GetBool("warnings")
	}

	if flags.Changed("verbose") {
		settings.Verbose, _ = flags.GetBool("verbose")
	}

	return settings, nil
}
