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
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fillmore-labs.com/autoprop/analyzer"
	"fillmore-labs.com/autoprop/internal/lang"
	"fillmore-labs.com/autoprop/internal/lang/csharp"
	"fillmore-labs.com/autoprop/internal/lang/vb"
	"fillmore-labs.com/autoprop/internal/project"
)

// dialects maps the --lang flag to its adapter.
var dialects = map[string]lang.Adapter{
	"csharp": csharp.Adapter{},
	"vb":     vb.Adapter{},
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "autoprop",
		Short:         "autoprop merges trivially-delegating properties with their backing fields",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.String("lang", "", `source dialect, "csharp" or "vb"`)
	flags.String("lang-version", "", `language version, e.g. "5", "7.3" or "latest"`)
	flags.Int("parallel", 0, "concurrent file scans, 0 for one per processor")
	flags.String("config", "", "settings file (default autoprop.toml when present)")
	flags.Bool("warnings", false, "report findings as warnings instead of infos")
	flags.BoolP("verbose", "v", false, "log verdicts and telemetry to stderr")
	flags.Bool("no-color", false, "disable colorized output")

	cmd.AddCommand(newCheckCmd(), newFixCmd())

	return cmd
}

// session is the resolved environment of one invocation.
type session struct {
	settings  Settings
	adapter   lang.Adapter
	version   lang.Version
	workspace *project.Workspace
	paths     map[string]string // document name -> filesystem path
	coord     *analyzer.Coordinator
	log       *slog.Logger
}

// newSession merges settings file and flags, loads the source tree and
// builds the initial snapshot.
func newSession(cmd *cobra.Command, args []string) (*session, error) {
	settings, err := resolveSettings(cmd)
	if err != nil {
		return nil, err
	}

	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		color.NoColor = true
	}

	adapter, ok := dialects[settings.Lang]
	if !ok {
		return nil, fmt.Errorf("unknown dialect %q", settings.Lang)
	}

	version, err := lang.ParseVersion(settings.LangVersion)
	if err != nil {
		return nil, err
	}

	log := slog.New(slog.DiscardHandler)
	if settings.Verbose {
		log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	docs, paths, err := loadDocuments(adapter, args)
	if err != nil {
		return nil, err
	}

	snap, err := project.NewSnapshot(project.Config{Adapter: adapter, Version: version}, docs)
	if err != nil {
		return nil, err
	}

	coord := analyzer.New(
		analyzer.WithParallel(settings.Parallel),
		analyzer.WithVerboseVerdicts(settings.Verbose),
		analyzer.WithWarnings(settings.Warnings),
		analyzer.WithLogger(log),
	)

	return &session{
		settings:  settings,
		adapter:   adapter,
		version:   version,
		workspace: project.NewWorkspace(snap),
		paths:     paths,
		coord:     coord,
		log:       log,
	}, nil
}

// loadDocuments reads the dialect's source files from the given files and
// directories, defaulting to the working directory.
func loadDocuments(adapter lang.Adapter, args []string) (docs, paths map[string]string, err error) {
	if len(args) == 0 {
		args = []string{"."}
	}

	docs = make(map[string]string)
	paths = make(map[string]string)

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, nil, err
		}

		if !info.IsDir() {
			if err := loadDocument(docs, paths, arg); err != nil {
				return nil, nil, err
			}

			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}

			if !slices.Contains(adapter.Extensions(), strings.ToLower(filepath.Ext(path))) {
				return nil
			}

			return loadDocument(docs, paths, path)
		})
		if err != nil {
			return nil, nil, err
		}
	}

	if len(docs) == 0 {
		return nil, nil, fmt.Errorf("no %s files found", adapter.Name())
	}

	return docs, paths, nil
}

func loadDocument(docs, paths map[string]string, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	name := filepath.ToSlash(path)
	docs[name] = string(content)
	paths[name] = path

	return nil
}
