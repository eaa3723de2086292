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
	"os"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newFixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [path ...]",
		Short: "Merge every eligible pair in one transaction",
		Long: `Fix analyzes the project, plans the promotion of every eligible
field/property pair and applies all plans as a single atomic transaction.
Without --write the result is shown as a unified diff; --diff prints
the diff even when writing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			write, _ := cmd.Flags().GetBool("write")
			showDiff, _ := cmd.Flags().GetBool("diff")

			s, err := newSession(cmd, args)
			if err != nil {
				return err
			}

			outcome, err := s.coord.FixAll(cmd.Context(), s.workspace)
			if err != nil {
				return err
			}

			if outcome.Plan == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "no promotable pairs")

				return nil
			}

			before := outcome.Analysis.Snapshot
			after := outcome.Snapshot

			for _, name := range outcome.Plan.FileNames() {
				old, _ := before.Content(name)
				updated, _ := after.Content(name)

				if !write || showDiff {
					printDiff(cmd, name, old, updated)
				}

				if !write {
					continue
				}

				if err := writeDocument(s.paths[name], updated); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "fixed %s\n", name)
			}

			return nil
		},
	}

	cmd.Flags().Bool("write", false, "rewrite the source files in place")
	cmd.Flags().Bool("diff", false, "print the unified diff even when writing")

	return cmd
}

func writeDocument(path, content string) error {
	if path == "" {
		return errors.New("unknown source path")
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	return os.WriteFile(path, []byte(content), info.Mode().Perm())
}

func printDiff(cmd *cobra.Command, name, old, updated string) {
	diff := udiff.Unified("a/"+name, "b/"+name, old, updated)

	added, removed := color.New(color.FgGreen), color.New(color.FgRed)

	for _, line := range strings.SplitAfter(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
			added.Fprint(cmd.OutOrStdout(), line)

		case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
			removed.Fprint(cmd.OutOrStdout(), line)

		default:
			fmt.Fprint(cmd.OutOrStdout(), line)
		}
	}
}
