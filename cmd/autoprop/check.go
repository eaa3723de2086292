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

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fillmore-labs.com/autoprop/internal/plan"
	"fillmore-labs.com/autoprop/internal/report"
)

// errPromotable signals findings through the exit code without extra output.
var errPromotable = errors.New("promotable field/property pairs found")

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [path ...]",
		Short: "Report fields that can be merged into auto-properties",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, args)
			if err != nil {
				return err
			}

			snap := s.workspace.Snapshot()

			result, err := s.coord.Analyze(cmd.Context(), snap)
			if err != nil {
				return err
			}

			for _, d := range result.Diagnostics {
				printDiagnostic(cmd, snap, d)
			}

			if len(result.Diagnostics) > 0 {
				return errPromotable
			}

			return nil
		},
	}
}

func printDiagnostic(cmd *cobra.Command, view plan.View, d report.Diagnostic) {
	severity := color.New(color.FgCyan)
	if d.Severity == report.SeverityWarning {
		severity = color.New(color.FgYellow)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s: %s\n",
		d.Position(view), severity.Sprint(d.Severity), d.Message)
}
