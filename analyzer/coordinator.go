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

package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"runtime/trace"

	"fillmore-labs.com/autoprop/internal/config"
	"fillmore-labs.com/autoprop/internal/eligibility"
	"fillmore-labs.com/autoprop/internal/plan"
	"fillmore-labs.com/autoprop/internal/project"
	"fillmore-labs.com/autoprop/internal/report"
	"fillmore-labs.com/autoprop/internal/symbols"
	"fillmore-labs.com/autoprop/internal/usage"
)

// runOptions represent configuration options for the coordinator.
type runOptions struct {
	// parallel bounds concurrent file scans.
	parallel int

	// behavior holds behavioral options.
	behavior config.BitMask[config.Config]

	// log receives telemetry; per-field failures are logged here and
	// degrade to "no diagnostic".
	log *slog.Logger
}

// defaultRunOptions initializes a runOptions instance with default values.
func defaultRunOptions() *runOptions {
	return &runOptions{
		parallel: runtime.GOMAXPROCS(0),
		behavior: config.NewBitMask(config.MemoizeVerdicts),
		log:      slog.New(slog.DiscardHandler),
	}
}

// Coordinator drives analysis passes and fix transactions.
type Coordinator struct {
	opts *runOptions
}

// New creates a coordinator, configured programmatically with [Option]
// values.
func New(opts ...Option) *Coordinator {
	r := defaultRunOptions()
	Options(opts).apply(r)

	return &Coordinator{opts: r}
}

// Candidate is one field walked through the per-field state machine.
type Candidate struct {
	// Field is the discovered backing-field candidate.
	Field *symbols.Field

	// Usage is the field's collected usage set.
	Usage *usage.Set

	// Verdict is the classification, zero until analyzed.
	Verdict eligibility.Verdict

	// State is the candidate's lifecycle position.
	State State

	// Err is set when per-field analysis failed and degraded.
	Err error
}

// Result is one completed analysis pass.
type Result struct {
	// Snapshot is the analyzed snapshot.
	Snapshot *project.Snapshot

	// Candidates lists every discovered field in deterministic order.
	Candidates []*Candidate

	// Diagnostics holds one entry per eligible candidate, sorted by
	// location.
	Diagnostics []report.Diagnostic
}

// Analyze runs one pass over the snapshot: discover fields, collect usage
// concurrently and classify every candidate. Per-field failures are logged
// and yield no diagnostic; only cancellation aborts the pass.
func (c *Coordinator) Analyze(ctx context.Context, snap *project.Snapshot) (*Result, error) {
	ctx, task := trace.NewTask(ctx, "autoprop")
	defer task.End()

	fields := snap.Fields()

	collector := &usage.Collector{
		Table:    snap.Symbols(),
		Parallel: c.opts.parallel,
		Log:      c.opts.log,
	}

	usages, err := collector.Collect(ctx, snap.Trees(), fields)
	if err != nil {
		return nil, err
	}

	analyzer := &eligibility.Analyzer{
		Adapter: snap.Adapter(),
		Version: snap.LangVersion(),
		Table:   snap.Symbols(),
	}

	var cache *eligibility.Cache
	if c.opts.behavior.Enabled(config.MemoizeVerdicts) {
		cache = &eligibility.Cache{}
	}

	result := &Result{Snapshot: snap}

	defer trace.StartRegion(ctx, "classify").End()

	for _, field := range fields {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cand := &Candidate{Field: field, Usage: usages[field], State: Discovered}
		result.Candidates = append(result.Candidates, cand)

		verdict, err := c.classify(analyzer, cache, field, cand.Usage)
		if err != nil {
			// degrade to no diagnostic for this field
			cand.State, cand.Err = AnalyzedIneligible, err
			c.opts.log.Error("field analysis failed", "field", field.Name, "err", err)

			continue
		}

		cand.Verdict = verdict

		if !verdict.Eligible() {
			cand.State = AnalyzedIneligible

			if c.opts.behavior.Enabled(config.VerboseVerdicts) {
				c.opts.log.Debug("ineligible",
					"field", field.Name,
					"reason", verdict.Reason,
					"usage", cand.Usage.Kinds())
			}

			continue
		}

		cand.State = AnalyzedEligible
		result.Diagnostics = append(result.Diagnostics, c.diagnostic(snap, verdict))
	}

	report.Sort(result.Diagnostics)

	return result, nil
}

// classify isolates one field's classification; a panicking host
// collaborator is caught here so the pass survives.
func (c *Coordinator) classify(a *eligibility.Analyzer, cache *eligibility.Cache, field *symbols.Field, set *usage.Set) (v eligibility.Verdict, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("classify %s: %v", field.Name, r)
		}
	}()

	if cache != nil {
		return cache.Classify(a, field, set), nil
	}

	return a.Classify(field, set), nil
}

func (c *Coordinator) diagnostic(snap *project.Snapshot, v eligibility.Verdict) report.Diagnostic {
	severity := report.SeverityInfo
	if c.opts.behavior.Enabled(config.WarnDiagnostics) {
		severity = report.SeverityWarning
	}

	unit := snap.Adapter().PromotableUnit(v.Field.Decl, v.Field.Declarator)

	return report.New(v, unit.Span(), severity)
}

// FixOutcome is the result of a fix request.
type FixOutcome struct {
	// Analysis is the pass the fix was computed from.
	Analysis *Result

	// Plan is the committed transaction, nil when there was nothing to fix.
	Plan *plan.Plan

	// Snapshot is the published post-commit snapshot, or the analyzed one
	// when no commit happened.
	Snapshot *project.Snapshot
}

// FixAll analyzes the workspace's current snapshot and commits every
// eligible candidate in one combined transaction. Per-field plans touching
// the same file are composed; overlapping edits fail the merge with
// [plan.ErrConflict] rather than dropping one.
func (c *Coordinator) FixAll(ctx context.Context, ws *project.Workspace) (*FixOutcome, error) {
	snap := ws.Snapshot()

	result, err := c.Analyze(ctx, snap)
	if err != nil {
		return nil, err
	}

	outcome := &FixOutcome{Analysis: result, Snapshot: snap}

	defer trace.StartRegion(ctx, "fix").End()

	builder := &plan.Builder{Adapter: snap.Adapter(), View: snap}

	var (
		plans     []*plan.Plan
		rewritten []*Candidate
	)

	for _, cand := range result.Candidates {
		if cand.State != AnalyzedEligible {
			continue
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p, err := builder.Build(cand.Verdict, cand.Usage.Sites())
		if err != nil {
			return nil, fmt.Errorf("plan %s: %w", cand.Field.Name, err)
		}

		cand.State = Rewritten
		plans = append(plans, p)
		rewritten = append(rewritten, cand)
	}

	if len(plans) == 0 {
		return outcome, nil
	}

	merged, err := plan.Merge(snap, plans)
	if err != nil {
		return nil, err
	}

	next, err := ws.Commit(merged)
	if err != nil {
		return nil, err
	}

	for _, cand := range rewritten {
		cand.State = Committed
	}

	c.opts.log.Info("committed fix-all transaction",
		"fields", len(rewritten),
		"files", len(merged.Files),
		"version", next.Version())

	outcome.Plan, outcome.Snapshot = merged, next

	return outcome, nil
}

// Fix commits the single candidate a previously reported diagnostic points
// at. The workspace is re-analyzed first; when the diagnostic no longer
// matches an eligible candidate the fix fails with [plan.ErrShapeChanged].
func (c *Coordinator) Fix(ctx context.Context, ws *project.Workspace, d report.Diagnostic) (*FixOutcome, error) {
	if d.ID != report.DiagnosticID {
		return nil, fmt.Errorf("%w: unknown diagnostic %q", plan.ErrShapeChanged, d.ID)
	}

	snap := ws.Snapshot()

	result, err := c.Analyze(ctx, snap)
	if err != nil {
		return nil, err
	}

	var cand *Candidate

	for _, candidate := range result.Candidates {
		if candidate.State != AnalyzedEligible ||
			candidate.Field.Name != d.Field || candidate.Field.File != d.File {
			continue
		}

		// Several types in one file may declare an eligible field with the
		// same name; the promotable-unit span pins the one reported.
		unit := snap.Adapter().PromotableUnit(candidate.Field.Decl, candidate.Field.Declarator)
		if unit.Span() != d.Span {
			continue
		}

		cand = candidate

		break
	}

	if cand == nil {
		return nil, fmt.Errorf("%w: %s in %s is no longer promotable",
			plan.ErrShapeChanged, d.Field, d.File)
	}

	builder := &plan.Builder{Adapter: snap.Adapter(), View: snap}

	p, err := builder.Build(cand.Verdict, cand.Usage.Sites())
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", cand.Field.Name, err)
	}

	cand.State = Rewritten

	next, err := ws.Commit(p)
	if err != nil {
		return nil, err
	}

	cand.State = Committed

	return &FixOutcome{Analysis: result, Plan: p, Snapshot: next}, nil
}

// FixEach analyzes and commits eligible candidates one transaction at a
// time, re-analyzing after every commit since each publish invalidates the
// previous snapshot's symbols.
func (c *Coordinator) FixEach(ctx context.Context, ws *project.Workspace) ([]*FixOutcome, error) {
	var outcomes []*FixOutcome

	for {
		snap := ws.Snapshot()

		result, err := c.Analyze(ctx, snap)
		if err != nil {
			return outcomes, err
		}

		cand := firstEligible(result.Candidates)
		if cand == nil {
			return outcomes, nil
		}

		builder := &plan.Builder{Adapter: snap.Adapter(), View: snap}

		p, err := builder.Build(cand.Verdict, cand.Usage.Sites())
		if err != nil {
			return outcomes, fmt.Errorf("plan %s: %w", cand.Field.Name, err)
		}

		cand.State = Rewritten

		next, err := ws.Commit(p)
		if err != nil {
			return outcomes, err
		}

		cand.State = Committed
		outcomes = append(outcomes, &FixOutcome{Analysis: result, Plan: p, Snapshot: next})
	}
}

func firstEligible(cands []*Candidate) *Candidate {
	for _, cand := range cands {
		if cand.State == AnalyzedEligible {
			return cand
		}
	}

	return nil
}
