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
	"log/slog"

	"fillmore-labs.com/autoprop/internal/config"
)

// Option configures specific behavior of a [New] coordinator.
type Option interface {
	apply(r *runOptions)
	LogAttr() slog.Attr
}

// Options is a list of [Option] values that itself satisfies the [Option] interface.
type Options []Option

// LogValue implements [slog.LogValuer].
func (o Options) LogValue() slog.Value {
	as := make([]slog.Attr, 0, len(o))
	as = appendOptions(as, o)

	return slog.GroupValue(as...)
}

func appendOptions(as []slog.Attr, o Options) []slog.Attr {
	for _, opt := range o {
		switch opt := opt.(type) {
		case nil:
			as = append(as, slog.String("nil", "<nil>"))

		case Options:
			as = appendOptions(as, opt)

		default:
			as = append(as, opt.LogAttr())
		}
	}

	return as
}

func (o Options) apply(r *runOptions) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(r)
	}
}

// LogAttr is for logging with [slog.Logger.LogAttrs].
func (o Options) LogAttr() slog.Attr {
	return slog.Any("options", o)
}

// WithParallel is an [Option] bounding the number of files scanned
// concurrently. Zero or negative means one goroutine per processor.
func WithParallel(parallel int) Option { return parallelOption{parallel: parallel} }

type parallelOption struct{ parallel int }

func (o parallelOption) apply(r *runOptions) {
	r.parallel = o.parallel
}

func (o parallelOption) LogAttr() slog.Attr {
	return slog.Int("parallel", o.parallel)
}

// WithVerboseVerdicts is an [Option] to log negative verdicts with their reason.
func WithVerboseVerdicts(verbose bool) Option { return verboseOption{verbose: verbose} }

type verboseOption struct{ verbose bool }

func (o verboseOption) apply(r *runOptions) {
	r.behavior.Set(config.VerboseVerdicts, o.verbose)
}

func (o verboseOption) LogAttr() slog.Attr {
	return slog.Bool("verboseVerdicts", o.verbose)
}

// WithMemoize is an [Option] to configure the per-snapshot verdict cache.
func WithMemoize(memoize bool) Option { return memoizeOption{memoize: memoize} }

type memoizeOption struct{ memoize bool }

func (o memoizeOption) apply(r *runOptions) {
	r.behavior.Set(config.MemoizeVerdicts, o.memoize)
}

func (o memoizeOption) LogAttr() slog.Attr {
	return slog.Bool("memoize", o.memoize)
}

// WithWarnings is an [Option] to emit diagnostics as warnings instead of infos.
func WithWarnings(warn bool) Option { return warnOption{warn: warn} }

type warnOption struct{ warn bool }

func (o warnOption) apply(r *runOptions) {
	r.behavior.Set(config.WarnDiagnostics, o.warn)
}

func (o warnOption) LogAttr() slog.Attr {
	return slog.Bool("warnings", o.warn)
}

// WithLogger is an [Option] directing the coordinator's telemetry output.
func WithLogger(log *slog.Logger) Option { return loggerOption{log: log} }

type loggerOption struct{ log *slog.Logger }

func (o loggerOption) apply(r *runOptions) {
	if o.log != nil {
		r.log = o.log
	}
}

func (o loggerOption) LogAttr() slog.Attr {
	return slog.Bool("logger", o.log != nil)
}
