// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Product Labs - Product health, budget and release timeline analysis for Buildly Product Labs.

Copyright (C) 2025  Buildly

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package portfolio evaluates a directory of product snapshots and keeps
// per-product results so failed evaluations can be resumed.
package portfolio

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/buildly-release-management/buildly-react-template-sub002/internal/health"
	"github.com/buildly-release-management/buildly-react-template-sub002/internal/snapshot"
)

// Evaluator produces the entry for one snapshot path.
type Evaluator interface {
	Evaluate(ctx context.Context, snapshotPath string) Entry
}

// SnapshotEvaluator loads snapshots relative to Root and scores them.
// Now, when set, overrides both the snapshot date and the calculator clock.
type SnapshotEvaluator struct {
	Root string
	Calc *health.Calculator
	Now  *time.Time
}

// Evaluate implements Evaluator.
func (e SnapshotEvaluator) Evaluate(_ context.Context, snapshotPath string) Entry {
	entry := Entry{Snapshot: snapshotPath}

	snap, err := snapshot.Load(filepath.Join(e.Root, filepath.FromSlash(snapshotPath)))
	if err != nil {
		entry.Status = EntryFail
		entry.Error = err.Error()
		return entry
	}

	now := e.Calc.Now()
	switch {
	case e.Now != nil:
		now = *e.Now
	case snap.Now != nil:
		now = snap.Now.Time
	}
	report := e.Calc.CalculateAt(snap.Input, now)

	entry.Status = EntryPass
	entry.ProductID = snap.Product.ID
	entry.Product = snap.Product.Name
	entry.Overall = report.Overall
	entry.Score = report.Score
	return entry
}

// Runner evaluates snapshots in order and records their results.
type Runner struct {
	snapshots []string
	eval      Evaluator
	store     *StateStore
	logger    *zap.Logger
}

// NewRunner creates a runner over the given snapshot paths. A nil logger is
// replaced with a no-op logger.
func NewRunner(snapshots []string, eval Evaluator, store *StateStore, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		snapshots: snapshots,
		eval:      eval,
		store:     store,
		logger:    logger,
	}
}

// RunAll evaluates every snapshot. It continues past failures and returns an
// error if any snapshot failed.
func (r *Runner) RunAll(ctx context.Context) ([]Entry, error) {
	return r.executeSequence(ctx, r.snapshots)
}

// Resume re-evaluates only the snapshots that failed in the last run.
func (r *Runner) Resume(ctx context.Context) ([]Entry, error) {
	failed, err := r.store.LoadFailed()
	if err != nil {
		return nil, fmt.Errorf("loading failed snapshots: %w", err)
	}
	if len(failed) == 0 {
		return []Entry{}, nil
	}
	return r.executeSequence(ctx, failed)
}

// executeSequence evaluates paths, updating state after each one.
func (r *Runner) executeSequence(ctx context.Context, paths []string) ([]Entry, error) {
	entries := make([]Entry, 0, len(paths))
	evaluated := make([]string, 0, len(paths))
	failed := []string{}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return entries, err
		}

		e := r.eval.Evaluate(ctx, path)
		if err := r.store.WriteEntry(e); err != nil {
			return entries, fmt.Errorf("writing result for %s: %w", path, err)
		}
		entries = append(entries, e)
		evaluated = append(evaluated, path)

		if e.Status != EntryPass {
			failed = append(failed, path)
			r.logger.Warn("snapshot evaluation failed",
				zap.String("snapshot", path),
				zap.String("error", e.Error),
			)
			continue
		}
		r.logger.Debug("snapshot evaluated",
			zap.String("snapshot", path),
			zap.String("product", e.Product),
			zap.String("overall", e.Overall.String()),
			zap.Int("score", e.Score),
		)
	}

	last := LastRun{Status: "pass", Snapshots: evaluated, Failed: failed}
	if len(failed) > 0 {
		last.Status = "fail"
	}
	if err := r.store.WriteLastRun(last); err != nil {
		return entries, fmt.Errorf("writing last run: %w", err)
	}

	if len(failed) > 0 {
		return entries, fmt.Errorf("portfolio run failed: %v", failed)
	}
	return entries, nil
}
