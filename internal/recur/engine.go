// Package recur implements the duplication engine: one pass fetches
// recently completed tasks, filters them, and creates a fresh copy of each
// eligible task exactly once.
package recur

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hay-kot/recur/internal/core/filter"
	"github.com/hay-kot/recur/internal/core/processed"
	"github.com/hay-kot/recur/internal/core/task"
	"github.com/hay-kot/recur/internal/ticktick"
)

// Gateway is the remote task API surface the engine depends on.
type Gateway interface {
	// CompletedTasks returns tasks completed at or after since.
	CompletedTasks(ctx context.Context, since time.Time) ([]task.Task, error)
	// CreateTask creates a task and returns it with its assigned id.
	CreateTask(ctx context.Context, dup task.Duplicate) (task.Task, error)
	// Projects returns all projects, used to resolve project names when a
	// project filter is configured.
	Projects(ctx context.Context) ([]ticktick.Project, error)
}

// Engine runs duplication passes. It is designed for a single in-flight
// pass at a time; the store is not built for concurrent writers.
type Engine struct {
	gateway Gateway
	store   processed.Store
	filter  filter.Config
	logger  zerolog.Logger
	dryRun  bool
	now     func() time.Time
}

// Option customizes an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithDryRun makes passes report what would happen without creating tasks
// or recording state.
func WithDryRun(enabled bool) Option {
	return func(e *Engine) { e.dryRun = enabled }
}

// WithClock overrides the time source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an Engine.
func New(gateway Gateway, store processed.Store, cfg filter.Config, opts ...Option) *Engine {
	e := &Engine{
		gateway: gateway,
		store:   store,
		filter:  cfg,
		logger:  zerolog.Nop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RunOnce performs one full pass: fetch, filter, duplicate, record.
//
// Pass-level failures (fetch, auth, state writes) abort and return an
// error along with whatever the report counted so far. A failed creation
// of a single candidate is counted and the pass moves on; the candidate
// stays unrecorded and is retried naturally on the next pass.
func (e *Engine) RunOnce(ctx context.Context) (Report, error) {
	var report Report

	now := e.now()
	since := now.Add(-e.filter.EffectiveWindow())

	tasks, err := e.gateway.CompletedTasks(ctx, since)
	if err != nil {
		return report, fmt.Errorf("fetch completed tasks: %w", err)
	}
	report.Fetched = len(tasks)

	projectNames, err := e.resolveProjectNames(ctx)
	if err != nil {
		return report, err
	}

	e.logger.Debug().Int("fetched", report.Fetched).Time("since", since).Msg("pass started")

	for _, t := range tasks {
		if err := e.processCandidate(ctx, t, projectNames, now, &report); err != nil {
			return report, err
		}
	}

	e.logger.Info().
		Int("fetched", report.Fetched).
		Int("skipped_processed", report.SkippedProcessed).
		Int("skipped_filtered", report.SkippedFiltered).
		Int("duplicated", report.Duplicated).
		Int("failed", report.Failed).
		Bool("dry_run", e.dryRun).
		Msg("pass finished")

	return report, nil
}

// processCandidate runs the three gated checks for one task: already
// processed, filter eligibility, then creation. It returns a non-nil error
// only for failures that must abort the whole pass.
func (e *Engine) processCandidate(ctx context.Context, t task.Task, projectNames map[string]string, now time.Time, report *Report) error {
	have, err := e.store.Contains(ctx, t.ID)
	if err != nil {
		return fmt.Errorf("check processed state for %s: %w", t.ID, err)
	}
	if have {
		report.SkippedProcessed++
		return nil
	}

	if projectNames != nil {
		t.ProjectName = projectNames[t.ProjectID]
	}

	if !e.filter.Matches(t, now) {
		report.SkippedFiltered++
		return nil
	}

	if e.dryRun {
		e.logger.Info().Str("task_id", t.ID).Str("title", t.Title).Msg("dry run: would duplicate")
		report.Duplicated++
		return nil
	}

	created, err := e.gateway.CreateTask(ctx, task.NewDuplicate(t))
	if err != nil {
		if errors.Is(err, ticktick.ErrAuth) {
			return fmt.Errorf("duplicate task %s: %w", t.ID, err)
		}
		e.logger.Error().Err(err).Str("task_id", t.ID).Str("title", t.Title).Msg("duplicate failed")
		report.Failed++
		return nil
	}

	rec := processed.Record{
		ID:           t.ID,
		Title:        t.Title,
		DuplicateID:  created.ID,
		DuplicatedAt: now,
	}
	if err := e.store.Record(ctx, rec); err != nil {
		// Losing this record means the task will be duplicated again next
		// pass. That is worse than stopping, so the pass aborts here.
		e.logger.Error().Err(err).Str("task_id", t.ID).Msg("STATE WRITE FAILED after successful duplication")
		return fmt.Errorf("record processed task %s: %w", t.ID, err)
	}

	e.logger.Info().
		Str("task_id", t.ID).
		Str("duplicate_id", created.ID).
		Str("title", t.Title).
		Msg("task duplicated")
	report.Duplicated++

	return nil
}

// resolveProjectNames fetches the project id to name mapping, but only
// when the filter actually needs it.
func (e *Engine) resolveProjectNames(ctx context.Context) (map[string]string, error) {
	if len(e.filter.Projects) == 0 {
		return nil, nil
	}

	projects, err := e.gateway.Projects(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch projects: %w", err)
	}

	names := make(map[string]string, len(projects))
	for _, p := range projects {
		names[p.ID] = p.Name
	}
	return names, nil
}
