package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/prodgraph/internal/batch"
	"github.com/specialistvlad/prodgraph/internal/builder"
	"github.com/specialistvlad/prodgraph/internal/ctxlog"
)

// Run loads the records, builds the plan and hands it to the engine.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	ctx = ctxlog.With(ctx, "source", a.config.Source)
	a.logger.Debug("App.Run method started.")

	strategy, err := batch.StrategyByName(a.config.Split)
	if err != nil {
		return err
	}

	set, err := a.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	plan, err := builder.Build(ctx, set, builder.Options{
		Reference: a.config.Reference,
		Strategy:  strategy,
	})
	if err != nil {
		return fmt.Errorf("failed to build plan: %w", err)
	}

	degraded := plan.Degraded()
	for _, o := range degraded {
		a.logger.Warn("Task scheduled without predecessors.", "task_id", o.TaskID, "reason", o.Reason)
	}

	if len(plan.Tasks) == 0 {
		a.logger.Warn("No tasks found in records, plan is empty.")
	}

	res, err := a.engine.Schedule(ctx, plan.Resources, plan.Tasks)
	if err != nil {
		return fmt.Errorf("scheduling failed: %w", err)
	}

	a.logger.Info("Plan built.",
		"reference", plan.Reference,
		"resources", res.Resources,
		"groups", res.Groups,
		"tasks", res.Tasks,
		"exploded", len(plan.Exploded),
		"levels", res.Levels,
		"degraded", len(degraded),
	)
	a.logger.Debug("App.Run method finished.")
	return nil
}
