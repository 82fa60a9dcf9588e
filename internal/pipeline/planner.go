// Package pipeline runs a planning request through collection, graph
// building, scheduling and conflict detection, with optional text
// collaborators on either end.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"kitchenplan/internal/config"
	"kitchenplan/internal/conflict"
	"kitchenplan/internal/ctxlog"
	"kitchenplan/internal/graph"
	"kitchenplan/internal/kitchen"
	"kitchenplan/internal/sched"
	"kitchenplan/internal/task"
)

var (
	// ErrNoParser is returned by RunText when the Planner has no Parser.
	ErrNoParser = errors.New("no parser configured")
	// ErrNoDecomposer is returned when a request names dishes but the
	// Planner has no Decomposer.
	ErrNoDecomposer = errors.New("no decomposer configured")
)

// maxDecompose bounds concurrent Decomposer calls.
const maxDecompose = 4

// Planner wires the stages together. The collaborator fields are optional.
type Planner struct {
	Parser     Parser
	Decomposer Decomposer
	Validator  Validator
	Formatter  Formatter

	registry  *kitchen.Registry
	scheduler *sched.Scheduler
	opts      conflict.Options
}

// New returns a Planner that reads its kitchen from reg.
func New(cfg config.Config, reg *kitchen.Registry) *Planner {
	opts := conflict.DefaultOptions()
	opts.BottleneckThreshold = cfg.Conflicts.BottleneckThreshold
	return &Planner{
		registry:  reg,
		scheduler: sched.New(cfg.Scheduler),
		opts:      opts,
	}
}

// RunText parses free text into a Request and runs it.
func (p *Planner) RunText(ctx context.Context, input string) (*Result, error) {
	if p.Parser == nil {
		return nil, ErrNoParser
	}
	req, err := p.Parser.Parse(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("parse input: %w", err)
	}
	return p.Run(ctx, req)
}

// Run plans one request. The first failing stage aborts the run. Conflicts
// are not failures: an infeasible plan still comes back with a nil error.
func (p *Planner) Run(ctx context.Context, req Request) (*Result, error) {
	runID := uuid.NewString()
	log := ctxlog.FromContext(ctx).With("run_id", runID)
	ctx = ctxlog.WithLogger(ctx, log)

	inv, err := p.inventory(req)
	if err != nil {
		return nil, err
	}
	deadline, err := req.Constraints.Deadline()
	if err != nil {
		return nil, fmt.Errorf("constraints: %w", err)
	}

	recipes, err := p.recipes(ctx, req)
	if err != nil {
		return nil, err
	}
	tasks, err := task.Collect(recipes)
	if err != nil {
		return nil, fmt.Errorf("collect tasks: %w", err)
	}
	log.Debug("tasks collected", "recipes", len(recipes), "tasks", len(tasks))

	g, err := graph.Build(tasks)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	s, err := p.scheduler.Schedule(ctx, g, inv)
	if err != nil {
		return nil, fmt.Errorf("schedule: %w", err)
	}

	opts := p.opts
	opts.Deadline = deadline
	conflicts, err := conflict.Detect(g, s, inv, opts)
	if err != nil {
		return nil, fmt.Errorf("detect conflicts: %w", err)
	}
	if conflicts == nil {
		conflicts = []conflict.Conflict{}
	}

	res := &Result{
		RunID:    runID,
		Event:    req.Event,
		Kitchen:  inv,
		StartAt:  req.Constraints.StartAt,
		Deadline: deadline,
		Tasks:    g.Tasks(),
		Edges:    g.Edges(),
		Schedule: ScheduleView{
			Tasks:    s.Tasks,
			Timeline: s.Timeline,
			Makespan: s.Makespan(),
		},
		Conflicts: conflicts,
	}
	log.Info("plan ready",
		"tasks", len(res.Tasks),
		"makespan", res.Schedule.Makespan,
		"conflicts", len(conflicts),
		"feasible", res.Feasible())

	if p.Validator != nil {
		v, err := p.Validator.Validate(ctx, req, res)
		if err != nil {
			return nil, fmt.Errorf("validate: %w", err)
		}
		res.Validation = &v
	}
	if p.Formatter != nil {
		out, err := p.Formatter.Format(ctx, res)
		if err != nil {
			return nil, fmt.Errorf("format: %w", err)
		}
		res.Output = out
	}
	return res, nil
}

// inventory picks the request's preset, or the registry's current kitchen,
// and applies the request's overrides to a copy. The registry is not
// changed.
func (p *Planner) inventory(req Request) (kitchen.Inventory, error) {
	var inv kitchen.Inventory
	if req.Preset != "" {
		var err error
		if inv, err = kitchen.Preset(req.Preset); err != nil {
			return kitchen.Inventory{}, fmt.Errorf("kitchen: %w", err)
		}
	} else {
		inv = p.registry.Snapshot()
	}
	if req.Overrides.Empty() {
		return inv, nil
	}
	merged, err := kitchen.Merge(inv, req.Overrides)
	if err != nil {
		return kitchen.Inventory{}, fmt.Errorf("kitchen: %w", err)
	}
	return merged, nil
}

// recipes returns the request's recipes followed by its decomposed dishes,
// in request order. Dishes are decomposed concurrently.
func (p *Planner) recipes(ctx context.Context, req Request) ([]task.Recipe, error) {
	out := append([]task.Recipe(nil), req.Recipes...)
	if len(req.Dishes) == 0 {
		return out, nil
	}
	if p.Decomposer == nil {
		return nil, ErrNoDecomposer
	}

	decomposed := make([]task.Recipe, len(req.Dishes))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(maxDecompose)
	for i, dish := range req.Dishes {
		eg.Go(func() error {
			r, err := p.Decomposer.Decompose(ctx, dish)
			if err != nil {
				return fmt.Errorf("decompose %q: %w", dish, err)
			}
			decomposed[i] = r
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return append(out, decomposed...), nil
}
