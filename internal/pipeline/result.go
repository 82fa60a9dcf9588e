package pipeline

import (
	"kitchenplan/internal/conflict"
	"kitchenplan/internal/graph"
	"kitchenplan/internal/kitchen"
	"kitchenplan/internal/sched"
	"kitchenplan/internal/task"
)

// Result is everything one planning run produced.
type Result struct {
	RunID     string              `json:"run_id"`
	Event     Event               `json:"event"`
	Kitchen   kitchen.Inventory   `json:"kitchen"`
	StartAt   string              `json:"start_at,omitempty"`
	Deadline  *float64            `json:"deadline_minutes,omitempty"`
	Tasks     []task.Task         `json:"tasks"`
	Edges     []graph.Edge        `json:"edges"`
	Schedule  ScheduleView        `json:"schedule"`
	Conflicts []conflict.Conflict `json:"conflicts"`

	Validation *Validation `json:"validation,omitempty"`
	Output     string      `json:"output,omitempty"`
}

// ScheduleView is the schedule as serialized in a Result.
type ScheduleView struct {
	Tasks    []sched.ScheduledTask `json:"tasks"`
	Timeline sched.Timeline        `json:"timeline"`
	Makespan float64               `json:"makespan"`
}

// Feasible reports whether no error-severity conflict was found.
func (r *Result) Feasible() bool {
	return !conflict.HasErrors(r.Conflicts)
}

// ConflictsOf returns the conflicts of kind k in report order.
func (r *Result) ConflictsOf(k conflict.Kind) []conflict.Conflict {
	var out []conflict.Conflict
	for _, c := range r.Conflicts {
		if c.Kind == k {
			out = append(out, c)
		}
	}
	return out
}
