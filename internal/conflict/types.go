package conflict

import "fmt"

// Kind classifies a conflict.
type Kind string

const (
	KindResourceOverload       Kind = "resource_overload"
	KindInsufficientResources  Kind = "insufficient_resources"
	KindTimingInfeasible       Kind = "timing_infeasible"
	KindCriticalPathBottleneck Kind = "critical_path_bottleneck"
)

type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Conflict is one finding about a schedule. Conflicts are reported, never
// returned as errors.
type Conflict struct {
	Kind     Kind     `json:"kind"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	TaskIDs  []string `json:"task_ids"`
}

// Options tunes detection.
type Options struct {
	// Deadline, when set, is the latest acceptable end time in minutes from
	// the start of the schedule.
	Deadline *float64
	// BottleneckThreshold is the lane utilization above which a lane that
	// carries critical-path tasks is reported.
	BottleneckThreshold float64
}

// DefaultOptions returns Options with no deadline and an 80% threshold.
func DefaultOptions() Options {
	return Options{BottleneckThreshold: 0.8}
}

// WithDeadline returns a copy of o with the deadline set.
func (o Options) WithDeadline(minutes float64) Options {
	o.Deadline = &minutes
	return o
}

// UnknownReferenceError reports a schedule that does not match the graph
// or inventory it is checked against.
type UnknownReferenceError struct {
	TaskID string
	What   string // "task", "resource" or "chef"
	ID     string
}

func (e *UnknownReferenceError) Error() string {
	if e.What == "task" {
		return fmt.Sprintf("schedule and graph disagree on task %q", e.TaskID)
	}
	return fmt.Sprintf("task %q is assigned unknown %s %q", e.TaskID, e.What, e.ID)
}
