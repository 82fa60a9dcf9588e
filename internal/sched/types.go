package sched

import (
	"fmt"

	"kitchenplan/internal/kitchen"
)

// ScheduledTask is one placed task. End = Start + Duration, where Duration
// is the base duration adjusted for the assigned chef.
type ScheduledTask struct {
	TaskID     string  `json:"task_id"`
	Start      float64 `json:"start_time"`
	End        float64 `json:"end_time"`
	Duration   float64 `json:"adjusted_duration"`
	ResourceID string  `json:"assigned_resource_id,omitempty"`
	ChefID     string  `json:"assigned_chef_id,omitempty"`

	// StaffingDelayed marks a task whose chef could not be found within the
	// lookahead window; StaffingWait is how long past its earliest start the
	// chosen chef stays busy.
	StaffingDelayed bool    `json:"staffing_delayed,omitempty"`
	StaffingWait    float64 `json:"staffing_wait,omitempty"`
}

// Schedule is the output of one scheduling run. Tasks are in placement
// (topological) order.
type Schedule struct {
	Tasks    []ScheduledTask `json:"tasks"`
	Timeline Timeline        `json:"timeline"`
}

// Makespan is the finish time of the last task.
func (s *Schedule) Makespan() float64 {
	return s.Timeline.Makespan
}

// Lookup finds the placement of a task.
func (s *Schedule) Lookup(taskID string) (ScheduledTask, bool) {
	for _, st := range s.Tasks {
		if st.TaskID == taskID {
			return st, true
		}
	}
	return ScheduledTask{}, false
}

// Timeline is the per-lane view of a schedule.
type Timeline struct {
	Makespan float64 `json:"makespan"`
	Lanes    []Lane  `json:"lanes"`
}

// Lane is one piece of equipment or one chef and the slots it is busy.
type Lane struct {
	ID       string       `json:"id"`
	Kind     kitchen.Kind `json:"kind"`
	Capacity int          `json:"capacity"`
	Slots    []Slot       `json:"slots"`
}

// Slot is a busy interval on a lane, [Start, End).
type Slot struct {
	TaskID string  `json:"task_id"`
	Start  float64 `json:"start"`
	End    float64 `json:"end"`
}

// InsufficientResourceError reports a task whose equipment kind (or chef
// staffing) does not exist in the kitchen at all.
type InsufficientResourceError struct {
	TaskID string
	Kind   kitchen.Kind
}

func (e *InsufficientResourceError) Error() string {
	return fmt.Sprintf("task %q requires a %s but the kitchen has none", e.TaskID, e.Kind)
}

// SchedulingDeadlockError reports that no slot could be found for a task
// even though compatible resources exist.
type SchedulingDeadlockError struct {
	TaskID string
	Reason string
}

func (e *SchedulingDeadlockError) Error() string {
	return fmt.Sprintf("cannot place task %q: %s", e.TaskID, e.Reason)
}
