// Package conflict inspects a finished schedule for overloads, shortages,
// missed deadlines and critical-path bottlenecks.
package conflict

import (
	"fmt"
	"sort"
	"strings"

	"kitchenplan/internal/graph"
	"kitchenplan/internal/kitchen"
	"kitchenplan/internal/sched"
)

// Detect checks s against the graph it was built from and the inventory it
// was scheduled on. Findings come back as conflicts in a fixed order:
// shortages, overloads, timing, bottlenecks. An error is returned only when
// s does not describe g or names equipment and chefs inv does not have.
func Detect(g *graph.TaskGraph, s *sched.Schedule, inv kitchen.Inventory, opts Options) ([]Conflict, error) {
	if err := checkReferences(g, s, inv); err != nil {
		return nil, err
	}
	if opts.BottleneckThreshold <= 0 {
		opts.BottleneckThreshold = DefaultOptions().BottleneckThreshold
	}

	var out []Conflict
	out = append(out, shortages(g, s, inv)...)
	out = append(out, overloads(s, inv)...)
	if c, ok := timing(s, opts); ok {
		out = append(out, c)
	}
	out = append(out, bottlenecks(g, s, inv, opts)...)
	return out, nil
}

// HasErrors reports whether any conflict is error severity.
func HasErrors(cs []Conflict) bool {
	for _, c := range cs {
		if c.Severity == SeverityError {
			return true
		}
	}
	return false
}

func checkReferences(g *graph.TaskGraph, s *sched.Schedule, inv kitchen.Inventory) error {
	seen := make(map[string]bool, len(s.Tasks))
	for _, st := range s.Tasks {
		if _, ok := g.Task(st.TaskID); !ok {
			return &UnknownReferenceError{TaskID: st.TaskID, What: "task", ID: st.TaskID}
		}
		if st.ResourceID != "" && !isEquipment(inv, st.ResourceID) {
			return &UnknownReferenceError{TaskID: st.TaskID, What: "resource", ID: st.ResourceID}
		}
		if st.ChefID != "" {
			if _, ok := inv.Chef(st.ChefID); !ok {
				return &UnknownReferenceError{TaskID: st.TaskID, What: "chef", ID: st.ChefID}
			}
		}
		seen[st.TaskID] = true
	}
	for _, id := range g.Order() {
		if !seen[id] {
			return &UnknownReferenceError{TaskID: id, What: "task", ID: id}
		}
	}
	return nil
}

func isEquipment(inv kitchen.Inventory, id string) bool {
	if _, ok := inv.Oven(id); ok {
		return true
	}
	if _, ok := inv.Burner(id); ok {
		return true
	}
	_, ok := inv.Microwave(id)
	return ok
}

func shortages(g *graph.TaskGraph, s *sched.Schedule, inv kitchen.Inventory) []Conflict {
	var out []Conflict

	missing := make(map[kitchen.Kind][]string)
	for _, t := range g.Tasks() {
		if t.NeedsResource() && inv.Count(t.Resource) == 0 {
			missing[t.Resource] = append(missing[t.Resource], t.ID)
		}
		if t.RequiresChef && len(inv.Chefs) == 0 {
			missing[kitchen.KindChef] = append(missing[kitchen.KindChef], t.ID)
		}
	}
	for _, k := range []kitchen.Kind{kitchen.KindOven, kitchen.KindBurner, kitchen.KindMicrowave, kitchen.KindChef} {
		ids := missing[k]
		if len(ids) == 0 {
			continue
		}
		out = append(out, Conflict{
			Kind:     KindInsufficientResources,
			Severity: SeverityError,
			Message:  fmt.Sprintf("the kitchen has no %s but %d task(s) need one", k, len(ids)),
			TaskIDs:  ids,
		})
	}

	for _, st := range s.Tasks {
		if !st.StaffingDelayed {
			continue
		}
		out = append(out, Conflict{
			Kind:     KindInsufficientResources,
			Severity: SeverityWarning,
			Message: fmt.Sprintf("no chef was free for %s; it waits %.1f min for %s",
				st.TaskID, st.StaffingWait, st.ChefID),
			TaskIDs: []string{st.TaskID},
		})
	}
	return out
}

// overloads sweeps every lane of the schedule and reports each one whose
// concurrent occupancy ever exceeds its capacity.
func overloads(s *sched.Schedule, inv kitchen.Inventory) []Conflict {
	lanes := make(map[string][]sched.Slot)
	for _, st := range s.Tasks {
		slot := sched.Slot{TaskID: st.TaskID, Start: st.Start, End: st.End}
		if st.ResourceID != "" {
			lanes[st.ResourceID] = append(lanes[st.ResourceID], slot)
		}
		if st.ChefID != "" {
			lanes[st.ChefID] = append(lanes[st.ChefID], slot)
		}
	}

	ids := make([]string, 0, len(lanes))
	for id := range lanes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []Conflict
	for _, id := range ids {
		capacity, _ := inv.Capacity(id)
		over, peak := sweep(lanes[id], capacity)
		if len(over) == 0 {
			continue
		}
		out = append(out, Conflict{
			Kind:     KindResourceOverload,
			Severity: SeverityError,
			Message:  fmt.Sprintf("%s runs %d task(s) at once but holds %d", id, peak, capacity),
			TaskIDs:  over,
		})
	}
	return out
}

// sweep returns the tasks active while occupancy exceeds capacity, sorted,
// and the peak occupancy. Ends sort before starts at the same instant.
func sweep(slots []sched.Slot, capacity int) ([]string, int) {
	type point struct {
		at    float64
		delta int
		id    string
	}
	points := make([]point, 0, 2*len(slots))
	for _, sl := range slots {
		if sl.End <= sl.Start {
			continue
		}
		points = append(points, point{sl.Start, 1, sl.TaskID}, point{sl.End, -1, sl.TaskID})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].at != points[j].at {
			return points[i].at < points[j].at
		}
		return points[i].delta < points[j].delta
	})

	active := make(map[string]bool)
	over := make(map[string]bool)
	peak := 0
	for _, p := range points {
		if p.delta < 0 {
			delete(active, p.id)
			continue
		}
		active[p.id] = true
		if len(active) > peak {
			peak = len(active)
		}
		if len(active) > capacity {
			for id := range active {
				over[id] = true
			}
		}
	}

	ids := make([]string, 0, len(over))
	for id := range over {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, peak
}

func timing(s *sched.Schedule, opts Options) (Conflict, bool) {
	if opts.Deadline == nil {
		return Conflict{}, false
	}
	deadline := *opts.Deadline

	var late []string
	for _, st := range s.Tasks {
		if st.End > deadline+epsilon {
			late = append(late, st.TaskID)
		}
	}
	if len(late) == 0 {
		return Conflict{}, false
	}
	finish := makespan(s)
	return Conflict{
		Kind:     KindTimingInfeasible,
		Severity: SeverityError,
		Message: fmt.Sprintf("schedule finishes at %.1f min, %.1f min past the %.1f min deadline",
			finish, finish-deadline, deadline),
		TaskIDs: late,
	}, true
}

func bottlenecks(g *graph.TaskGraph, s *sched.Schedule, inv kitchen.Inventory, opts Options) []Conflict {
	if g.Len() == 0 {
		return nil
	}

	durations := make(map[string]float64, len(s.Tasks))
	for _, st := range s.Tasks {
		durations[st.TaskID] = st.Duration
	}
	pa := AnalyzePath(g, durations)

	msg := fmt.Sprintf("critical path %s takes %.1f min", strings.Join(pa.CriticalPath, " -> "), pa.Length)
	if finish := makespan(s); finish > pa.Length+epsilon {
		msg += fmt.Sprintf("; resource contention stretches the finish to %.1f min", finish)
	}
	out := []Conflict{{
		Kind:     KindCriticalPathBottleneck,
		Severity: SeverityWarning,
		Message:  msg,
		TaskIDs:  pa.Critical,
	}}

	critical := make(map[string]bool, len(pa.Critical))
	for _, id := range pa.Critical {
		critical[id] = true
	}
	for _, u := range Utilization(s, inv) {
		if u.Ratio <= opts.BottleneckThreshold {
			continue
		}
		var hosted []string
		for _, id := range u.TaskIDs {
			if critical[id] {
				hosted = append(hosted, id)
			}
		}
		if len(hosted) == 0 {
			continue
		}
		out = append(out, Conflict{
			Kind:     KindCriticalPathBottleneck,
			Severity: SeverityWarning,
			Message: fmt.Sprintf("%s is busy %.0f%% of the schedule and carries critical-path tasks",
				u.LaneID, u.Ratio*100),
			TaskIDs: hosted,
		})
	}
	return out
}
