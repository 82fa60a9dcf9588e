// internal/sched/scheduler.go

package sched

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"kitchenplan/internal/ctxlog"
	"kitchenplan/internal/graph"
	"kitchenplan/internal/kitchen"
	"kitchenplan/internal/task"
)

// Scheduler places tasks on equipment and chefs by greedy list scheduling
// in topological order. It holds no state between runs, so one Scheduler
// may serve concurrent calls.
type Scheduler struct {
	cfg Config
}

// New creates a new Scheduler instance with the given configuration.
func New(cfg Config) *Scheduler {
	return &Scheduler{cfg: cfg.sanitize()}
}

// run is the mutable state of a single Schedule call.
type run struct {
	cfg    Config
	log    *slog.Logger
	units  map[kitchen.Kind][]kitchen.Unit
	lanes  map[string]*lane
	chefs  []kitchen.Chef // sorted by id
	placed map[string]ScheduledTask
	out    []ScheduledTask
}

// Schedule assigns a start time, equipment and chef to every task in g.
// The first task that cannot be placed aborts the whole run; a partial
// schedule is never returned.
func (s *Scheduler) Schedule(ctx context.Context, g *graph.TaskGraph, inv kitchen.Inventory) (*Schedule, error) {
	r := &run{
		cfg:    s.cfg,
		log:    ctxlog.FromContext(ctx),
		units:  make(map[kitchen.Kind][]kitchen.Unit),
		lanes:  make(map[string]*lane),
		chefs:  append([]kitchen.Chef(nil), inv.Chefs...),
		placed: make(map[string]ScheduledTask, g.Len()),
		out:    make([]ScheduledTask, 0, g.Len()),
	}

	for _, k := range []kitchen.Kind{kitchen.KindOven, kitchen.KindBurner, kitchen.KindMicrowave} {
		r.units[k] = inv.Units(k)
		for _, u := range r.units[k] {
			r.lanes[u.ID] = newLane(u.ID, u.Capacity)
		}
	}
	sort.Slice(r.chefs, func(i, j int) bool { return r.chefs[i].ID < r.chefs[j].ID })
	for _, c := range r.chefs {
		r.lanes[c.ID] = newLane(c.ID, 1)
	}

	for _, t := range g.Tasks() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.place(ctx, t, g.DependenciesOf(t.ID)); err != nil {
			return nil, err
		}
	}

	sched := &Schedule{Tasks: r.out, Timeline: r.timeline()}
	r.log.Debug("schedule complete", "tasks", len(sched.Tasks), "makespan", sched.Makespan())
	return sched, nil
}

func (r *run) place(ctx context.Context, t task.Task, deps []string) error {
	// 1) dependencies
	ready := 0.0
	for _, d := range deps {
		if end := r.placed[d].End; end > ready {
			ready = end
		}
	}

	// 2) equipment kind must exist before anything else is decided
	var candidates []kitchen.Unit
	if t.NeedsResource() {
		candidates = r.units[t.Resource]
		if len(candidates) == 0 {
			return &InsufficientResourceError{TaskID: t.ID, Kind: t.Resource}
		}
	}

	// 3) chef, which fixes the adjusted duration
	dur := t.BaseDuration
	var chef *lane
	var choice chefChoice
	if t.RequiresChef {
		if len(r.chefs) == 0 {
			return &InsufficientResourceError{TaskID: t.ID, Kind: kitchen.KindChef}
		}
		choice = r.pickChef(t, ready, candidates)
		dur = choice.duration
		chef = r.lanes[choice.chef.ID]
	}

	// 4) equipment instance free soonest, ties by id
	var unit *lane
	if len(candidates) > 0 {
		best := -1.0
		for _, u := range candidates {
			l := r.lanes[u.ID]
			if at := l.earliestFit(ready, dur); unit == nil || at < best {
				unit, best = l, at
			}
		}
	}

	// 5) joint slot where both are free
	start, err := jointSlot(t.ID, ready, dur, unit, chef)
	if err != nil {
		return err
	}
	end := start + dur

	st := ScheduledTask{TaskID: t.ID, Start: start, End: end, Duration: dur}
	if unit != nil {
		unit.commit(start, end, t.ID)
		st.ResourceID = unit.id
	}
	if chef != nil {
		chef.commit(start, end, t.ID)
		st.ChefID = chef.id
		if choice.delayed {
			st.StaffingDelayed = true
			st.StaffingWait = choice.free - choice.opens
		}
	}

	r.placed[t.ID] = st
	r.out = append(r.out, st)
	r.emit(ctx, st, ready)
	return nil
}

type chefChoice struct {
	chef     kitchen.Chef
	duration float64
	opens    float64 // earliest time the equipment can take the task
	free     float64 // earliest time the chef can take the task from opens
	delayed  bool
}

// pickChef ranks the chefs free within the lookahead window by role match,
// then adjusted duration, then id. The window opens when the equipment can
// first take the task, so a chef idling while an oven is busy is not late.
// If nobody is free in time, the task goes to whoever frees up first and the
// choice is marked delayed.
func (r *run) pickChef(t task.Task, ready float64, candidates []kitchen.Unit) chefChoice {
	options := make([]chefChoice, 0, len(r.chefs))
	for _, c := range r.chefs {
		dur := t.BaseDuration * c.Multiplier(t.Type)
		opens := r.equipmentFit(candidates, ready, dur)
		options = append(options, chefChoice{
			chef:     c,
			duration: dur,
			opens:    opens,
			free:     r.lanes[c.ID].earliestFit(opens, dur),
		})
	}

	var available []chefChoice
	for _, o := range options {
		if o.free-o.opens <= r.cfg.ChefLookahead {
			available = append(available, o)
		}
	}

	if len(available) > 0 {
		sort.SliceStable(available, func(i, j int) bool {
			a, b := available[i], available[j]
			if ra, rb := a.chef.RoleRank(t.Type), b.chef.RoleRank(t.Type); ra != rb {
				return ra < rb
			}
			if a.duration != b.duration {
				return a.duration < b.duration
			}
			return a.chef.ID < b.chef.ID
		})
		return available[0]
	}

	sort.SliceStable(options, func(i, j int) bool {
		a, b := options[i], options[j]
		if a.free != b.free {
			return a.free < b.free
		}
		if ra, rb := a.chef.RoleRank(t.Type), b.chef.RoleRank(t.Type); ra != rb {
			return ra < rb
		}
		if a.duration != b.duration {
			return a.duration < b.duration
		}
		return a.chef.ID < b.chef.ID
	})
	best := options[0]
	best.delayed = true
	return best
}

// equipmentFit is the earliest start >= ready on any of the candidate
// units, or ready when the task needs no equipment.
func (r *run) equipmentFit(candidates []kitchen.Unit, ready, dur float64) float64 {
	if len(candidates) == 0 {
		return ready
	}
	best := -1.0
	for _, u := range candidates {
		if at := r.lanes[u.ID].earliestFit(ready, dur); best < 0 || at < best {
			best = at
		}
	}
	return best
}

// jointSlot finds the earliest start >= ready at which every given lane
// can take a task of length dur. Each pass either confirms the candidate or
// moves it to a later interval end, so the loop is bounded by the number of
// committed intervals.
func jointSlot(taskID string, ready, dur float64, lanes ...*lane) (float64, error) {
	limit := 2
	for _, l := range lanes {
		if l != nil {
			limit += l.size()
		}
	}

	t := ready
	for i := 0; i < limit; i++ {
		next := t
		for _, l := range lanes {
			if l != nil {
				next = l.earliestFit(next, dur)
			}
		}
		if next == t {
			return t, nil
		}
		t = next
	}
	return 0, &SchedulingDeadlockError{
		TaskID: taskID,
		Reason: fmt.Sprintf("no common free slot after %d attempts", limit),
	}
}

func (r *run) emit(ctx context.Context, st ScheduledTask, ready float64) {
	kind := EventPlaced
	switch {
	case st.StaffingDelayed:
		kind = EventStaffingDelayed
	case st.Start > ready:
		kind = EventResourceWait
	}
	ev := Event{
		Kind:       kind,
		TaskID:     st.TaskID,
		ResourceID: st.ResourceID,
		ChefID:     st.ChefID,
		Ready:      ready,
		Start:      st.Start,
		End:        st.End,
	}

	level := slog.LevelDebug
	if kind == EventStaffingDelayed {
		level = slog.LevelWarn
	}
	r.log.Log(ctx, level, ev.Kind.String(),
		"task", ev.TaskID,
		"resource", ev.ResourceID,
		"chef", ev.ChefID,
		"ready", ev.Ready,
		"start", ev.Start,
		"end", ev.End,
	)
}

// timeline renders every lane, equipment first (ovens, burners, microwaves)
// then chefs, each ordered by id.
func (r *run) timeline() Timeline {
	tl := Timeline{Lanes: []Lane{}}
	for _, st := range r.out {
		if st.End > tl.Makespan {
			tl.Makespan = st.End
		}
	}

	add := func(id string, kind kitchen.Kind) {
		l := r.lanes[id]
		out := Lane{ID: id, Kind: kind, Capacity: l.capacity, Slots: []Slot{}}
		for _, iv := range l.intervals() {
			out.Slots = append(out.Slots, Slot{TaskID: iv.taskID, Start: iv.start, End: iv.end})
		}
		tl.Lanes = append(tl.Lanes, out)
	}
	for _, k := range []kitchen.Kind{kitchen.KindOven, kitchen.KindBurner, kitchen.KindMicrowave} {
		for _, u := range r.units[k] {
			add(u.ID, k)
		}
	}
	for _, c := range r.chefs {
		add(c.ID, kitchen.KindChef)
	}
	return tl
}
