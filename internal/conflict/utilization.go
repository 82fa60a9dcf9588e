package conflict

import (
	"sort"

	"kitchenplan/internal/kitchen"
	"kitchenplan/internal/sched"
)

// LaneUsage is how much of the schedule one lane spends busy.
type LaneUsage struct {
	LaneID  string
	Kind    kitchen.Kind
	Busy    float64  // summed task minutes
	Ratio   float64  // Busy / (capacity * makespan)
	TaskIDs []string // by start time
}

// Utilization reports every oven, burner, microwave and chef of inv, in
// that order and by id, from the placements in s.Tasks. The timeline
// summary is not consulted. Lanes of an empty schedule have ratio zero.
func Utilization(s *sched.Schedule, inv kitchen.Inventory) []LaneUsage {
	type lane struct {
		kind     kitchen.Kind
		capacity int
	}
	var order []string
	lanes := make(map[string]lane)
	for _, k := range []kitchen.Kind{kitchen.KindOven, kitchen.KindBurner, kitchen.KindMicrowave} {
		for _, u := range inv.Units(k) {
			order = append(order, u.ID)
			lanes[u.ID] = lane{kind: k, capacity: u.Capacity}
		}
	}
	chefs := make([]string, 0, len(inv.Chefs))
	for _, c := range inv.Chefs {
		chefs = append(chefs, c.ID)
	}
	sort.Strings(chefs)
	for _, id := range chefs {
		order = append(order, id)
		lanes[id] = lane{kind: kitchen.KindChef, capacity: 1}
	}

	placed := append([]sched.ScheduledTask(nil), s.Tasks...)
	sort.SliceStable(placed, func(i, j int) bool {
		if placed[i].Start != placed[j].Start {
			return placed[i].Start < placed[j].Start
		}
		return placed[i].TaskID < placed[j].TaskID
	})
	usage := make(map[string]*LaneUsage, len(order))
	for _, id := range order {
		usage[id] = &LaneUsage{LaneID: id, Kind: lanes[id].kind}
	}
	for _, st := range placed {
		for _, id := range []string{st.ResourceID, st.ChefID} {
			if u, ok := usage[id]; ok && id != "" {
				u.Busy += st.End - st.Start
				u.TaskIDs = append(u.TaskIDs, st.TaskID)
			}
		}
	}

	span := makespan(s)
	out := make([]LaneUsage, 0, len(order))
	for _, id := range order {
		u := usage[id]
		if capacity := max(lanes[id].capacity, 1); span > 0 {
			u.Ratio = u.Busy / (float64(capacity) * span)
		}
		out = append(out, *u)
	}
	return out
}

// makespan is the latest end over the placed tasks.
func makespan(s *sched.Schedule) float64 {
	end := 0.0
	for _, st := range s.Tasks {
		end = max(end, st.End)
	}
	return end
}
