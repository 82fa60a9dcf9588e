package conflict

import (
	"math"

	"kitchenplan/internal/graph"
)

// epsilon absorbs float error in minute arithmetic.
const epsilon = 1e-9

// PathAnalysis is the critical path method over the dependency graph,
// weighted by each task's adjusted duration. Resource contention is not
// part of it.
type PathAnalysis struct {
	Tasks        map[string]*TaskTiming
	CriticalPath []string // one longest chain, in dependency order
	Critical     []string // every zero-slack task, in topological order
	Length       float64
}

// TaskTiming holds the CPM window for a single task.
type TaskTiming struct {
	TaskID     string
	ES, EF     float64 // earliest start/finish
	LS, LF     float64 // latest start/finish
	Slack      float64
	IsCritical bool
}

// AnalyzePath runs the forward and backward CPM passes. durations maps
// task id to adjusted duration.
func AnalyzePath(g *graph.TaskGraph, durations map[string]float64) *PathAnalysis {
	order := g.Order()
	res := &PathAnalysis{Tasks: make(map[string]*TaskTiming, len(order))}
	for _, id := range order {
		res.Tasks[id] = &TaskTiming{TaskID: id}
	}

	// Forward pass: ES = max EF of predecessors
	for _, id := range order {
		tt := res.Tasks[id]
		for _, pred := range g.DependenciesOf(id) {
			tt.ES = math.Max(tt.ES, res.Tasks[pred].EF)
		}
		tt.EF = tt.ES + durations[id]
		res.Length = math.Max(res.Length, tt.EF)
	}

	// Backward pass in reverse topological order
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		tt := res.Tasks[id]
		tt.LF = res.Length
		for _, succ := range g.DependentsOf(id) {
			tt.LF = math.Min(tt.LF, res.Tasks[succ].LS)
		}
		tt.LS = tt.LF - durations[id]
		tt.Slack = tt.LS - tt.ES
		tt.IsCritical = math.Abs(tt.Slack) < epsilon
	}

	for _, id := range order {
		if res.Tasks[id].IsCritical {
			res.Critical = append(res.Critical, id)
		}
	}
	res.CriticalPath = longestChain(g, res)
	return res
}

// longestChain walks back from the task that finishes last, always
// through a predecessor whose finish gates the start. Ties go to the
// smallest id since the adjacency lists are sorted.
func longestChain(g *graph.TaskGraph, res *PathAnalysis) []string {
	var last string
	for _, id := range g.Order() {
		tt := res.Tasks[id]
		if last == "" || tt.EF > res.Tasks[last].EF+epsilon {
			last = id
		}
	}
	if last == "" {
		return nil
	}

	chain := []string{last}
	for cur := last; ; {
		next := ""
		for _, pred := range g.DependenciesOf(cur) {
			if math.Abs(res.Tasks[pred].EF-res.Tasks[cur].ES) < epsilon {
				next = pred
				break
			}
		}
		if next == "" {
			break
		}
		chain = append(chain, next)
		cur = next
	}

	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
