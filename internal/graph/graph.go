// Package graph builds the dependency DAG over collected tasks and derives
// the deterministic topological order the scheduler walks.
package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/emirpasic/gods/trees/binaryheap"

	"kitchenplan/internal/task"
)

// TaskGraph is an immutable DAG of tasks. Edges point from a dependency to
// its dependent.
type TaskGraph struct {
	tasks  map[string]task.Task
	adj    map[string][]string // task -> tasks that wait on it
	revAdj map[string][]string // task -> tasks it waits on
	order  []string
	roots  []string
	leaves []string
}

// Edge is one dependency -> dependent pair.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// DanglingDependencyError reports a dependency on a task that does not
// exist.
type DanglingDependencyError struct {
	TaskID    string
	MissingID string
}

func (e *DanglingDependencyError) Error() string {
	return fmt.Sprintf("task %q depends on unknown task %q", e.TaskID, e.MissingID)
}

// CyclicDependencyError reports a dependency cycle. Cycle lists the ids in
// dependency order, each task depending on the one before it, and the last
// closing back on the first.
type CyclicDependencyError struct {
	Cycle []string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(e.Cycle, " -> "))
}

// Build validates tasks and constructs the graph. Duplicate ids, unknown
// dependencies and cycles are rejected before anything is returned.
func Build(tasks []task.Task) (*TaskGraph, error) {
	g := &TaskGraph{
		tasks:  make(map[string]task.Task, len(tasks)),
		adj:    make(map[string][]string),
		revAdj: make(map[string][]string),
	}

	for _, t := range tasks {
		if _, dup := g.tasks[t.ID]; dup {
			return nil, fmt.Errorf("duplicate task id %q", t.ID)
		}
		g.tasks[t.ID] = t
	}

	edgeSet := make(map[Edge]bool)
	for _, t := range tasks {
		for _, dep := range t.Dependencies {
			if _, ok := g.tasks[dep]; !ok {
				return nil, &DanglingDependencyError{TaskID: t.ID, MissingID: dep}
			}
			e := Edge{From: dep, To: t.ID}
			if edgeSet[e] {
				continue
			}
			edgeSet[e] = true
			g.adj[dep] = append(g.adj[dep], t.ID)
			g.revAdj[t.ID] = append(g.revAdj[t.ID], dep)
		}
	}

	// Sort adjacency lists for deterministic traversal
	for k := range g.adj {
		sort.Strings(g.adj[k])
	}
	for k := range g.revAdj {
		sort.Strings(g.revAdj[k])
	}

	if cycle := g.DetectCycle(); cycle != nil {
		return nil, &CyclicDependencyError{Cycle: cycle}
	}

	for _, id := range g.sortedIDs() {
		if len(g.revAdj[id]) == 0 {
			g.roots = append(g.roots, id)
		}
		if len(g.adj[id]) == 0 {
			g.leaves = append(g.leaves, id)
		}
	}

	g.order = g.topoSort()
	return g, nil
}

// DetectCycle returns the cycle path if one exists, or nil if the graph is
// acyclic. Uses DFS with coloring: white (unvisited), gray (in progress),
// black (done).
func (g *TaskGraph) DetectCycle() []string {
	const (
		white = 0
		gray  = 1
		black = 2
	)

	color := make(map[string]int)
	parent := make(map[string]string)

	var dfs func(node string) []string
	dfs = func(node string) []string {
		color[node] = gray
		for _, next := range g.adj[node] {
			if color[next] == gray {
				// walk parents back from node to next, then reverse
				cycle := []string{node}
				for cur := node; cur != next; {
					cur = parent[cur]
					cycle = append(cycle, cur)
				}
				for i, j := 0, len(cycle)-1; i < j; i, j = i+1, j-1 {
					cycle[i], cycle[j] = cycle[j], cycle[i]
				}
				return cycle
			}
			if color[next] == white {
				parent[next] = node
				if cycle := dfs(next); cycle != nil {
					return cycle
				}
			}
		}
		color[node] = black
		return nil
	}

	for _, id := range g.sortedIDs() {
		if color[id] == white {
			if cycle := dfs(id); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}

// topoSort is Kahn's algorithm. Among ready tasks the lexicographically
// smallest id always goes first.
func (g *TaskGraph) topoSort() []string {
	inDegree := make(map[string]int, len(g.tasks))
	ready := binaryheap.NewWithStringComparator()
	for id := range g.tasks {
		inDegree[id] = len(g.revAdj[id])
		if inDegree[id] == 0 {
			ready.Push(id)
		}
	}

	order := make([]string, 0, len(g.tasks))
	for !ready.Empty() {
		v, _ := ready.Pop()
		node := v.(string)
		order = append(order, node)

		for _, succ := range g.adj[node] {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				ready.Push(succ)
			}
		}
	}
	return order
}

func (g *TaskGraph) sortedIDs() []string {
	ids := make([]string, 0, len(g.tasks))
	for id := range g.tasks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of tasks in the graph.
func (g *TaskGraph) Len() int {
	return len(g.tasks)
}

// Task looks up a task by global id.
func (g *TaskGraph) Task(id string) (task.Task, bool) {
	t, ok := g.tasks[id]
	return t, ok
}

// Order returns the topological order. Every task appears after all of its
// dependencies.
func (g *TaskGraph) Order() []string {
	return append([]string(nil), g.order...)
}

// Tasks returns the tasks in topological order.
func (g *TaskGraph) Tasks() []task.Task {
	out := make([]task.Task, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.tasks[id])
	}
	return out
}

// DependenciesOf returns the ids id waits on, sorted.
func (g *TaskGraph) DependenciesOf(id string) []string {
	return append([]string(nil), g.revAdj[id]...)
}

// DependentsOf returns the ids that wait on id, sorted.
func (g *TaskGraph) DependentsOf(id string) []string {
	return append([]string(nil), g.adj[id]...)
}

// Roots are tasks with no dependencies, sorted.
func (g *TaskGraph) Roots() []string { return append([]string(nil), g.roots...) }

// Leaves are tasks nothing depends on, sorted.
func (g *TaskGraph) Leaves() []string { return append([]string(nil), g.leaves...) }

// Edges lists every dependency edge, ordered by source then target.
func (g *TaskGraph) Edges() []Edge {
	out := make([]Edge, 0, len(g.tasks))
	for _, from := range g.sortedIDs() {
		for _, to := range g.adj[from] {
			out = append(out, Edge{From: from, To: to})
		}
	}
	return out
}
