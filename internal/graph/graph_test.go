package graph

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitchenplan/internal/kitchen"
	"kitchenplan/internal/task"
)

func mk(id string, deps ...string) task.Task {
	return task.Task{ID: id, Type: kitchen.TaskPrep, BaseDuration: 1, Resource: kitchen.KindNone, Dependencies: deps}
}

func TestBuild_SimpleDAG(t *testing.T) {
	// a -> b -> d
	// a -> c -> d
	g, err := Build([]task.Task{mk("d", "b", "c"), mk("c", "a"), mk("b", "a"), mk("a")})
	require.NoError(t, err)

	assert.Equal(t, 4, g.Len())
	assert.Equal(t, []string{"a"}, g.Roots())
	assert.Equal(t, []string{"d"}, g.Leaves())
	assert.Equal(t, []string{"b", "c"}, g.DependentsOf("a"))
	assert.Equal(t, []string{"b", "c"}, g.DependenciesOf("d"))
	assert.Equal(t, []string{"a", "b", "c", "d"}, g.Order())
	assert.Equal(t, []Edge{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}}, g.Edges())

	got, ok := g.Task("c")
	require.True(t, ok)
	assert.Equal(t, "c", got.ID)
	_, ok = g.Task("zz")
	assert.False(t, ok)
}

func TestBuild_LexicographicTieBreak(t *testing.T) {
	// z and m are both roots; y depends on z only
	g, err := Build([]task.Task{mk("z"), mk("y", "z"), mk("m")})
	require.NoError(t, err)
	assert.Equal(t, []string{"m", "z", "y"}, g.Order())

	// b becomes ready after a, and beats c which was ready from the start
	g, err = Build([]task.Task{mk("c"), mk("a"), mk("b", "a")})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, g.Order())
}

func TestBuild_Dangling(t *testing.T) {
	_, err := Build([]task.Task{mk("a"), mk("b", "ghost")})
	var de *DanglingDependencyError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "b", de.TaskID)
	assert.Equal(t, "ghost", de.MissingID)
	assert.Contains(t, err.Error(), "ghost")
}

func TestBuild_CycleNamesAllTasks(t *testing.T) {
	// A -> B -> C -> A
	_, err := Build([]task.Task{mk("A", "C"), mk("B", "A"), mk("C", "B")})
	var ce *CyclicDependencyError
	require.True(t, errors.As(err, &ce))
	assert.ElementsMatch(t, []string{"A", "B", "C"}, ce.Cycle)
	assert.Equal(t, []string{"A", "B", "C"}, ce.Cycle)
	t.Logf("cycle error (expected): %v", err)
}

func TestBuild_CycleReportedInDependencyOrder(t *testing.T) {
	// x is outside the cycle; p -> q -> r -> p
	_, err := Build([]task.Task{mk("x"), mk("p", "r", "x"), mk("q", "p"), mk("r", "q")})
	var ce *CyclicDependencyError
	require.True(t, errors.As(err, &ce))
	require.Len(t, ce.Cycle, 3)

	deps := map[string]string{"q": "p", "r": "q", "p": "r"}
	for i, id := range ce.Cycle {
		prev := ce.Cycle[(i+len(ce.Cycle)-1)%len(ce.Cycle)]
		assert.Equal(t, deps[id], prev, "cycle %v", ce.Cycle)
	}
}

func TestBuild_DuplicateID(t *testing.T) {
	_, err := Build([]task.Task{mk("a"), mk("a")})
	require.Error(t, err)
}

func TestBuild_Empty(t *testing.T) {
	g, err := Build(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, g.Len())
	assert.Empty(t, g.Order())
	assert.Empty(t, g.Edges())
}

func TestBuild_OrderIsImmutable(t *testing.T) {
	g, err := Build([]task.Task{mk("a"), mk("b", "a")})
	require.NoError(t, err)
	o := g.Order()
	o[0] = "mutated"
	assert.Equal(t, []string{"a", "b"}, g.Order())
}

func TestBuild_RandomDAGsRespectDependencies(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 50; round++ {
		n := 2 + rng.Intn(30)
		var tasks []task.Task
		for i := 0; i < n; i++ {
			var deps []string
			for j := 0; j < i; j++ {
				if rng.Intn(4) == 0 {
					deps = append(deps, fmt.Sprintf("t%02d", j))
				}
			}
			tasks = append(tasks, mk(fmt.Sprintf("t%02d", i), deps...))
		}
		rng.Shuffle(len(tasks), func(i, j int) { tasks[i], tasks[j] = tasks[j], tasks[i] })

		g, err := Build(tasks)
		require.NoError(t, err)
		order := g.Order()
		require.Len(t, order, n)

		pos := make(map[string]int, n)
		for i, id := range order {
			pos[id] = i
		}
		for _, tk := range tasks {
			for _, d := range tk.Dependencies {
				assert.Less(t, pos[d], pos[tk.ID], "%s must follow %s", tk.ID, d)
			}
		}

		again, err := Build(tasks)
		require.NoError(t, err)
		assert.Equal(t, order, again.Order())
	}
}
