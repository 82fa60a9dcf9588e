package task

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitchenplan/internal/kitchen"
)

func TestCollect_NamespacesIDsAndDependencies(t *testing.T) {
	recipes := []Recipe{
		{ID: "salad", Tasks: []RawTask{
			{ID: "wash", Type: kitchen.TaskPrep, Duration: 5, RequiresChef: true},
			{ID: "chop", Type: kitchen.TaskPrep, Duration: 10, Dependencies: []string{"wash"}, RequiresChef: true},
		}},
		{ID: "soup", Tasks: []RawTask{
			{ID: "wash", Type: kitchen.TaskPrep, Duration: 3},
			{ID: "boil", Name: "Boil stock", Type: kitchen.TaskPassive, Duration: 30, Dependencies: []string{"wash"}, Resource: kitchen.KindBurner},
		}},
	}

	tasks, err := Collect(recipes)
	require.NoError(t, err)
	require.Len(t, tasks, 4)

	ids := []string{tasks[0].ID, tasks[1].ID, tasks[2].ID, tasks[3].ID}
	assert.Equal(t, []string{"salad/wash", "salad/chop", "soup/wash", "soup/boil"}, ids)

	assert.Equal(t, []string{"salad/wash"}, tasks[1].Dependencies)
	assert.Equal(t, []string{"soup/wash"}, tasks[3].Dependencies)
	assert.Equal(t, "soup", tasks[3].RecipeID)
	assert.Equal(t, "Boil stock", tasks[3].Name)
	assert.Equal(t, kitchen.KindBurner, tasks[3].Resource)
	assert.True(t, tasks[3].NeedsResource())

	// defaults
	assert.Equal(t, "wash", tasks[0].Name)
	assert.Equal(t, kitchen.KindNone, tasks[0].Resource)
	assert.False(t, tasks[0].NeedsResource())
	assert.Empty(t, tasks[0].Dependencies)
}

func TestCollect_DoesNotMutateInput(t *testing.T) {
	recipes := []Recipe{{ID: "r", Tasks: []RawTask{
		{ID: "a", Type: kitchen.TaskCook, Duration: 1},
		{ID: "b", Type: kitchen.TaskCook, Duration: 1, Dependencies: []string{"a"}},
	}}}

	_, err := Collect(recipes)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, recipes[0].Tasks[1].Dependencies)
}

func TestCollect_DuplicateDependencyCollapsed(t *testing.T) {
	tasks, err := Collect([]Recipe{{ID: "r", Tasks: []RawTask{
		{ID: "a", Type: kitchen.TaskCook, Duration: 1},
		{ID: "b", Type: kitchen.TaskCook, Duration: 1, Dependencies: []string{"a", "a"}},
	}}})
	require.NoError(t, err)
	assert.Equal(t, []string{"r/a"}, tasks[1].Dependencies)
}

func TestCollect_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		recipes []Recipe
		reason  string
	}{
		{
			name:    "zero duration",
			recipes: []Recipe{{ID: "r", Tasks: []RawTask{{ID: "a", Type: kitchen.TaskPrep, Duration: 0}}}},
			reason:  "duration",
		},
		{
			name:    "negative duration",
			recipes: []Recipe{{ID: "r", Tasks: []RawTask{{ID: "a", Type: kitchen.TaskPrep, Duration: -3}}}},
			reason:  "duration",
		},
		{
			name:    "empty task id",
			recipes: []Recipe{{ID: "r", Tasks: []RawTask{{Type: kitchen.TaskPrep, Duration: 1}}}},
			reason:  "empty id",
		},
		{
			name:    "empty recipe id",
			recipes: []Recipe{{Tasks: []RawTask{{ID: "a", Type: kitchen.TaskPrep, Duration: 1}}}},
			reason:  "empty id",
		},
		{
			name: "duplicate local id",
			recipes: []Recipe{{ID: "r", Tasks: []RawTask{
				{ID: "a", Type: kitchen.TaskPrep, Duration: 1},
				{ID: "a", Type: kitchen.TaskPrep, Duration: 2},
			}}},
			reason: "duplicate",
		},
		{
			name: "duplicate recipe id",
			recipes: []Recipe{
				{ID: "r", Tasks: []RawTask{{ID: "a", Type: kitchen.TaskPrep, Duration: 1}}},
				{ID: "r", Tasks: []RawTask{{ID: "b", Type: kitchen.TaskPrep, Duration: 1}}},
			},
			reason: "used twice",
		},
		{
			name:    "unknown task type",
			recipes: []Recipe{{ID: "r", Tasks: []RawTask{{ID: "a", Type: "sous_vide", Duration: 1}}}},
			reason:  "task_type",
		},
		{
			name:    "unknown resource",
			recipes: []Recipe{{ID: "r", Tasks: []RawTask{{ID: "a", Type: kitchen.TaskCook, Duration: 1, Resource: "grill"}}}},
			reason:  "resource",
		},
		{
			name:    "self dependency",
			recipes: []Recipe{{ID: "r", Tasks: []RawTask{{ID: "a", Type: kitchen.TaskCook, Duration: 1, Dependencies: []string{"a"}}}}},
			reason:  "itself",
		},
		{
			name:    "separator in id",
			recipes: []Recipe{{ID: "r", Tasks: []RawTask{{ID: "a/b", Type: kitchen.TaskCook, Duration: 1}}}},
			reason:  "contains",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Collect(tt.recipes)
			var me *MalformedTaskError
			require.True(t, errors.As(err, &me), "got %v", err)
			assert.Contains(t, me.Reason, tt.reason)
		})
	}
}

func TestCollect_UnknownLocalDependencyPassesThrough(t *testing.T) {
	tasks, err := Collect([]Recipe{{ID: "r", Tasks: []RawTask{
		{ID: "a", Type: kitchen.TaskCook, Duration: 1, Dependencies: []string{"ghost"}},
	}}})
	require.NoError(t, err)
	assert.Equal(t, []string{"r/ghost"}, tasks[0].Dependencies)
}

func TestCollect_Empty(t *testing.T) {
	tasks, err := Collect(nil)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}
