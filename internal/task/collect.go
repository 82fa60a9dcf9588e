package task

import (
	"slices"
	"strings"

	"kitchenplan/internal/kitchen"
)

// Separator joins a recipe id and a local task id into a global id.
const Separator = "/"

// GlobalID returns the collected id of a recipe-local task.
func GlobalID(recipeID, localID string) string {
	return recipeID + Separator + localID
}

// Collect flattens the recipes' task lists into one task set. Ids are
// namespaced by recipe, and dependencies are resolved within the task's own
// recipe. Output order follows the input: recipes in order, tasks in order.
//
// A dependency naming a local id the recipe does not declare is rewritten
// like any other, so the graph builder reports it as dangling.
func Collect(recipes []Recipe) ([]Task, error) {
	var out []Task
	seenRecipe := make(map[string]bool)

	for _, r := range recipes {
		if r.ID == "" {
			return nil, &MalformedTaskError{Reason: "recipe has an empty id"}
		}
		if strings.Contains(r.ID, Separator) {
			return nil, &MalformedTaskError{RecipeID: r.ID, Reason: "recipe id contains " + Separator}
		}
		if seenRecipe[r.ID] {
			return nil, &MalformedTaskError{RecipeID: r.ID, Reason: "recipe id used twice"}
		}
		seenRecipe[r.ID] = true

		local := make(map[string]bool, len(r.Tasks))
		for _, rt := range r.Tasks {
			if err := validateRaw(r.ID, rt); err != nil {
				return nil, err
			}
			if local[rt.ID] {
				return nil, &MalformedTaskError{RecipeID: r.ID, TaskID: rt.ID, Reason: "duplicate task id"}
			}
			local[rt.ID] = true
		}

		for _, rt := range r.Tasks {
			out = append(out, globalize(r.ID, rt))
		}
	}

	return out, nil
}

func validateRaw(recipeID string, rt RawTask) error {
	bad := func(reason string) error {
		return &MalformedTaskError{RecipeID: recipeID, TaskID: rt.ID, Reason: reason}
	}

	switch {
	case rt.ID == "":
		return bad("empty id")
	case strings.Contains(rt.ID, Separator):
		return bad("id contains " + Separator)
	case rt.Duration <= 0:
		return bad("duration must be positive")
	case !rt.Type.Valid():
		return bad("unknown task_type " + string(rt.Type))
	case rt.Resource != "" && !rt.Resource.Valid():
		return bad("unknown resource requirement " + string(rt.Resource))
	case slices.Contains(rt.Dependencies, rt.ID):
		return bad("task depends on itself")
	}
	return nil
}

func globalize(recipeID string, rt RawTask) Task {
	res := rt.Resource
	if res == "" {
		res = kitchen.KindNone
	}
	name := rt.Name
	if name == "" {
		name = rt.ID
	}

	deps := make([]string, 0, len(rt.Dependencies))
	for _, d := range rt.Dependencies {
		g := GlobalID(recipeID, d)
		if !slices.Contains(deps, g) {
			deps = append(deps, g)
		}
	}

	return Task{
		ID:           GlobalID(recipeID, rt.ID),
		RecipeID:     recipeID,
		Name:         name,
		Type:         rt.Type,
		BaseDuration: rt.Duration,
		Dependencies: deps,
		Resource:     res,
		RequiresChef: rt.RequiresChef,
	}
}
