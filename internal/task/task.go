// Package task holds the unit of kitchen work and the collector that
// flattens per-recipe task lists into one globally addressed set.
package task

import (
	"fmt"

	"kitchenplan/internal/kitchen"
)

// Task is one unit of kitchen work. Dependencies hold global ids.
type Task struct {
	ID           string           `json:"id"`
	RecipeID     string           `json:"recipe_id"`
	Name         string           `json:"name"`
	Type         kitchen.TaskType `json:"task_type"`
	BaseDuration float64          `json:"base_duration"` // minutes
	Dependencies []string         `json:"dependencies"`
	Resource     kitchen.Kind     `json:"resource_requirement"`
	RequiresChef bool             `json:"requires_chef"`
}

// NeedsResource reports whether t occupies a piece of equipment.
func (t Task) NeedsResource() bool {
	return t.Resource != "" && t.Resource != kitchen.KindNone
}

// Recipe is the input to Collect: a recipe and its local task list.
type Recipe struct {
	ID    string    `yaml:"id" json:"id"`
	Name  string    `yaml:"name" json:"name,omitempty"`
	Tasks []RawTask `yaml:"tasks" json:"tasks"`
}

// RawTask is a task as a recipe declares it. ID and Dependencies are local
// to the recipe.
type RawTask struct {
	ID           string           `yaml:"id" json:"id"`
	Name         string           `yaml:"name" json:"name,omitempty"`
	Type         kitchen.TaskType `yaml:"task_type" json:"task_type"`
	Duration     float64          `yaml:"duration" json:"duration"`
	Dependencies []string         `yaml:"dependencies" json:"dependencies,omitempty"`
	Resource     kitchen.Kind     `yaml:"resource" json:"resource,omitempty"`
	RequiresChef bool             `yaml:"requires_chef" json:"requires_chef"`
}

// MalformedTaskError reports task data the collector cannot accept.
type MalformedTaskError struct {
	RecipeID string
	TaskID   string
	Reason   string
}

func (e *MalformedTaskError) Error() string {
	return fmt.Sprintf("malformed task %q in recipe %q: %s", e.TaskID, e.RecipeID, e.Reason)
}
