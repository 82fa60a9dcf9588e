package pipeline

import (
	"context"

	"kitchenplan/internal/task"
)

// Parser turns a free-text event description into a Request. Dishes it
// cannot break down itself go in Request.Dishes.
type Parser interface {
	Parse(ctx context.Context, input string) (Request, error)
}

// Decomposer breaks one dish description into a recipe with tasks. Its
// output goes through the collector like any other recipe.
type Decomposer interface {
	Decompose(ctx context.Context, dish string) (task.Recipe, error)
}

// Validator reviews a finished plan and answers the request's questions.
type Validator interface {
	Validate(ctx context.Context, req Request, res *Result) (Validation, error)
}

// Formatter renders a plan for people.
type Formatter interface {
	Format(ctx context.Context, res *Result) (string, error)
}

// RiskLevel grades a Validation.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

type Validation struct {
	Feasible    bool              `json:"feasible"`
	RiskLevel   RiskLevel         `json:"risk_level"`
	Answers     map[string]string `json:"answers"`
	Suggestions []string          `json:"suggestions"`
}
