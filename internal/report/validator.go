// Package report holds the built-in, rule-based collaborators the CLI
// plugs into a pipeline.Planner: a Validator that grades a plan and a
// Formatter that renders it for the terminal.
package report

import (
	"context"
	"fmt"
	"strings"

	"kitchenplan/internal/conflict"
	"kitchenplan/internal/pipeline"
)

// Rules grades a plan from its conflicts alone.
type Rules struct {
	// TightMargin is the share of the deadline that, when left unused,
	// still counts as a risky plan.
	TightMargin float64
}

// NewRules returns Rules with a 10% margin.
func NewRules() *Rules {
	return &Rules{TightMargin: 0.1}
}

var _ pipeline.Validator = (*Rules)(nil)

func (r *Rules) Validate(_ context.Context, req pipeline.Request, res *pipeline.Result) (pipeline.Validation, error) {
	v := pipeline.Validation{
		Feasible:    res.Feasible(),
		RiskLevel:   r.risk(res),
		Answers:     make(map[string]string, len(req.Questions)),
		Suggestions: []string{},
	}

	seen := make(map[string]bool)
	for _, c := range res.Conflicts {
		for _, s := range suggest(c) {
			if !seen[s] {
				seen[s] = true
				v.Suggestions = append(v.Suggestions, s)
			}
		}
	}
	for _, q := range req.Questions {
		v.Answers[q] = answer(q, res)
	}
	return v, nil
}

func (r *Rules) risk(res *pipeline.Result) pipeline.RiskLevel {
	if !res.Feasible() {
		return pipeline.RiskHigh
	}
	for _, c := range res.Conflicts {
		if c.Severity != conflict.SeverityWarning {
			continue
		}
		// every plan has one path summary; anything beyond it is a real warning
		if c.Kind != conflict.KindCriticalPathBottleneck || isLaneWarning(c) {
			return pipeline.RiskMedium
		}
	}
	if res.Deadline != nil && *res.Deadline > 0 {
		if spare := *res.Deadline - res.Schedule.Makespan; spare < *res.Deadline*r.TightMargin {
			return pipeline.RiskMedium
		}
	}
	return pipeline.RiskLow
}

func isLaneWarning(c conflict.Conflict) bool {
	return c.Kind == conflict.KindCriticalPathBottleneck && !strings.HasPrefix(c.Message, "critical path ")
}

func suggest(c conflict.Conflict) []string {
	switch c.Kind {
	case conflict.KindResourceOverload:
		lane, _, _ := strings.Cut(c.Message, " ")
		return []string{fmt.Sprintf("move tasks off %s or raise its capacity", lane)}
	case conflict.KindInsufficientResources:
		if c.Severity == conflict.SeverityError {
			return []string{fmt.Sprintf("add equipment or staff through overrides: %s", c.Message)}
		}
		return []string{"add a chef or start earlier to avoid staffing delays"}
	case conflict.KindTimingInfeasible:
		return []string{"start earlier, move ready_by later or add equipment on the critical path"}
	case conflict.KindCriticalPathBottleneck:
		if isLaneWarning(c) {
			lane, _, _ := strings.Cut(c.Message, " ")
			return []string{fmt.Sprintf("another unit like %s would shorten the critical path", lane)}
		}
	}
	return nil
}

func answer(q string, res *pipeline.Result) string {
	lq := strings.ToLower(q)
	switch {
	case strings.Contains(lq, "how long"), strings.Contains(lq, "total time"):
		return fmt.Sprintf("about %.0f minutes from the first task to the last", res.Schedule.Makespan)
	case strings.Contains(lq, "on time"), strings.Contains(lq, "feasible"), strings.Contains(lq, "possible"):
		if res.Feasible() {
			return "yes, the plan has no blocking conflicts"
		}
		return fmt.Sprintf("no, %d blocking conflict(s) were found", countErrors(res.Conflicts))
	case strings.Contains(lq, "bottleneck"), strings.Contains(lq, "critical"):
		for _, c := range res.Conflicts {
			if c.Kind == conflict.KindCriticalPathBottleneck {
				return c.Message
			}
		}
		return "there is nothing to schedule"
	}
	return "no rule covers this question"
}

func countErrors(cs []conflict.Conflict) int {
	n := 0
	for _, c := range cs {
		if c.Severity == conflict.SeverityError {
			n++
		}
	}
	return n
}
