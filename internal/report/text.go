package report

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"kitchenplan/internal/conflict"
	"kitchenplan/internal/pipeline"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// Text renders a plan as a terminal timeline.
type Text struct{}

var _ pipeline.Formatter = Text{}

func (Text) Format(_ context.Context, res *pipeline.Result) (string, error) {
	var start *time.Time
	if res.StartAt != "" {
		t, err := time.Parse("15:04", res.StartAt)
		if err != nil {
			return "", fmt.Errorf("start_at: %w", err)
		}
		start = &t
	}
	clock := func(m float64) string {
		if start == nil {
			return fmt.Sprintf("+%3.0fm", m)
		}
		return start.Add(time.Duration(m * float64(time.Minute))).Format("15:04")
	}

	var b strings.Builder
	title := "Kitchen plan"
	if res.Event.Name != "" {
		title += ": " + res.Event.Name
	}
	b.WriteString(titleStyle.Render(title) + "\n")
	fmt.Fprintf(&b, "%s %d tasks, %.0f min\n",
		labelStyle.Render("plan:"), len(res.Tasks), res.Schedule.Makespan)
	if res.Deadline != nil {
		fmt.Fprintf(&b, "%s %.0f min\n", labelStyle.Render("deadline:"), *res.Deadline)
	}

	b.WriteString("\n" + headerStyle.Render("Timeline") + "\n")
	rows := make([][3]string, 0, len(res.Schedule.Tasks))
	width := 0
	for _, st := range res.Schedule.Tasks {
		where := strings.TrimSpace(st.ResourceID + " " + st.ChefID)
		if where == "" {
			where = "-"
		}
		row := [3]string{fmt.Sprintf("%s-%s", clock(st.Start), clock(st.End)), st.TaskID, where}
		if st.StaffingDelayed {
			row[2] += " " + warningStyle.Render("(staffing delayed)")
		}
		width = max(width, len(row[1]))
		rows = append(rows, row)
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "  %s  %-*s  %s\n", r[0], width, r[1], labelStyle.Render(r[2]))
	}

	b.WriteString("\n" + headerStyle.Render("Conflicts") + "\n")
	if len(res.Conflicts) == 0 {
		b.WriteString("  none\n")
	}
	for _, c := range res.Conflicts {
		style := warningStyle
		if c.Severity == conflict.SeverityError {
			style = errorStyle
		}
		fmt.Fprintf(&b, "  %s %s: %s\n", style.Render(string(c.Severity)), c.Kind, c.Message)
	}

	if v := res.Validation; v != nil {
		b.WriteString("\n" + headerStyle.Render("Assessment") + "\n")
		verdict := okStyle.Render("feasible")
		if !v.Feasible {
			verdict = errorStyle.Render("not feasible")
		}
		fmt.Fprintf(&b, "  %s, %s risk\n", verdict, v.RiskLevel)
		for _, s := range v.Suggestions {
			fmt.Fprintf(&b, "  - %s\n", s)
		}
		questions := make([]string, 0, len(v.Answers))
		for q := range v.Answers {
			questions = append(questions, q)
		}
		sort.Strings(questions)
		for _, q := range questions {
			fmt.Fprintf(&b, "  %s %s\n  %s\n", labelStyle.Render("Q:"), q, v.Answers[q])
		}
	}
	return b.String(), nil
}
