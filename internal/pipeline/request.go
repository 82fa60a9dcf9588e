package pipeline

import (
	"errors"
	"fmt"
	"os"
	"time"

	yaml "github.com/goccy/go-yaml"

	"kitchenplan/internal/kitchen"
	"kitchenplan/internal/task"
)

// Request is one planning job: what to cook, in which kitchen, by when.
type Request struct {
	Event       Event             `yaml:"event" json:"event"`
	Recipes     []task.Recipe     `yaml:"recipes" json:"recipes"`
	Dishes      []string          `yaml:"dishes" json:"dishes,omitempty"` // free text, needs a Decomposer
	Preset      string            `yaml:"preset" json:"preset,omitempty"`
	Overrides   kitchen.Overrides `yaml:"overrides" json:"overrides"`
	Constraints Constraints       `yaml:"constraints" json:"constraints"`
	Questions   []string          `yaml:"questions" json:"questions,omitempty"`
}

// Event describes the occasion. None of it affects scheduling.
type Event struct {
	Name       string `yaml:"name" json:"name,omitempty"`
	Type       string `yaml:"type" json:"type,omitempty"`
	Date       string `yaml:"date" json:"date,omitempty"`
	GuestCount int    `yaml:"guest_count" json:"guest_count,omitempty"`
}

// Constraints bound the finish time. StartAt and ReadyBy are wall-clock
// "HH:MM"; DeadlineMinutes wins when both forms are given.
type Constraints struct {
	StartAt         string   `yaml:"start_at" json:"start_at,omitempty"`
	ReadyBy         string   `yaml:"ready_by" json:"ready_by,omitempty"`
	DeadlineMinutes *float64 `yaml:"deadline_minutes" json:"deadline_minutes,omitempty"`
}

const clockLayout = "15:04"

// Deadline returns the latest acceptable finish in minutes from the start,
// or nil when the request sets none. A ready-by earlier in the day than
// the start is taken to be on the next day.
func (c Constraints) Deadline() (*float64, error) {
	if c.DeadlineMinutes != nil {
		if *c.DeadlineMinutes < 0 {
			return nil, fmt.Errorf("deadline_minutes must not be negative, got %g", *c.DeadlineMinutes)
		}
		d := *c.DeadlineMinutes
		return &d, nil
	}
	if c.ReadyBy == "" {
		return nil, nil
	}
	if c.StartAt == "" {
		return nil, errors.New("ready_by needs start_at")
	}

	start, err := time.Parse(clockLayout, c.StartAt)
	if err != nil {
		return nil, fmt.Errorf("start_at: %w", err)
	}
	ready, err := time.Parse(clockLayout, c.ReadyBy)
	if err != nil {
		return nil, fmt.Errorf("ready_by: %w", err)
	}
	if ready.Before(start) {
		ready = ready.Add(24 * time.Hour)
	}
	d := ready.Sub(start).Minutes()
	return &d, nil
}

// DecodeRequest parses an event file. Unknown fields are rejected.
func DecodeRequest(data []byte) (Request, error) {
	var req Request
	if err := yaml.UnmarshalWithOptions(data, &req, yaml.DisallowUnknownField()); err != nil {
		return Request{}, fmt.Errorf("decode request: %w", err)
	}
	return req, nil
}

// LoadRequest reads and decodes an event file.
func LoadRequest(path string) (Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Request{}, fmt.Errorf("read request: %w", err)
	}
	return DecodeRequest(data)
}
