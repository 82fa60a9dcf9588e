// Package replay plays a finished schedule back against a fast clock, one
// simulated minute per tick, the way a kitchen would live through it.
package replay

import (
	"context"
	"math"
	"sort"
	"time"

	"kitchenplan/internal/ctxlog"
	"kitchenplan/internal/sched"
)

// CueKind says whether a task starts or finishes at a cue.
type CueKind int

const (
	CueStart CueKind = iota
	CueDone
)

func (k CueKind) String() string {
	switch k {
	case CueStart:
		return "start"
	case CueDone:
		return "done"
	default:
		return "unknown"
	}
}

// Cue is one moment in the replay.
type Cue struct {
	At         float64
	Kind       CueKind
	TaskID     string
	ResourceID string
	ChefID     string
}

// Cues lists every start and finish in s by time. At the same instant
// finishes come before starts, then task ids in order.
func Cues(s *sched.Schedule) []Cue {
	out := make([]Cue, 0, 2*len(s.Tasks))
	for _, st := range s.Tasks {
		base := Cue{TaskID: st.TaskID, ResourceID: st.ResourceID, ChefID: st.ChefID}
		start, done := base, base
		start.At, start.Kind = st.Start, CueStart
		done.At, done.Kind = st.End, CueDone
		out = append(out, start, done)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.At != b.At {
			return a.At < b.At
		}
		if a.Kind != b.Kind {
			return a.Kind == CueDone
		}
		return a.TaskID < b.TaskID
	})
	return out
}

// Play walks s one simulated minute per interval and calls fn for every cue
// as its minute arrives. A cue at a fractional time fires on the tick that
// first reaches it. Play returns when every cue has fired or ctx ends.
func Play(ctx context.Context, s *sched.Schedule, interval time.Duration, fn func(minute int64, c Cue)) error {
	cues := Cues(s)
	log := ctxlog.FromContext(ctx)

	next := 0
	fire := func(minute int64) {
		for next < len(cues) && int64(math.Ceil(cues[next].At)) <= minute {
			fn(minute, cues[next])
			next++
		}
	}
	fire(0)
	if next == len(cues) {
		return nil
	}

	clock := NewClock(1)
	clock.Start(interval)
	defer clock.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug("replay interrupted", "minute", clock.Count())
			return ctx.Err()
		case minute := <-clock.Ch:
			fire(minute)
			if next == len(cues) {
				log.Debug("replay finished", "minutes", minute)
				return nil
			}
		}
	}
}
