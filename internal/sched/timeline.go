package sched

import (
	"sort"

	"github.com/emirpasic/gods/trees/redblacktree"
)

// lane tracks the committed busy intervals of one oven, burner, microwave
// or chef. Intervals are half-open [start, end) and at most capacity of
// them overlap at any instant.
type lane struct {
	id       string
	capacity int
	rbt      *redblacktree.Tree // ordered by start time and task ID
}

func newLane(id string, capacity int) *lane {
	if capacity < 1 {
		capacity = 1
	}
	return &lane{id: id, capacity: capacity, rbt: redblacktree.NewWith(byStart)}
}

type interval struct {
	start, end float64
	taskID     string
}

// commit records a busy interval. The caller has already checked it fits.
func (l *lane) commit(start, end float64, taskID string) {
	l.rbt.Put(nodeKey{start: start, id: taskID}, interval{start: start, end: end, taskID: taskID})
}

// size is the number of committed intervals.
func (l *lane) size() int { return l.rbt.Size() }

// intervals returns the committed intervals ordered by start time.
func (l *lane) intervals() []interval {
	out := make([]interval, 0, l.rbt.Size())
	it := l.rbt.Iterator()
	for it.Next() {
		out = append(out, it.Value().(interval))
	}
	return out
}

// earliestFit returns the smallest t >= from at which a task of length dur
// can start without pushing the lane over capacity. Occupancy only drops
// when an interval ends, so the candidates are from and every later end.
func (l *lane) earliestFit(from, dur float64) float64 {
	if l.fits(from, dur) {
		return from
	}

	var ends []float64
	it := l.rbt.Iterator()
	for it.Next() {
		if iv := it.Value().(interval); iv.end > from {
			ends = append(ends, iv.end)
		}
	}
	sort.Float64s(ends)

	for i, t := range ends {
		if i > 0 && t == ends[i-1] {
			continue
		}
		if l.fits(t, dur) {
			return t
		}
	}
	// unreachable: after the last end the lane is empty
	return ends[len(ends)-1]
}

// fits reports whether [t, t+dur) can be added while keeping occupancy
// within capacity at every instant.
func (l *lane) fits(t, dur float64) bool {
	end := t + dur

	var overlapping []interval
	it := l.rbt.Iterator()
	for it.Next() {
		iv := it.Value().(interval)
		if iv.start >= end {
			break // ordered by start: nothing later can overlap
		}
		if iv.end > t {
			overlapping = append(overlapping, iv)
		}
	}
	if len(overlapping) < l.capacity {
		return true
	}

	// Occupancy inside the window peaks at t or at some interval start.
	points := []float64{t}
	for _, iv := range overlapping {
		if iv.start > t {
			points = append(points, iv.start)
		}
	}
	for _, p := range points {
		busy := 0
		for _, iv := range overlapping {
			if iv.start <= p && p < iv.end {
				busy++
			}
		}
		if busy+1 > l.capacity {
			return false
		}
	}
	return true
}

// nodeKey is used as a key in the red-black tree.
type nodeKey struct {
	start float64
	id    string
}

// byStart orders nodeKeys by start time, then task ID.
func byStart(a, b any) int {
	ka, kb := a.(nodeKey), b.(nodeKey)
	switch {
	case ka.start < kb.start:
		return -1
	case ka.start > kb.start:
		return 1
	case ka.id < kb.id:
		return -1
	case ka.id > kb.id:
		return 1
	default:
		return 0
	}
}
