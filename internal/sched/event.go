package sched

// EventKind represents the type of scheduler event
type EventKind int

const (
	EventPlaced EventKind = iota
	EventResourceWait
	EventStaffingDelayed
)

// Event is emitted for every placement decision.
type Event struct {
	Kind       EventKind
	TaskID     string
	ResourceID string
	ChefID     string
	Ready      float64 // earliest start allowed by dependencies
	Start      float64
	End        float64
}

func (k EventKind) String() string {
	switch k {
	case EventPlaced:
		return "Placed"
	case EventResourceWait:
		return "ResourceWait"
	case EventStaffingDelayed:
		return "StaffingDelayed"
	default:
		return "Unknown"
	}
}
