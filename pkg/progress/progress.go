package progress

import "time"

// Phase identifies a stage of the recommendation pipeline.
type Phase string

const (
	PhaseInit           Phase = "init"
	PhaseQueryGen       Phase = "query_generation"
	PhaseSearch         Phase = "search"
	PhaseSearchDB       Phase = "search_db"
	PhaseSearchInternet Phase = "search_internet"
	PhaseRecommendation Phase = "recommendation"
	PhaseComplete       Phase = "complete"
	PhaseError          Phase = "error"
)

// Canonical progress value for each phase. The recommendation phase carries
// sub-progress between search_internet and complete, so it has no fixed value.
var phaseProgress = map[Phase]float64{
	PhaseInit:           0.1,
	PhaseQueryGen:       0.2,
	PhaseSearch:         0.4,
	PhaseSearchDB:       0.6,
	PhaseSearchInternet: 0.8,
	PhaseComplete:       1.0,
	PhaseError:          1.0,
}

// Value returns the canonical progress for a phase, or -1 if the phase has none.
func (p Phase) Value() float64 {
	if v, ok := phaseProgress[p]; ok {
		return v
	}
	return -1
}

// Terminal reports whether no further events may follow this phase.
func (p Phase) Terminal() bool {
	return p == PhaseComplete || p == PhaseError
}

// Event is a single progress update delivered to a client.
type Event struct {
	Phase    Phase                  `json:"phase"`
	Progress float64                `json:"progress"`
	Message  string                 `json:"message,omitempty"`
	Data     map[string]interface{} `json:"data,omitempty"`
	At       time.Time              `json:"at"`
}

// Emitter receives pipeline progress events. Implementations must tolerate
// being called from multiple goroutines.
type Emitter func(Event)

// Discard is an Emitter that drops every event.
func Discard(Event) {}

// Tracker wraps an Emitter and enforces the stream invariants: progress never
// decreases, and nothing is emitted after a terminal phase.
type Tracker struct {
	emit Emitter
	last float64
	done bool
}

func NewTracker(emit Emitter) *Tracker {
	if emit == nil {
		emit = Discard
	}
	return &Tracker{emit: emit}
}

// Emit sends a phase event at its canonical progress value.
func (t *Tracker) Emit(phase Phase, message string) {
	t.EmitAt(phase, phase.Value(), message, nil)
}

// EmitAt sends an event with an explicit progress value, used for synthesis
// sub-progress. Values below the last emitted progress are clamped up.
func (t *Tracker) EmitAt(phase Phase, value float64, message string, data map[string]interface{}) {
	if t.done {
		return
	}
	if value < t.last {
		value = t.last
	}
	t.last = value
	if phase.Terminal() {
		t.done = true
	}
	t.emit(Event{
		Phase:    phase,
		Progress: value,
		Message:  message,
		Data:     data,
		At:       time.Now(),
	})
}
