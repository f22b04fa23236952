package event

// Recorder is a handler that keeps every event it receives, in order
// Used by the simulate command and tests
type Recorder struct {
	types  []EventType
	Events []GameEvent
}

// NewRecorder records the given types, or every type when none are given
func NewRecorder(types ...EventType) *Recorder {
	if len(types) == 0 {
		types = AllTypes()
	}
	return &Recorder{types: types}
}

func (r *Recorder) HandleEvent(ev GameEvent) {
	r.Events = append(r.Events, ev)
}

func (r *Recorder) EventTypes() []EventType {
	return r.types
}

// OfType returns recorded events of one type
func (r *Recorder) OfType(et EventType) []GameEvent {
	var out []GameEvent
	for _, ev := range r.Events {
		if ev.Type == et {
			out = append(out, ev)
		}
	}
	return out
}

// Types returns the recorded event types in order
func (r *Recorder) Types() []EventType {
	out := make([]EventType, len(r.Events))
	for i, ev := range r.Events {
		out[i] = ev.Type
	}
	return out
}

// Reset clears recorded events
func (r *Recorder) Reset() {
	r.Events = r.Events[:0]
}
