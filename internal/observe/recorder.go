package observe

import "fmt"

// Recorder is an Observer that captures everything it is given.
// It is intended for tests.
type Recorder struct {
	Lines  []string
	Events []Event
	fields map[string]string
}

var _ Observer = (*Recorder)(nil)

// Printf implements Observer.
func (r *Recorder) Printf(format string, v ...interface{}) {
	r.Lines = append(r.Lines, fmt.Sprintf(format, v...))
}

// Event implements Observer.
func (r *Recorder) Event(event Event) {
	r.Events = append(r.Events, event)
}

// WithFields implements Observer. The recorder keeps a single shared event
// list so tests see everything regardless of field scoping.
func (r *Recorder) WithFields(fields map[string]string) Observer {
	merged := make(map[string]string, len(r.fields)+len(fields))
	for k, v := range r.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	r.fields = merged
	return r
}

// EventsOfType returns the captured events matching the given type.
func (r *Recorder) EventsOfType(t EventType) []Event {
	var out []Event
	for _, e := range r.Events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}
