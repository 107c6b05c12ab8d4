package events

// Recorder is a Subscriber that keeps every event it is interested in, in
// publication order. The CLI uses it to list captures after a simulation.
type Recorder struct {
	id         string
	interested map[string]bool
	events     []Event
}

// NewRecorder records the given event types, or everything when none are given.
func NewRecorder(id string, eventTypes ...string) *Recorder {
	interested := make(map[string]bool, len(eventTypes))
	for _, t := range eventTypes {
		interested[t] = true
	}
	return &Recorder{id: id, interested: interested}
}

func (r *Recorder) ID() string { return r.id }

func (r *Recorder) HandleEvent(e Event) { r.events = append(r.events, e) }

func (r *Recorder) InterestedIn(eventType string) bool {
	return len(r.interested) == 0 || r.interested[eventType]
}

// Events returns the recorded events.
func (r *Recorder) Events() []Event { return r.events }

// OfType returns the recorded events of one type.
func (r *Recorder) OfType(eventType string) []Event {
	var out []Event
	for _, e := range r.events {
		if e.Type() == eventType {
			out = append(out, e)
		}
	}
	return out
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() { r.events = nil }
