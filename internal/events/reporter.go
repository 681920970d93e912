package events

import "jobflow-engine/internal/submit"

// StatusReporter publishes every pipeline status update as a "status" event.
type StatusReporter struct {
	Hub   *Hub
	RunID string
}

func (r StatusReporter) Report(s submit.Status) {
	r.Hub.Publish(MakeEvent(r.RunID, TypeStatus, 1, s))
}
