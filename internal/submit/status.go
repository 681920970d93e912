package submit

import "fmt"

type Phase string

const (
	PhaseCollecting Phase = "collecting"
	PhaseSending    Phase = "sending"
	PhaseWarning    Phase = "warning"
	PhaseSent       Phase = "sent"
	PhaseFailed     Phase = "failed"
)

const (
	MsgCollecting   = "Collecting job info…"
	MsgSending      = "Sending to JobFlow…"
	MsgNoTarget     = "No active tab found."
	MsgUnreadable   = "Could not read job from this page."
	MsgUnidentified = "Scraper returned nothing – are you on a LinkedIn job page?"
	MsgNoTitleWarn  = "No job title found – sending anyway."
)

// Status is one update for the status channel.
type Status struct {
	Phase    Phase  `json:"phase"`
	Message  string `json:"message"`
	JobID    int64  `json:"job_id,omitempty"`
	Terminal bool   `json:"terminal"`
}

// Reporter receives every status update of a run, in order.
type Reporter interface {
	Report(Status)
}

type ReporterFunc func(Status)

func (f ReporterFunc) Report(s Status) { f(s) }

// Reporters fans one update out to several reporters.
type Reporters []Reporter

func (rs Reporters) Report(s Status) {
	for _, r := range rs {
		if r != nil {
			r.Report(s)
		}
	}
}

// sentMessage omits the id when the sink didn't return one.
func sentMessage(jobID int64) string {
	if jobID == 0 {
		return "Sent ✅"
	}
	return fmt.Sprintf("Sent ✅ (job_id %d)", jobID)
}

func apiErrorMessage(e *APIError) string {
	return "JobFlow API error: " + ShortText(e.Body)
}

func errorMessage(err error) string {
	return "Error: " + err.Error()
}
