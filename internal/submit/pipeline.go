package submit

import (
	"context"
	"errors"
	"fmt"

	"jobflow-engine/internal/assemble"
	"jobflow-engine/internal/domain"
	"jobflow-engine/internal/host"
	"jobflow-engine/internal/logging"
	"jobflow-engine/internal/metrics"
)

// MissingTitlePolicy decides what happens to a record with no position.
type MissingTitlePolicy string

const (
	BlockMissingTitle MissingTitlePolicy = "block"
	WarnMissingTitle  MissingTitlePolicy = "warn"
)

// ErrUnidentified is the outcome error when a record without a title is blocked.
var ErrUnidentified = errors.New("submit: no job title found")

// Sender is satisfied by *Client.
type Sender interface {
	Send(ctx context.Context, rec domain.JobRecord) (domain.Receipt, error)
}

type Pipeline struct {
	sender Sender
	policy MissingTitlePolicy
	log    *logging.Logger
}

func NewPipeline(sender Sender, policy MissingTitlePolicy, log *logging.Logger) *Pipeline {
	if policy != WarnMissingTitle {
		policy = BlockMissingTitle
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Pipeline{sender: sender, policy: policy, log: log}
}

// Outcome is everything a run produced. Err is nil only when the record was sent.
type Outcome struct {
	Status  Status
	Result  *assemble.Result
	Receipt domain.Receipt
	Err     error
}

// Run extracts through h and then submits, strictly in that order. Every
// failure ends in exactly one terminal status; nothing is retried.
func (p *Pipeline) Run(ctx context.Context, h host.Host, ann domain.Annotations, rep Reporter) (out Outcome) {
	if rep == nil {
		rep = ReporterFunc(func(Status) {})
	}
	finish := func(st Status, err error) Outcome {
		st.Terminal = true
		out.Status, out.Err = st, err
		rep.Report(st)
		metrics.CapturesTotal.WithLabelValues(string(st.Phase)).Inc()
		return out
	}
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("capture panicked", "panic", r)
			out = finish(Status{Phase: PhaseFailed, Message: errorMessage(fmt.Errorf("%v", r))}, fmt.Errorf("submit: panic: %v", r))
		}
	}()

	rep.Report(Status{Phase: PhaseCollecting, Message: MsgCollecting})

	res, err := h.Capture(ctx, ann)
	switch {
	case errors.Is(err, host.ErrNoTarget):
		return finish(Status{Phase: PhaseFailed, Message: MsgNoTarget}, err)
	case err != nil:
		p.log.Warn("capture failed", "err", err)
		return finish(Status{Phase: PhaseFailed, Message: errorMessage(err)}, err)
	case res == nil:
		return finish(Status{Phase: PhaseFailed, Message: MsgUnreadable}, errors.New("submit: extraction returned nothing"))
	}
	out.Result = res
	metrics.ObserveFields(res.Sources)

	rec := res.Record
	p.log.Debug("assembled record", "url", rec.URL, "position", rec.Position, "company", rec.Company, "sources", res.Sources)

	if !res.Identified() {
		if p.policy == BlockMissingTitle {
			return finish(Status{Phase: PhaseWarning, Message: MsgUnidentified}, ErrUnidentified)
		}
		p.log.Warn("sending record without a title", "url", rec.URL)
		rep.Report(Status{Phase: PhaseWarning, Message: MsgNoTitleWarn})
	}

	rep.Report(Status{Phase: PhaseSending, Message: MsgSending})

	receipt, err := p.sender.Send(ctx, rec)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			p.log.Warn("sink rejected record", "status", apiErr.StatusCode, "body", ShortText(apiErr.Body))
			return finish(Status{Phase: PhaseFailed, Message: apiErrorMessage(apiErr)}, err)
		}
		p.log.Warn("submit failed", "err", err)
		return finish(Status{Phase: PhaseFailed, Message: errorMessage(err)}, err)
	}

	out.Receipt = receipt
	p.log.Info("record sent", "url", rec.URL, "job_id", receipt.JobID, "application_id", receipt.ApplicationID)
	return finish(Status{Phase: PhaseSent, Message: sentMessage(receipt.JobID), JobID: receipt.JobID}, nil)
}
