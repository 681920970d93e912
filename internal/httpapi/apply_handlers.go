package httpapi

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"jobflow-engine/internal/domain"
	"jobflow-engine/internal/events"
	"jobflow-engine/internal/logging"
	"jobflow-engine/internal/metrics"
	"jobflow-engine/internal/store"
	"jobflow-engine/internal/validation"
)

const maxApplyBody = 1 << 20

type ApplyHandler struct {
	DB  *sql.DB
	Hub *events.Hub
	Log *logging.Logger
}

func (h ApplyHandler) Apply(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxApplyBody))
	if err != nil {
		metrics.ObserveApply("invalid", start)
		WriteError(w, r, http.StatusRequestEntityTooLarge, "body_too_large", err.Error())
		return
	}

	if err := validation.ValidateApply(body); err != nil {
		metrics.ObserveApply("invalid", start)
		var verr *validation.Error
		if errors.As(err, &verr) {
			WriteError(w, r, http.StatusBadRequest, "invalid_payload", "payload failed validation", verr.Problems...)
			return
		}
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	var rec domain.JobRecord
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&rec); err != nil {
		metrics.ObserveApply("invalid", start)
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	job, app, err := fromRecord(rec)
	if err != nil {
		metrics.ObserveApply("invalid", start)
		WriteError(w, r, http.StatusBadRequest, "invalid_next_interview", err.Error())
		return
	}

	if err := store.UpsertJobAndApplication(r.Context(), h.DB, &job, &app); err != nil {
		metrics.ObserveApply("error", start)
		h.Log.Error("apply: store failed", "request_id", RequestIDFrom(r.Context()), "err", err)
		WriteError(w, r, http.StatusInternalServerError, "store_failed", "could not store application")
		return
	}

	h.Hub.Publish(events.MakeEvent(RequestIDFrom(r.Context()), events.TypeApplicationRecorded, 1, map[string]any{
		"job_id":         job.ID,
		"application_id": app.ID,
		"title":          job.Title,
		"company":        job.Company,
	}))
	metrics.ObserveApply("ok", start)
	h.Log.Info("apply: recorded",
		"job_id", job.ID,
		"application_id", app.ID,
		"external_id", job.ExternalID,
	)

	WriteJSON(w, http.StatusCreated, domain.Receipt{OK: true, JobID: job.ID, ApplicationID: app.ID})
}

// fromRecord splits a posted record into its job and application rows.
// A blank next_interview means none; anything else must be RFC3339.
func fromRecord(rec domain.JobRecord) (domain.Job, domain.Application, error) {
	job := domain.Job{
		ExternalID:  strings.TrimSpace(rec.ExternalID),
		Title:       rec.Position,
		Company:     rec.Company,
		Location:    rec.Location,
		URL:         rec.URL,
		WorkMode:    string(rec.WorkMode),
		Salary:      rec.Salary,
		Description: rec.Description,
	}

	app := domain.Application{
		Stage:   domain.Annotations{Stage: rec.Stage}.StageOrDefault(),
		Outcome: strings.TrimSpace(rec.Outcome),
		Notes:   rec.Notes,
	}
	if app.Outcome == "" {
		app.Outcome = domain.InitialOutcome
	}

	if s := strings.TrimSpace(rec.NextInterview); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return job, app, errors.New("next_interview must be RFC3339, e.g. 2025-01-31T15:00:00Z")
		}
		app.InterviewTime = &t
	}
	return job, app, nil
}
