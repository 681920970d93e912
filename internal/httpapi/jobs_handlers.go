package httpapi

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"jobflow-engine/internal/events"
	"jobflow-engine/internal/logging"
	"jobflow-engine/internal/store"
)

type JobsHandler struct {
	DB  *sql.DB
	Hub *events.Hub
	Log *logging.Logger
}

func (h JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))

	jobs, err := store.ListJobs(r.Context(), h.DB, store.ListJobsOpts{
		Sort:  q.Get("sort"),
		Limit: limit,
	})
	if err != nil {
		h.Log.Error("jobs: list failed", "err", err)
		WriteError(w, r, http.StatusInternalServerError, "list_failed", "could not list jobs")
		return
	}
	WriteJSON(w, http.StatusOK, jobs)
}

func (h JobsHandler) DeleteByPath(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/jobs/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	found, err := store.DeleteJob(r.Context(), h.DB, id)
	if err != nil {
		h.Log.Error("jobs: delete failed", "id", id, "err", err)
		WriteError(w, r, http.StatusInternalServerError, "delete_failed", "could not delete job")
		return
	}
	if !found {
		WriteError(w, r, http.StatusNotFound, "not_found", "job not found")
		return
	}

	h.Hub.Publish(events.MakeEvent(RequestIDFrom(r.Context()), events.TypeJobDeleted, 1, map[string]any{"id": id}))
	WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "id": id})
}
