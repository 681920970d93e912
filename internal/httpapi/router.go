package httpapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	ah := ApplyHandler{DB: d.DB, Hub: d.Hub, Log: d.Log}
	mux.HandleFunc("/apply", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ah.Apply,
	}))

	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: HealthHandler{}.Health,
	}))

	// Jobs
	jh := JobsHandler{DB: d.DB, Hub: d.Hub, Log: d.Log}
	mux.HandleFunc("/jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.List,
	}))
	mux.HandleFunc("/jobs/", methodMux(map[string]http.HandlerFunc{
		http.MethodDelete: jh.DeleteByPath, // expects /jobs/{id}
	}))

	// Config (read-only)
	ch := ConfigHandler{CfgVal: d.CfgVal}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	dh := DBHandler{DB: d.DB}
	mux.HandleFunc("/db/checkpoint", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: dh.Checkpoint,
	}))

	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

// Handler is NewMux behind the standard middleware stack.
func Handler(d Deps) http.Handler {
	return Chain(NewMux(d),
		RequestID,
		Recover(d.Log),
		AccessLog(d.Log),
		Cors(d.CORSOrigins),
	)
}
