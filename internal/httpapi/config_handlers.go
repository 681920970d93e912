package httpapi

import (
	"net/http"
	"sync/atomic"

	"jobflow-engine/internal/config"
)

// ConfigHandler exposes the running configuration read-only.
type ConfigHandler struct {
	CfgVal *atomic.Value // stores config.Config
}

func (h ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	cur := h.CfgVal.Load().(config.Config)
	WriteJSON(w, http.StatusOK, cur)
}

func (h ConfigHandler) Validate(w http.ResponseWriter, r *http.Request) {
	cur := h.CfgVal.Load().(config.Config)
	_, vr := config.NormalizeAndValidate(cur)
	WriteJSON(w, http.StatusOK, vr)
}
