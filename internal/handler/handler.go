package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/angeloszaimis/ping-keeper/internal/prober"
)

// StateSource is the read side of a prober.
type StateSource interface {
	Snapshot() prober.State
}

type StatusHandler struct {
	logger *slog.Logger
	source StateSource
}

func NewStatusHandler(logger *slog.Logger, source StateSource) *StatusHandler {
	return &StatusHandler{
		logger: logger,
		source: source,
	}
}

// ServeHTTP writes the prober state as JSON. A stopped prober answers 503 so
// orchestrators can tell the keepalive is idle.
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	state := h.source.Snapshot()

	h.logger.Debug("Status requested",
		slog.String("from", r.RemoteAddr),
		slog.Bool("running", state.Running))

	status := http.StatusOK
	if !state.Running {
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(state); err != nil {
		h.logger.Error("Failed to encode status", slog.Any("err", err))
	}
}

// Healthz reports liveness of the daemon itself.
func Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
