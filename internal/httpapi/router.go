// Package httpapi exposes the timeclock core as JSON endpoints for
// the surrounding dashboard application.
package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/agencyops/timeclock/internal/clock"
	"github.com/agencyops/timeclock/internal/service"
	"github.com/gorilla/mux"
)

// Handlers bundles the services the API fronts.
type Handlers struct {
	Timeclock service.TimeclockService
	Reports   service.ReportService
	Workers   service.WorkerService
	Clock     clock.Clock
}

// NewRouter builds the API route table.
func NewRouter(h *Handlers) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods("GET")
	r.HandleFunc("/time", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"time": "` + h.Clock.Now().Format(time.RFC3339) + `"}`))
	}).Methods("GET")

	r.HandleFunc("/workers", h.CreateWorker).Methods("POST")
	r.HandleFunc("/workers", h.ListWorkers).Methods("GET")
	r.HandleFunc("/workers/{id}/clock-in", h.ClockIn).Methods("POST")
	r.HandleFunc("/workers/{id}/session", h.GetActiveSession).Methods("GET")
	r.HandleFunc("/workers/{id}/report", h.WorkerReport).Methods("GET")
	r.HandleFunc("/sessions/{id}/breaks", h.StartBreak).Methods("POST")
	r.HandleFunc("/sessions/{id}/clock-out", h.ClockOut).Methods("POST")
	r.HandleFunc("/breaks/{id}/end", h.EndBreak).Methods("POST")
	r.HandleFunc("/report", h.AllWorkersReport).Methods("GET")

	return r
}
