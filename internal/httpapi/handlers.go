package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/agencyops/timeclock/internal/domain"
	"github.com/agencyops/timeclock/internal/repository"
	"github.com/agencyops/timeclock/internal/service"
	"github.com/gorilla/mux"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// mapError translates the service taxonomy into HTTP status + code.
func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrAlreadyActive):
		return http.StatusConflict, "already_active"
	case errors.Is(err, service.ErrNotActive):
		return http.StatusConflict, "not_active"
	case errors.Is(err, service.ErrBreakAlreadyOpen):
		return http.StatusConflict, "break_already_open"
	case errors.Is(err, service.ErrNoOpenBreak):
		return http.StatusConflict, "no_open_break"
	case errors.Is(err, service.ErrBreakInProgress):
		return http.StatusConflict, "break_in_progress"
	case errors.Is(err, service.ErrCaptureDenied):
		return http.StatusForbidden, "capture_denied"
	case errors.Is(err, service.ErrCaptureTimeout):
		return http.StatusGatewayTimeout, "capture_timeout"
	case errors.Is(err, context.Canceled):
		return 499, "cancelled"
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status, code := mapError(err)
	writeJSON(w, status, errorBody{Error: code, Message: err.Error()})
}

type workerView struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type breakView struct {
	ID              string     `json:"id"`
	Start           time.Time  `json:"break_start"`
	End             *time.Time `json:"break_end,omitempty"`
	DurationSeconds int64      `json:"duration_seconds"`
}

type sessionView struct {
	ID           string      `json:"id"`
	WorkerID     string      `json:"worker_id"`
	ClockIn      time.Time   `json:"clock_in"`
	ClockOut     *time.Time  `json:"clock_out,omitempty"`
	Status       string      `json:"status"`
	WorkSeconds  int64       `json:"work_seconds"`
	BreakSeconds int64       `json:"break_seconds"`
	OnBreak      bool        `json:"on_break"`
	Breaks       []breakView `json:"breaks,omitempty"`
}

func (h *Handlers) sessionToView(s *domain.Session) sessionView {
	now := h.Clock.Now()
	v := sessionView{
		ID:       s.ID,
		WorkerID: s.WorkerID,
		ClockIn:  s.ClockIn,
		ClockOut: s.ClockOut,
		Status:   string(s.Status),
		OnBreak:  s.OpenBreak() != nil,
	}
	if s.Completed() {
		v.WorkSeconds = s.TotalWorkSeconds
		v.BreakSeconds = s.TotalBreakSeconds
	} else {
		v.WorkSeconds = s.WorkSeconds(now)
		v.BreakSeconds = s.BreakSeconds(now)
	}
	for _, b := range s.Breaks {
		v.Breaks = append(v.Breaks, breakView{
			ID: b.ID, Start: b.Start, End: b.End, DurationSeconds: b.DurationSeconds,
		})
	}
	return v
}

type aggregateView struct {
	WorkerID          string `json:"worker_id"`
	WorkSeconds       int64  `json:"work_seconds"`
	BreakSeconds      int64  `json:"break_seconds"`
	CompletedSessions int    `json:"completed_sessions"`
	LiveSession       bool   `json:"live_session"`
}

func aggregateToView(a *domain.Aggregate) aggregateView {
	return aggregateView{
		WorkerID:          a.WorkerID,
		WorkSeconds:       a.WorkSeconds,
		BreakSeconds:      a.BreakSeconds,
		CompletedSessions: a.CompletedSessions,
		LiveSession:       a.LiveSession,
	}
}

func (h *Handlers) CreateWorker(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DisplayName string `json:"display_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "bad_request", Message: "invalid JSON body"})
		return
	}

	worker, err := h.Workers.Register(r.Context(), req.DisplayName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, workerView{ID: worker.ID, DisplayName: worker.DisplayName})
}

func (h *Handlers) ListWorkers(w http.ResponseWriter, r *http.Request) {
	workers, err := h.Workers.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	views := make([]workerView, 0, len(workers))
	for _, worker := range workers {
		views = append(views, workerView{ID: worker.ID, DisplayName: worker.DisplayName})
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handlers) ClockIn(w http.ResponseWriter, r *http.Request) {
	workerID := mux.Vars(r)["id"]

	sess, err := h.Timeclock.ClockIn(r.Context(), workerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.sessionToView(sess))
}

func (h *Handlers) GetActiveSession(w http.ResponseWriter, r *http.Request) {
	workerID := mux.Vars(r)["id"]

	sess, err := h.Timeclock.GetActiveSession(r.Context(), workerID)
	if err != nil {
		writeError(w, err)
		return
	}
	if sess == nil {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not_found", Message: "worker has no active session"})
		return
	}
	writeJSON(w, http.StatusOK, h.sessionToView(sess))
}

func (h *Handlers) StartBreak(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	brk, err := h.Timeclock.StartBreak(r.Context(), sessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, breakView{ID: brk.ID, Start: brk.Start})
}

func (h *Handlers) EndBreak(w http.ResponseWriter, r *http.Request) {
	breakID := mux.Vars(r)["id"]

	duration, err := h.Timeclock.EndBreak(r.Context(), breakID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"duration_seconds": duration})
}

func (h *Handlers) ClockOut(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	work, brk, err := h.Timeclock.ClockOut(r.Context(), sessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{
		"total_work_seconds":  work,
		"total_break_seconds": brk,
	})
}

// parseRange reads from/to query params as YYYY-MM-DD dates, both
// inclusive; the returned end is the exclusive day after to.
func parseRange(r *http.Request) (time.Time, time.Time, error) {
	from, err := time.Parse("2006-01-02", r.URL.Query().Get("from"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("from must be YYYY-MM-DD")
	}
	to, err := time.Parse("2006-01-02", r.URL.Query().Get("to"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("to must be YYYY-MM-DD")
	}
	return from, to.AddDate(0, 0, 1), nil
}

func (h *Handlers) WorkerReport(w http.ResponseWriter, r *http.Request) {
	workerID := mux.Vars(r)["id"]
	start, end, err := parseRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "bad_request", Message: err.Error()})
		return
	}

	agg, err := h.Reports.RangeTotal(r.Context(), workerID, start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, aggregateToView(agg))
}

func (h *Handlers) AllWorkersReport(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "bad_request", Message: err.Error()})
		return
	}

	report, err := h.Reports.AllWorkersRangeTotal(r.Context(), start, end)
	if err != nil {
		writeError(w, err)
		return
	}

	workers := make([]aggregateView, 0, len(report.Workers))
	for _, agg := range report.Workers {
		workers = append(workers, aggregateToView(agg))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"workers": workers,
		"total":   aggregateToView(&report.Total),
	})
}
