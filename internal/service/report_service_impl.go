package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/agencyops/timeclock/internal/clock"
	"github.com/agencyops/timeclock/internal/domain"
	"github.com/agencyops/timeclock/internal/repository"
)

type reportService struct {
	sessions repository.SessionRepo
	breaks   repository.BreakRepo
	clock    clock.Clock
}

// NewReportService creates the aggregation engine. It only reads the
// store; nothing derived is ever written back.
func NewReportService(sessions repository.SessionRepo, breaks repository.BreakRepo, clk clock.Clock) ReportService {
	return &reportService{sessions: sessions, breaks: breaks, clock: clk}
}

// DailyTotal aggregates the calendar day containing the given instant,
// in that instant's location.
func (r *reportService) DailyTotal(ctx context.Context, workerID string, day time.Time) (*domain.Aggregate, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return r.RangeTotal(ctx, workerID, dayStart, dayStart.AddDate(0, 0, 1))
}

// RangeTotal aggregates the half-open interval [start, end). A session
// is attributed wholly to the bucket containing its clock_in; spanning
// sessions are never split or double-counted. An active session whose
// clock_in falls in range contributes its live totals at the query's
// now.
func (r *reportService) RangeTotal(ctx context.Context, workerID string, start, end time.Time) (*domain.Aggregate, error) {
	agg := &domain.Aggregate{WorkerID: workerID}

	completed, err := r.sessions.ListCompletedInRange(ctx, workerID, start, end)
	if err != nil {
		return nil, err
	}
	for _, s := range completed {
		agg.Add(s)
	}

	active, err := r.sessions.GetActiveByWorker(ctx, workerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return agg, nil
		}
		return nil, err
	}
	if err := r.addLive(ctx, agg, active, start, end); err != nil {
		return nil, err
	}
	return agg, nil
}

// AllWorkersRangeTotal returns a per-worker breakdown plus a grand
// total for [start, end), under the same clock_in attribution policy.
func (r *reportService) AllWorkersRangeTotal(ctx context.Context, start, end time.Time) (*RangeReport, error) {
	byWorker := make(map[string]*domain.Aggregate)
	get := func(workerID string) *domain.Aggregate {
		agg, ok := byWorker[workerID]
		if !ok {
			agg = &domain.Aggregate{WorkerID: workerID}
			byWorker[workerID] = agg
		}
		return agg
	}

	completed, err := r.sessions.ListAllCompletedInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	for _, s := range completed {
		get(s.WorkerID).Add(s)
	}

	actives, err := r.sessions.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range actives {
		if err := r.addLive(ctx, get(s.WorkerID), s, start, end); err != nil {
			return nil, err
		}
	}

	report := &RangeReport{Start: start, End: end}
	for _, agg := range byWorker {
		report.Workers = append(report.Workers, agg)
		report.Total.WorkSeconds += agg.WorkSeconds
		report.Total.BreakSeconds += agg.BreakSeconds
		report.Total.CompletedSessions += agg.CompletedSessions
		if agg.LiveSession {
			report.Total.LiveSession = true
		}
	}
	sort.Slice(report.Workers, func(i, j int) bool {
		return report.Workers[i].WorkerID < report.Workers[j].WorkerID
	})
	return report, nil
}

// addLive folds an active session's live totals into agg when its
// clock_in lies in [start, end).
func (r *reportService) addLive(ctx context.Context, agg *domain.Aggregate, active *domain.Session, start, end time.Time) error {
	if active.ClockIn.Before(start) || !active.ClockIn.Before(end) {
		return nil
	}
	breaks, err := r.breaks.ListBySession(ctx, active.ID)
	if err != nil {
		return err
	}
	active.Breaks = breaks

	now := r.clock.Now()
	agg.WorkSeconds += active.WorkSeconds(now)
	agg.BreakSeconds += active.BreakSeconds(now)
	agg.LiveSession = true
	return nil
}
