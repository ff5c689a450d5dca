package service

import (
	"context"
	"testing"
	"time"

	"github.com/agencyops/timeclock/internal/clock"
	"github.com/agencyops/timeclock/internal/repository"
	"github.com/agencyops/timeclock/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reportFixture struct {
	sessions repository.SessionRepo
	breaks   repository.BreakRepo
	workers  repository.WorkerRepo
	clock    *clock.Fake
	svc      ReportService
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()
	database := testutil.NewTestDB(t)

	f := &reportFixture{
		sessions: repository.NewSQLiteSessionRepo(database),
		breaks:   repository.NewSQLiteBreakRepo(database),
		workers:  repository.NewSQLiteWorkerRepo(database),
		clock:    clock.NewFake(time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)),
	}
	f.svc = NewReportService(f.sessions, f.breaks, f.clock)
	return f
}

func (f *reportFixture) addWorker(t *testing.T, name string) string {
	t.Helper()
	w := testutil.NewTestWorker(name)
	require.NoError(t, f.workers.Create(context.Background(), w))
	return w.ID
}

// The spec's reference scenario: 09:00 to 17:00, no breaks.
func TestDailyTotal_FullDayNoBreaks(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()
	workerID := f.addWorker(t, "Ada")

	clockIn := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	sess := testutil.NewTestSession(workerID,
		testutil.WithClockIn(clockIn),
		testutil.WithCompleted(clockIn.Add(8*time.Hour), 28800, 0),
	)
	require.NoError(t, f.sessions.Create(ctx, sess))

	agg, err := f.svc.DailyTotal(ctx, workerID, clockIn)
	require.NoError(t, err)
	assert.Equal(t, int64(28800), agg.WorkSeconds)
	assert.Equal(t, int64(0), agg.BreakSeconds)
	assert.Equal(t, 1, agg.CompletedSessions)
	assert.False(t, agg.LiveSession)
}

func TestDailyTotal_NoSessionsIsZeroNotError(t *testing.T) {
	f := newReportFixture(t)
	workerID := f.addWorker(t, "Ada")

	agg, err := f.svc.DailyTotal(context.Background(), workerID, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(0), agg.WorkSeconds)
	assert.Equal(t, int64(0), agg.BreakSeconds)
	assert.Equal(t, 0, agg.CompletedSessions)
}

func TestRangeTotal_IncludesLiveContribution(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()
	workerID := f.addWorker(t, "Ada")

	// Completed morning session: 2h work, 10 min break.
	morning := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	done := testutil.NewTestSession(workerID,
		testutil.WithClockIn(morning),
		testutil.WithCompleted(morning.Add(130*time.Minute), 7200, 600),
	)
	require.NoError(t, f.sessions.Create(ctx, done))

	// Active session clocked in at 11:00; now is 12:00, with a 5 min
	// closed break inside it.
	liveIn := time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC)
	live := testutil.NewTestSession(workerID, testutil.WithClockIn(liveIn))
	require.NoError(t, f.sessions.Create(ctx, live))
	brkEnd := liveIn.Add(35 * time.Minute)
	require.NoError(t, f.breaks.Create(ctx, testutil.NewTestBreak(live.ID,
		testutil.WithBreakStart(liveIn.Add(30*time.Minute)),
		testutil.WithBreakClosed(brkEnd, 300),
	)))

	dayStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	agg, err := f.svc.RangeTotal(ctx, workerID, dayStart, dayStart.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(7200+3300), agg.WorkSeconds, "completed 7200 plus live 3600-300")
	assert.Equal(t, int64(600+300), agg.BreakSeconds)
	assert.Equal(t, 1, agg.CompletedSessions)
	assert.True(t, agg.LiveSession)
}

// A session spanning midnight belongs entirely to the day containing
// its clock-in.
func TestRangeTotal_SpanningSessionAttributedToClockInDay(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()
	workerID := f.addWorker(t, "Ada")

	clockIn := time.Date(2026, 3, 2, 23, 30, 0, 0, time.UTC)
	sess := testutil.NewTestSession(workerID,
		testutil.WithClockIn(clockIn),
		testutil.WithCompleted(clockIn.Add(2*time.Hour), 7200, 0),
	)
	require.NoError(t, f.sessions.Create(ctx, sess))

	day1 := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	agg1, err := f.svc.RangeTotal(ctx, workerID, day1, day2)
	require.NoError(t, err)
	assert.Equal(t, int64(7200), agg1.WorkSeconds, "all seconds land on the clock-in day")

	agg2, err := f.svc.RangeTotal(ctx, workerID, day2, day2.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(0), agg2.WorkSeconds, "never double-counted into the next day")
}

func TestRangeTotal_ActiveSessionOutsideRangeExcluded(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()
	workerID := f.addWorker(t, "Ada")

	liveIn := time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC)
	live := testutil.NewTestSession(workerID, testutil.WithClockIn(liveIn))
	require.NoError(t, f.sessions.Create(ctx, live))

	prevDay := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	agg, err := f.svc.RangeTotal(ctx, workerID, prevDay, prevDay.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(0), agg.WorkSeconds)
	assert.False(t, agg.LiveSession)
}

func TestAllWorkersRangeTotal_BreakdownAndGrandTotal(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()
	ada := f.addWorker(t, "Ada")
	ben := f.addWorker(t, "Ben")

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	in1 := day.Add(9 * time.Hour)
	require.NoError(t, f.sessions.Create(ctx, testutil.NewTestSession(ada,
		testutil.WithClockIn(in1),
		testutil.WithCompleted(in1.Add(time.Hour), 3300, 300),
	)))

	in2 := day.Add(10 * time.Hour)
	require.NoError(t, f.sessions.Create(ctx, testutil.NewTestSession(ben,
		testutil.WithClockIn(in2),
		testutil.WithCompleted(in2.Add(time.Hour), 3600, 0),
	)))

	report, err := f.svc.AllWorkersRangeTotal(ctx, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, report.Workers, 2)

	byWorker := map[string]int64{}
	for _, agg := range report.Workers {
		byWorker[agg.WorkerID] = agg.WorkSeconds
	}
	assert.Equal(t, int64(3300), byWorker[ada])
	assert.Equal(t, int64(3600), byWorker[ben])

	assert.Equal(t, int64(6900), report.Total.WorkSeconds)
	assert.Equal(t, int64(300), report.Total.BreakSeconds)
	assert.Equal(t, 2, report.Total.CompletedSessions)
}

func TestAllWorkersRangeTotal_IncludesLiveSessions(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()
	ada := f.addWorker(t, "Ada")

	liveIn := time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC)
	require.NoError(t, f.sessions.Create(ctx, testutil.NewTestSession(ada, testutil.WithClockIn(liveIn))))

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	report, err := f.svc.AllWorkersRangeTotal(ctx, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, report.Workers, 1)
	assert.Equal(t, int64(3600), report.Workers[0].WorkSeconds, "one live hour at the query's now")
	assert.True(t, report.Total.LiveSession)
}

func TestAllWorkersRangeTotal_EmptyRange(t *testing.T) {
	f := newReportFixture(t)

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	report, err := f.svc.AllWorkersRangeTotal(context.Background(), day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Empty(t, report.Workers)
	assert.Equal(t, int64(0), report.Total.WorkSeconds)
}
