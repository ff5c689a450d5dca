package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/agencyops/timeclock/internal/domain"
	"github.com/agencyops/timeclock/internal/service"
)

// dateValue is a pflag.Value for YYYY-MM-DD flags.
type dateValue struct {
	t   *time.Time
	set bool
}

var _ pflag.Value = (*dateValue)(nil)

func (d *dateValue) String() string {
	if d.t == nil || d.t.IsZero() {
		return ""
	}
	return d.t.Format("2006-01-02")
}

func (d *dateValue) Set(s string) error {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("expected YYYY-MM-DD: %w", err)
	}
	*d.t = t
	d.set = true
	return nil
}

func (d *dateValue) Type() string { return "date" }

func newReportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Work and break totals",
	}

	cmd.AddCommand(
		newReportDayCmd(app),
		newReportRangeCmd(app),
		newReportAllCmd(app),
	)

	return cmd
}

func newReportDayCmd(app *App) *cobra.Command {
	var (
		workerID string
		day      time.Time
		dayFlag  = dateValue{t: &day}
	)

	cmd := &cobra.Command{
		Use:   "day",
		Short: "Totals for a single day",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !dayFlag.set {
				day = app.Clock.Now()
			}
			agg, err := app.Reports.DailyTotal(ctx, workerID, day)
			if err != nil {
				return err
			}
			printAggregate(agg)
			return nil
		},
	}

	cmd.Flags().StringVar(&workerID, "worker", "", "Worker ID")
	_ = cmd.MarkFlagRequired("worker")
	cmd.Flags().Var(&dayFlag, "day", "Day to report (default: today)")

	return cmd
}

func newReportRangeCmd(app *App) *cobra.Command {
	var (
		workerID string
		from, to time.Time
		fromFlag = dateValue{t: &from}
		toFlag   = dateValue{t: &to}
	)

	cmd := &cobra.Command{
		Use:   "range",
		Short: "Totals over a date range (inclusive)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !fromFlag.set || !toFlag.set {
				return fmt.Errorf("--from and --to are required")
			}
			agg, err := app.Reports.RangeTotal(ctx, workerID, from, to.AddDate(0, 0, 1))
			if err != nil {
				return err
			}
			printAggregate(agg)
			return nil
		},
	}

	cmd.Flags().StringVar(&workerID, "worker", "", "Worker ID")
	_ = cmd.MarkFlagRequired("worker")
	cmd.Flags().Var(&fromFlag, "from", "Start date (YYYY-MM-DD)")
	cmd.Flags().Var(&toFlag, "to", "End date (YYYY-MM-DD)")

	return cmd
}

func newReportAllCmd(app *App) *cobra.Command {
	var (
		from, to time.Time
		fromFlag = dateValue{t: &from}
		toFlag   = dateValue{t: &to}
	)

	cmd := &cobra.Command{
		Use:   "all",
		Short: "Per-worker breakdown over a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !fromFlag.set || !toFlag.set {
				return fmt.Errorf("--from and --to are required")
			}
			report, err := app.Reports.AllWorkersRangeTotal(ctx, from, to.AddDate(0, 0, 1))
			if err != nil {
				return err
			}
			printRangeReport(report)
			return nil
		},
	}

	cmd.Flags().Var(&fromFlag, "from", "Start date (YYYY-MM-DD)")
	cmd.Flags().Var(&toFlag, "to", "End date (YYYY-MM-DD)")

	return cmd
}

func printAggregate(agg *domain.Aggregate) {
	fmt.Printf("Worked:   %s\n", formatSeconds(agg.WorkSeconds))
	fmt.Printf("Breaks:   %s\n", formatSeconds(agg.BreakSeconds))
	fmt.Printf("Sessions: %d completed", agg.CompletedSessions)
	if agg.LiveSession {
		fmt.Printf(" (plus one in progress)")
	}
	fmt.Println()
}

func printRangeReport(report *service.RangeReport) {
	for _, agg := range report.Workers {
		live := ""
		if agg.LiveSession {
			live = " *"
		}
		fmt.Printf("%-36s  worked %s  breaks %s  (%d sessions)%s\n",
			agg.WorkerID, formatSeconds(agg.WorkSeconds), formatSeconds(agg.BreakSeconds),
			agg.CompletedSessions, live)
	}
	fmt.Printf("%-36s  worked %s  breaks %s  (%d sessions)\n",
		"total", formatSeconds(report.Total.WorkSeconds), formatSeconds(report.Total.BreakSeconds),
		report.Total.CompletedSessions)
}
