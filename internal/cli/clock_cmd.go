package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newClockCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clock",
		Short: "Clock in and out",
	}

	cmd.AddCommand(
		newClockInCmd(app),
		newClockOutCmd(app),
	)

	return cmd
}

func newClockInCmd(app *App) *cobra.Command {
	var workerID string

	cmd := &cobra.Command{
		Use:   "in",
		Short: "Clock in (waits on the monitoring handshake)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := resolveWorker(ctx, app, workerID)
			if err != nil {
				return err
			}

			sess, err := app.Timeclock.ClockIn(ctx, id)
			if err != nil {
				return err
			}
			fmt.Printf("Clocked in at %s (session %s)\n", sess.ClockIn.Local().Format("15:04:05"), sess.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&workerID, "worker", "", "Worker ID")

	return cmd
}

func newClockOutCmd(app *App) *cobra.Command {
	var workerID string

	cmd := &cobra.Command{
		Use:   "out",
		Short: "Clock out of the active session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			sess, err := app.Timeclock.GetActiveSession(ctx, workerID)
			if err != nil {
				return err
			}
			if sess == nil {
				return fmt.Errorf("worker %s is not clocked in", workerID)
			}

			work, brk, err := app.Timeclock.ClockOut(ctx, sess.ID)
			if err != nil {
				return err
			}
			fmt.Printf("Clocked out. Worked %s, breaks %s\n", formatSeconds(work), formatSeconds(brk))
			return nil
		},
	}

	cmd.Flags().StringVar(&workerID, "worker", "", "Worker ID")
	_ = cmd.MarkFlagRequired("worker")

	return cmd
}

// resolveWorker returns the given worker id, or prompts for one when
// the terminal is interactive and no flag was passed.
func resolveWorker(ctx context.Context, app *App, workerID string) (string, error) {
	if workerID != "" {
		return workerID, nil
	}
	if app.IsInteractive == nil || !app.IsInteractive() {
		return "", fmt.Errorf("--worker is required")
	}
	return pickWorker(ctx, app)
}
