package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBreakCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "break",
		Short: "Start and end breaks",
	}

	cmd.AddCommand(
		newBreakStartCmd(app),
		newBreakEndCmd(app),
	)

	return cmd
}

func newBreakStartCmd(app *App) *cobra.Command {
	var workerID string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Pause the clock on the active session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			sess, err := app.Timeclock.GetActiveSession(ctx, workerID)
			if err != nil {
				return err
			}
			if sess == nil {
				return fmt.Errorf("worker %s is not clocked in", workerID)
			}

			brk, err := app.Timeclock.StartBreak(ctx, sess.ID)
			if err != nil {
				return err
			}
			fmt.Printf("Break started at %s\n", brk.Start.Local().Format("15:04:05"))
			return nil
		},
	}

	cmd.Flags().StringVar(&workerID, "worker", "", "Worker ID")
	_ = cmd.MarkFlagRequired("worker")

	return cmd
}

func newBreakEndCmd(app *App) *cobra.Command {
	var workerID string

	cmd := &cobra.Command{
		Use:   "end",
		Short: "Resume the clock on the active session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			sess, err := app.Timeclock.GetActiveSession(ctx, workerID)
			if err != nil {
				return err
			}
			if sess == nil {
				return fmt.Errorf("worker %s is not clocked in", workerID)
			}
			open := sess.OpenBreak()
			if open == nil {
				return fmt.Errorf("worker %s has no open break", workerID)
			}

			dur, err := app.Timeclock.EndBreak(ctx, open.ID)
			if err != nil {
				return err
			}
			fmt.Printf("Break ended after %s\n", formatSeconds(dur))
			return nil
		},
	}

	cmd.Flags().StringVar(&workerID, "worker", "", "Worker ID")
	_ = cmd.MarkFlagRequired("worker")

	return cmd
}
