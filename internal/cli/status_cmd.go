package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	var workerID string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the live state of a worker's session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			sess, err := app.Timeclock.GetActiveSession(ctx, workerID)
			if err != nil {
				return err
			}
			if sess == nil {
				fmt.Printf("Worker %s is not clocked in\n", workerID)
				return nil
			}

			now := app.Clock.Now()
			state := "working"
			if sess.OpenBreak() != nil {
				state = "on break"
			}
			fmt.Printf("Session %s (%s)\n", sess.ID, state)
			fmt.Printf("  Clocked in: %s\n", sess.ClockIn.Local().Format("2006-01-02 15:04:05"))
			fmt.Printf("  Worked:     %s\n", formatSeconds(sess.WorkSeconds(now)))
			fmt.Printf("  Breaks:     %s\n", formatSeconds(sess.BreakSeconds(now)))
			return nil
		},
	}

	cmd.Flags().StringVar(&workerID, "worker", "", "Worker ID")
	_ = cmd.MarkFlagRequired("worker")

	return cmd
}
