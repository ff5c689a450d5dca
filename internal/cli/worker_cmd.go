package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newWorkerCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Manage workers",
	}

	cmd.AddCommand(
		newWorkerAddCmd(app),
		newWorkerListCmd(app),
	)

	return cmd
}

func newWorkerAddCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a worker",
		RunE: func(cmd *cobra.Command, args []string) error {
			worker, err := app.Workers.Register(cmd.Context(), name)
			if err != nil {
				return err
			}
			fmt.Printf("Registered worker %s (%s)\n", worker.DisplayName, worker.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Worker display name")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newWorkerListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List workers",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			workers, err := app.Workers.List(ctx)
			if err != nil {
				return err
			}
			if len(workers) == 0 {
				fmt.Println("No workers registered.")
				return nil
			}
			for _, w := range workers {
				status := "-"
				if sess, err := app.Timeclock.GetActiveSession(ctx, w.ID); err == nil && sess != nil {
					if sess.OpenBreak() != nil {
						status = "on break"
					} else {
						status = "working"
					}
				}
				fmt.Printf("%s  %-20s %s\n", w.ID, w.DisplayName, status)
			}
			return nil
		},
	}
}
