package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newWatchCmd(app *App) *cobra.Command {
	var workerID string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Live ticking view of a worker's session",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := tea.NewProgram(newWatchModel(app, workerID))
			_, err := p.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&workerID, "worker", "", "Worker ID")
	_ = cmd.MarkFlagRequired("worker")

	return cmd
}
