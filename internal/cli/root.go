package cli

import (
	"github.com/agencyops/timeclock/internal/clock"
	"github.com/agencyops/timeclock/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Timeclock service.TimeclockService
	Reports   service.ReportService
	Workers   service.WorkerService
	Clock     clock.Clock

	// HTTPAddr is the listen address for the serve command.
	HTTPAddr string

	// IsInteractive reports whether stdin is a terminal; gates the
	// worker-picker form on clock in.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "timeclock" command and registers
// all subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "timeclock",
		Short: "Work session and break tracker",
	}

	root.AddCommand(
		newWorkerCmd(app),
		newClockCmd(app),
		newBreakCmd(app),
		newStatusCmd(app),
		newReportCmd(app),
		newWatchCmd(app),
		newServeCmd(app),
	)

	return root
}
