package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
)

// pickWorker shows a select form over the registered workers.
func pickWorker(ctx context.Context, app *App) (string, error) {
	workers, err := app.Workers.List(ctx)
	if err != nil {
		return "", err
	}
	if len(workers) == 0 {
		return "", fmt.Errorf("no workers registered; run 'timeclock worker add' first")
	}

	options := make([]huh.Option[string], 0, len(workers))
	for _, w := range workers {
		options = append(options, huh.NewOption(w.DisplayName, w.ID))
	}

	var selected string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Who is clocking in?").
				Options(options...).
				Value(&selected),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}
	return selected, nil
}
