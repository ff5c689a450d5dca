package cli

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/agencyops/timeclock/internal/httpapi"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			router := httpapi.NewRouter(&httpapi.Handlers{
				Timeclock: app.Timeclock,
				Reports:   app.Reports,
				Workers:   app.Workers,
				Clock:     app.Clock,
			})

			srv := &http.Server{
				Addr:         addr,
				Handler:      router,
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 15 * time.Second,
			}
			fmt.Printf("Listening on %s\n", addr)
			return srv.ListenAndServe()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", app.HTTPAddr, "Listen address")

	return cmd
}
