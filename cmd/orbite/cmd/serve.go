package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/entityscope/orbite/internal/appcontext"
	"github.com/entityscope/orbite/internal/server"
)

// NewServeCommand creates the serve command.
func NewServeCommand(app appcontext.Interface) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:     "serve",
		GroupID: groupProjection,
		Short:   "Serve the dossier over HTTP",
		Long: `Serve starts the dossier API server: REST endpoints for every
dossier operation, the live SVG diagram and JSON-LD projections, and a
WebSocket channel that announces each dossier revision to connected
pages.`,
		Args: cobra.NoArgs,
		Example: `  orbite serve                       # Listen on localhost:8787
  orbite serve --addr 0.0.0.0:8080   # Custom listen address`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dossier, err := app.Dossier()
			if err != nil {
				return err
			}

			cfg := server.DefaultConfig()
			if addr != "" {
				cfg.Addr = addr
			} else if app.ServeAddr() != "" {
				cfg.Addr = app.ServeAddr()
			}

			// Handlers mutate the shared dossier without saving; persist
			// each revision here so the state file tracks the API.
			dossier.OnUpdated(func(uint64) {
				if err := dossier.Save(); err != nil {
					app.Logger().Error().Err(err).Msg("failed to save dossier state")
				}
			})

			srv := server.New(dossier, app.Logger(), cfg)
			srv.Start(cmd.Context())

			httpServer := srv.HTTPServer()

			// Serve until the signal context is cancelled, then drain.
			errCh := make(chan error, 1)
			go func() {
				errCh <- httpServer.ListenAndServe()
			}()

			app.Logger().Info().Str("addr", cfg.Addr).Msg("dossier server listening")
			progressf(app, "serving dossier on http://%s", cfg.Addr)

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-cmd.Context().Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return httpServer.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default localhost:8787)")

	return cmd
}
