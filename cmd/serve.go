package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brogergvhs/toond/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var flagListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve rankings, search, details and panels as a JSON API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := baseOptions()
		opts.Listen = flagListen

		s, err := newSession(opts)
		if err != nil {
			return err
		}

		if !s.cfg.Debug {
			gin.SetMode(gin.ReleaseMode)
		}

		srv := &http.Server{
			Addr:              s.cfg.Listen,
			Handler:           server.NewRouter(s.wt, s.log),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			s.log.Infof("Listening on http://localhost%s\n", s.cfg.Listen)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}

		s.log.Infof("Shutting down...\n")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagListen, "listen", "", "address to listen on (default :3001)")

	rootCmd.AddCommand(serveCmd)
}
