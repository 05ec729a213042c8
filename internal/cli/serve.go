package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"deathreport/internal/api"
	"deathreport/internal/engine"
)

func newServeCmd(a *app) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the report over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("listen") {
				a.cfg.ListenAddr = listen
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default listen_addr from config)")
	return cmd
}

// serve starts answering immediately with 503 and loads the dataset in the
// background. A load failure stops the server and is returned.
func (a *app) serve(ctx context.Context) error {
	h := api.NewHandler(nil, a.settings(), a.chartSize())
	e := api.NewServer(h, api.ServerOptions{
		LogLevel:  a.cfg.LogLevel,
		CORS:      a.cfg.CORS,
		RateLimit: a.cfg.RateLimit,
	})

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Println("BACKGROUND: Loading dataset...")
		t0 := time.Now()
		t, err := engine.NewLoader(a.cfg.DataPath).Load()
		if err != nil {
			return err
		}
		h.SetData(t)
		log.Printf("BACKGROUND: Load complete in %v. API is fully ready.", time.Since(t0))
		return nil
	})

	g.Go(func() error {
		log.Printf("Server ready on %s (data loading in background...)", a.cfg.ListenAddr)
		if err := e.Start(a.cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
