package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nomasarriendo/landing"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the landing page",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, siteConfig(viper.GetViper()), logger)
	},
}

func serve(ctx context.Context, cfg landing.SiteConfig, log *zap.Logger) error {
	app := landing.New(cfg, landing.DefaultViews(), landing.WithLogger(log))
	defer app.Close()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(app.Start)
	g.Go(func() error {
		refreshOn(ctx, hup, app.Content, log)
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

type invalidator interface {
	Invalidate()
}

// refreshOn drops cached content every time a signal arrives, so edits made
// in WordPress show up before the revalidation window ends.
func refreshOn(ctx context.Context, signals <-chan os.Signal, src landing.ContentSource, log *zap.Logger) {
	cache, ok := src.(invalidator)
	if !ok {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-signals:
			cache.Invalidate()
			log.Info("Content cache cleared")
		}
	}
}
