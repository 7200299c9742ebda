package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/careercompass/api/internal/api/handlers"
	"github.com/careercompass/api/internal/api/routes"
	"github.com/careercompass/api/internal/logger"
	"github.com/careercompass/api/internal/workers"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (and the job sync scheduler when JOBS_SYNC_CRON is set)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServe(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	rt, err := openRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.close()

	cfg, log := rt.cfg, rt.log
	svc := rt.services()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	deps := routes.Deps{
		Logger:            log,
		Resolver:          svc.resolver,
		CORSOrigin:        cfg.CORSOrigin,
		SyncRatePerMinute: cfg.Jobs.SyncRatePerMinute,
		Health:            handlers.NewHealthHandler(svc.lookups),
		Lookup:            handlers.NewLookupHandler(svc.lookups),
		Career:            handlers.NewCareerHandler(svc.careers),
		Analysis:          handlers.NewAnalysisHandler(svc.analysis),
		Jobs:              handlers.NewJobsHandler(svc.jobs),
		Tracking:          handlers.NewTrackingHandler(svc.tracking),
		Auth:              handlers.NewAuthHandler(svc.auth),
	}
	if rt.rdb != nil {
		deps.WS = handlers.NewWSHandler(rt.rdb, cfg.CORSOrigin)
	}
	routes.RegisterRoutes(r, deps)

	if cfg.Jobs.SyncCron != "" {
		sched := workers.NewJobSyncScheduler(svc.jobs, cfg.Jobs.SyncCron, cfg.Jobs.SyncLimit, logger.Component(log, "scheduler"))
		if err := sched.Start(ctx); err != nil {
			return err
		}
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Port).Info("career compass api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
