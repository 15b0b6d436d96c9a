package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yourusername/clever-forecast/internal/datasource"
	"github.com/yourusername/clever-forecast/internal/metrics"
	"github.com/yourusername/clever-forecast/internal/scheduler"
	"github.com/yourusername/clever-forecast/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP analysis API and the optional scheduler",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		metrics.InitRegistry()

		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		pipeline, err := buildPipeline(ctx, store)
		if err != nil {
			return err
		}

		var opts []server.Option
		opts = append(opts, server.WithSettings(store))

		var sched *scheduler.Scheduler
		if cfg.Scheduler.Enabled {
			collector, err := datasource.NewFactory(cfg, log).NewCollector()
			if err != nil {
				log.WithError(err).Warn("Scheduler disabled: no usable data sources")
			} else {
				sched = scheduler.NewScheduler(collector, pipeline, log)
				if err := sched.ScheduleAnalysis(cfg.Scheduler.AnalysisSchedule); err != nil {
					return err
				}
				if err := sched.Start(); err != nil {
					return err
				}
				defer sched.Stop()
				opts = append(opts, server.WithReports(sched))

				// prime the first report instead of waiting for the schedule
				go func() {
					if _, err := sched.RunOnce(ctx); err != nil && ctx.Err() == nil {
						log.WithError(err).Warn("Initial analysis pass failed")
					}
				}()
			}
		}

		srv := server.NewServer(server.Config{
			ServiceName:    cfg.App.Name,
			Version:        Version,
			Commit:         GitCommit,
			Host:           cfg.Server.Host,
			Port:           cfg.Server.Port,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			MetricsPath:    cfg.Metrics.Path,
			ReadTimeout:    cfg.Server.ReadTimeout,
			WriteTimeout:   cfg.Server.WriteTimeout,
			Logger:         log,
		}, pipeline, opts...)

		if err := srv.Start(ctx); err != nil {
			return err
		}

		<-ctx.Done()
		log.Info("Shutting down")
		return srv.Shutdown()
	},
}
