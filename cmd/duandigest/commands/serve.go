package commands

import (
	"log/slog"
	"time"

	"duandigest/internal/chrono"
	"duandigest/lib/export"
	"duandigest/lib/serviceutil"
	"duandigest/lib/telemetry"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Runs the digest on the configured cron schedule until interrupted.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(configPath)
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}
		loc, err := cfg.location()
		if err != nil {
			serviceutil.Fatal("failed to load schedule timezone", err)
		}
		svc, err := cfg.newService()
		if err != nil {
			serviceutil.Fatal("failed to initialize digest service", err)
		}

		ctx := serviceutil.SignalContext(cmd.Context())
		telemetry.InstrumentPerfStats(ctx)

		format := export.ParseFormat(cfg.Export.Format)
		scheduler := chrono.NewStandardCron(loc)
		err = scheduler.Cron(cfg.Schedule.Cron, func() {
			// the next tick starts a fresh run
			result, err := svc.Run(ctx, cfg.Source.PageCount, format)
			if err != nil {
				slog.Warn("scheduled digest failed", "run_id", result.RunID, "next", scheduler.Next().Format(time.RFC3339))
				return
			}
			slog.Info("scheduled digest complete", "run_id", result.RunID, "entries", result.Entries)
		})
		if err != nil {
			serviceutil.Fatal("invalid schedule", err)
		}

		scheduler.Start()
		slog.Info(
			"digest scheduled",
			"cron", cfg.Schedule.Cron,
			"timezone", loc.String(),
			"next", scheduler.Next().Format(time.RFC3339),
		)

		<-ctx.Done()
		slog.Info("waiting for running digest to finish")
		stopped := scheduler.Stop()
		select {
		case <-stopped.Done():
		case <-time.After(time.Minute):
			slog.Warn("gave up waiting for running digest")
		}
	},
}
