package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"release-sync/core/scheduler"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// scheduleCmd runs updates periodically.
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Update all products on a cron schedule",
	Long: `Runs the update of every product on the configured cron spec
(SCHEDULE_SPEC, default every six hours) until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(nil)
		if err != nil {
			return err
		}

		rt, err := setup(cfg, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer rt.close()

		s, err := scheduler.New(cfg.Schedule, rt.logger)
		if err != nil {
			return err
		}
		err = s.Add(cfg.Schedule.Spec, "update", func(ctx context.Context) error {
			_, err := rt.updater.UpdateAll(ctx, nil)
			return err
		})
		if err != nil {
			return err
		}

		s.Start()
		rt.logger.Info("Scheduler started", zap.Times("next", s.Next()))

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()

		rt.logger.Info("Stopping scheduler...")
		stopCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		return s.Stop(stopCtx)
	},
}

func init() {
	RootCmd.AddCommand(scheduleCmd)
}
