package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"StockPulse/internal/notifier"
	"StockPulse/internal/scheduler"
)

var watchRunOnStart bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Refresh watched symbols on a schedule and answer Telegram commands",
	Long: `Refresh every symbol in schedule.symbols on schedule.refresh_cron, record
each dashboard and send the report to Telegram.

When a bot token is configured the bot also answers:
  /outlook SYMBOL, /summary SYMBOL, /news SYMBOL, /report SYMBOL`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVar(&watchRunOnStart, "run-on-start", false, "refresh all symbols immediately (env RUN_ON_START=true)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var n notifier.Notifier = &notifier.NoopNotifier{Logger: a.logger}
	var tn *notifier.TelegramNotifier
	if a.cfg.Telegram.BotToken != "" {
		tn = notifier.NewTelegramNotifier(a.cfg.Telegram.BotToken, a.cfg.Telegram.ChatID, a.cfg.Proxy, a.logger)
		n = tn
	} else {
		a.logger.Warn("telegram not configured, reports are dropped")
	}

	sched := scheduler.NewScheduler(ctx, a.builder, n, a.recorder, a.cfg.Schedule.Symbols, a.logger)
	if err := sched.RegisterAll(a.cfg.Schedule.RefreshCron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		a.logger.Info("telegram polling started")
	}

	if watchRunOnStart || os.Getenv("RUN_ON_START") == "true" {
		a.logger.Info("running refresh on start")
		sched.RunRefreshAsync()
	}

	a.logger.Info("stockpulse is watching, press Ctrl+C to stop",
		zap.String("cron", a.cfg.Schedule.RefreshCron),
		zap.Strings("symbols", a.cfg.Schedule.Symbols))
	<-ctx.Done()
	a.logger.Info("shutdown signal received, stopping...")
	return nil
}
