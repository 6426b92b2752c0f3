package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"StockPulse/internal/model"
	"StockPulse/internal/notifier"
	"StockPulse/internal/recorder"
)

// DashboardBuilder is the part of dashboard.Builder the scheduler needs.
type DashboardBuilder interface {
	Build(ctx context.Context, symbol string) (*model.Dashboard, error)
}

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron     *cron.Cron
	Builder  DashboardBuilder
	Notifier notifier.Notifier
	Recorder recorder.Recorder
	Symbols  []string
	Logger   *zap.Logger
	Ctx      context.Context

	// background tracks refreshes started outside cron so Stop can wait for them.
	background sync.WaitGroup
}

// NewScheduler creates a new Scheduler. Cron specs carry a seconds field.
func NewScheduler(ctx context.Context, b DashboardBuilder, n notifier.Notifier, rec recorder.Recorder, symbols []string, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Builder:  b,
		Notifier: n,
		Recorder: rec,
		Symbols:  symbols,
		Logger:   logger,
		Ctx:      ctx,
	}
}

// RegisterAll registers the periodic refresh of every watched symbol.
func (s *Scheduler) RegisterAll(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Logger.Info("scheduler started", zap.Strings("symbols", s.Symbols))
}

// Stop stops the cron scheduler and waits for running jobs, including
// refreshes started with RunRefreshAsync.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.background.Wait()
	s.Logger.Info("scheduler stopped")
}

// RunRefreshNow executes the refresh task immediately.
func (s *Scheduler) RunRefreshNow() {
	s.refreshTask()
}

// RunRefreshAsync starts the refresh task in the background. Stop waits for it.
func (s *Scheduler) RunRefreshAsync() {
	s.background.Add(1)
	go func() {
		defer s.background.Done()
		s.refreshTask()
	}()
}

func (s *Scheduler) refreshTask() {
	s.Logger.Info("running refresh task", zap.Int("symbols", len(s.Symbols)))
	for _, sym := range s.Symbols {
		if s.Ctx.Err() != nil {
			return
		}
		if err := s.Refresh(s.Ctx, sym); err != nil {
			s.Logger.Error("refresh failed", zap.String("symbol", sym), zap.Error(err))
			s.trySend(fmt.Sprintf("❌ %s refresh failed: %v", sym, err))
		}
	}
}

// Refresh builds, records and reports the dashboard for one symbol.
func (s *Scheduler) Refresh(ctx context.Context, symbol string) error {
	d, err := s.Builder.Build(ctx, symbol)
	if err != nil {
		return err
	}
	if _, err := s.Recorder.RecordDashboard(ctx, d); err != nil {
		s.Logger.Error("record dashboard", zap.String("symbol", d.Symbol), zap.Error(err))
	}
	s.trySend(notifier.FormatDashboard(d))
	return nil
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}
	// "/outlook@MyBot AAPL" is how Telegram addresses commands in groups.
	name, _, _ := strings.Cut(strings.ToLower(fields[0]), "@")

	var format func(*model.Dashboard) string
	switch name {
	case "/outlook":
		format = notifier.FormatOutlook
	case "/summary":
		format = notifier.FormatSummary
	case "/news":
		format = notifier.FormatHeadlines
	case "/report":
		format = notifier.FormatDashboard
	default:
		return helpText
	}
	if len(fields) < 2 {
		return fmt.Sprintf("Usage: %s SYMBOL", name)
	}

	d, err := s.Builder.Build(ctx, fields[1])
	if err != nil {
		s.Logger.Warn("command failed", zap.String("command", name), zap.Error(err))
		return fmt.Sprintf("❌ %s: %v", name, err)
	}
	return format(d)
}

const helpText = "Available commands:\n" +
	"• /outlook SYMBOL\n" +
	"• /summary SYMBOL\n" +
	"• /news SYMBOL\n" +
	"• /report SYMBOL"

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		s.Logger.Error("send notification", zap.Error(err))
	}
}
