package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockledger/internal/config"
	"github.com/mamadbah2/stockledger/internal/domain/models"
)

const jobTimeout = 2 * time.Minute

// ReportGenerator produces the daily stock summary.
type ReportGenerator interface {
	GenerateDailyReport(ctx context.Context) (string, error)
}

// StockWatcher exposes the current reorder state.
type StockWatcher interface {
	Snapshot(ctx context.Context) models.StockSnapshot
}

// Notifier delivers messages to the stock manager.
type Notifier interface {
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
	NotifyReorder(ctx context.Context, snapshot models.StockSnapshot) error
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	reports  ReportGenerator
	watcher  StockWatcher
	notifier Notifier
	cfg      config.Config
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance. notifier may be nil, in
// which case reports are still generated but nothing is sent.
func NewScheduler(cfg config.Config, reports ReportGenerator, watcher StockWatcher, notifier Notifier, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Reporting.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", cfg.Reporting.Timezone, err)
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		reports:  reports,
		watcher:  watcher,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// Start registers the jobs and starts the cron runner.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler",
		zap.String("report_schedule", s.cfg.Reporting.CronSchedule),
		zap.String("reorder_schedule", s.cfg.Reporting.ReorderCheckSchedule))

	if _, err := s.cron.AddFunc(s.cfg.Reporting.CronSchedule, s.sendDailyReport); err != nil {
		return fmt.Errorf("schedule daily report: %w", err)
	}

	if _, err := s.cron.AddFunc(s.cfg.Reporting.ReorderCheckSchedule, s.checkReorder); err != nil {
		return fmt.Errorf("schedule reorder check: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) sendDailyReport() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.runDailyReport(ctx); err != nil {
		s.logger.Error("daily report failed", zap.Error(err))
	}
}

func (s *Scheduler) runDailyReport(ctx context.Context) error {
	s.logger.Info("generating daily report")

	summary, err := s.reports.GenerateDailyReport(ctx)
	if err != nil {
		return fmt.Errorf("generate daily report: %w", err)
	}

	if s.notifier == nil {
		return nil
	}

	req := models.OutboundMessageRequest{
		To:      s.cfg.WhatsApp.ManagerID,
		Message: summary,
	}
	if err := s.notifier.SendOutbound(ctx, req); err != nil {
		return fmt.Errorf("send daily report: %w", err)
	}

	s.logger.Info("daily report sent successfully")
	return nil
}

func (s *Scheduler) checkReorder() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.runReorderCheck(ctx); err != nil {
		s.logger.Error("reorder check failed", zap.Error(err))
	}
}

// runReorderCheck repeats the reorder alert while stock stays at or below
// the threshold.
func (s *Scheduler) runReorderCheck(ctx context.Context) error {
	snapshot := s.watcher.Snapshot(ctx)
	if !snapshot.ReorderNeeded {
		s.logger.Debug("reorder not needed", zap.Int64("stock", snapshot.Stock))
		return nil
	}

	s.logger.Info("reorder still needed", zap.Int64("stock", snapshot.Stock), zap.Int64("threshold", snapshot.ReorderThreshold))
	if s.notifier == nil {
		return nil
	}
	return s.notifier.NotifyReorder(ctx, snapshot)
}
