package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/stockledger/internal/config"
	"github.com/mamadbah2/stockledger/internal/domain/models"
)

type stubReports struct {
	summary string
	err     error
}

func (s stubReports) GenerateDailyReport(context.Context) (string, error) {
	return s.summary, s.err
}

type stubWatcher models.StockSnapshot

func (w stubWatcher) Snapshot(context.Context) models.StockSnapshot {
	return models.StockSnapshot(w)
}

type recordingNotifier struct {
	outbound []models.OutboundMessageRequest
	reorders []models.StockSnapshot
}

func (n *recordingNotifier) SendOutbound(_ context.Context, req models.OutboundMessageRequest) error {
	n.outbound = append(n.outbound, req)
	return nil
}

func (n *recordingNotifier) NotifyReorder(_ context.Context, s models.StockSnapshot) error {
	n.reorders = append(n.reorders, s)
	return nil
}

func testConfig() config.Config {
	return config.Config{
		WhatsApp: config.WhatsAppConfig{ManagerID: "224999"},
		Reporting: config.ReportingConfig{
			CronSchedule:         "0 20 * * *",
			ReorderCheckSchedule: "0 * * * *",
			Timezone:             "UTC",
		},
	}
}

func TestNewScheduler_InvalidTimezone(t *testing.T) {
	cfg := testConfig()
	cfg.Reporting.Timezone = "Mars/Olympus"

	_, err := NewScheduler(cfg, stubReports{}, stubWatcher{}, nil, nil)

	assert.Error(t, err)
}

func TestStart_InvalidSchedule(t *testing.T) {
	cfg := testConfig()
	cfg.Reporting.CronSchedule = "every evening"
	s, err := NewScheduler(cfg, stubReports{}, stubWatcher{}, nil, nil)
	require.NoError(t, err)

	assert.Error(t, s.Start())
}

func TestStartStop(t *testing.T) {
	s, err := NewScheduler(testConfig(), stubReports{}, stubWatcher{}, nil, nil)
	require.NoError(t, err)

	require.NoError(t, s.Start())
	assert.Len(t, s.cron.Entries(), 2)
	s.Stop()
}

func TestRunDailyReport_SendsSummaryToManager(t *testing.T) {
	n := &recordingNotifier{}
	s, err := NewScheduler(testConfig(), stubReports{summary: "Stock report"}, stubWatcher{}, n, nil)
	require.NoError(t, err)

	require.NoError(t, s.runDailyReport(context.Background()))

	require.Len(t, n.outbound, 1)
	assert.Equal(t, models.OutboundMessageRequest{To: "224999", Message: "Stock report"}, n.outbound[0])
}

func TestRunDailyReport_GenerationError(t *testing.T) {
	n := &recordingNotifier{}
	s, err := NewScheduler(testConfig(), stubReports{err: errors.New("mongo down")}, stubWatcher{}, n, nil)
	require.NoError(t, err)

	assert.Error(t, s.runDailyReport(context.Background()))
	assert.Empty(t, n.outbound)
}

func TestRunReorderCheck(t *testing.T) {
	n := &recordingNotifier{}
	s, err := NewScheduler(testConfig(), stubReports{}, stubWatcher{Stock: 50, ReorderThreshold: 10}, n, nil)
	require.NoError(t, err)

	require.NoError(t, s.runReorderCheck(context.Background()))
	assert.Empty(t, n.reorders)

	s.watcher = stubWatcher{Stock: 5, ReorderThreshold: 10, ReorderNeeded: true}
	require.NoError(t, s.runReorderCheck(context.Background()))
	require.Len(t, n.reorders, 1)
	assert.Equal(t, int64(5), n.reorders[0].Stock)
}
