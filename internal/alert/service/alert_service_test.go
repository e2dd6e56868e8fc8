package service

import (
	"context"
	"errors"
	"testing"

	"golang-investment-alert/internal/alert/config"
	"golang-investment-alert/internal/alert/repository"
	"golang-investment-alert/internal/entity"
	"golang-investment-alert/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubYahooRepo struct {
	snapshot *entity.PriceSnapshot
	err      error
}

func (s *stubYahooRepo) GetPriceSnapshot(ctx context.Context, ticker string) (*entity.PriceSnapshot, error) {
	return s.snapshot, s.err
}

type stubEdgarRepo struct {
	filings    []entity.FilingRecord
	filingsErr error
	trades     []entity.TradeRecord
	tradesErr  error
}

func (s *stubEdgarRepo) GetRecentFilings(ctx context.Context, count int) ([]entity.FilingRecord, error) {
	return s.filings, s.filingsErr
}

func (s *stubEdgarRepo) GetRecentInsiderTrades(ctx context.Context, count int) ([]entity.TradeRecord, error) {
	return s.trades, s.tradesErr
}

type stubNewsRepo struct {
	items []entity.NewsItem
	err   error
}

func (s *stubNewsRepo) GetTopNews(ctx context.Context, query string, maxItems int) ([]entity.NewsItem, error) {
	return s.items, s.err
}

type recordingNotifier struct {
	messages []string
	err      error
}

func (n *recordingNotifier) SendMessage(text string) error {
	n.messages = append(n.messages, text)
	return n.err
}

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Alert.Language = "en"
	return cfg
}

func TestRunAggregatesAndScores(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := NewAlertService(
		newTestConfig(t),
		logger.NewNop(),
		&stubYahooRepo{snapshot: &entity.PriceSnapshot{Ticker: "MSFT", TodayClose: 100, YesterdayClose: 110, ChangePct: -9.09}},
		&stubEdgarRepo{
			filings: make([]entity.FilingRecord, 3),
			trades:  make([]entity.TradeRecord, 1),
		},
		&stubNewsRepo{items: make([]entity.NewsItem, 2)},
		notifier,
	)

	report, err := svc.Run(context.Background(), "msft")
	require.NoError(t, err)

	assert.Equal(t, "MSFT", report.Ticker)
	// 3 (move) + 3*2 (filings) + 2 (news) + 1*2 (trades)
	assert.Equal(t, 13, report.Score)
	assert.Empty(t, report.Degraded)

	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "Opportunity: MSFT")
	assert.Contains(t, notifier.messages[0], "Score: 13")
}

func TestRunDegradesPerSource(t *testing.T) {
	fetchErr := errors.New("upstream down")
	svc := NewAlertService(
		newTestConfig(t),
		logger.NewNop(),
		&stubYahooRepo{err: fetchErr},
		&stubEdgarRepo{filingsErr: fetchErr, tradesErr: fetchErr},
		&stubNewsRepo{err: fetchErr},
		&recordingNotifier{},
	)

	report, err := svc.Run(context.Background(), "MSFT")
	require.NoError(t, err, "fetch failures never abort the run")

	assert.Equal(t, 0, report.Score)
	assert.Nil(t, report.Price)
	assert.Equal(t, []string{"price", "13f_filings", "news", "insider_trades"}, report.Degraded)
}

func TestRunMissingPriceDataIsNotDegraded(t *testing.T) {
	svc := NewAlertService(
		newTestConfig(t),
		logger.NewNop(),
		&stubYahooRepo{err: repository.ErrInsufficientData},
		&stubEdgarRepo{},
		&stubNewsRepo{},
		&recordingNotifier{},
	)

	report, err := svc.Run(context.Background(), "MSFT")
	require.NoError(t, err)
	assert.Nil(t, report.Price)
	assert.Empty(t, report.Degraded, "fewer than two closes is absence, not failure")
}

func TestRunNotifierFailureDoesNotAbort(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("blocked by user")}
	svc := NewAlertService(
		newTestConfig(t),
		logger.NewNop(),
		&stubYahooRepo{err: repository.ErrInsufficientData},
		&stubEdgarRepo{},
		&stubNewsRepo{},
		notifier,
	)

	report, err := svc.Run(context.Background(), "MSFT")
	require.NoError(t, err)
	assert.NotNil(t, report)
	assert.Len(t, notifier.messages, 1)
}

func TestRunAllProcessesEveryTicker(t *testing.T) {
	notifier := &recordingNotifier{}
	cfg := newTestConfig(t)
	cfg.Alert.TickersFile = writeTickersFile(t, "msft\naapl\n")

	svc := NewAlertService(
		cfg,
		logger.NewNop(),
		&stubYahooRepo{err: repository.ErrInsufficientData},
		&stubEdgarRepo{filings: make([]entity.FilingRecord, 1)},
		&stubNewsRepo{},
		notifier,
	)

	reports, err := svc.RunAll(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "MSFT", reports[0].Ticker)
	assert.Equal(t, "AAPL", reports[1].Ticker)
	assert.Equal(t, 2, reports[0].Score)
	assert.Len(t, notifier.messages, 2)
}

func TestRunAllStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := newTestConfig(t)
	cfg.Alert.TickersFile = writeTickersFile(t, "msft\n")

	svc := NewAlertService(
		cfg,
		logger.NewNop(),
		&stubYahooRepo{},
		&stubEdgarRepo{},
		&stubNewsRepo{},
		&recordingNotifier{},
	)

	reports, err := svc.RunAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, reports)
}
