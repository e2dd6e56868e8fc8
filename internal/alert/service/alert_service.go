package service

import (
	"context"
	"errors"
	"strings"

	"golang-investment-alert/internal/alert/config"
	"golang-investment-alert/internal/alert/repository"
	"golang-investment-alert/internal/entity"
	"golang-investment-alert/pkg/logger"
	"golang-investment-alert/pkg/telegram"
)

const (
	defaultFilingCount = 10
	defaultNewsCount   = 5
)

// Source names recorded in Report.Degraded when a fetch fails.
const (
	sourcePrice   = "price"
	sourceFilings = "13f_filings"
	sourceNews    = "news"
	sourceTrades  = "insider_trades"
)

// AlertService runs the fetch, score and notify batch.
type AlertService interface {
	Run(ctx context.Context, ticker string) (*entity.Report, error)
	RunAll(ctx context.Context) ([]*entity.Report, error)
}

type alertService struct {
	cfg       *config.Config
	log       *logger.Logger
	yahooRepo repository.YahooFinanceRepository
	edgarRepo repository.EdgarRepository
	newsRepo  repository.NewsRepository
	notifier  telegram.Notifier
	weights   ScoreWeights
}

// NewAlertService creates a new AlertService.
func NewAlertService(
	cfg *config.Config,
	log *logger.Logger,
	yahooRepo repository.YahooFinanceRepository,
	edgarRepo repository.EdgarRepository,
	newsRepo repository.NewsRepository,
	notifier telegram.Notifier,
) AlertService {
	return &alertService{
		cfg:       cfg,
		log:       log,
		yahooRepo: yahooRepo,
		edgarRepo: edgarRepo,
		newsRepo:  newsRepo,
		notifier:  notifier,
		weights:   WeightsFromConfig(cfg.Score),
	}
}

// RunAll processes every ticker from the configured ticker file
// sequentially. A failing ticker does not stop the batch.
func (s *alertService) RunAll(ctx context.Context) ([]*entity.Report, error) {
	tickers := LoadTickers(s.cfg.Alert.TickersFile, s.cfg.Alert.MaxTickers, s.log)

	reports := make([]*entity.Report, 0, len(tickers))
	for _, ticker := range tickers {
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		report, err := s.Run(ctx, ticker)
		if err != nil {
			s.log.Error("Failed to process ticker",
				logger.ErrorField(err),
				logger.StringField("ticker", ticker),
			)
			continue
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// Run fetches the four data sources for one ticker, scores the result
// and delivers the notification. Every fetch degrades to an empty or
// absent value on failure; failed sources are recorded in the report.
func (s *alertService) Run(ctx context.Context, ticker string) (*entity.Report, error) {
	report := &entity.Report{Ticker: strings.ToUpper(ticker)}

	price, err := s.yahooRepo.GetPriceSnapshot(ctx, ticker)
	switch {
	case err == nil:
		report.Price = price
	case errors.Is(err, repository.ErrInsufficientData):
		s.log.InfoContext(ctx, "No price data for ticker", logger.StringField("ticker", ticker))
	default:
		s.log.Error("Failed to fetch price data",
			logger.ErrorField(err),
			logger.StringField("ticker", ticker),
		)
		report.Degraded = append(report.Degraded, sourcePrice)
	}

	filings, err := s.edgarRepo.GetRecentFilings(ctx, s.filingCount())
	if err != nil {
		s.log.Error("Failed to fetch 13F filings", logger.ErrorField(err))
		report.Degraded = append(report.Degraded, sourceFilings)
	} else {
		report.Filings = filings
	}

	news, err := s.newsRepo.GetTopNews(ctx, report.Ticker, s.newsCount())
	if err != nil {
		s.log.Error("Failed to fetch news",
			logger.ErrorField(err),
			logger.StringField("ticker", ticker),
		)
		report.Degraded = append(report.Degraded, sourceNews)
	} else {
		report.News = news
	}

	trades, err := s.edgarRepo.GetRecentInsiderTrades(ctx, s.filingCount())
	if err != nil {
		s.log.Error("Failed to fetch insider trades", logger.ErrorField(err))
		report.Degraded = append(report.Degraded, sourceTrades)
	} else {
		report.Trades = trades
	}

	report.Score = ScoreOpportunity(report.Price, len(report.Filings), len(report.News), len(report.Trades), s.weights)

	message := telegram.FormatOpportunityMessage(s.cfg.Alert.Language, report)
	if err := s.notifier.SendMessage(message); err != nil {
		s.log.Error("Failed to deliver alert",
			logger.ErrorField(err),
			logger.StringField("ticker", ticker),
		)
	}

	s.log.InfoContext(ctx, "Ticker processed",
		logger.StringField("ticker", report.Ticker),
		logger.IntField("score", report.Score),
		logger.IntField("filings", len(report.Filings)),
		logger.IntField("news", len(report.News)),
		logger.IntField("trades", len(report.Trades)),
		logger.StringField("degraded", strings.Join(report.Degraded, ",")),
	)
	return report, nil
}

func (s *alertService) filingCount() int {
	if s.cfg.Alert.FilingCount > 0 {
		return s.cfg.Alert.FilingCount
	}
	return defaultFilingCount
}

func (s *alertService) newsCount() int {
	if s.cfg.Alert.NewsCount > 0 {
		return s.cfg.Alert.NewsCount
	}
	return defaultNewsCount
}
