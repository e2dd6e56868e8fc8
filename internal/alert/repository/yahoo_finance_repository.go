package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang-investment-alert/internal/alert/config"
	"golang-investment-alert/internal/alert/dto"
	"golang-investment-alert/internal/entity"
	"golang-investment-alert/pkg/logger"

	"golang.org/x/time/rate"
)

// ErrInsufficientData indicates the upstream returned fewer than two
// closes, so no percent change can be computed. Callers can distinguish
// it from transport failures.
var ErrInsufficientData = errors.New("insufficient price data")

const defaultMaxRequestsPerMinute = 60

// YahooFinanceRepository fetches the two most recent daily closes for a
// ticker and computes the percent change.
type YahooFinanceRepository interface {
	GetPriceSnapshot(ctx context.Context, ticker string) (*entity.PriceSnapshot, error)
}

type yahooFinanceRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
}

// NewYahooFinanceRepository creates a new YahooFinanceRepository.
func NewYahooFinanceRepository(cfg *config.Config, log *logger.Logger) YahooFinanceRepository {
	maxPerMinute := cfg.YahooFinance.MaxRequestPerMinute
	if maxPerMinute <= 0 {
		maxPerMinute = defaultMaxRequestsPerMinute
	}
	secondsPerRequest := time.Minute / time.Duration(maxPerMinute)
	return &yahooFinanceRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}
}

func (r *yahooFinanceRepository) GetPriceSnapshot(ctx context.Context, ticker string) (*entity.PriceSnapshot, error) {
	symbol := strings.ToUpper(ticker)
	chartURL := fmt.Sprintf("%s/v8/finance/chart/%s?range=2d&interval=1d", r.cfg.YahooFinance.BaseURL, url.PathEscape(symbol))

	body, err := r.sendRequest(ctx, chartURL)
	if err != nil {
		return nil, err
	}

	var response dto.YahooFinanceChartResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chart response: %w", err)
	}

	if response.Chart.Error != nil {
		return nil, fmt.Errorf("chart API error: %s: %s", response.Chart.Error.Code, response.Chart.Error.Description)
	}
	if len(response.Chart.Result) == 0 || len(response.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, ErrInsufficientData
	}

	var closes []float64
	for _, c := range response.Chart.Result[0].Indicators.Quote[0].Close {
		if c != nil {
			closes = append(closes, *c)
		}
	}
	if len(closes) < 2 {
		return nil, ErrInsufficientData
	}

	todayClose := closes[len(closes)-1]
	yesterdayClose := closes[len(closes)-2]
	return &entity.PriceSnapshot{
		Ticker:         symbol,
		TodayClose:     todayClose,
		YesterdayClose: yesterdayClose,
		ChangePct:      (todayClose - yesterdayClose) / yesterdayClose * 100,
	}, nil
}

func (r *yahooFinanceRepository) sendRequest(ctx context.Context, requestURL string) ([]byte, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; InvestmentAlert/1.0)")
	req.Header.Set("Accept", "application/json, text/plain, */*")

	r.log.DebugContext(ctx, "Fetching stock chart", logger.StringField("url", requestURL))

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chart data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chart API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read chart response body: %w", err)
	}
	return body, nil
}
