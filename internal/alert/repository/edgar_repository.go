package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang-investment-alert/internal/alert/config"
	"golang-investment-alert/internal/entity"
	"golang-investment-alert/pkg/logger"

	"github.com/PuerkitoBio/goquery"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const (
	formTypeHoldings      = "13F-HR"
	formTypeInsiderTrades = "form4"

	defaultEdgarTimeout   = 15 * time.Second
	defaultEdgarUserAgent = "Mozilla/5.0 (compatible; InvestmentAlert/1.0)"
)

// EdgarRepository scrapes the SEC EDGAR current-filings listings. Both
// listings share the same table layout, so one parameterized routine
// serves 13F-HR and Form 4.
type EdgarRepository interface {
	GetRecentFilings(ctx context.Context, count int) ([]entity.FilingRecord, error)
	GetRecentInsiderTrades(ctx context.Context, count int) ([]entity.TradeRecord, error)
}

type edgarRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
	listingCache   *cache.Cache
}

// NewEdgarRepository creates a new EdgarRepository. Listings are cached
// for a few minutes so a multi-ticker batch scrapes each one once.
func NewEdgarRepository(cfg *config.Config, log *logger.Logger) EdgarRepository {
	maxPerMinute := cfg.Edgar.MaxRequestPerMinute
	if maxPerMinute <= 0 {
		maxPerMinute = defaultMaxRequestsPerMinute
	}
	secondsPerRequest := time.Minute / time.Duration(maxPerMinute)

	timeout := cfg.Edgar.Timeout
	if timeout <= 0 {
		timeout = defaultEdgarTimeout
	}

	return &edgarRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
		listingCache:   cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (r *edgarRepository) GetRecentFilings(ctx context.Context, count int) ([]entity.FilingRecord, error) {
	rows, err := r.getListing(ctx, formTypeHoldings, count)
	if err != nil {
		return nil, err
	}

	filings := make([]entity.FilingRecord, 0, len(rows))
	for _, row := range rows {
		filings = append(filings, entity.FilingRecord{
			Date:    row.date,
			Company: row.name,
			Link:    row.link,
		})
	}
	return filings, nil
}

func (r *edgarRepository) GetRecentInsiderTrades(ctx context.Context, count int) ([]entity.TradeRecord, error) {
	rows, err := r.getListing(ctx, formTypeInsiderTrades, count)
	if err != nil {
		return nil, err
	}

	trades := make([]entity.TradeRecord, 0, len(rows))
	for _, row := range rows {
		trades = append(trades, entity.TradeRecord{
			Date:  row.date,
			Filer: row.name,
			Link:  row.link,
		})
	}
	return trades, nil
}

// listingRow is one parsed row of a current-filings table.
type listingRow struct {
	date string
	name string
	link string
}

func (r *edgarRepository) getListing(ctx context.Context, formType string, count int) ([]listingRow, error) {
	cacheKey := fmt.Sprintf("%s:%d", formType, count)
	if cached, found := r.listingCache.Get(cacheKey); found {
		return cached.([]listingRow), nil
	}

	listingURL := fmt.Sprintf("%s/cgi-bin/browse-edgar?action=getcurrent&type=%s&count=%d",
		r.cfg.Edgar.BaseURL, url.QueryEscape(formType), count)

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listingURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create listing request: %w", err)
	}
	userAgent := r.cfg.Edgar.UserAgent
	if userAgent == "" {
		userAgent = defaultEdgarUserAgent
	}
	req.Header.Set("User-Agent", userAgent)

	r.log.DebugContext(ctx, "Fetching EDGAR listing",
		logger.StringField("form_type", formType),
		logger.StringField("url", listingURL),
	)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch EDGAR listing: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("EDGAR returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse EDGAR listing: %w", err)
	}

	rows := r.parseListing(doc)
	r.listingCache.SetDefault(cacheKey, rows)
	return rows, nil
}

// parseListing walks every table row after the header. Rows with fewer
// than 5 cells are skipped; the name cell's link, when present, is
// resolved against the site origin.
func (r *edgarRepository) parseListing(doc *goquery.Document) []listingRow {
	var rows []listingRow
	doc.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if i == 0 {
			return
		}
		cols := tr.Find("td")
		if cols.Length() < 5 {
			return
		}

		nameCell := cols.Eq(1)
		row := listingRow{
			date: strings.TrimSpace(cols.Eq(3).Text()),
			name: strings.TrimSpace(nameCell.Text()),
		}
		if href, found := nameCell.Find("a").First().Attr("href"); found {
			row.link = r.cfg.Edgar.BaseURL + href
		}
		rows = append(rows, row)
	})
	return rows
}
