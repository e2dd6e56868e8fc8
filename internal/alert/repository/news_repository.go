package repository

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang-investment-alert/internal/alert/config"
	"golang-investment-alert/internal/entity"
	"golang-investment-alert/pkg/logger"

	"github.com/mmcdole/gofeed"
)

// NewsRepository fetches the top news items for a search query from the
// Google News RSS feed.
type NewsRepository interface {
	GetTopNews(ctx context.Context, query string, maxItems int) ([]entity.NewsItem, error)
}

type newsRepository struct {
	cfg        *config.Config
	log        *logger.Logger
	feedParser *gofeed.Parser
}

// NewNewsRepository creates a new NewsRepository.
func NewNewsRepository(cfg *config.Config, log *logger.Logger) NewsRepository {
	return &newsRepository{
		cfg:        cfg,
		log:        log,
		feedParser: gofeed.NewParser(),
	}
}

func (r *newsRepository) GetTopNews(ctx context.Context, query string, maxItems int) ([]entity.NewsItem, error) {
	language := r.cfg.News.Language
	if language == "" {
		language = "en-US"
	}
	country := r.cfg.News.Country
	if country == "" {
		country = "US"
	}
	// ceid pairs the country with the short language code, e.g. US:en.
	ceid := fmt.Sprintf("%s:%s", country, strings.SplitN(language, "-", 2)[0])

	feedURL := fmt.Sprintf("%s/rss/search?q=%s&hl=%s&gl=%s&ceid=%s",
		r.cfg.News.BaseURL, url.QueryEscape(query), language, country, ceid)

	r.log.DebugContext(ctx, "Fetching news feed", logger.StringField("url", feedURL))

	feed, err := r.feedParser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse news feed: %w", err)
	}

	items := make([]entity.NewsItem, 0, maxItems)
	for _, item := range feed.Items {
		if len(items) >= maxItems {
			break
		}
		items = append(items, entity.NewsItem{
			Title:     item.Title,
			Link:      item.Link,
			Published: item.Published,
		})
	}
	return items, nil
}
