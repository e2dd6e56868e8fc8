package entity

// PriceSnapshot holds the last two daily closes for a ticker and the
// percent change between them.
type PriceSnapshot struct {
	Ticker         string  `json:"ticker"`
	TodayClose     float64 `json:"today_close"`
	YesterdayClose float64 `json:"yesterday_close"`
	ChangePct      float64 `json:"change_pct"`
}

// FilingRecord is one row of the EDGAR 13F-HR current-filings listing.
type FilingRecord struct {
	Date    string `json:"date"`
	Company string `json:"company"`
	Link    string `json:"link"`
}

// NewsItem is one entry of a news search feed. Published is empty when
// the feed omits it.
type NewsItem struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Published string `json:"published"`
}

// TradeRecord is one row of the EDGAR Form 4 current-filings listing.
type TradeRecord struct {
	Date  string `json:"date"`
	Filer string `json:"filer"`
	Link  string `json:"link"`
}

// Report is the outcome of processing a single ticker. Degraded lists
// the sources whose fetch failed, as opposed to returning no data.
type Report struct {
	Ticker   string         `json:"ticker"`
	Price    *PriceSnapshot `json:"price,omitempty"`
	Filings  []FilingRecord `json:"filings"`
	News     []NewsItem     `json:"news"`
	Trades   []TradeRecord  `json:"trades"`
	Score    int            `json:"score"`
	Degraded []string       `json:"degraded,omitempty"`
}
