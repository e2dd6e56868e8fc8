package dto

// YahooFinanceChartResponse models the v8 chart API payload. Close values
// are pointers because Yahoo returns null for gaps in the series.
type YahooFinanceChartResponse struct {
	Chart YahooFinanceChart `json:"chart"`
}

type YahooFinanceChart struct {
	Result []YahooFinanceChartResult `json:"result"`
	Error  *YahooFinanceChartError   `json:"error"`
}

type YahooFinanceChartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type YahooFinanceChartResult struct {
	Meta       YahooFinanceChartMeta  `json:"meta"`
	Timestamp  []int64                `json:"timestamp"`
	Indicators YahooFinanceIndicators `json:"indicators"`
}

type YahooFinanceChartMeta struct {
	Currency string `json:"currency"`
	Symbol   string `json:"symbol"`
}

type YahooFinanceIndicators struct {
	Quote []YahooFinanceQuote `json:"quote"`
}

type YahooFinanceQuote struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}
