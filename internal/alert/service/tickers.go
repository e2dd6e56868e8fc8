package service

import (
	"bufio"
	"os"
	"strings"

	"golang-investment-alert/pkg/logger"
)

// DefaultTickers is used when the ticker file is missing or empty.
var DefaultTickers = []string{"MSFT", "AAPL", "NVDA"}

// LoadTickers reads one ticker per line from the given file, normalized
// to uppercase and optionally truncated to limit. A missing, unreadable
// or empty file falls back to DefaultTickers.
func LoadTickers(path string, limit int, log *logger.Logger) []string {
	file, err := os.Open(path)
	if err != nil {
		log.Warn("Failed to open tickers file, using defaults",
			logger.ErrorField(err),
			logger.StringField("path", path),
		)
		return append([]string(nil), DefaultTickers...)
	}
	defer file.Close()

	var tickers []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		tickers = append(tickers, strings.ToUpper(line))
	}
	if err := scanner.Err(); err != nil {
		log.Warn("Failed to read tickers file, using defaults",
			logger.ErrorField(err),
			logger.StringField("path", path),
		)
		return append([]string(nil), DefaultTickers...)
	}

	if len(tickers) == 0 {
		return append([]string(nil), DefaultTickers...)
	}
	if limit > 0 && len(tickers) > limit {
		tickers = tickers[:limit]
	}
	return tickers
}
