package telegram

import (
	"fmt"
	"strings"

	"golang-investment-alert/internal/entity"
)

// Supported message languages.
const (
	LangEnglish = "en"
	LangHebrew  = "he"
)

// FormatOpportunityMessage renders the alert message for a ticker report
// in the requested language. Unknown languages fall back to English.
func FormatOpportunityMessage(lang string, report *entity.Report) string {
	if lang == LangHebrew {
		return formatHebrew(report)
	}
	return formatEnglish(report)
}

func formatEnglish(r *entity.Report) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔔 Opportunity: %s\n", r.Ticker))
	if r.Price != nil {
		b.WriteString(fmt.Sprintf("Price: %.2f | Change: %.2f%%\n", r.Price.TodayClose, r.Price.ChangePct))
	} else {
		b.WriteString("No price data\n")
	}
	b.WriteString(fmt.Sprintf("13F: %d | News: %d | Politician trades: %d\n", len(r.Filings), len(r.News), len(r.Trades)))
	b.WriteString(fmt.Sprintf("Score: %d", r.Score))
	return b.String()
}

func formatHebrew(r *entity.Report) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔔 הזדמנות: %s\n", r.Ticker))
	if r.Price != nil {
		b.WriteString(fmt.Sprintf("מחיר: %.2f | שינוי: %.2f%%\n", r.Price.TodayClose, r.Price.ChangePct))
	} else {
		b.WriteString("אין מידע מחיר\n")
	}
	b.WriteString(fmt.Sprintf("13F: %d | חדשות: %d | רכישות פוליטיקאים: %d\n", len(r.Filings), len(r.News), len(r.Trades)))
	b.WriteString(fmt.Sprintf("ניקוד: %d", r.Score))
	return b.String()
}
