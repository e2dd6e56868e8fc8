package service

import (
	"math"

	"golang-investment-alert/internal/alert/config"
	"golang-investment-alert/internal/entity"
)

// ScoreWeights holds the additive weights of the opportunity score.
type ScoreWeights struct {
	PriceMove             int
	Filing                int
	News                  int
	Trade                 int
	PriceMoveThresholdPct float64
}

// DefaultScoreWeights returns the historical weights.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		PriceMove:             3,
		Filing:                2,
		News:                  1,
		Trade:                 2,
		PriceMoveThresholdPct: 5,
	}
}

// WeightsFromConfig maps the score config section to ScoreWeights,
// falling back to the defaults when the section is absent.
func WeightsFromConfig(cfg config.Score) ScoreWeights {
	if cfg == (config.Score{}) {
		return DefaultScoreWeights()
	}
	return ScoreWeights{
		PriceMove:             cfg.PriceMoveWeight,
		Filing:                cfg.FilingWeight,
		News:                  cfg.NewsWeight,
		Trade:                 cfg.TradeWeight,
		PriceMoveThresholdPct: cfg.PriceMoveThresholdPct,
	}
}

// ScoreOpportunity maps the aggregated fetch results to the heuristic
// opportunity score. Each term is additive and independent; a missing
// price snapshot contributes nothing.
func ScoreOpportunity(price *entity.PriceSnapshot, filingCount, newsCount, tradeCount int, w ScoreWeights) int {
	score := 0
	if price != nil && math.Abs(price.ChangePct) > w.PriceMoveThresholdPct {
		score += w.PriceMove
	}
	score += filingCount * w.Filing
	score += newsCount * w.News
	score += tradeCount * w.Trade
	return score
}
