// Package risk implements the deterministic risk metrics and assessment
// engine. Every function is pure: metrics are closed-form functions of the
// leg set, entry price, quantity and optional market context, and the
// assessment is a fixed decision table over the metrics. Nothing here blocks,
// allocates shared state, or returns an error; degenerate inputs produce the
// documented zero and sentinel conventions instead.
package risk

import (
	"math"

	"trade-journal/internal/models"
)

// MarketContext carries the optional market inputs needed for the
// probability-of-profit estimate. A nil context or non-positive field leaves
// the estimate absent.
type MarketContext struct {
	CurrentPrice      float64
	ImpliedVolatility float64
	DaysToExpiry      int
}

// ComputeMetrics derives max risk, max reward, risk/reward ratio, breakevens
// and the probability-of-profit estimate for a position.
func ComputeMetrics(legs []models.Leg, entryPrice float64, quantity int, market *MarketContext) models.Metrics {
	m := models.Metrics{
		MaxRisk:   models.Bounded(0),
		MaxReward: models.Bounded(0),
	}
	if len(legs) == 0 || quantity == 0 {
		return m
	}

	premium := math.Abs(entryPrice)
	qty := float64(quantity)

	switch {
	case len(legs) == 1:
		exposure := premium * qty * legs[0].Multiplier()
		if legs[0].Side == models.SideBuy {
			m.MaxRisk = models.Bounded(exposure)
			m.MaxReward = models.Unbounded()
		} else {
			// Naked short: the premium is the cap on reward, not risk.
			m.MaxReward = models.Bounded(exposure)
			m.MaxRisk = models.Unbounded()
		}

	case isVerticalSpread(legs):
		strikeDiff := math.Abs(legs[0].Strike-legs[1].Strike) * 100
		if entryPrice < 0 {
			// Net credit: risk is the spread width less the premium kept.
			m.MaxRisk = models.Bounded(strikeDiff - premium*100)
			m.MaxReward = models.Bounded(premium * qty * 100)
		} else {
			// Net debit: the debit is the full risk.
			m.MaxRisk = models.Bounded(premium * qty * 100)
			m.MaxReward = models.Bounded((strikeDiff - premium*100) * qty)
		}

	default:
		// Unrecognized multi-leg shape: the net entry price is the only
		// figure we can state. The complementary side stays zero rather
		// than guessing the true payoff.
		exposure := premium * qty * 100
		if entryPrice >= 0 {
			m.MaxRisk = models.Bounded(exposure)
		} else {
			m.MaxReward = models.Bounded(exposure)
		}
	}

	m.RiskReward = RiskReward(m.MaxRisk, m.MaxReward)
	m.Breakevens = Breakevens(legs, entryPrice)
	m.ProbabilityOfProfit = EstimatePOP(m.Breakevens, market)
	return m
}

// RiskReward returns maxReward/maxRisk, with zero substituted whenever the
// ratio is undefined: a zero or unbounded risk, or an unbounded reward,
// never propagates a division by zero or an infinity to callers.
func RiskReward(maxRisk, maxReward models.MaxValue) float64 {
	if maxRisk.Unbounded || maxReward.Unbounded {
		return 0
	}
	if maxRisk.Value <= 0 {
		return 0
	}
	return maxReward.Value / maxRisk.Value
}

// isVerticalSpread reports whether legs form a two-leg same-type
// opposite-side option spread with both strikes known.
func isVerticalSpread(legs []models.Leg) bool {
	return len(legs) == 2 &&
		legs[0].InstrumentType == legs[1].InstrumentType &&
		legs[0].InstrumentType.IsOption() &&
		legs[0].Side != legs[1].Side &&
		legs[0].Strike > 0 && legs[1].Strike > 0
}
