package risk

import "trade-journal/internal/models"

// CapitalWarningLimit is the committed-capital threshold above which the
// assessment appends a capital warning.
const CapitalWarningLimit = 5000.0

// GenerateAssessment classifies a Metrics value into deterministic textual
// guidance and a risk level. The rules form a fixed decision table evaluated
// top to bottom, first match wins; the ordering is load-bearing because later
// rules intentionally catch cases the earlier, more specific rules miss.
// Missing ratio or probability values count as zero for the threshold rules;
// only the first two rules treat absence specially.
func GenerateAssessment(m models.Metrics) models.Assessment {
	a := classify(m)

	if !m.MaxRisk.Unbounded && m.MaxRisk.Value > CapitalWarningLimit {
		a.Text += " Warning: maximum risk exceeds $5,000 of committed capital."
		a.Factors["maxRisk"] = m.MaxRisk.Value
	}
	if m.ProbabilityOfProfit == nil {
		a.Text += " Probability of profit unavailable: supply current price, implied volatility and days to expiry for a fuller picture."
	}

	return a
}

func classify(m models.Metrics) models.Assessment {
	factors := make(map[string]float64)

	noRiskFigures := m.MaxRisk.IsZero() && m.MaxReward.IsZero()
	if noRiskFigures && m.ProbabilityOfProfit == nil {
		return models.Assessment{
			Text:      "Insufficient data for assessment. Enter position legs, entry price and quantity to evaluate risk.",
			RiskLevel: models.RiskUnknown,
			Factors:   factors,
		}
	}

	if m.MaxRisk.Unbounded || m.MaxReward.Unbounded || (m.MaxRisk.IsZero() && !m.MaxReward.IsZero()) {
		return models.Assessment{
			Text:      "Unable to calculate risk/reward ratio: one side of this position is unbounded or zero.",
			RiskLevel: models.RiskUnknown,
			Factors:   factors,
		}
	}

	rr := m.RiskReward
	pop := 0.0
	if m.ProbabilityOfProfit != nil {
		pop = *m.ProbabilityOfProfit
	}
	factors["riskReward"] = rr
	if m.ProbabilityOfProfit != nil {
		factors["probabilityOfProfit"] = pop
	}

	var text string
	var level models.RiskLevel
	switch {
	case rr >= 1.5 && pop < 0.45:
		text = "Risk-heavy position: the reward is attractive but the probability of profit is low. Size accordingly."
		level = models.RiskHigh
	case rr >= 0.7 && rr < 1.5 && pop >= 0.45 && pop <= 0.6:
		text = "Balanced position: risk, reward and probability of profit are in proportion."
		level = models.RiskMedium
	case rr < 0.7 && pop > 0.6:
		text = "Favorable setup: a high probability of profit with modest risk relative to reward."
		level = models.RiskLow
	case pop > 0.7:
		text = "High probability of profit. The trade is likely to reach a profitable close."
		level = models.RiskLow
	case pop < 0.35:
		text = "Low probability of profit. This position needs a large move to pay off."
		level = models.RiskHigh
	case rr >= 2.0:
		text = "Excellent risk/reward ratio. The potential reward is at least twice the risk."
		level = models.RiskMedium
	case rr < 0.5:
		text = "Limited reward relative to risk. Consider whether the position is worth the capital."
		level = models.RiskHigh
	default:
		text = "Position metrics are within normal ranges."
		level = models.RiskMedium
	}

	return models.Assessment{Text: text, RiskLevel: level, Factors: factors}
}
