package journal

import (
	"github.com/rs/zerolog"

	"trade-journal/internal/logging"
	"trade-journal/internal/models"
	"trade-journal/internal/parser"
	"trade-journal/internal/risk"
)

// Review is the result of running one confirmation through the full
// pipeline. Err is set when the parsed record could not be priced; the
// parsed trade itself is always present.
type Review struct {
	Trade      models.ParsedTrade `json:"trade"`
	Position   *Position          `json:"position,omitempty"`
	Metrics    *models.Metrics    `json:"metrics,omitempty"`
	Assessment *models.Assessment `json:"assessment,omitempty"`
	Err        string             `json:"error,omitempty"`
}

// Reviewer runs pasted confirmation text through parse, mapping, metrics and
// assessment. It holds no state beyond the logger.
type Reviewer struct {
	log zerolog.Logger
}

// NewReviewer creates a Reviewer.
func NewReviewer(log zerolog.Logger) *Reviewer {
	return &Reviewer{log: log}
}

// ReviewText parses raw confirmation text and assesses every record found.
func (r *Reviewer) ReviewText(text string, market *risk.MarketContext) []Review {
	trades := parser.Parse(text)
	logging.LogParse(r.log, len(text), len(trades))

	reviews := make([]Review, 0, len(trades))
	for _, pt := range trades {
		reviews = append(reviews, r.ReviewTrade(pt, market))
	}
	return reviews
}

// ReviewTrade assesses one already-parsed confirmation.
func (r *Reviewer) ReviewTrade(pt models.ParsedTrade, market *risk.MarketContext) Review {
	review := Review{Trade: pt}

	pos, err := BuildPosition(pt)
	if err != nil {
		r.log.Debug().Err(err).Str("ticker", pt.Ticker).Msg("Confirmation not priceable")
		review.Err = err.Error()
		return review
	}

	m := risk.ComputeMetrics(pos.Legs, pos.EntryPrice, pos.Quantity, market)
	a := risk.GenerateAssessment(m)
	logging.LogAssessment(r.log, pos.Ticker, string(a.RiskLevel), m.RiskReward)

	review.Position = &pos
	review.Metrics = &m
	review.Assessment = &a
	return review
}
