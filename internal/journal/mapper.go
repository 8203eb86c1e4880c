// Package journal turns parsed confirmations into positions the risk engine
// can price, and runs the full parse-map-assess pipeline.
package journal

import (
	"trade-journal/internal/errors"
	"trade-journal/internal/models"
)

// Position is a priced leg set ready for the risk engine.
type Position struct {
	Ticker     string
	Legs       []models.Leg
	EntryPrice float64
	Quantity   int
}

// BuildPosition maps one parsed confirmation to a position. The parser
// guarantees nothing about which fields are present, so every gap the risk
// engine cannot tolerate surfaces here as an error.
func BuildPosition(pt models.ParsedTrade) (Position, error) {
	if pt.IsEmpty() {
		return Position{}, errors.ErrNothingParsed
	}

	side, err := positionSide(pt)
	if err != nil {
		return Position{}, err
	}

	leg := models.Leg{
		Side:     side,
		Quantity: pt.ContractCount(),
	}

	switch {
	case pt.InstrumentType.IsOption():
		if pt.Strike == nil {
			return Position{}, errors.NewMappingError(pt.Ticker, "option confirmation without a strike", nil)
		}
		leg.InstrumentType = pt.InstrumentType
		leg.Strike = *pt.Strike
		leg.Expiry = pt.Expiry
	case pt.InstrumentType == models.InstrumentStock, pt.InstrumentType == "":
		leg.InstrumentType = models.InstrumentStock
	}

	entry, err := entryPrice(pt)
	if err != nil {
		return Position{}, err
	}

	return Position{
		Ticker:     pt.Ticker,
		Legs:       []models.Leg{leg},
		EntryPrice: entry,
		Quantity:   leg.Quantity,
	}, nil
}

// positionSide derives the leg side from the confirmation action. An expired
// contract is treated as short premium: in this journal's workflow expiry
// notices come from options that were sold and lapsed worthless.
func positionSide(pt models.ParsedTrade) (models.Side, error) {
	switch pt.Action {
	case models.ActionBuy:
		return models.SideBuy, nil
	case models.ActionSell, models.ActionExpired:
		return models.SideSell, nil
	default:
		return "", errors.NewMappingError(pt.Ticker, "confirmation has no buy/sell action", nil)
	}
}

// entryPrice prefers the per-contract price; otherwise it derives one from
// the total amount. A "+" amount is cash received (net credit, negative
// entry), "-" or unsigned is cash paid (net debit, positive entry).
func entryPrice(pt models.ParsedTrade) (float64, error) {
	if pt.Price != nil {
		return *pt.Price, nil
	}
	if pt.Action == models.ActionExpired {
		// Lapsed worthless: no remaining entry cost.
		return 0, nil
	}
	if pt.Amount == nil {
		return 0, errors.NewMappingError(pt.Ticker, "confirmation has neither price nor amount", nil)
	}

	units := float64(pt.ContractCount() * pt.EffectiveContractSize())
	if units <= 0 {
		return 0, errors.NewValidationError("contracts", pt.ContractCount(), "must be positive to derive a price")
	}

	entry := *pt.Amount / units
	if pt.AmountSign == "+" {
		entry = -entry
	}
	return entry, nil
}
