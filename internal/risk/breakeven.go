package risk

import (
	"math"

	"trade-journal/internal/models"
)

// Breakevens returns the underlying prices at which the position's profit at
// expiry is exactly zero, ordered ascending. Only single option legs and
// vertical spreads are computed; every other shape returns an empty list.
//
// The premium moves the breakeven up for calls and down for puts, and the
// direction flips when the leg is sold. A vertical spread anchors on the long
// leg's strike for a debit and the short leg's strike for a credit.
func Breakevens(legs []models.Leg, entryPrice float64) []float64 {
	premium := math.Abs(entryPrice)

	if len(legs) == 1 && legs[0].InstrumentType.IsOption() {
		leg := legs[0]
		return []float64{leg.Strike + direction(leg.InstrumentType, leg.Side)*premium}
	}

	if isVerticalSpread(legs) {
		anchor := spreadAnchor(legs, entryPrice)
		return []float64{anchor + direction(legs[0].InstrumentType, models.SideBuy)*premium}
	}

	return nil
}

// direction is +1 when the premium pushes the breakeven above the strike and
// -1 when below: calls pay up, puts pay down, selling flips the sign.
func direction(t models.InstrumentType, side models.Side) float64 {
	d := 1.0
	if t == models.InstrumentPut {
		d = -1.0
	}
	if side == models.SideSell {
		d = -d
	}
	return d
}

func spreadAnchor(legs []models.Leg, entryPrice float64) float64 {
	wantSide := models.SideBuy
	if entryPrice < 0 {
		wantSide = models.SideSell
	}
	for _, leg := range legs {
		if leg.Side == wantSide {
			return leg.Strike
		}
	}
	return legs[0].Strike
}
