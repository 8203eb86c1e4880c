package risk

import "math"

// EstimatePOP estimates the probability that the underlying finishes on the
// profitable side of breakeven at expiry, under a normal price distribution
// centered at the current price with stdDev = price * iv * sqrt(dte/365).
// The estimate is absent (nil) unless current price, implied volatility and
// a positive days-to-expiry are all supplied and a breakeven exists.
//
// One breakeven yields the one-sided probability of finishing above it; two
// breakevens (range strategies) yield the probability mass between them.
func EstimatePOP(breakevens []float64, market *MarketContext) *float64 {
	if market == nil || len(breakevens) == 0 {
		return nil
	}
	if market.CurrentPrice <= 0 || market.ImpliedVolatility <= 0 || market.DaysToExpiry <= 0 {
		return nil
	}

	sd := market.CurrentPrice * market.ImpliedVolatility * math.Sqrt(float64(market.DaysToExpiry)/365)
	if sd <= 0 {
		return nil
	}

	var p float64
	if len(breakevens) == 1 {
		p = NormCDF((market.CurrentPrice - breakevens[0]) / sd)
	} else {
		lo, hi := breakevens[0], breakevens[len(breakevens)-1]
		if lo > hi {
			lo, hi = hi, lo
		}
		p = NormCDF((hi-market.CurrentPrice)/sd) - NormCDF((lo-market.CurrentPrice)/sd)
	}

	p = math.Max(0, math.Min(1, p))
	return &p
}

// NormCDF is the standard normal cumulative distribution function, computed
// with the Zelen & Severo rational polynomial (Abramowitz & Stegun 26.2.17).
// Absolute error is below 7.5e-8 across the supported z range.
func NormCDF(z float64) float64 {
	if z < -6 {
		return 0
	}
	if z > 6 {
		return 1
	}

	x := math.Abs(z)
	t := 1 / (1 + 0.2316419*x)
	poly := t * (0.319381530 + t*(-0.356563782+t*(1.781477937+t*(-1.821255978+t*1.330274429))))
	p := 1 - math.Exp(-x*x/2)/math.Sqrt(2*math.Pi)*poly

	if z < 0 {
		return 1 - p
	}
	return p
}
