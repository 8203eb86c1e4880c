package models

import "encoding/json"

// Leg represents one component of a position.
type Leg struct {
	InstrumentType InstrumentType `json:"instrumentType"`
	Side           Side           `json:"side"`
	Strike         float64        `json:"strike,omitempty"` // 0 for stock
	Expiry         string         `json:"expiry,omitempty"` // empty for stock
	Quantity       int            `json:"quantity"`
}

// Multiplier returns the per-contract share multiplier for the leg.
func (l Leg) Multiplier() float64 {
	if l.InstrumentType == InstrumentStock {
		return 1
	}
	return DefaultContractSize
}

// MaxValue is a risk or reward figure that may be unbounded (a naked single
// leg has no cap on one side). The tag keeps the sentinel out of arithmetic:
// consuming code branches on Unbounded instead of comparing against +Inf.
type MaxValue struct {
	Value     float64 `json:"value"`
	Unbounded bool    `json:"unbounded,omitempty"`
}

// Bounded returns a bounded MaxValue.
func Bounded(v float64) MaxValue {
	return MaxValue{Value: v}
}

// Unbounded returns the unbounded sentinel.
func Unbounded() MaxValue {
	return MaxValue{Unbounded: true}
}

// IsZero reports whether the value is bounded and exactly zero.
func (m MaxValue) IsZero() bool {
	return !m.Unbounded && m.Value == 0
}

// MarshalJSON renders unbounded values as the string "unbounded" and bounded
// values as a plain number, matching the wire shape the journal UI consumes.
func (m MaxValue) MarshalJSON() ([]byte, error) {
	if m.Unbounded {
		return json.Marshal("unbounded")
	}
	return json.Marshal(m.Value)
}

// UnmarshalJSON accepts either a number or the "unbounded" string.
func (m *MaxValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = Unbounded()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Bounded(v)
	return nil
}

// Metrics holds the computed risk figures for a position. Metrics is a pure
// function of its inputs: it carries no identity and is never mutated.
type Metrics struct {
	MaxRisk             MaxValue  `json:"maxRisk"`
	MaxReward           MaxValue  `json:"maxReward"`
	RiskReward          float64   `json:"riskReward"`
	Breakevens          []float64 `json:"breakeven,omitempty"`
	ProbabilityOfProfit *float64  `json:"probabilityOfProfit,omitempty"`
}

// Assessment is the deterministic textual classification derived from Metrics.
type Assessment struct {
	Text      string             `json:"text"`
	RiskLevel RiskLevel          `json:"riskLevel"`
	Factors   map[string]float64 `json:"factors,omitempty"`
}
