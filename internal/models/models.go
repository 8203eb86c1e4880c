// Package models provides domain models for the trade journal application.
package models

// Action represents the action recorded on a broker confirmation.
type Action string

const (
	ActionBuy     Action = "buy"
	ActionSell    Action = "sell"
	ActionExpired Action = "expired"
)

// OpenClose represents whether a trade opens or closes a position.
type OpenClose string

const (
	PositionOpen  OpenClose = "open"
	PositionClose OpenClose = "close"
)

// InstrumentType represents the kind of instrument traded.
type InstrumentType string

const (
	InstrumentCall  InstrumentType = "call"
	InstrumentPut   InstrumentType = "put"
	InstrumentStock InstrumentType = "stock"
)

// IsOption reports whether the instrument is an option contract.
func (t InstrumentType) IsOption() bool {
	return t == InstrumentCall || t == InstrumentPut
}

// Side represents the side of a position leg.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// RiskLevel classifies the overall risk of a position.
type RiskLevel string

const (
	RiskLow     RiskLevel = "low"
	RiskMedium  RiskLevel = "medium"
	RiskHigh    RiskLevel = "high"
	RiskUnknown RiskLevel = "unknown"
)
