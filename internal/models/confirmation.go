package models

// DefaultContractSize is the number of shares a standard US equity option
// contract controls.
const DefaultContractSize = 100

// ParsedTrade is the normalized output of parsing one broker confirmation
// block. Every field is independently optional because any given confirmation
// layout supplies only a subset: pointer and zero values mean "absent".
// A ParsedTrade is immutable once returned by the parser.
type ParsedTrade struct {
	Action         Action         `json:"action,omitempty"`
	OpenClose      OpenClose      `json:"openClose,omitempty"`
	InstrumentType InstrumentType `json:"instrumentType,omitempty"`
	Ticker         string         `json:"ticker,omitempty"`
	Expiry         string         `json:"expiry,omitempty"` // ISO YYYY-MM-DD
	Strike         *float64       `json:"strike,omitempty"`
	Contracts      *int           `json:"contracts,omitempty"`
	ContractSize   int            `json:"contractSize,omitempty"`
	Amount         *float64       `json:"amount,omitempty"`
	AmountSign     string         `json:"amountSign,omitempty"` // "+" or "-"
	Price          *float64       `json:"price,omitempty"`
	Commission     *float64       `json:"commission,omitempty"`
	Fees           *float64       `json:"fees,omitempty"`
	Date           string         `json:"date,omitempty"`           // ISO YYYY-MM-DD
	SettlementDate string         `json:"settlementDate,omitempty"` // ISO YYYY-MM-DD
	SymbolCode     string         `json:"symbolCode,omitempty"`
	Margin         bool           `json:"margin,omitempty"`
	AccountSuffix  string         `json:"accountSuffix,omitempty"`
}

// IsEmpty reports whether no extractor recognized anything in the input.
// Callers treat an empty ParsedTrade as "could not parse".
func (p ParsedTrade) IsEmpty() bool {
	return p.Action == "" &&
		p.OpenClose == "" &&
		p.InstrumentType == "" &&
		p.Ticker == "" &&
		p.Expiry == "" &&
		p.Strike == nil &&
		p.Contracts == nil &&
		p.ContractSize == 0 &&
		p.Amount == nil &&
		p.AmountSign == "" &&
		p.Price == nil &&
		p.Commission == nil &&
		p.Fees == nil &&
		p.Date == "" &&
		p.SettlementDate == "" &&
		p.SymbolCode == "" &&
		!p.Margin &&
		p.AccountSuffix == ""
}

// EffectiveContractSize returns the contract multiplier, defaulting to 100
// when the confirmation did not state one.
func (p ParsedTrade) EffectiveContractSize() int {
	if p.ContractSize > 0 {
		return p.ContractSize
	}
	return DefaultContractSize
}

// ContractCount returns the number of contracts, defaulting to 1 when absent.
func (p ParsedTrade) ContractCount() int {
	if p.Contracts != nil {
		return *p.Contracts
	}
	return 1
}
