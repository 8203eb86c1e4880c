// Package parser extracts normalized trade records from pasted broker
// confirmation text.
//
// The input is loosely structured: a confirmation may be an option symbol
// code, a free-text description line, a labeled "Processing" block, a
// detailed ticket, or an expiration notice, and a single paste can carry
// more than one of these at once. Each layout has its own extraction rule;
// rules never fail, they simply leave unrecognized fields absent. Parsing is
// pure and idempotent, and all patterns are RE2, so runtime stays linear in
// the input length.
package parser

import (
	"sort"
	"strings"

	"trade-journal/internal/models"
)

// Parse extracts zero or more normalized trade records from raw confirmation
// text. Empty or whitespace-only input yields an empty slice; any other input
// yields at least one record, possibly with every field absent (the "could
// not parse" signal callers check with IsEmpty).
func Parse(text string) []models.ParsedTrade {
	if strings.TrimSpace(text) == "" {
		return []models.ParsedTrade{}
	}

	trades := make([]models.ParsedTrade, 0, 1)
	for _, block := range splitBlocks(text) {
		trades = append(trades, parseBlock(block))
	}
	return trades
}

// splitBlocks segments a paste containing several confirmations. A new block
// starts at every action phrase or expiration marker after the first; inputs
// with at most one marker are a single block. Duplicated blocks are kept:
// each recognized block yields its own record.
func splitBlocks(text string) []string {
	starts := markerOffsets(text)
	if len(starts) <= 1 {
		return []string{text}
	}

	blocks := make([]string, 0, len(starts))
	for i, start := range starts {
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		if i == 0 {
			// The first block keeps any preamble before its marker.
			start = 0
		}
		blocks = append(blocks, text[start:end])
	}
	return blocks
}

func markerOffsets(text string) []int {
	var offsets []int
	for _, loc := range actionPhraseRe.FindAllStringIndex(text, -1) {
		offsets = append(offsets, loc[0])
	}
	for _, loc := range expiredRe.FindAllStringIndex(text, -1) {
		offsets = append(offsets, loc[0])
	}
	sort.Ints(offsets)
	return offsets
}

// parseBlock applies every extraction rule to one block and merges the
// partial results in precedence order.
func parseBlock(text string) models.ParsedTrade {
	var pt models.ParsedTrade
	mergeTrade(&pt, extractSymbolCode(text))
	mergeTrade(&pt, extractDescription(text))
	mergeTrade(&pt, extractActionPhrase(text))
	mergeTrade(&pt, extractLabeledFields(text))
	mergeTrade(&pt, extractAccountSuffix(text))
	applyExpiration(&pt, text)

	if !pt.IsEmpty() && pt.ContractSize == 0 {
		pt.ContractSize = models.DefaultContractSize
	}
	return pt
}

// applyExpiration recognizes an expiration notice: the EXPIRED marker
// together with an instrument keyword, parenthesized ticker, expiry token and
// dollar strike (already extracted by the description rule). It records the
// expired action, defaults the contract count to one, and uses the notice
// date when no explicit Date label was present.
func applyExpiration(pt *models.ParsedTrade, text string) {
	if !expiredRe.MatchString(text) {
		return
	}
	if !pt.InstrumentType.IsOption() || pt.Ticker == "" || pt.Expiry == "" || pt.Strike == nil {
		return
	}

	if pt.Action == "" {
		pt.Action = models.ActionExpired
	}
	if pt.Contracts == nil {
		one := 1
		pt.Contracts = &one
	}
	if pt.Date == "" {
		pt.Date = expirationDate(pt, text)
	}
}

// expirationDate prefers the "as of" date on the notice and falls back to
// the expiry itself.
func expirationDate(pt *models.ParsedTrade, text string) string {
	if loc := asOfRe.FindStringIndex(text); loc != nil {
		if iso := findDate(text[loc[1]:]); iso != "" {
			return iso
		}
	}
	return pt.Expiry
}

// mergeTrade copies fields from src into dst, filling only fields dst does
// not already have. Rule precedence is therefore the call order in
// parseBlock, not control flow inside the rules.
func mergeTrade(dst *models.ParsedTrade, src models.ParsedTrade) {
	if dst.Action == "" {
		dst.Action = src.Action
	}
	if dst.OpenClose == "" {
		dst.OpenClose = src.OpenClose
	}
	if dst.InstrumentType == "" {
		dst.InstrumentType = src.InstrumentType
	}
	if dst.Ticker == "" {
		dst.Ticker = src.Ticker
	}
	if dst.Expiry == "" {
		dst.Expiry = src.Expiry
	}
	if dst.Strike == nil {
		dst.Strike = src.Strike
	}
	if dst.Contracts == nil {
		dst.Contracts = src.Contracts
	}
	if dst.ContractSize == 0 {
		dst.ContractSize = src.ContractSize
	}
	if dst.Amount == nil {
		dst.Amount = src.Amount
		dst.AmountSign = src.AmountSign
	}
	if dst.Price == nil {
		dst.Price = src.Price
	}
	if dst.Commission == nil {
		dst.Commission = src.Commission
	}
	if dst.Fees == nil {
		dst.Fees = src.Fees
	}
	if dst.Date == "" {
		dst.Date = src.Date
	}
	if dst.SettlementDate == "" {
		dst.SettlementDate = src.SettlementDate
	}
	if dst.SymbolCode == "" {
		dst.SymbolCode = src.SymbolCode
	}
	if src.Margin {
		dst.Margin = true
	}
	if dst.AccountSuffix == "" {
		dst.AccountSuffix = src.AccountSuffix
	}
}
