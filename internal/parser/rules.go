package parser

import (
	"regexp"
	"strconv"
	"strings"

	"trade-journal/internal/models"
)

// Extraction rules. Each rule is an independent pure function returning a
// partial ParsedTrade; Parse merges the partials in precedence order
// (symbol code > description line > labeled block), so a field is filled by
// the highest-priority rule that recognized it.
var (
	symbolCodeRe   = regexp.MustCompile(`([-+]?)\b([A-Z]{1,6})(\d{2})(\d{2})(\d{2})([CP])(\d{2,6})\b`)
	descHeadRe     = regexp.MustCompile(`(?i)\b(PUT|CALL)\s*\(([A-Z]{1,6})\)`)
	strikeRe       = regexp.MustCompile(`\$\s?(\d+(?:\.\d+)?)`)
	sharesRe       = regexp.MustCompile(`(?i)\((\d+)\s*SHS\)`)
	marginRe       = regexp.MustCompile(`(?i)\(MARGIN\)`)
	actionPhraseRe = regexp.MustCompile(`(?i)YOU\s+(BOUGHT|SOLD)\s+(OPENING|CLOSING)\s+TRANSACTION`)
	expiredRe      = regexp.MustCompile(`(?i)\bEXPIRED\b`)
	asOfRe         = regexp.MustCompile(`(?i)\bAS\s+OF\b`)
	moneyRe        = regexp.MustCompile(`([-+]?)\s*\$?\s*(\d[\d,]*(?:\.\d+)?)`)
	signedAmountRe = regexp.MustCompile(`([-+])\$(\d[\d,]*(?:\.\d+)?)`)
	signedIntRe    = regexp.MustCompile(`([-+]?)(\d+)`)
	tickerRe       = regexp.MustCompile(`^[A-Z]{1,6}$`)
	acctSuffixRe   = regexp.MustCompile(`\*{3}(\d{3,4})\b`)
)

// extractSymbolCode decodes an option-symbol-style token such as
// -IREN260116P45: ticker, two-digit year/month/day, C or P, integer strike.
func extractSymbolCode(text string) models.ParsedTrade {
	var pt models.ParsedTrade
	for _, m := range symbolCodeRe.FindAllStringSubmatch(text, -1) {
		decoded, ok := decodeSymbolCode(m)
		if ok {
			pt = decoded
			break
		}
	}
	return pt
}

func decodeSymbolCode(m []string) (models.ParsedTrade, bool) {
	var pt models.ParsedTrade
	yy, _ := strconv.Atoi(m[3])
	mm, _ := strconv.Atoi(m[4])
	dd, _ := strconv.Atoi(m[5])
	if mm < 1 || mm > 12 || dd < 1 || dd > 31 {
		return pt, false
	}
	strike, err := strconv.ParseFloat(m[7], 64)
	if err != nil {
		return pt, false
	}
	pt.SymbolCode = m[0]
	pt.Ticker = m[2]
	if strings.EqualFold(m[6], "C") {
		pt.InstrumentType = models.InstrumentCall
	} else {
		pt.InstrumentType = models.InstrumentPut
	}
	pt.Expiry = isoDate(2000+yy, mm, dd)
	pt.Strike = &strike
	return pt, true
}

func isoDate(y, m, d int) string {
	return normalizeDate(monthAbbrev(m), strconv.Itoa(d), strconv.Itoa(y))
}

func monthAbbrev(m int) string {
	abbrevs := []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}
	if m < 1 || m > 12 {
		return ""
	}
	return abbrevs[m-1]
}

// extractDescription parses a free-text description line of the shape
// "TYPE (TICKER) ... MON DD YY $STRIKE (N SHS) [(Margin)]". Extraction is
// scoped to the line containing the TYPE (TICKER) head so dates elsewhere in
// the confirmation are not mistaken for the expiry.
func extractDescription(text string) models.ParsedTrade {
	var pt models.ParsedTrade
	loc := descHeadRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return pt
	}
	m := descHeadRe.FindStringSubmatch(text)
	if strings.EqualFold(m[1], "PUT") {
		pt.InstrumentType = models.InstrumentPut
	} else {
		pt.InstrumentType = models.InstrumentCall
	}
	pt.Ticker = strings.ToUpper(m[2])

	line := text[loc[1]:]
	if nl := strings.IndexByte(line, '\n'); nl >= 0 {
		line = line[:nl]
	}
	pt.Expiry = findDate(line)
	if sm := strikeRe.FindStringSubmatch(line); sm != nil {
		if strike, err := strconv.ParseFloat(sm[1], 64); err == nil {
			pt.Strike = &strike
		}
	}
	if sm := sharesRe.FindStringSubmatch(line); sm != nil {
		if size, err := strconv.Atoi(sm[1]); err == nil && size > 0 {
			pt.ContractSize = size
		}
	}
	pt.Margin = marginRe.MatchString(line)
	return pt
}

// extractActionPhrase maps the fixed confirmation phrase
// "YOU (BOUGHT|SOLD) (OPENING|CLOSING) TRANSACTION" to action and open/close.
func extractActionPhrase(text string) models.ParsedTrade {
	var pt models.ParsedTrade
	m := actionPhraseRe.FindStringSubmatch(text)
	if m == nil {
		return pt
	}
	if strings.EqualFold(m[1], "BOUGHT") {
		pt.Action = models.ActionBuy
	} else {
		pt.Action = models.ActionSell
	}
	if strings.EqualFold(m[2], "OPENING") {
		pt.OpenClose = models.PositionOpen
	} else {
		pt.OpenClose = models.PositionClose
	}
	return pt
}

// labeled block labels, matched case-insensitively against whole lines with
// an optional trailing colon. The value is the next non-empty line.
var blockLabels = []string{
	"symbol description",
	"settlement date",
	"date",
	"symbol",
	"type",
	"contracts",
	"price",
	"commission",
	"fees",
	"amount",
}

// extractLabeledFields parses the "Processing"-style confirmation block made
// of <Label> / <Value> line pairs.
func extractLabeledFields(text string) models.ParsedTrade {
	var pt models.ParsedTrade
	lines := strings.Split(text, "\n")
	for i, raw := range lines {
		label := matchLabel(raw)
		if label == "" {
			continue
		}
		value := nextValueLine(lines, i+1)
		if value == "" {
			continue
		}
		applyLabeledField(&pt, label, value)
	}
	if pt.Amount == nil {
		if m := signedAmountRe.FindStringSubmatch(text); m != nil {
			if amt, ok := parseMoneyDigits(m[2]); ok {
				pt.Amount = &amt
				pt.AmountSign = m[1]
			}
		}
	}
	return pt
}

func matchLabel(line string) string {
	trimmed := strings.ToLower(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line), ":")))
	for _, label := range blockLabels {
		if trimmed == label {
			return label
		}
	}
	return ""
}

func nextValueLine(lines []string, from int) string {
	for _, line := range lines[from:] {
		if v := strings.TrimSpace(line); v != "" {
			return v
		}
	}
	return ""
}

func applyLabeledField(pt *models.ParsedTrade, label, value string) {
	switch label {
	case "date":
		pt.Date = dateOrRaw(value)
	case "settlement date":
		pt.SettlementDate = dateOrRaw(value)
	case "symbol":
		if m := symbolCodeRe.FindStringSubmatch(value); m != nil {
			if decoded, ok := decodeSymbolCode(m); ok {
				pt.SymbolCode = value
				mergeTrade(pt, decoded)
				return
			}
		}
		if tickerRe.MatchString(value) {
			pt.Ticker = value
		}
	case "symbol description":
		mergeTrade(pt, extractDescription(value))
	case "type":
		if strings.Contains(strings.ToLower(value), "margin") {
			pt.Margin = true
		}
	case "contracts":
		if m := signedIntRe.FindStringSubmatch(value); m != nil {
			if n, err := strconv.Atoi(m[2]); err == nil {
				pt.Contracts = &n
			}
		}
	case "price":
		if v, _, ok := parseMoney(value); ok {
			pt.Price = &v
		}
	case "commission":
		if v, _, ok := parseMoney(value); ok {
			pt.Commission = &v
		}
	case "fees":
		if v, _, ok := parseMoney(value); ok {
			pt.Fees = &v
		}
	case "amount":
		if v, sign, ok := parseMoney(value); ok {
			pt.Amount = &v
			pt.AmountSign = sign
		}
	}
}

func dateOrRaw(value string) string {
	if iso := findDate(value); iso != "" {
		return iso
	}
	return value
}

// parseMoney reads a monetary token such as "-$1,234.56", returning the
// absolute value and the sign prefix when one was written.
func parseMoney(s string) (float64, string, bool) {
	m := moneyRe.FindStringSubmatch(s)
	if m == nil {
		return 0, "", false
	}
	v, ok := parseMoneyDigits(m[2])
	if !ok {
		return 0, "", false
	}
	return v, m[1], true
}

func parseMoneyDigits(digits string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(digits, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// extractAccountSuffix finds a masked account token like ***123 or ***1234.
func extractAccountSuffix(text string) models.ParsedTrade {
	var pt models.ParsedTrade
	if m := acctSuffixRe.FindStringSubmatch(text); m != nil {
		pt.AccountSuffix = m[1]
	}
	return pt
}
