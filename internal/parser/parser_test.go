package parser

import (
	"reflect"
	"testing"

	"trade-journal/internal/models"
)

func f64(v float64) *float64 { return &v }

func intp(v int) *int { return &v }

func TestParseEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t\n", "  \r\n  "} {
		trades := Parse(input)
		if len(trades) != 0 {
			t.Errorf("Parse(%q) = %d trades, want empty slice", input, len(trades))
		}
	}
}

func TestParseUnrecognizedInput(t *testing.T) {
	trades := Parse("hello world, nothing resembling a confirmation here")
	if len(trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(trades))
	}
	if !trades[0].IsEmpty() {
		t.Errorf("expected an all-absent record, got %+v", trades[0])
	}
}

func TestParseSymbolCode(t *testing.T) {
	trades := Parse("Order filled: -IREN260116P45 at market")
	if len(trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(trades))
	}
	pt := trades[0]

	if pt.Ticker != "IREN" {
		t.Errorf("ticker = %q, want IREN", pt.Ticker)
	}
	if pt.InstrumentType != models.InstrumentPut {
		t.Errorf("instrumentType = %q, want put", pt.InstrumentType)
	}
	if pt.Expiry != "2026-01-16" {
		t.Errorf("expiry = %q, want 2026-01-16", pt.Expiry)
	}
	if pt.Strike == nil || *pt.Strike != 45 {
		t.Errorf("strike = %v, want 45", pt.Strike)
	}
	if pt.SymbolCode != "-IREN260116P45" {
		t.Errorf("symbolCode = %q, want -IREN260116P45", pt.SymbolCode)
	}
	if pt.ContractSize != 100 {
		t.Errorf("contractSize = %d, want 100", pt.ContractSize)
	}
}

func TestParseSymbolCodeRejectsImplausibleDates(t *testing.T) {
	// Month 13 cannot be a real expiry, so the token must not decode.
	trades := Parse("-IREN261316P45")
	if len(trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(trades))
	}
	if trades[0].SymbolCode != "" {
		t.Errorf("symbolCode = %q, want absent", trades[0].SymbolCode)
	}
}

func TestParseDescriptionLine(t *testing.T) {
	trades := Parse("PUT (IREN) IREN LIMITED COM NPV JAN 16 26 $45 (100 SHS) (Margin)")
	if len(trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(trades))
	}
	pt := trades[0]

	if pt.Ticker != "IREN" {
		t.Errorf("ticker = %q, want IREN", pt.Ticker)
	}
	if pt.InstrumentType != models.InstrumentPut {
		t.Errorf("instrumentType = %q, want put", pt.InstrumentType)
	}
	if pt.Expiry != "2026-01-16" {
		t.Errorf("expiry = %q, want 2026-01-16", pt.Expiry)
	}
	if pt.Strike == nil || *pt.Strike != 45 {
		t.Errorf("strike = %v, want 45", pt.Strike)
	}
	if pt.ContractSize != 100 {
		t.Errorf("contractSize = %d, want 100", pt.ContractSize)
	}
	if !pt.Margin {
		t.Error("margin = false, want true")
	}
}

func TestParseExpirationNotice(t *testing.T) {
	trades := Parse("EXPIRED PUT (IREN) IREN LIMITED COM NPVJAN 16 26 $45 as of Jan-16-2026")
	if len(trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(trades))
	}
	pt := trades[0]

	if pt.Action != models.ActionExpired {
		t.Errorf("action = %q, want expired", pt.Action)
	}
	if pt.Ticker != "IREN" {
		t.Errorf("ticker = %q, want IREN", pt.Ticker)
	}
	if pt.InstrumentType != models.InstrumentPut {
		t.Errorf("instrumentType = %q, want put", pt.InstrumentType)
	}
	if pt.Expiry != "2026-01-16" {
		t.Errorf("expiry = %q, want 2026-01-16", pt.Expiry)
	}
	if pt.Strike == nil || *pt.Strike != 45 {
		t.Errorf("strike = %v, want 45", pt.Strike)
	}
	if pt.Contracts == nil || *pt.Contracts != 1 {
		t.Errorf("contracts = %v, want 1", pt.Contracts)
	}
	if pt.Date != "2026-01-16" {
		t.Errorf("date = %q, want 2026-01-16", pt.Date)
	}
}

func TestParseActionPhrase(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		action    models.Action
		openClose models.OpenClose
	}{
		{"bought opening", "YOU BOUGHT OPENING TRANSACTION", models.ActionBuy, models.PositionOpen},
		{"sold closing", "YOU SOLD CLOSING TRANSACTION", models.ActionSell, models.PositionClose},
		{"sold opening mixed case", "You Sold Opening Transaction", models.ActionSell, models.PositionOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trades := Parse(tt.input)
			if len(trades) != 1 {
				t.Fatalf("expected 1 trade, got %d", len(trades))
			}
			if trades[0].Action != tt.action {
				t.Errorf("action = %q, want %q", trades[0].Action, tt.action)
			}
			if trades[0].OpenClose != tt.openClose {
				t.Errorf("openClose = %q, want %q", trades[0].OpenClose, tt.openClose)
			}
		})
	}
}

func TestParseLabeledBlock(t *testing.T) {
	input := `Transaction confirmation ***1234
YOU SOLD OPENING TRANSACTION
Symbol
-IREN260116P45
Symbol description
PUT (IREN) IREN LIMITED COM NPV JAN 16 26 $45 (100 SHS) (Margin)
Date
Dec-17-2025
Settlement date
Dec-18-2025
Type
Margin
Contracts
-1
Price
$0.64
Commission
$0.65
Fees
$0.05
Amount
+$63.30`

	trades := Parse(input)
	if len(trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(trades))
	}
	pt := trades[0]

	want := models.ParsedTrade{
		Action:         models.ActionSell,
		OpenClose:      models.PositionOpen,
		InstrumentType: models.InstrumentPut,
		Ticker:         "IREN",
		Expiry:         "2026-01-16",
		Strike:         f64(45),
		Contracts:      intp(1),
		ContractSize:   100,
		Amount:         f64(63.30),
		AmountSign:     "+",
		Price:          f64(0.64),
		Commission:     f64(0.65),
		Fees:           f64(0.05),
		Date:           "2025-12-17",
		SettlementDate: "2025-12-18",
		SymbolCode:     "-IREN260116P45",
		Margin:         true,
		AccountSuffix:  "1234",
	}

	if !reflect.DeepEqual(pt, want) {
		t.Errorf("parsed trade mismatch\n got: %+v\nwant: %+v", pt, want)
	}
}

func TestParsePlainSymbolLabel(t *testing.T) {
	input := "Symbol\nAAPL\nContracts\n2"
	trades := Parse(input)
	if len(trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(trades))
	}
	if trades[0].Ticker != "AAPL" {
		t.Errorf("ticker = %q, want AAPL", trades[0].Ticker)
	}
	if trades[0].SymbolCode != "" {
		t.Errorf("symbolCode = %q, want absent for a plain ticker", trades[0].SymbolCode)
	}
	if trades[0].Contracts == nil || *trades[0].Contracts != 2 {
		t.Errorf("contracts = %v, want 2", trades[0].Contracts)
	}
}

func TestParseInlineSignedAmount(t *testing.T) {
	trades := Parse("YOU BOUGHT OPENING TRANSACTION total -$128.50 charged")
	if len(trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(trades))
	}
	pt := trades[0]
	if pt.Amount == nil || *pt.Amount != 128.50 {
		t.Errorf("amount = %v, want 128.50", pt.Amount)
	}
	if pt.AmountSign != "-" {
		t.Errorf("amountSign = %q, want -", pt.AmountSign)
	}
}

func TestParseAccountSuffix(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Account ***123 confirmed", "123"},
		{"Account ***1234 confirmed", "1234"},
		{"Account **12 confirmed", ""},
	}
	for _, tt := range tests {
		trades := Parse(tt.input)
		if len(trades) != 1 {
			t.Fatalf("Parse(%q): expected 1 trade, got %d", tt.input, len(trades))
		}
		if trades[0].AccountSuffix != tt.want {
			t.Errorf("Parse(%q) accountSuffix = %q, want %q", tt.input, trades[0].AccountSuffix, tt.want)
		}
	}
}

func TestParseMultipleBlocks(t *testing.T) {
	input := `YOU BOUGHT OPENING TRANSACTION CALL (AAPL) APPLE INC JAN 16 26 $230 (100 SHS)
YOU SOLD CLOSING TRANSACTION PUT (MSFT) MICROSOFT CORP FEB 20 26 $400 (100 SHS)`

	trades := Parse(input)
	if len(trades) != 2 {
		t.Fatalf("expected 2 trades, got %d", len(trades))
	}

	if trades[0].Ticker != "AAPL" || trades[0].Action != models.ActionBuy || trades[0].OpenClose != models.PositionOpen {
		t.Errorf("first block = %+v, want buy/open AAPL", trades[0])
	}
	if trades[0].Expiry != "2026-01-16" {
		t.Errorf("first block expiry = %q, want 2026-01-16", trades[0].Expiry)
	}
	if trades[1].Ticker != "MSFT" || trades[1].Action != models.ActionSell || trades[1].OpenClose != models.PositionClose {
		t.Errorf("second block = %+v, want sell/close MSFT", trades[1])
	}
	if trades[1].Expiry != "2026-02-20" {
		t.Errorf("second block expiry = %q, want 2026-02-20", trades[1].Expiry)
	}
}

func TestParseDuplicateBlocksAreKept(t *testing.T) {
	block := "YOU BOUGHT OPENING TRANSACTION CALL (AAPL) APPLE INC JAN 16 26 $230 (100 SHS)\n"
	trades := Parse(block + block)
	if len(trades) != 2 {
		t.Fatalf("expected 2 trades for a duplicated block, got %d", len(trades))
	}
	if !reflect.DeepEqual(trades[0], trades[1]) {
		t.Errorf("duplicated blocks parsed differently:\n%+v\n%+v", trades[0], trades[1])
	}
}

func TestSymbolCodePrecedenceOverDescription(t *testing.T) {
	// The description line carries a conflicting strike and expiry; the
	// symbol code wins for the fields it supplies.
	input := "-IREN260116P45\nPUT (IREN) IREN LIMITED COM NPV FEB 20 26 $50 (100 SHS)"
	trades := Parse(input)
	if len(trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(trades))
	}
	pt := trades[0]
	if pt.Expiry != "2026-01-16" {
		t.Errorf("expiry = %q, want the symbol code's 2026-01-16", pt.Expiry)
	}
	if pt.Strike == nil || *pt.Strike != 45 {
		t.Errorf("strike = %v, want the symbol code's 45", pt.Strike)
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		month, day, year string
		want             string
	}{
		{"JAN", "16", "26", "2026-01-16"},
		{"jan", "16", "2026", "2026-01-16"},
		{"Dec", "1", "25", "2025-12-01"},
		{"FEB", "31", "26", "2026-02-31"}, // day-of-month range only, not per-month
		{"XXX", "16", "26", ""},
		{"JAN", "0", "26", ""},
		{"JAN", "32", "26", ""},
	}
	for _, tt := range tests {
		got := normalizeDate(tt.month, tt.day, tt.year)
		if got != tt.want {
			t.Errorf("normalizeDate(%q, %q, %q) = %q, want %q", tt.month, tt.day, tt.year, got, tt.want)
		}
	}
}

func TestFindDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"JAN 16 26", "2026-01-16"},
		{"Jan-16-2026", "2026-01-16"},
		{"COM NPVJAN 16 26", "2026-01-16"},
		{"expires Dec 17, 2025", "2025-12-17"},
		{"no date here", ""},
	}
	for _, tt := range tests {
		if got := findDate(tt.input); got != tt.want {
			t.Errorf("findDate(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
