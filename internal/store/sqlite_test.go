package store

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"trade-journal/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleTrade() models.ParsedTrade {
	strike := 45.0
	contracts := 1
	return models.ParsedTrade{
		Action:         models.ActionSell,
		OpenClose:      models.PositionOpen,
		InstrumentType: models.InstrumentPut,
		Ticker:         "IREN",
		Expiry:         "2026-01-16",
		Strike:         &strike,
		Contracts:      &contracts,
		ContractSize:   100,
		Date:           "2025-12-17",
		SymbolCode:     "-IREN260116P45",
		Margin:         true,
	}
}

func TestConfirmationRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	trade := sampleTrade()
	id, err := store.SaveConfirmation(ctx, "raw confirmation text", trade)
	if err != nil {
		t.Fatalf("SaveConfirmation: %v", err)
	}
	if id <= 0 {
		t.Fatalf("id = %d, want positive", id)
	}

	saved, err := store.GetConfirmations(ctx, ConfirmationFilter{})
	if err != nil {
		t.Fatalf("GetConfirmations: %v", err)
	}
	if len(saved) != 1 {
		t.Fatalf("got %d confirmations, want 1", len(saved))
	}
	if saved[0].ID != id {
		t.Errorf("id = %d, want %d", saved[0].ID, id)
	}
	if saved[0].RawText != "raw confirmation text" {
		t.Errorf("rawText = %q", saved[0].RawText)
	}
	if !reflect.DeepEqual(saved[0].Trade, trade) {
		t.Errorf("trade round trip mismatch\n got: %+v\nwant: %+v", saved[0].Trade, trade)
	}
}

func TestConfirmationFilters(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	iren := sampleTrade()
	aapl := sampleTrade()
	aapl.Ticker = "AAPL"
	aapl.Action = models.ActionBuy

	if _, err := store.SaveConfirmation(ctx, "iren", iren); err != nil {
		t.Fatalf("SaveConfirmation: %v", err)
	}
	if _, err := store.SaveConfirmation(ctx, "aapl", aapl); err != nil {
		t.Fatalf("SaveConfirmation: %v", err)
	}

	byTicker, err := store.GetConfirmations(ctx, ConfirmationFilter{Ticker: "IREN"})
	if err != nil {
		t.Fatalf("GetConfirmations: %v", err)
	}
	if len(byTicker) != 1 || byTicker[0].Trade.Ticker != "IREN" {
		t.Errorf("ticker filter returned %d rows", len(byTicker))
	}

	byAction, err := store.GetConfirmations(ctx, ConfirmationFilter{Action: "buy"})
	if err != nil {
		t.Fatalf("GetConfirmations: %v", err)
	}
	if len(byAction) != 1 || byAction[0].Trade.Ticker != "AAPL" {
		t.Errorf("action filter returned %d rows", len(byAction))
	}

	limited, err := store.GetConfirmations(ctx, ConfirmationFilter{Limit: 1})
	if err != nil {
		t.Fatalf("GetConfirmations: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limit filter returned %d rows, want 1", len(limited))
	}
}

func TestReviewRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.SaveConfirmation(ctx, "raw", sampleTrade())
	if err != nil {
		t.Fatalf("SaveConfirmation: %v", err)
	}

	popEstimate := 0.62
	metrics := models.Metrics{
		MaxRisk:             models.Unbounded(),
		MaxReward:           models.Bounded(63.30),
		RiskReward:          0,
		Breakevens:          []float64{44.37},
		ProbabilityOfProfit: &popEstimate,
	}
	assessment := models.Assessment{
		Text:      "Unable to calculate risk/reward ratio: one side of this position is unbounded or zero.",
		RiskLevel: models.RiskUnknown,
		Factors:   map[string]float64{},
	}

	if err := store.SaveReview(ctx, id, metrics, assessment); err != nil {
		t.Fatalf("SaveReview: %v", err)
	}

	saved, err := store.GetReviews(ctx, ReviewFilter{ConfirmationID: id})
	if err != nil {
		t.Fatalf("GetReviews: %v", err)
	}
	if len(saved) != 1 {
		t.Fatalf("got %d reviews, want 1", len(saved))
	}

	// The unbounded sentinel must survive the JSON round trip.
	if !saved[0].Metrics.MaxRisk.Unbounded {
		t.Errorf("maxRisk = %+v, want unbounded", saved[0].Metrics.MaxRisk)
	}
	if saved[0].Metrics.MaxReward.Unbounded || saved[0].Metrics.MaxReward.Value != 63.30 {
		t.Errorf("maxReward = %+v, want 63.30", saved[0].Metrics.MaxReward)
	}
	if saved[0].Metrics.ProbabilityOfProfit == nil || *saved[0].Metrics.ProbabilityOfProfit != 0.62 {
		t.Errorf("probabilityOfProfit = %v, want 0.62", saved[0].Metrics.ProbabilityOfProfit)
	}
	if saved[0].Assessment.RiskLevel != models.RiskUnknown {
		t.Errorf("riskLevel = %q, want unknown", saved[0].Assessment.RiskLevel)
	}
}

func TestGetReviewsByRiskLevel(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.SaveConfirmation(ctx, "raw", sampleTrade())
	if err != nil {
		t.Fatalf("SaveConfirmation: %v", err)
	}

	high := models.Assessment{Text: "high", RiskLevel: models.RiskHigh}
	low := models.Assessment{Text: "low", RiskLevel: models.RiskLow}
	metrics := models.Metrics{MaxRisk: models.Bounded(200), MaxReward: models.Bounded(300), RiskReward: 1.5}

	if err := store.SaveReview(ctx, id, metrics, high); err != nil {
		t.Fatalf("SaveReview: %v", err)
	}
	if err := store.SaveReview(ctx, id, metrics, low); err != nil {
		t.Fatalf("SaveReview: %v", err)
	}

	saved, err := store.GetReviews(ctx, ReviewFilter{RiskLevel: "high"})
	if err != nil {
		t.Fatalf("GetReviews: %v", err)
	}
	if len(saved) != 1 || saved[0].Assessment.RiskLevel != models.RiskHigh {
		t.Errorf("risk-level filter returned %d rows", len(saved))
	}
}
