// Package store provides data persistence interfaces and implementations.
//
// The parser and risk engine stay pure; persistence lives entirely behind
// this boundary and is consumed only by the CLI layer.
package store

import (
	"context"
	"time"

	"trade-journal/internal/models"
)

// DataStore defines the interface for journal persistence.
type DataStore interface {
	// Confirmations
	SaveConfirmation(ctx context.Context, rawText string, trade models.ParsedTrade) (int64, error)
	GetConfirmations(ctx context.Context, filter ConfirmationFilter) ([]SavedConfirmation, error)

	// Reviews
	SaveReview(ctx context.Context, confirmationID int64, metrics models.Metrics, assessment models.Assessment) error
	GetReviews(ctx context.Context, filter ReviewFilter) ([]SavedReview, error)

	// Lifecycle
	Close() error
}

// SavedConfirmation is a parsed confirmation as stored.
type SavedConfirmation struct {
	ID        int64
	CreatedAt time.Time
	RawText   string
	Trade     models.ParsedTrade
}

// SavedReview is a stored metrics/assessment pair for a confirmation.
type SavedReview struct {
	ID             int64
	ConfirmationID int64
	CreatedAt      time.Time
	Metrics        models.Metrics
	Assessment     models.Assessment
}

// ConfirmationFilter represents filters for querying confirmations.
type ConfirmationFilter struct {
	Ticker    string
	Action    string
	StartDate time.Time
	EndDate   time.Time
	Limit     int
}

// ReviewFilter represents filters for querying reviews.
type ReviewFilter struct {
	ConfirmationID int64
	RiskLevel      string
	Limit          int
}
