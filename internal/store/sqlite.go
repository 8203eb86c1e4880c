package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"trade-journal/internal/models"
)

// SQLiteStore implements DataStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based data store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Parsed broker confirmations. Key fields are broken out as columns for
	-- filtering; the complete record rides along as JSON.
	CREATE TABLE IF NOT EXISTS confirmations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		raw_text TEXT NOT NULL,
		ticker TEXT,
		action TEXT,
		instrument_type TEXT,
		expiry TEXT,
		trade_date TEXT,
		trade_json TEXT NOT NULL
	);

	-- Risk reviews for saved confirmations
	CREATE TABLE IF NOT EXISTS reviews (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		confirmation_id INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		risk_level TEXT NOT NULL,
		metrics_json TEXT NOT NULL,
		assessment_json TEXT NOT NULL,
		FOREIGN KEY (confirmation_id) REFERENCES confirmations(id)
	);

	CREATE INDEX IF NOT EXISTS idx_confirmations_ticker ON confirmations(ticker);
	CREATE INDEX IF NOT EXISTS idx_confirmations_created ON confirmations(created_at);
	CREATE INDEX IF NOT EXISTS idx_reviews_confirmation ON reviews(confirmation_id);
	CREATE INDEX IF NOT EXISTS idx_reviews_risk_level ON reviews(risk_level);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveConfirmation stores a parsed confirmation together with its raw text.
func (s *SQLiteStore) SaveConfirmation(ctx context.Context, rawText string, trade models.ParsedTrade) (int64, error) {
	tradeJSON, err := json.Marshal(trade)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal trade: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO confirmations (raw_text, ticker, action, instrument_type, expiry, trade_date, trade_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rawText, trade.Ticker, string(trade.Action), string(trade.InstrumentType), trade.Expiry, trade.Date, string(tradeJSON))
	if err != nil {
		return 0, fmt.Errorf("failed to insert confirmation: %w", err)
	}

	return res.LastInsertId()
}

// GetConfirmations retrieves stored confirmations matching the filter.
func (s *SQLiteStore) GetConfirmations(ctx context.Context, filter ConfirmationFilter) ([]SavedConfirmation, error) {
	query := `SELECT id, created_at, raw_text, trade_json FROM confirmations`
	var conditions []string
	var args []interface{}

	if filter.Ticker != "" {
		conditions = append(conditions, "ticker = ?")
		args = append(args, filter.Ticker)
	}
	if filter.Action != "" {
		conditions = append(conditions, "action = ?")
		args = append(args, filter.Action)
	}
	if !filter.StartDate.IsZero() {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		conditions = append(conditions, "created_at <= ?")
		args = append(args, filter.EndDate)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query confirmations: %w", err)
	}
	defer rows.Close()

	var saved []SavedConfirmation
	for rows.Next() {
		var c SavedConfirmation
		var tradeJSON string
		if err := rows.Scan(&c.ID, &c.CreatedAt, &c.RawText, &tradeJSON); err != nil {
			return nil, fmt.Errorf("failed to scan confirmation: %w", err)
		}
		if err := json.Unmarshal([]byte(tradeJSON), &c.Trade); err != nil {
			return nil, fmt.Errorf("failed to unmarshal trade: %w", err)
		}
		saved = append(saved, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating confirmations: %w", err)
	}
	return saved, nil
}

// SaveReview stores the metrics and assessment computed for a confirmation.
func (s *SQLiteStore) SaveReview(ctx context.Context, confirmationID int64, metrics models.Metrics, assessment models.Assessment) error {
	metricsJSON, err := json.Marshal(metrics)
	if err != nil {
		return fmt.Errorf("failed to marshal metrics: %w", err)
	}
	assessmentJSON, err := json.Marshal(assessment)
	if err != nil {
		return fmt.Errorf("failed to marshal assessment: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reviews (confirmation_id, risk_level, metrics_json, assessment_json)
		VALUES (?, ?, ?, ?)
	`, confirmationID, string(assessment.RiskLevel), string(metricsJSON), string(assessmentJSON))
	if err != nil {
		return fmt.Errorf("failed to insert review: %w", err)
	}
	return nil
}

// GetReviews retrieves stored reviews matching the filter.
func (s *SQLiteStore) GetReviews(ctx context.Context, filter ReviewFilter) ([]SavedReview, error) {
	query := `SELECT id, confirmation_id, created_at, metrics_json, assessment_json FROM reviews`
	var conditions []string
	var args []interface{}

	if filter.ConfirmationID > 0 {
		conditions = append(conditions, "confirmation_id = ?")
		args = append(args, filter.ConfirmationID)
	}
	if filter.RiskLevel != "" {
		conditions = append(conditions, "risk_level = ?")
		args = append(args, filter.RiskLevel)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var saved []SavedReview
	for rows.Next() {
		var r SavedReview
		var metricsJSON, assessmentJSON string
		if err := rows.Scan(&r.ID, &r.ConfirmationID, &r.CreatedAt, &metricsJSON, &assessmentJSON); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		if err := json.Unmarshal([]byte(metricsJSON), &r.Metrics); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metrics: %w", err)
		}
		if err := json.Unmarshal([]byte(assessmentJSON), &r.Assessment); err != nil {
			return nil, fmt.Errorf("failed to unmarshal assessment: %w", err)
		}
		saved = append(saved, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}
	return saved, nil
}
