// Package cli provides the command-line interface for the trade journal.
package cli

import (
	"context"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"trade-journal/internal/store"
)

func newHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse saved confirmations and reviews",
		Long:  "List confirmations and risk reviews saved to the journal store.",
	}

	cmd.AddCommand(newHistoryTradesCmd(app))
	cmd.AddCommand(newHistoryReviewsCmd(app))

	return cmd
}

func newHistoryTradesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trades",
		Short: "List saved confirmations",
		Example: `  tradejournal history trades
  tradejournal history trades --ticker IREN --limit 20`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				output.Warning("Store not initialized. No saved trades available.")
				return nil
			}

			ticker, _ := cmd.Flags().GetString("ticker")
			action, _ := cmd.Flags().GetString("action")
			limit, _ := cmd.Flags().GetInt("limit")

			saved, err := app.Store.GetConfirmations(ctx, store.ConfirmationFilter{
				Ticker: ticker,
				Action: action,
				Limit:  limit,
			})
			if err != nil {
				output.Error("Failed to fetch confirmations: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(saved)
			}

			if len(saved) == 0 {
				output.Info("No saved confirmations found.")
				return nil
			}

			table := NewTable(output, "ID", "Saved", "Ticker", "Action", "Type", "Strike", "Expiry")
			for _, c := range saved {
				table.AddRow(
					formatID(c.ID),
					FormatDate(c.CreatedAt),
					c.Trade.Ticker,
					string(c.Trade.Action),
					string(c.Trade.InstrumentType),
					FormatStrike(c.Trade.Strike),
					c.Trade.Expiry,
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().String("ticker", "", "Filter by ticker")
	cmd.Flags().String("action", "", "Filter by action (buy, sell, expired)")
	cmd.Flags().Int("limit", 50, "Maximum rows")

	return cmd
}

func newHistoryReviewsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviews",
		Short: "List saved risk reviews",
		Example: `  tradejournal history reviews
  tradejournal history reviews --risk-level high`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				output.Warning("Store not initialized. No saved reviews available.")
				return nil
			}

			riskLevel, _ := cmd.Flags().GetString("risk-level")
			limit, _ := cmd.Flags().GetInt("limit")

			saved, err := app.Store.GetReviews(ctx, store.ReviewFilter{
				RiskLevel: riskLevel,
				Limit:     limit,
			})
			if err != nil {
				output.Error("Failed to fetch reviews: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(saved)
			}

			if len(saved) == 0 {
				output.Info("No saved reviews found.")
				return nil
			}

			table := NewTable(output, "ID", "Trade", "Saved", "Risk", "R/R", "Max Risk", "Assessment")
			for _, r := range saved {
				table.AddRow(
					formatID(r.ID),
					formatID(r.ConfirmationID),
					FormatDate(r.CreatedAt),
					output.RiskTag(r.Assessment.RiskLevel),
					FormatRiskReward(r.Metrics.RiskReward),
					FormatMaxValue(r.Metrics.MaxRisk),
					TruncateString(r.Assessment.Text, 48),
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().String("risk-level", "", "Filter by risk level (low, medium, high, unknown)")
	cmd.Flags().Int("limit", 50, "Maximum rows")

	return cmd
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
