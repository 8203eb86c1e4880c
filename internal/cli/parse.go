// Package cli provides the command-line interface for the trade journal.
package cli

import (
	"context"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"trade-journal/internal/journal"
	"trade-journal/internal/models"
	"trade-journal/internal/parser"
	"trade-journal/internal/risk"
)

func newParseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse pasted broker confirmation text",
		Long: `Parse broker confirmation text into normalized trade records.

Reads from the given file, or from stdin when no file is supplied, so a
confirmation can be piped or pasted directly. Records every field each
recognized layout supplies; unrecognized fields are simply absent.`,
		Example: `  pbpaste | tradejournal parse
  tradejournal parse confirmation.txt
  tradejournal parse confirmation.txt --assess --price 42.50 --iv 0.65 --dte 30
  tradejournal parse confirmation.txt --save`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			text, err := readInput(cmd, args)
			if err != nil {
				output.Error("Failed to read input: %v", err)
				return err
			}

			trades := parser.Parse(text)
			if len(trades) == 0 {
				output.Info("No confirmation text found in input.")
				return nil
			}

			assess, _ := cmd.Flags().GetBool("assess")
			save, _ := cmd.Flags().GetBool("save")
			market := marketFromFlags(cmd)

			var reviews []journal.Review
			if assess {
				reviews = make([]journal.Review, 0, len(trades))
				for _, pt := range trades {
					reviews = append(reviews, app.Reviewer.ReviewTrade(pt, market))
				}
			}

			if save {
				if err := saveTrades(ctx, app, output, text, trades, reviews); err != nil {
					return err
				}
			}

			switch {
			case assess && output.IsJSON():
				return output.JSON(reviews)
			case assess:
				for _, r := range reviews {
					renderReview(output, r)
				}
			case output.IsJSON():
				return output.JSON(trades)
			default:
				renderTrades(output, trades)
			}

			return nil
		},
	}

	cmd.Flags().Bool("assess", false, "Run the risk assessment on each parsed trade")
	cmd.Flags().Bool("save", false, "Save parsed confirmations to the journal store")
	addMarketFlags(cmd)

	return cmd
}

// saveTrades persists every non-empty parsed confirmation, plus its review
// when the trades were assessed. Reviews is nil or parallel to trades.
func saveTrades(ctx context.Context, app *App, output *Output, text string, trades []models.ParsedTrade, reviews []journal.Review) error {
	if app.Store == nil {
		output.Warning("Store not initialized, nothing saved.")
		return nil
	}

	for i, pt := range trades {
		if pt.IsEmpty() {
			continue
		}
		id, err := app.Store.SaveConfirmation(ctx, text, pt)
		if err != nil {
			output.Error("Failed to save confirmation: %v", err)
			return err
		}
		if !output.IsJSON() {
			output.Success("✓ Saved confirmation #%d", id)
		}

		if reviews != nil && reviews[i].Metrics != nil {
			if err := app.Store.SaveReview(ctx, id, *reviews[i].Metrics, *reviews[i].Assessment); err != nil {
				output.Error("Failed to save review: %v", err)
				return err
			}
		}
	}
	return nil
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func addMarketFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("price", 0, "Current underlying price")
	cmd.Flags().Float64("iv", 0, "Implied volatility (e.g. 0.65)")
	cmd.Flags().Int("dte", 0, "Days to expiry")
}

func marketFromFlags(cmd *cobra.Command) *risk.MarketContext {
	price, _ := cmd.Flags().GetFloat64("price")
	iv, _ := cmd.Flags().GetFloat64("iv")
	dte, _ := cmd.Flags().GetInt("dte")
	if price <= 0 || iv <= 0 || dte <= 0 {
		return nil
	}
	return &risk.MarketContext{
		CurrentPrice:      price,
		ImpliedVolatility: iv,
		DaysToExpiry:      dte,
	}
}

func renderTrades(output *Output, trades []models.ParsedTrade) {
	table := NewTable(output, "Ticker", "Action", "Type", "Strike", "Expiry", "Qty", "Price", "Amount", "Date")
	unparsed := 0
	for _, pt := range trades {
		if pt.IsEmpty() {
			unparsed++
			continue
		}
		table.AddRow(
			pt.Ticker,
			string(pt.Action),
			string(pt.InstrumentType),
			FormatStrike(pt.Strike),
			pt.Expiry,
			formatContracts(pt.Contracts),
			formatMoney(pt.Price),
			formatSignedMoney(pt.Amount, pt.AmountSign),
			pt.Date,
		)
	}
	table.Render()

	if unparsed > 0 {
		output.Println()
		output.Warning("%d block(s) could not be parsed. Edit those trades manually.", unparsed)
	}
}

func formatContracts(contracts *int) string {
	if contracts == nil {
		return ""
	}
	return strconv.Itoa(*contracts)
}

func formatMoney(v *float64) string {
	if v == nil {
		return ""
	}
	return FormatUSD(*v)
}

func formatSignedMoney(v *float64, sign string) string {
	if v == nil {
		return ""
	}
	return sign + FormatUSD(*v)
}
