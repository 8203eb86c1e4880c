// Package cli provides the command-line interface for the trade journal.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"trade-journal/internal/journal"
	"trade-journal/internal/models"
	"trade-journal/internal/risk"
)

func newAssessCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Compute risk metrics and an assessment for a position",
		Long: `Compute max risk, max reward, risk/reward ratio, breakevens, probability of
profit and a deterministic assessment for a position described by its legs.

Legs are given as side:type[:strike], e.g. buy:call:100 or sell:put:45 or
buy:stock. Two same-type opposite-side option legs form a vertical spread.
Entry price is signed: positive for a net debit, negative for a net credit.`,
		Example: `  tradejournal assess --leg buy:call:100 --entry 2.50 --qty 1
  tradejournal assess --leg buy:call:100 --leg sell:call:105 --entry 2 --qty 1
  tradejournal assess --leg sell:put:45 --entry -1.20 --qty 2 --price 42.50 --iv 0.65 --dte 30`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			legSpecs, _ := cmd.Flags().GetStringArray("leg")
			entry, _ := cmd.Flags().GetFloat64("entry")
			qty, _ := cmd.Flags().GetInt("qty")

			legs, err := parseLegs(legSpecs, qty)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			market := marketFromFlags(cmd)
			metrics := risk.ComputeMetrics(legs, entry, qty, market)
			assessment := risk.GenerateAssessment(metrics)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"metrics":    metrics,
					"assessment": assessment,
				})
			}

			renderMetrics(output, metrics, assessment)
			return nil
		},
	}

	cmd.Flags().StringArray("leg", nil, "Position leg as side:type[:strike] (repeatable)")
	cmd.Flags().Float64("entry", 0, "Net entry price (negative for a credit)")
	cmd.Flags().Int("qty", 1, "Quantity")
	addMarketFlags(cmd)

	return cmd
}

// parseLegs converts side:type[:strike] flags into model legs.
func parseLegs(specs []string, qty int) ([]models.Leg, error) {
	legs := make([]models.Leg, 0, len(specs))
	for _, spec := range specs {
		parts := strings.Split(spec, ":")
		if len(parts) < 2 {
			return nil, fmt.Errorf("invalid leg %q: want side:type[:strike]", spec)
		}

		var side models.Side
		switch strings.ToLower(parts[0]) {
		case "buy":
			side = models.SideBuy
		case "sell":
			side = models.SideSell
		default:
			return nil, fmt.Errorf("invalid leg side %q: want buy or sell", parts[0])
		}

		var instrType models.InstrumentType
		switch strings.ToLower(parts[1]) {
		case "call":
			instrType = models.InstrumentCall
		case "put":
			instrType = models.InstrumentPut
		case "stock":
			instrType = models.InstrumentStock
		default:
			return nil, fmt.Errorf("invalid leg type %q: want call, put or stock", parts[1])
		}

		leg := models.Leg{InstrumentType: instrType, Side: side, Quantity: qty}
		if len(parts) >= 3 {
			strike, err := strconv.ParseFloat(parts[2], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid leg strike %q: %w", parts[2], err)
			}
			leg.Strike = strike
		}
		if instrType.IsOption() && leg.Strike <= 0 {
			return nil, fmt.Errorf("option leg %q needs a strike", spec)
		}

		legs = append(legs, leg)
	}
	return legs, nil
}

func renderMetrics(output *Output, m models.Metrics, a models.Assessment) {
	output.Bold("Risk Metrics")
	output.Printf("  Max Risk:      %s\n", FormatMaxValue(m.MaxRisk))
	output.Printf("  Max Reward:    %s\n", FormatMaxValue(m.MaxReward))
	output.Printf("  Risk/Reward:   %s\n", FormatRiskReward(m.RiskReward))
	output.Printf("  Breakeven:     %s\n", formatBreakevens(m.Breakevens))
	output.Printf("  Prob. Profit:  %s\n", FormatProbability(m.ProbabilityOfProfit))
	output.Println()

	output.Bold("Assessment")
	output.Printf("  Risk Level:    %s\n", output.RiskTag(a.RiskLevel))
	output.Printf("  %s\n", a.Text)
}

func formatBreakevens(breakevens []float64) string {
	if len(breakevens) == 0 {
		return "—"
	}
	parts := make([]string, 0, len(breakevens))
	for _, be := range breakevens {
		parts = append(parts, fmt.Sprintf("%.2f", be))
	}
	return strings.Join(parts, ", ")
}

func renderReview(output *Output, r journal.Review) {
	header := r.Trade.Ticker
	if header == "" {
		header = "(unknown ticker)"
	}
	output.Bold("%s %s %s", header, r.Trade.Action, r.Trade.InstrumentType)

	if r.Err != "" {
		output.Warning("  Not priceable: %s", r.Err)
		output.Println()
		return
	}

	renderMetrics(output, *r.Metrics, *r.Assessment)
	output.Println()
}
