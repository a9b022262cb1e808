package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/pipeline-cli/internal/money"
	"github.com/sells-group/pipeline-cli/internal/motivation"
)

var motivationCmd = &cobra.Command{
	Use:   "motivation",
	Short: "Compute commission on closed and in-flight turnover",
	Long: `Resolves the commission grade for closed ("fact") turnover and for the
combined fact + weighted hot turnover, then reports fact and forecast salary
figures. Hot turnover is damped by motivation.hot_weight (default 0.5)
because open deals are not certain to close.

The grade table comes from config (motivation.grades) with a built-in preset:
3% below 500k, 5% to 1M, 7% above.

Examples:
  motivation --fact 700000 --hot 600000
  motivation --fact 700000 --hot 600000 --weight 0.3 --json`,
	RunE: runMotivationCmd,
}

func init() {
	f := motivationCmd.Flags()
	f.Float64("fact", 0, "closed, paid turnover")
	f.Float64("hot", 0, "open high-confidence (hot) turnover")
	f.Float64("weight", 0, "hot turnover weight 0-1 (default from config)")
	f.Bool("json", false, "print the result as JSON")

	rootCmd.AddCommand(motivationCmd)
}

func runMotivationCmd(cmd *cobra.Command, _ []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := zap.L().With(zap.String("command", "motivation"))

	fact, _ := cmd.Flags().GetFloat64("fact")
	hot, _ := cmd.Flags().GetFloat64("hot")
	weight, _ := cmd.Flags().GetFloat64("weight")
	if weight == 0 {
		weight = cfg.Motivation.HotWeight
	}

	result := motivation.Calculate(motivation.Input{
		FactTurnover: money.FromFloat(fact),
		HotTurnover:  money.FromFloat(hot),
		Grades:       cfg.Motivation.Grades,
		HotWeight:    money.FromFloat(weight),
	})

	log.Info("motivation: commission computed",
		zap.String("fact_turnover", result.FactTurnover.String()),
		zap.String("total_potential", result.TotalPotentialTurnover.String()),
		zap.String("fact_rate", result.FactRate.String()),
		zap.String("forecast_rate", result.ForecastRate.String()),
	)

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Fact turnover:      %s\n", result.FactTurnover)
	fmt.Fprintf(out, "Hot turnover:       %s\n", result.HotTurnover)
	fmt.Fprintf(out, "Forecast turnover:  %s\n", result.ForecastTurnover)
	fmt.Fprintf(out, "Total potential:    %s\n", result.TotalPotentialTurnover)
	fmt.Fprintf(out, "Fact rate:          %s\n", result.FactRate)
	fmt.Fprintf(out, "Forecast rate:      %s\n", result.ForecastRate)
	fmt.Fprintf(out, "Salary (fact):      %s\n", result.SalaryFact)
	fmt.Fprintf(out, "Salary (forecast):  %s\n", result.SalaryForecast)
	fmt.Fprintf(out, "Potential gain:     %s\n", result.PotentialGain)
	return nil
}
