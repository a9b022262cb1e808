package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/pipeline-cli/internal/forecast"
	"github.com/sells-group/pipeline-cli/internal/money"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Project month-end sales from the current run-rate",
	Long: `Extrapolates month-end sales linearly from month-to-date sales, compares
pace against the monthly goal, and reports the daily rate still required to
hit it. Pacing within 5 points of the linear target counts as good.

The reference date defaults to today and can be pinned with --date for
reproducible output. Daily observations (YAML list of {day, sales}) refine
the actual segment of the chart; without them the actual line is a uniform
run-rate fallback.

Examples:
  forecast --sales 150000 --goal 300000
  forecast --sales 150000 --goal 300000 --date 2025-01-15 --chart
  forecast --sales 150000 --observations daily.yaml --chart --json`,
	RunE: runForecastCmd,
}

func init() {
	f := forecastCmd.Flags()
	f.Float64("sales", 0, "cumulative sales this month")
	f.Float64("goal", 0, "monthly goal (default from config)")
	f.String("date", "", "reference date YYYY-MM-DD (default today)")
	f.String("observations", "", "YAML file with daily {day, sales} observations")
	f.Bool("chart", false, "include the day-by-day chart series")
	f.Bool("json", false, "print the result as JSON")

	rootCmd.AddCommand(forecastCmd)
}

// forecastOutput is the combined JSON payload for the forecast command.
type forecastOutput struct {
	Metrics forecast.Metrics      `json:"metrics"`
	Chart   []forecast.ChartPoint `json:"chart,omitempty"`
}

func runForecastCmd(cmd *cobra.Command, _ []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := zap.L().With(zap.String("command", "forecast"))

	sales, _ := cmd.Flags().GetFloat64("sales")
	goal, _ := cmd.Flags().GetFloat64("goal")
	if goal == 0 {
		goal = cfg.Forecast.MonthlyGoal
	}

	now := time.Now()
	if dateStr, _ := cmd.Flags().GetString("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return eris.Wrapf(err, "forecast: parse --date %q", dateStr)
		}
		now = parsed
	}

	observations, err := loadObservations(cmd)
	if err != nil {
		return err
	}

	salesDec := money.FromFloat(sales)
	goalDec := money.FromFloat(goal)

	metrics := forecast.Calculate(salesDec, goalDec, now)

	log.Info("forecast: metrics computed",
		zap.String("projected", metrics.Projected.String()),
		zap.String("completion", metrics.Completion.String()),
		zap.String("pacing", metrics.Pacing.String()),
		zap.Bool("pacing_good", metrics.IsPacingGood),
		zap.Int("days_remaining", metrics.DaysRemaining),
	)

	output := forecastOutput{Metrics: metrics}
	if withChart, _ := cmd.Flags().GetBool("chart"); withChart {
		output.Chart = forecast.ChartSeries(salesDec, goalDec, now, observations)
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(output)
	}

	printForecast(cmd, output)
	return nil
}

func loadObservations(cmd *cobra.Command) ([]forecast.Observation, error) {
	path, _ := cmd.Flags().GetString("observations")
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "forecast: read observations file %s", path)
	}

	var observations []forecast.Observation
	if err := yaml.Unmarshal(data, &observations); err != nil {
		return nil, eris.Wrapf(err, "forecast: parse observations file %s", path)
	}
	return observations, nil
}

func printForecast(cmd *cobra.Command, output forecastOutput) {
	out := cmd.OutOrStdout()
	m := output.Metrics

	pace := "ON PACE"
	if !m.IsPacingGood {
		pace = "BEHIND"
	}

	fmt.Fprintf(out, "Month progress:  day %d of %d (%d remaining)\n", m.DaysPassed, m.DaysInMonth, m.DaysRemaining)
	fmt.Fprintf(out, "Current sales:   %s\n", m.Current)
	fmt.Fprintf(out, "Monthly goal:    %s\n", m.Goal)
	fmt.Fprintf(out, "Projected:       %s (%s%% of goal)\n", m.Projected, m.Completion)
	fmt.Fprintf(out, "Expected by now: %s\n", m.ExpectedByNow)
	fmt.Fprintf(out, "Pacing:          %s%% (%s)\n", m.Pacing, pace)
	fmt.Fprintf(out, "Daily average:   %s\n", m.DailyAverage)
	fmt.Fprintf(out, "Daily required:  %s\n", m.DailyRequired)

	if len(output.Chart) > 0 {
		fmt.Fprintf(out, "\n%4s %12s %12s %12s\n", "Day", "Plan", "Actual", "Forecast")
		for _, p := range output.Chart {
			actual, projected := "-", "-"
			if p.Actual != nil {
				actual = p.Actual.String()
			}
			if p.Forecast != nil {
				projected = p.Forecast.String()
			}
			fmt.Fprintf(out, "%4d %12s %12s %12s\n", p.Day, p.Plan, actual, projected)
		}
	}
}
