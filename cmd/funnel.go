package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/pipeline-cli/internal/funnel"
)

var funnelCmd = &cobra.Command{
	Use:   "funnel",
	Short: "Analyze pipeline conversion against benchmarks",
	Long: `Converts six raw stage counts into per-stage conversion rates, red-zone
flags, the refusal breakdown, and the North-Star KPI (paid deals per first
meeting).

Counts come from flags or from a YAML totals file:

  booked: 10
  meeting1: 8
  meeting2: 4
  contract_review: 3
  push: 2
  deal: 1
  refusals: 2
  refusal_breakdown:
    meeting1: 1
    push: 1

Benchmarks come from config (funnel.benchmarks.*) with built-in defaults.

Examples:
  # Counts from flags
  funnel --booked 10 --meeting1 8 --meeting2 4 --contract-review 3 --push 2 --deal 1

  # Counts from a totals file, JSON output
  funnel --input totals.yaml --json`,
	RunE: runFunnelCmd,
}

func init() {
	f := funnelCmd.Flags()
	f.Int64("booked", 0, "leads booked (entry stage)")
	f.Int64("meeting1", 0, "first qualification meetings held")
	f.Int64("meeting2", 0, "second qualification meetings held")
	f.Int64("contract-review", 0, "deals in contract review")
	f.Int64("push", 0, "deals in final push")
	f.Int64("deal", 0, "paid deals")
	f.Int64("refusals", 0, "aggregate refusal count")
	f.String("input", "", "YAML file with funnel totals (overrides count flags)")
	f.Bool("json", false, "print the report as JSON")

	rootCmd.AddCommand(funnelCmd)
}

func runFunnelCmd(cmd *cobra.Command, _ []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := zap.L().With(zap.String("command", "funnel"))

	totals, err := funnelTotalsFromCmd(cmd)
	if err != nil {
		return err
	}

	report := funnel.Calculate(totals, cfg.Funnel.Benchmarks)

	redZones := 0
	for _, s := range report.Stages {
		if s.IsRedZone {
			redZones++
		}
	}
	log.Info("funnel: report computed",
		zap.Int64("booked", totals.Booked),
		zap.Int64("deals", totals.Deal),
		zap.String("north_star", report.NorthStar.String()),
		zap.Int("red_zones", redZones),
	)

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	printFunnelReport(cmd, report)
	return nil
}

// funnelTotalsFromCmd builds totals from --input when given, else from flags.
func funnelTotalsFromCmd(cmd *cobra.Command) (funnel.Totals, error) {
	var totals funnel.Totals

	if path, _ := cmd.Flags().GetString("input"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return totals, eris.Wrapf(err, "funnel: read totals file %s", path)
		}
		if err := yaml.Unmarshal(data, &totals); err != nil {
			return totals, eris.Wrapf(err, "funnel: parse totals file %s", path)
		}
		return totals, nil
	}

	totals.Booked, _ = cmd.Flags().GetInt64("booked")
	totals.Meeting1, _ = cmd.Flags().GetInt64("meeting1")
	totals.Meeting2, _ = cmd.Flags().GetInt64("meeting2")
	totals.ContractReview, _ = cmd.Flags().GetInt64("contract-review")
	totals.Push, _ = cmd.Flags().GetInt64("push")
	totals.Deal, _ = cmd.Flags().GetInt64("deal")
	totals.Refusals, _ = cmd.Flags().GetInt64("refusals")
	return totals, nil
}

func printFunnelReport(cmd *cobra.Command, report funnel.Report) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%-16s %8s %12s %11s\n", "Stage", "Count", "Conversion", "Benchmark")
	for i, s := range report.Stages {
		benchmark := "-"
		if i > 0 {
			benchmark = s.Benchmark.StringFixed(2) + "%"
		}
		flag := ""
		if s.IsRedZone {
			flag = "  RED"
		}
		fmt.Fprintf(out, "%-16s %8d %11s%% %11s%s\n", s.Label, s.Value, s.Conversion.StringFixed(2), benchmark, flag)
	}

	fmt.Fprintf(out, "\nNorth-Star KPI:   %s%%\n", report.NorthStar.StringFixed(2))
	fmt.Fprintf(out, "Total conversion: %s%%\n", report.TotalConversion.StringFixed(2))

	if report.SideFlow.Total > 0 {
		fmt.Fprintf(out, "\nRefusals (total %d):\n", report.SideFlow.Total)
		for _, r := range report.SideFlow.Stages {
			if r.Count == 0 {
				continue
			}
			fmt.Fprintf(out, "  %-16s %6d  (%s%% of stage)\n", r.ID.Label(), r.Count, r.Rate.StringFixed(2))
		}
	}
}
