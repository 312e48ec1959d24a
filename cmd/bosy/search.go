package main

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/jabaum/bosy/internal/process"
	"github.com/jabaum/bosy/search"
)

var searchCmd = &cobra.Command{
	Use:   "search [flags] -- solver [args...]",
	Short: "Find the smallest solvable bound with an external solver",
	Long: `Runs the solver once per candidate number of controller states. The
argument {bound} is replaced by the bound under test. The solver exits with
10 when the bound is solvable and 20 when it is not; any other status aborts
the search.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		strategy := cfg.Search.Strategy
		if flags.Changed("strategy") {
			strategy, _ = flags.GetString("strategy")
		}
		maxBound := cfg.Search.MaxBound
		if flags.Changed("max") {
			maxBound, _ = flags.GetInt("max")
		}
		timeout := cfg.Search.Timeout
		if flags.Changed("timeout") {
			timeout, _ = flags.GetDuration("timeout")
		}
		metricsFile, _ := flags.GetString("metrics-file")

		reg := prometheus.NewRegistry()
		metrics, err := search.NewMetrics(reg)
		if err != nil {
			return err
		}

		runner := process.NewRunner(logger)
		runner.Register("solver", args[0])
		s := &search.Searcher[search.States]{
			Domain:  search.StateBound{Max: maxBound},
			Solve:   search.CommandSolver[search.States](runner, "solver", args[1:]...),
			Logger:  logger,
			Metrics: metrics,
		}

		var c search.Canceller
		if timeout > 0 {
			stop := c.CancelAfter(timeout)
			defer stop()
		}

		start := time.Now()
		var (
			bound   search.States
			outcome search.Outcome
		)
		switch strategy {
		case "linear":
			bound, outcome, err = s.Linear(cmd.Context(), &c)
		case "exponential":
			bound, outcome, err = s.Exponential(cmd.Context(), &c)
		default:
			return fmt.Errorf("unknown strategy %q", strategy)
		}

		if metricsFile != "" {
			if werr := prometheus.WriteToTextfile(metricsFile, reg); werr != nil {
				logger.Warn("writing metrics failed", "path", metricsFile, "error", werr)
			}
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Search (%s)\n", strategy)
		fmt.Fprintf(out, "  Result:    %s\n", outcome)
		if outcome == search.Found {
			fmt.Fprintf(out, "  Bound:     %d states\n", bound)
		}
		fmt.Fprintf(out, "  Duration:  %s\n", time.Since(start).Round(time.Millisecond))
		if outcome != search.Found {
			return fmt.Errorf("no solution: search %s", outcome)
		}
		return nil
	},
}

func init() {
	f := searchCmd.Flags()
	f.String("strategy", "", "Search strategy (linear or exponential)")
	f.Int("max", 0, "Exclusive upper bound on the number of states (0 means unbounded)")
	f.Duration("timeout", 0, "Give up after this long")
	f.String("metrics-file", "", "Write Prometheus metrics of the search to this file")
	rootCmd.AddCommand(searchCmd)
}
