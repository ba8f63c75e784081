package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"coralline-hq/tidecast/pkg/batch"
	"coralline-hq/tidecast/pkg/cli"
)

var (
	compareRequestFile string
	compareIterations  int
	compareOutput      string
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Rank a request's scenarios by NPV improvement",
	Long: `Run each scenario in a request file as its own simulation at a reduced
iteration count and rank the scenarios by mean NPV improvement over
baseline, best first. Useful for screening many scenarios cheaply before a
full run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := readRequest(compareRequestFile)
		if err != nil {
			return err
		}

		env, cleanup, err := newAppEnv()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx := cli.SetupSignalHandler()

		rankings, err := batch.ScenarioAnalysis(ctx, env.engine, req.FrameworkID, req.Baseline, req.Scenarios, batch.Options{
			Iterations:   compareIterations,
			HorizonYears: req.HorizonYears,
			Seed:         req.Seed,
		})
		if err != nil {
			return err
		}

		if compareOutput == "json" {
			return cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, rankings)
		}
		for i, r := range rankings {
			fmt.Printf("%d. %-24s mean NPV %10.3f  improvement %+10.3f\n",
				i+1, r.Scenario, r.MeanNPV, r.Improvement)
		}
		return nil
	},
}

var (
	sensitivityRequestFile string
	sensitivityParam       string
	sensitivityValues      []float64
	sensitivityIterations  int
	sensitivityOutput      string
)

var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity",
	Short: "Sweep one intervention parameter and measure NPV response",
	Long: `Sweep a single intervention parameter across a set of values, running
each value as its own simulation, and report the mean NPV at each point
plus the overall spread. The framework, baseline, horizon, and seed are
taken from the request file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := readRequest(sensitivityRequestFile)
		if err != nil {
			return err
		}

		env, cleanup, err := newAppEnv()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx := cli.SetupSignalHandler()

		result, err := batch.SensitivityAnalysis(ctx, env.engine, req.FrameworkID, req.Baseline, sensitivityParam, sensitivityValues, batch.Options{
			Iterations:   sensitivityIterations,
			HorizonYears: req.HorizonYears,
			Seed:         req.Seed,
		})
		if err != nil {
			return err
		}

		if sensitivityOutput == "json" {
			return cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, result)
		}
		fmt.Printf("parameter: %s\n", result.Parameter)
		for _, p := range result.Points {
			fmt.Printf("  %s = %-8g mean NPV %10.3f\n", result.Parameter, p.Value, p.MeanNPV)
		}
		fmt.Printf("range: %.3f\n", result.Range)
		return nil
	},
}

func init() {
	compareCmd.Flags().StringVarP(&compareRequestFile, "request", "r", "request.yaml", "simulation request file")
	compareCmd.Flags().IntVar(&compareIterations, "iterations", 0, "per-scenario trial count (default 200)")
	compareCmd.Flags().StringVarP(&compareOutput, "output", "o", "text", "output format (text, json)")
	rootCmd.AddCommand(compareCmd)

	sensitivityCmd.Flags().StringVarP(&sensitivityRequestFile, "request", "r", "request.yaml", "simulation request file")
	sensitivityCmd.Flags().StringVarP(&sensitivityParam, "param", "p", "", "intervention parameter to sweep")
	sensitivityCmd.Flags().Float64SliceVar(&sensitivityValues, "values", nil, "parameter values to test")
	sensitivityCmd.Flags().IntVar(&sensitivityIterations, "iterations", 0, "per-value trial count (default 200)")
	sensitivityCmd.Flags().StringVarP(&sensitivityOutput, "output", "o", "text", "output format (text, json)")
	_ = sensitivityCmd.MarkFlagRequired("param")
	rootCmd.AddCommand(sensitivityCmd)
}
