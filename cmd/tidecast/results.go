package main

import (
	"context"

	"github.com/spf13/cobra"
)

var resultsOutput string

var resultsCmd = &cobra.Command{
	Use:   "results <run-id>",
	Short: "Show the results of a completed run",
	Long: `Show the analysis and recommendations of a completed simulation run.
For a run that is still executing, or one that failed or was cancelled, an
error naming its current state is returned instead; partial results are
never exposed.

Runs are only visible across invocations with the sqlite store backend.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, cleanup, err := newAppEnv()
		if err != nil {
			return err
		}
		defer cleanup()

		results, err := env.engine.Results(context.Background(), args[0])
		if err != nil {
			return err
		}

		return printResults(results, resultsOutput)
	},
}

func init() {
	resultsCmd.Flags().StringVarP(&resultsOutput, "output", "o", "text", "output format (text, json)")
	rootCmd.AddCommand(resultsCmd)
}
