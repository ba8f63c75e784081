package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var cancelCmd = &cobra.Command{
	Use:   "cancel <run-id>",
	Short: "Cancel a running simulation",
	Long: `Request cooperative cancellation of a running simulation. The run
transitions to the cancelled state once its background task observes the
request; cancelling a run that already finished is a no-op.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, cleanup, err := newAppEnv()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := env.engine.Cancel(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("cancellation requested for run %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cancelCmd)
}
