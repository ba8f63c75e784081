package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"coralline-hq/tidecast/pkg/cli"
)

var listOutput string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored runs",
	Long: `List all simulation runs in the store with their status and progress.
Runs are only visible across invocations with the sqlite store backend.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, cleanup, err := newAppEnv()
		if err != nil {
			return err
		}
		defer cleanup()

		runs, err := env.store.List(context.Background())
		if err != nil {
			return err
		}

		if listOutput == "json" {
			return cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, runs)
		}
		if len(runs) == 0 {
			fmt.Println("no runs stored")
			return nil
		}
		for _, run := range runs {
			fmt.Printf("%s  %-20s %-10s %5.1f%%  %s\n",
				run.ID, run.FrameworkID, run.Status, run.Progress,
				run.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "text", "output format (text, json)")
	rootCmd.AddCommand(listCmd)
}
