package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"coralline-hq/tidecast/pkg/cli"
)

var statusOutput string

var statusCmd = &cobra.Command{
	Use:   "status <run-id>",
	Short: "Show the status of a stored run",
	Long: `Show the lifecycle status of a simulation run: its state, stage,
progress percentage, and timestamps.

Runs are only visible across invocations with the sqlite store backend.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, cleanup, err := newAppEnv()
		if err != nil {
			return err
		}
		defer cleanup()

		info, err := env.engine.Status(context.Background(), args[0])
		if err != nil {
			return err
		}

		if statusOutput == "json" {
			return cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, info)
		}

		fmt.Printf("Run:       %s\n", info.ID)
		fmt.Printf("Framework: %s\n", info.FrameworkID)
		fmt.Printf("Status:    %s\n", info.Status)
		fmt.Printf("Stage:     %s\n", info.Stage)
		fmt.Printf("Progress:  %.1f%%\n", info.Progress)
		if info.Error != "" {
			fmt.Printf("Error:     %s\n", info.Error)
		}
		fmt.Printf("Created:   %s\n", info.CreatedAt.Format("2006-01-02 15:04:05"))
		if info.StartedAt != nil {
			fmt.Printf("Started:   %s\n", info.StartedAt.Format("2006-01-02 15:04:05"))
		}
		if info.CompletedAt != nil {
			fmt.Printf("Completed: %s\n", info.CompletedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().StringVarP(&statusOutput, "output", "o", "text", "output format (text, json)")
	rootCmd.AddCommand(statusCmd)
}
