package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"coralline-hq/tidecast/pkg/runstore"
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old runs from the store",
	Long: `Apply the configured retention policy once: delete terminal runs older
than the retention window and enforce the stored-run cap. Only meaningful
with the sqlite store backend.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, cleanup, err := newAppEnv()
		if err != nil {
			return err
		}
		defer cleanup()

		pruner := runstore.NewPruner(env.store, &runstore.RetentionConfig{
			RetentionDays: env.cfg.Retention.Days,
			MaxRuns:       env.cfg.Retention.MaxRuns,
		})
		deleted, err := pruner.Prune(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("deleted %d runs\n", deleted)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pruneCmd)
}
