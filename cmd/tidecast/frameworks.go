package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"coralline-hq/tidecast/pkg/framework"
)

var frameworksCmd = &cobra.Command{
	Use:   "frameworks",
	Short: "List available policy frameworks",
	Long: `List the policy frameworks a simulation request can target, with
their intervention parameters, outcome metrics, and default time horizons.

Frameworks come from the built-in catalog, optionally extended or overridden
by a YAML catalog file configured under frameworks.catalog_path.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadAppConfig()
		if err != nil {
			return err
		}
		registry, err := framework.LoadRegistry(cfg.Frameworks.CatalogPath)
		if err != nil {
			return err
		}

		for _, fw := range registry.List() {
			fmt.Printf("%s\n", fw.ID)
			fmt.Printf("  Name:       %s\n", fw.Name)
			fmt.Printf("  Horizon:    %d years\n", fw.HorizonYears)
			fmt.Printf("  Parameters: %s\n", strings.Join(fw.Parameters, ", "))
			fmt.Printf("  Metrics:    %s\n", strings.Join(fw.Metrics, ", "))
			fmt.Println()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(frameworksCmd)
}
