// Package cmd implements the CLI commands for the restock dashboard server.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "restock-dashboard",
	Short: "Inventory restock dashboard for storefront merchants",
	Long:  "A dashboard gateway that caches restock predictions from the prediction backend, serves filtered and sorted product views, streams CSV exports, and reacts to storefront push events.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.AddCommand(versionCommand())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
