package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "prizedash",
		Short: "Scenario comparison dashboard for transit simulation runs",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe()
		},
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(exportCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard API server",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe()
		},
	}
}

func importCmd() *cobra.Command {
	var target, name string

	cmd := &cobra.Command{
		Use:   "import [scenario-dir]",
		Short: "Import scenario CSV output into a database",
		Long: "Import one scenario directory, or every scenario sub-directory of a data directory,\n" +
			"into the SQLite or PostgreSQL scenario store.",
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runImport(args[0], target, name)
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", "sqlite", "store to import into (sqlite|postgres)")
	cmd.Flags().StringVarP(&name, "name", "n", "", "scenario name for a single scenario directory (default: directory name)")
	return cmd
}

func exportCmd() *cobra.Command {
	var table string

	cmd := &cobra.Command{
		Use:   "export [scenario]",
		Short: "Print the result tables of a scenario as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runExport(args[0], table)
		},
	}

	cmd.Flags().StringVar(&table, "table", "", "export only this result table")
	return cmd
}
