package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dataclean/internal/config"
	"dataclean/pkg/contracts"
)

var configFile string

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "dataclean",
		Short:         "Clean tabular CSV and Excel uploads",
		Version:       config.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.SetVersionTemplate(contracts.GetFullVersionString() + "\n")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to a YAML config file (defaults to config.yaml or configs/config.yaml)")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newCleanCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
