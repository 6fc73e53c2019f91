// Command tripctl is the operator CLI: cache schema setup, offline log
// synthesis and chart rendering, and one-shot trip planning.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"trip-log-service/internal/config"
)

func main() {
	config.LoadDotEnv()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tripctl",
		Short:         "Trip log service tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newSchemaCmd(), newELDCmd(), newChartCmd(), newPlanCmd())
	return root
}
