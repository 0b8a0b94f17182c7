package main

import (
	"context"
	"fmt"
	"os"

	"rotharc/config"
	"rotharc/utils"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "rotharc",
		Short:         "Rotharc storefront and booking API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadConfig()
			utils.InitializeLogger()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	root.AddCommand(newServeCmd(), newSeedCmd())

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "rotharc:", err)
		os.Exit(1)
	}
}
