package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"real-estate-system/storefront/internal"
	"real-estate-system/storefront/internal/configs"

	"github.com/spf13/cobra"
)

var backend string

var rootCmd = &cobra.Command{
	Use:          "seed",
	Short:        "Load bundled fixtures into the mock API database",
	Long:         "Drops existing owners, properties, images and traces and loads the bundled fixtures.",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return internal.RunSeed(ctx, backend)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&backend, "backend", "b", string(configs.BackendMongoDB), "database to seed: mongodb or postgres")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
