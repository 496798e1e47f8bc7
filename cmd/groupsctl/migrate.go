package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wtsplinks/internal/infra"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate up|down",
	Short:     "Apply or roll back the embedded schema migrations",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down"},
	RunE: func(cmd *cobra.Command, args []string) error {
		up := args[0] == "up"
		if err := infra.Migrate(cfg.Postgres.URL, up); err != nil {
			return err
		}
		logger.Info("migrations finished", zap.String("direction", args[0]))
		fmt.Fprintf(cmd.OutOrStdout(), "migrate %s: done\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
