package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"wtsplinks/internal/config"
	"wtsplinks/internal/infra"
)

var (
	verbose bool
	cfg     *config.Config
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "groupsctl",
	Short: "Operator tasks for the WhatsApp group directory",
	Long: `groupsctl manages the group directory database outside the HTTP server.

Example usage:
  groupsctl migrate up
  groupsctl import --file groups.xlsx
  groupsctl import --text-file pasted.csv --delimiter ";"
  groupsctl reindex
  groupsctl admin create --email ops@example.com --password '...'`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func initConfig() error {
	var err error
	cfg, err = config.LoadStorage()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logCfg := cfg.Log
	if verbose {
		logCfg.Level = "debug"
	}
	logger, err = infra.NewLogger(logCfg)
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)
	return nil
}

// openDB connects to Postgres; the caller closes it with infra.ClosePostgresql.
func openDB() (*gorm.DB, error) {
	return infra.InitPostgresql(cfg.Postgres)
}
