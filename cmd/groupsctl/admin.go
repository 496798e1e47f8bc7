package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wtsplinks/internal/infra"
	"wtsplinks/internal/repositories"
	"wtsplinks/internal/services"
	"wtsplinks/pkg/utils"
)

var (
	adminEmail    string
	adminPassword string
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage back-office operators",
}

var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Provision an admin account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer infra.ClosePostgresql(db, logger)

		// Only Login signs tokens, so the manager is never used here.
		svc := services.NewAdminService(repositories.NewAdminRepository(db), utils.NewJWTManager("", 0), logger)
		if err := svc.CreateAdmin(cmd.Context(), adminEmail, adminPassword); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "admin %s created\n", adminEmail)
		return nil
	},
}

func init() {
	adminCreateCmd.Flags().StringVar(&adminEmail, "email", "", "admin email")
	adminCreateCmd.Flags().StringVar(&adminPassword, "password", "", "admin password, at least 6 characters")
	_ = adminCreateCmd.MarkFlagRequired("email")
	_ = adminCreateCmd.MarkFlagRequired("password")

	adminCmd.AddCommand(adminCreateCmd)
	rootCmd.AddCommand(adminCmd)
}
