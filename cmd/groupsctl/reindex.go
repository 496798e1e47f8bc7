package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wtsplinks/internal/embedding"
	"wtsplinks/internal/infra"
	"wtsplinks/internal/repositories"
	"wtsplinks/internal/services"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Embed groups that have no vector for the configured model",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		embedder, err := embedding.New(cmd.Context(), cfg.Embedding)
		if err != nil {
			return err
		}
		if embedder == nil {
			return fmt.Errorf("EMBEDDING_PROVIDER is not set")
		}
		if closer, ok := embedder.(interface{ Close() error }); ok {
			defer closer.Close()
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer infra.ClosePostgresql(db, logger)

		svc := services.NewGroupService(
			repositories.NewGroupRepository(db),
			repositories.NewCategoryRepository(db),
			repositories.NewGroupEmbeddingRepository(db),
			embedder,
			logger,
		)
		out, err := svc.Reindex(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "model: %s  indexed: %d  failed: %d\n", out.Model, out.Indexed, out.Failed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}
