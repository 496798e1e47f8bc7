package embedding_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"wtsplinks/internal/config"
	"wtsplinks/internal/embedding"
)

var Module = fx.Provide(provideEmbedder)

// provideEmbedder yields a nil Embedder when no provider is configured.
func provideEmbedder(lc fx.Lifecycle, cfg config.EmbeddingConfig, logger *zap.Logger) (embedding.Embedder, error) {
	e, err := embedding.New(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	if e == nil {
		logger.Info("embeddings disabled, search uses substring matching")
		return nil, nil
	}

	logger.Info("embeddings enabled", zap.String("model", e.Model()))
	if closer, ok := e.(interface{ Close() error }); ok {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error { return closer.Close() },
		})
	}
	return e, nil
}
