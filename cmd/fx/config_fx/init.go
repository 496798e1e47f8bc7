package config_fx

import (
	"go.uber.org/fx"

	"wtsplinks/internal/config"
)

var Module = fx.Options(
	fx.Provide(config.Load),
	fx.Provide(
		func(c *config.Config) config.HTTPConfig { return c.HTTP },
		func(c *config.Config) config.PostgresConfig { return c.Postgres },
		func(c *config.Config) config.JWTConfig { return c.JWT },
		func(c *config.Config) config.SMTPConfig { return c.SMTP },
		func(c *config.Config) config.AppConfig { return c.App },
		func(c *config.Config) config.EmbeddingConfig { return c.Embedding },
		func(c *config.Config) config.IngestConfig { return c.Ingest },
		func(c *config.Config) config.RateLimitConfig { return c.RateLimit },
		func(c *config.Config) config.LogConfig { return c.Log },
	),
)
